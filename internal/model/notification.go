package model

import "time"

// Severity classifies a notification for display styling.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// NotificationTTL is how long a notification stays visible before it is
// auto-dismissed.
const NotificationTTL = 6 * time.Second

// Notification is an ephemeral message surfaced to the user. It is the
// sole user-visible failure channel besides inline form errors.
type Notification struct {
	// ID distinguishes this notification from later ones so a stale
	// dismiss timer never clears a newer message.
	ID string `json:"id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Severity selects the display style.
	Severity Severity `json:"severity"`

	// CreatedAt is when this notification was raised.
	CreatedAt time.Time `json:"created_at"`
}

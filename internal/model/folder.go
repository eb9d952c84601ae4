package model

import "time"

// Folder is a named, optionally password-locked container for todos.
// When Locked is true, the backend requires a password to list, add to,
// or delete from the folder. The password itself is write-only: it is
// sent on create/verify and never stored client-side afterwards.
type Folder struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Locked      bool      `json:"locked" db:"locked"`
	TodoCount   int       `json:"todo_count" db:"todo_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

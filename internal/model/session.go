package model

// Session is the authenticated user's token/email pair. It is persisted
// in the OS keyring and survives restarts; absence of a token means every
// protected view routes back to the auth view.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Valid reports whether the session can authorize backend calls.
func (s Session) Valid() bool {
	return s.Token != ""
}

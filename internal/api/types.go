package api

// LoginRequest is the payload for POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register/.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is returned by both login and registration.
type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// CreateFolderRequest is the payload for POST /auth/folders/. Password is
// only meaningful when Locked is true; it is sent once and never kept.
type CreateFolderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Locked      bool   `json:"locked"`
	Password    string `json:"password,omitempty"`
}

// CreateTodoRequest is the payload for POST /auth/todos/.
type CreateTodoRequest struct {
	FolderID    int64  `json:"folder_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// passwordBody carries an optional folder password for list/delete calls
// against locked folders.
type passwordBody struct {
	Password string `json:"password"`
}

// updateTodoBody carries the single mutable field of PUT /auth/todos/{id}/.
type updateTodoBody struct {
	Completed bool `json:"completed"`
}

// errorEnvelope matches the backend's error shape; the message arrives
// under either "message" or "error" depending on the endpoint.
type errorEnvelope struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// text returns whichever message field the backend populated.
func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err
}

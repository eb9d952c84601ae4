package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskmaster-tui/internal/model"
)

// TokenSource supplies the current session token. The session store
// implements it; the token is read per request so a logout or re-login
// between calls is always observed.
type TokenSource interface {
	Token() (string, error)
}

// Client is a thin HTTP client for the TaskMaster backend API. It handles
// Token authentication, JSON marshaling, and normalizes every failure
// into a typed *Error. It never mutates view state.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a backend client. The baseURL should be the root URL
// of the backend (e.g. https://taskmanager-backend.example.com).
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login/",
		body:   LoginRequest{Email: email, Password: password},
		fallbackMsg: "Login failed",
	}, &resp)
	return resp, err
}

// Register creates an account and returns a session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		op:     "register",
		method: http.MethodPost,
		path:   "/auth/register/",
		body:   req,
		fallbackMsg: "Registration failed",
	}, &resp)
	return resp, err
}

// ListFolders returns all folders owned by the authenticated user.
func (c *Client) ListFolders(ctx context.Context) ([]model.Folder, error) {
	var folders []model.Folder
	err := c.do(ctx, request{
		op:     "list folders",
		method: http.MethodGet,
		path:   "/auth/folders/",
		authed: true,
		fallbackMsg: "Failed to fetch folders",
	}, &folders)
	return folders, err
}

// CreateFolder creates a folder and returns the backend's view of it.
func (c *Client) CreateFolder(ctx context.Context, req CreateFolderRequest) (model.Folder, error) {
	var folder model.Folder
	err := c.do(ctx, request{
		op:     "create folder",
		method: http.MethodPost,
		path:   "/auth/folders/",
		body:   req,
		authed: true,
		fallbackMsg: "Failed to create folder",
	}, &folder)
	return folder, err
}

// VerifyFolderPassword checks a locked folder's password. A nil return
// means the password is correct; the password itself is not retained.
func (c *Client) VerifyFolderPassword(ctx context.Context, folderID int64, password string) error {
	return c.do(ctx, request{
		op:     "verify folder password",
		method: http.MethodPost,
		path:   fmt.Sprintf("/auth/folders/%d/verify/", folderID),
		body:   passwordBody{Password: password},
		authed: true,
		fallbackMsg: "Invalid password",
	}, nil)
}

// ListFolderTodos returns the todos in a folder. For locked folders the
// verified password must be supplied; pass "" for unlocked folders.
func (c *Client) ListFolderTodos(ctx context.Context, folderID int64, password string) ([]model.Todo, error) {
	req := request{
		op:     "list todos",
		method: http.MethodPost,
		path:   fmt.Sprintf("/auth/folders/%d/todos/", folderID),
		authed: true,
		fallbackMsg: "Failed to fetch folder contents",
	}
	if password != "" {
		req.body = passwordBody{Password: password}
	}
	var todos []model.Todo
	err := c.do(ctx, req, &todos)
	return todos, err
}

// CreateTodo creates a todo inside a folder.
func (c *Client) CreateTodo(ctx context.Context, req CreateTodoRequest) (model.Todo, error) {
	var todo model.Todo
	err := c.do(ctx, request{
		op:     "create todo",
		method: http.MethodPost,
		path:   "/auth/todos/",
		body:   req,
		authed: true,
		fallbackMsg: "Failed to create todo",
	}, &todo)
	return todo, err
}

// UpdateTodo sets a todo's completion state.
func (c *Client) UpdateTodo(ctx context.Context, todoID int64, completed bool) error {
	return c.do(ctx, request{
		op:     "update todo",
		method: http.MethodPut,
		path:   fmt.Sprintf("/auth/todos/%d/", todoID),
		body:   updateTodoBody{Completed: completed},
		authed: true,
		fallbackMsg: "Failed to update todo",
	}, nil)
}

// DeleteTodo removes a todo. For todos in locked folders the verified
// folder password must be supplied; pass "" otherwise.
func (c *Client) DeleteTodo(ctx context.Context, todoID int64, password string) error {
	req := request{
		op:     "delete todo",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/auth/todos/%d/", todoID),
		authed: true,
		fallbackMsg: "Failed to delete todo",
	}
	if password != "" {
		req.body = passwordBody{Password: password}
	}
	return c.do(ctx, req, nil)
}

// request describes a single backend call for do.
type request struct {
	op          string
	method      string
	path        string
	body        interface{}
	authed      bool
	fallbackMsg string
}

// do builds the request, attaches auth, executes it, and normalizes the
// outcome: 2xx unmarshals into result, anything else becomes an *Error
// whose Kind the workflows dispatch on.
func (c *Client) do(ctx context.Context, r request, result interface{}) error {
	url := c.baseURL + r.path

	var bodyReader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.authed {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("reading session token: %w", err)
		}
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{
			Kind:    KindNetwork,
			Message: "Network error. Please try again.",
			Op:      r.op,
		}
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope errorEnvelope
		_ = json.Unmarshal(respBody, &envelope)
		message := envelope.text()

		kind := classify(resp.StatusCode, message)
		if message == "" {
			message = r.fallbackMsg
		}
		return &Error{
			Kind:    kind,
			Status:  resp.StatusCode,
			Message: message,
			Op:      r.op,
		}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", r.method, r.path, err)
	}

	return nil
}

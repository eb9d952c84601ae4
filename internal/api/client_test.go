package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticToken is a TokenSource returning a fixed token.
type staticToken string

func (s staticToken) Token() (string, error) {
	return string(s), nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticToken("test-token"), 5*time.Second)
}

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("login must not send Authorization header, got=%q", auth)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding login body: %v", err)
		}
		if req.Email != "a@b.com" || req.Password != "hunter22" {
			t.Errorf("unexpected login payload %+v", req)
		}
		json.NewEncoder(w).Encode(AuthResponse{Token: "tok-1", Email: "a@b.com"})
	})

	resp, err := client.Login(context.Background(), "a@b.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "tok-1" || resp.Email != "a@b.com" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestListFolders_SendsTokenHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token test-token" {
			t.Errorf("Authorization header got=%q want=%q", got, "Token test-token")
		}
		w.Write([]byte(`[{"id":1,"name":"Work","locked":false,"todo_count":3}]`))
	})

	folders, err := client.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Work" || folders[0].TodoCount != 3 {
		t.Fatalf("unexpected folders %+v", folders)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "invalid token 401",
			status:   401,
			body:     `{"message":"Invalid token."}`,
			wantKind: KindInvalidToken,
			wantMsg:  "Invalid token.",
		},
		{
			name:     "locked folder 401",
			status:   401,
			body:     `{"message":"Folder password required"}`,
			wantKind: KindFolderLocked,
			wantMsg:  "Folder password required",
		},
		{
			name:     "ambiguous 401 treated as invalid token",
			status:   401,
			body:     `{"message":"Unauthorized"}`,
			wantKind: KindInvalidToken,
			wantMsg:  "Unauthorized",
		},
		{
			name:     "message under error key",
			status:   400,
			body:     `{"error":"Name already taken"}`,
			wantKind: KindValidation,
			wantMsg:  "Name already taken",
		},
		{
			name:     "not found",
			status:   404,
			body:     `{}`,
			wantKind: KindNotFound,
			wantMsg:  "Failed to fetch folders",
		},
		{
			name:     "server error",
			status:   500,
			body:     ``,
			wantKind: KindServer,
			wantMsg:  "Failed to fetch folders",
		},
		{
			name:     "4xx without message falls back",
			status:   400,
			body:     `{}`,
			wantKind: KindUnknown,
			wantMsg:  "Failed to fetch folders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.ListFolders(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := ErrorKind(err); got != tt.wantKind {
				t.Errorf("kind got=%v want=%v", got, tt.wantKind)
			}
			if got := Message(err, "none"); got != tt.wantMsg {
				t.Errorf("message got=%q want=%q", got, tt.wantMsg)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore

	client := NewClient(srv.URL, staticToken("t"), time.Second)
	_, err := client.ListFolders(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsNetwork(err) {
		t.Fatalf("kind got=%v want=KindNetwork", ErrorKind(err))
	}
	if got := Message(err, ""); got != "Network error. Please try again." {
		t.Fatalf("message got=%q", got)
	}
}

func TestListFolderTodos_PasswordBody(t *testing.T) {
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`[]`))
	})

	if _, err := client.ListFolderTodos(context.Background(), 7, "secret"); err != nil {
		t.Fatalf("ListFolderTodos: %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if body["password"] != "secret" {
		t.Fatalf("password not sent, body=%q", gotBody)
	}

	if _, err := client.ListFolderTodos(context.Background(), 7, ""); err != nil {
		t.Fatalf("ListFolderTodos without password: %v", err)
	}
	if len(gotBody) != 0 {
		t.Fatalf("expected empty body for unlocked folder, got=%q", gotBody)
	}
}

func TestVerifyFolderPassword_WrongPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/folders/9/verify/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"Incorrect folder password"}`))
	})

	err := client.VerifyFolderPassword(context.Background(), 9, "nope")
	if !IsFolderLocked(err) {
		t.Fatalf("kind got=%v want=KindFolderLocked", ErrorKind(err))
	}
}

func TestUpdateTodo_SendsCompleted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/todos/42/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]bool
		json.NewDecoder(r.Body).Decode(&body)
		if completed, ok := body["completed"]; !ok || !completed {
			t.Errorf("unexpected body %+v", body)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.UpdateTodo(context.Background(), 42, true); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
}

func TestDeleteTodo_NoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/auth/todos/5/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteTodo(context.Background(), 5, ""); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
}

package authform

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain", false},
		{"spaces in@mail.com", false},
	}

	for _, tt := range tests {
		err := validateEmail(tt.email)
		if tt.ok && err != nil {
			t.Errorf("validateEmail(%q) = %v, want ok", tt.email, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("validateEmail(%q) = nil, want error", tt.email)
		}
	}
}

func TestValidateRegisterPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"meets all rules", `Abcdef1!`, true},
		{"empty", "", false},
		{"too short", `Ab1!`, false},
		{"no uppercase", `abcdef1!`, false},
		{"no lowercase", `ABCDEF1!`, false},
		{"no digit", `Abcdefg!`, false},
		{"no special", `Abcdefg1`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRegisterPassword(tt.password)
			if tt.ok && err != nil {
				t.Fatalf("got %v, want ok", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("got nil, want error")
			}
		})
	}
}

func TestValidateLoginPassword(t *testing.T) {
	if err := validateLoginPassword("12345678"); err != nil {
		t.Fatalf("login accepts any 8+ char password, got %v", err)
	}
	if err := validateLoginPassword("short"); err == nil {
		t.Fatal("expected error for short password")
	}
	if err := validateLoginPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

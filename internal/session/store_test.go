package session

import (
	"testing"

	"github.com/99designs/keyring"
)

// fakeWiper counts Wipe calls.
type fakeWiper struct {
	wipes int
	err   error
}

func (f *fakeWiper) Wipe() error {
	f.wipes++
	return f.err
}

func newTestStore(t *testing.T) (*Store, *fakeWiper) {
	t.Helper()
	wiper := &fakeWiper{}
	return New(keyring.NewArrayKeyring(nil), wiper), wiper
}

func TestStore_SaveRead(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save("T1", "a@b.com"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sess, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if sess.Token != "T1" || sess.Email != "a@b.com" {
		t.Fatalf("session got=%+v", sess)
	}
	if !sess.Valid() {
		t.Fatal("saved session must be valid")
	}

	token, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "T1" {
		t.Fatalf("token got=%q want=%q", token, "T1")
	}
}

func TestStore_ReadEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	sess, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if sess.Valid() {
		t.Fatalf("empty store must yield an invalid session, got=%+v", sess)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Save("T1", "a@b.com"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("T2", "c@d.com"); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	sess, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if sess.Token != "T2" || sess.Email != "c@d.com" {
		t.Fatalf("session got=%+v", sess)
	}
}

func TestStore_ClearWipesCache(t *testing.T) {
	s, wiper := newTestStore(t)

	if err := s.Save("T1", "a@b.com"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if wiper.wipes != 1 {
		t.Fatalf("cache wipes got=%d want=1", wiper.wipes)
	}

	sess, err := s.Read()
	if err != nil {
		t.Fatalf("Read after Clear: %v", err)
	}
	if sess.Valid() {
		t.Fatalf("session survived Clear: %+v", sess)
	}
}

func TestStore_ClearIdempotent(t *testing.T) {
	s, wiper := newTestStore(t)

	// Clearing with nothing stored must not fail.
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if wiper.wipes != 2 {
		t.Fatalf("cache wipes got=%d want=2", wiper.wipes)
	}
}

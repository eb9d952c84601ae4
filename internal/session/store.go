package session

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"taskmaster-tui/internal/model"
)

const serviceName = "taskmaster"

// Keyring item keys.
const (
	keyToken = "token"
	keyEmail = "email"
)

// Wiper clears locally cached backend state. The cache package implements
// it so that logging out removes the cached folder blob together with the
// session.
type Wiper interface {
	Wipe() error
}

// Store persists the auth session in the OS keyring. Token validity is
// never tracked client-side; the backend's 401 responses are the only
// authority.
type Store struct {
	ring  keyring.Keyring
	cache Wiper
}

// Open returns a Store backed by the system keyring.
func Open(cache Wiper) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/taskmaster/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("taskmaster-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring, cache), nil
}

// New returns a Store over an already-opened keyring. Tests pass an
// in-memory keyring here.
func New(ring keyring.Keyring, cache Wiper) *Store {
	return &Store{ring: ring, cache: cache}
}

// Save persists the token/email pair, overwriting any prior session.
func (s *Store) Save(token, email string) error {
	err := s.ring.Set(keyring.Item{Key: keyToken, Data: []byte(token)})
	if err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}
	err = s.ring.Set(keyring.Item{Key: keyEmail, Data: []byte(email)})
	if err != nil {
		return fmt.Errorf("saving session email: %w", err)
	}
	return nil
}

// Read returns the current session. A session with an empty token means
// no user is logged in; callers check Session.Valid.
func (s *Store) Read() (model.Session, error) {
	token, err := s.get(keyToken)
	if err != nil {
		return model.Session{}, err
	}
	email, err := s.get(keyEmail)
	if err != nil {
		return model.Session{}, err
	}
	return model.Session{Token: token, Email: email}, nil
}

// Token returns the current token, read from the keyring at call time so
// that callers never act on a stale copy. Implements api.TokenSource.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

// Clear removes the session and all cached folder state. Clearing an
// already-absent session is a no-op, so repeated calls are safe.
func (s *Store) Clear() error {
	for _, key := range []string{keyToken, keyEmail} {
		err := s.ring.Remove(key)
		if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("clearing session %s: %w", key, err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Wipe(); err != nil {
			return fmt.Errorf("wiping cache: %w", err)
		}
	}
	return nil
}

// get reads one keyring item, mapping "not found" to an empty value.
func (s *Store) get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session %s: %w", key, err)
	}
	return string(item.Data), nil
}

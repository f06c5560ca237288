// Package session persists the user's nickname and checks the welcome prompt.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	sessionBucket = []byte("session")
	nicknameKey   = []byte("nickname")
)

// ErrInvalidWelcome is returned when the welcome prompt is not filled in correctly.
var ErrInvalidWelcome = errors.New("fill in name, password and nickname correctly")

// Store is a bbolt-backed key-value file holding session settings.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the session file at path.
// Only one process can hold the file; Open gives up after one second.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the session file.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Nickname returns the stored nickname, or "" when none was saved yet.
func (s *Store) Nickname() (string, error) {
	var nick string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get(nicknameKey); v != nil {
			nick = string(v)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("read nickname: %w", err)
	}
	return nick, nil
}

// SetNickname stores nick, replacing any previous value.
func (s *Store) SetNickname(nick string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(nicknameKey, []byte(nick))
	})
	if err != nil {
		return fmt.Errorf("write nickname: %w", err)
	}
	return nil
}

// NeedsPrompt reports whether the welcome prompt must be shown for nick.
func NeedsPrompt(nick string) bool {
	return strings.TrimSpace(nick) == ""
}

// Credentials are the name and password the welcome prompt accepts.
type Credentials struct {
	Name     string
	Password string
}

// Welcome is what the user typed into the welcome prompt.
type Welcome struct {
	Name     string
	Password string
	Nickname string
}

// Check validates a welcome entry: name and password must match exactly and
// the nickname must not be blank.
func (c Credentials) Check(w Welcome) error {
	if w.Name != c.Name || w.Password != c.Password || strings.TrimSpace(w.Nickname) == "" {
		return ErrInvalidWelcome
	}
	return nil
}

// Confirm checks w against creds and stores the nickname on success.
// It returns the stored nickname.
func (s *Store) Confirm(creds Credentials, w Welcome) (string, error) {
	if err := creds.Check(w); err != nil {
		return "", err
	}
	nick := strings.TrimSpace(w.Nickname)
	if err := s.SetNickname(nick); err != nil {
		return "", err
	}
	return nick, nil
}

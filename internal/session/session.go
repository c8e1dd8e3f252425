// Package session owns the single admin session slot with time-based expiry,
// plus the login attempt lockout around it.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"concert-registration/internal/models"
	"concert-registration/internal/storage"
)

// BlobKey is the backend key the session slot lives under.
const BlobKey = "admin_session"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLockedOut          = errors.New("too many failed attempts")
)

// Config carries the credential list and security parameters.
type Config struct {
	Admins          []models.Admin
	MaxAttempts     int
	LockoutTime     time.Duration
	SessionDuration time.Duration
}

type attemptState struct {
	count    int
	lastFail time.Time
}

type Store struct {
	mu       sync.Mutex
	backend  storage.Backend
	cfg      Config
	attempts map[string]*attemptState
	now      func() time.Time
}

func New(backend storage.Backend, cfg Config) *Store {
	return &Store{
		backend:  backend,
		cfg:      cfg,
		attempts: map[string]*attemptState{},
		now:      time.Now,
	}
}

// Login checks the credentials against the static list and, on success,
// replaces the session slot with a fresh session. Failed attempts count
// toward a per-email lockout window.
func (s *Store) Login(email, password string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if st, ok := s.attempts[email]; ok {
		if st.count >= s.cfg.MaxAttempts {
			if now.Sub(st.lastFail) < s.cfg.LockoutTime {
				return models.Session{}, ErrLockedOut
			}
			delete(s.attempts, email)
		}
	}

	var admin *models.Admin
	for i := range s.cfg.Admins {
		a := s.cfg.Admins[i]
		if a.Email == email && a.Password == password {
			admin = &a
			break
		}
	}
	if admin == nil {
		st := s.attempts[email]
		if st == nil {
			st = &attemptState{}
			s.attempts[email] = st
		}
		st.count++
		st.lastFail = now
		return models.Session{}, ErrInvalidCredentials
	}
	delete(s.attempts, email)

	sess := models.Session{
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      admin.Role,
		Token:     newToken(),
		LoginTime: now.UnixMilli(),
		ExpiresAt: now.Add(s.cfg.SessionDuration).UnixMilli(),
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return models.Session{}, err
	}
	if err := s.backend.Set(BlobKey, b); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Current returns the stored session if it has not expired. Reading an
// expired session clears the slot as a side effect.
func (s *Store) Current() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok, err := s.backend.Get(BlobKey)
	if err != nil || !ok {
		return models.Session{}, false
	}
	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		_ = s.backend.Delete(BlobKey)
		return models.Session{}, false
	}
	if s.now().UnixMilli() > sess.ExpiresAt {
		_ = s.backend.Delete(BlobKey)
		return models.Session{}, false
	}
	return sess, true
}

// Logout clears the slot unconditionally.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.backend.Delete(BlobKey)
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

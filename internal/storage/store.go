// Package storage is the browser-side key/value storage the auth screens
// share. Values are plain strings without expiry metadata; writes from two
// tabs race and the last one wins.
package storage

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionName is the name of the cookie session that backs the storage.
const SessionName = "kayotsaha-storage"

// Well-known storage keys.
const (
	KeyToken             = "token"
	KeyResetIdentifier   = "reset_identifier"
	KeyOTPResendAt       = "otp_resend_at"
	KeyForgotOTPResendAt = "forgot_resend_at"
)

// Store is a string key/value store. A missing key reads as "".
type Store interface {
	Get(key string) string
	Set(key, value string)
	Remove(key string)
}

// SessionStore keeps values in a gorilla session so they travel with the
// browser. Changes are persisted by Save.
type SessionStore struct {
	sess  *sessions.Session
	dirty bool
}

// FromContext loads the storage session for the current request. It needs the
// echo-contrib session middleware. A cookie that cannot be decoded, for
// example after a secret rotation, yields an empty storage.
func FromContext(c echo.Context) (*SessionStore, error) {
	sess, err := session.Get(SessionName, c)
	if sess == nil {
		return nil, fmt.Errorf("loading storage session: %w", err)
	}
	return &SessionStore{sess: sess, dirty: err != nil}, nil
}

func (s *SessionStore) Get(key string) string {
	if v, ok := s.sess.Values[key].(string); ok {
		return v
	}
	return ""
}

func (s *SessionStore) Set(key, value string) {
	s.sess.Values[key] = value
	s.dirty = true
}

func (s *SessionStore) Remove(key string) {
	if _, ok := s.sess.Values[key]; ok {
		delete(s.sess.Values, key)
		s.dirty = true
	}
}

// Save writes the session cookie when something changed.
func (s *SessionStore) Save(r *http.Request, w http.ResponseWriter) error {
	if !s.dirty {
		return nil
	}
	if err := s.sess.Save(r, w); err != nil {
		return fmt.Errorf("saving storage session: %w", err)
	}
	s.dirty = false
	return nil
}

// MemoryStore is an in-process Store, used by tests and tools.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// NewCookieStore builds the gorilla cookie store used by the session middleware.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

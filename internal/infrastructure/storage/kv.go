// Package storage provides client-side key-value stores for visitor state.
package storage

import (
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/AtRiskMedia/sitecraft-go/internal/domain/repositories"
)

// ErrValueTooLarge is returned when a value would not fit in a cookie.
var ErrValueTooLarge = errors.New("value too large for cookie storage")

const maxCookieValue = 3072

// MemoryStorage is an in-process KeyValueStorage.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ repositories.KeyValueStorage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// CookieStorage keeps values in first-party cookies of one request and
// response. Values written during the request are visible to later reads.
type CookieStorage struct {
	r      *http.Request
	w      http.ResponseWriter
	maxAge time.Duration
	secure bool
	mu     sync.Mutex
	set    map[string]string
}

var _ repositories.KeyValueStorage = (*CookieStorage)(nil)

// NewCookieStorage binds storage to a request/response pair.
func NewCookieStorage(w http.ResponseWriter, r *http.Request, maxAge time.Duration) *CookieStorage {
	return &CookieStorage{
		r:      r,
		w:      w,
		maxAge: maxAge,
		secure: r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		set:    make(map[string]string),
	}
}

func (c *CookieStorage) Get(key string) (string, bool) {
	c.mu.Lock()
	if v, ok := c.set[key]; ok {
		c.mu.Unlock()
		return v, true
	}
	c.mu.Unlock()

	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	v, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		// unreadable values are handed back raw so callers can reject them
		return cookie.Value, true
	}
	return v, true
}

func (c *CookieStorage) Set(key, value string) error {
	encoded := url.QueryEscape(value)
	if len(encoded) > maxCookieValue {
		return ErrValueTooLarge
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		Secure:   c.secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
	c.mu.Lock()
	c.set[key] = value
	c.mu.Unlock()
	return nil
}

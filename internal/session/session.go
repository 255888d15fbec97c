// Package session resolves the visitor's authentication state from a signed,
// encrypted cookie. The homepage only needs to know whether a session exists;
// account management lives elsewhere on the platform.
package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

func init() {
	gob.Register(uuid.UUID{})
	gob.Register(Data{})
}

// CookieName is the name of the session cookie.
const CookieName = "docshore_session"

// Data holds the user session information stored in the cookie.
type Data struct {
	UserID    uuid.UUID
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's expiry has passed.
func (d *Data) Expired() bool {
	return !d.ExpiresAt.IsZero() && time.Now().After(d.ExpiresAt)
}

// Store manages session cookies.
type Store struct {
	cookie *securecookie.SecureCookie
	maxAge int
	secure bool
}

// NewStore creates a session store. The secret must be at least 64 bytes:
// the first 32 become the hash key, the next 32 the encryption key.
func NewStore(secret string, maxAge time.Duration, secure bool) *Store {
	hashKey := []byte(secret)[:32]
	blockKey := []byte(secret)[32:64]

	return &Store{
		cookie: securecookie.New(hashKey, blockKey),
		maxAge: int(maxAge.Seconds()),
		secure: secure,
	}
}

// Get retrieves the session data from the request cookie. A missing,
// malformed, or expired cookie yields an error; callers treat any error as
// an anonymous visitor.
func (s *Store) Get(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	var data Data
	if err := s.cookie.Decode(CookieName, cookie.Value, &data); err != nil {
		return nil, err
	}
	if data.Expired() {
		return nil, http.ErrNoCookie
	}
	return &data, nil
}

// Set writes the session data to a response cookie.
func (s *Store) Set(w http.ResponseWriter, data *Data) error {
	encoded, err := s.cookie.Encode(CookieName, data)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

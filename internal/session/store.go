// Package session keeps the OAuth token bundle in a sealed browser cookie.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/oauth2"
)

const (
	keySize   = 32
	nonceSize = 24
	hkdfInfo  = "shortsgen session cookie v1"
)

var (
	// ErrNoSession indicates the request carries no usable token bundle.
	ErrNoSession = errors.New("no session")
	// ErrEmptyToken is returned when asked to persist a bundle that fails Usable.
	ErrEmptyToken = errors.New("token bundle has no access or refresh token")
)

// Usable reports whether token carries an access token or a refresh token. A refresh-only
// bundle still works because the oauth2 token source mints a new access token from it.
func Usable(token *oauth2.Token) bool {
	return token != nil && (token.AccessToken != "" || token.RefreshToken != "")
}

// Options configures a Store.
type Options struct {
	CookieName string
	// Secret derives the sealing key. An empty secret uses a random per-process key,
	// so sessions do not survive restarts.
	Secret string
	MaxAge time.Duration
	Secure bool
}

// Store persists a token bundle in a single HTTP-only cookie. The payload is sealed with
// NaCl secretbox so the browser only ever holds an opaque value.
type Store struct {
	name   string
	maxAge time.Duration
	secure bool
	key    [keySize]byte
	now    func() time.Time
}

// NewStore constructs a cookie-backed store.
func NewStore(opts Options) (*Store, error) {
	if opts.CookieName == "" {
		return nil, errors.New("session: cookie name must be provided")
	}
	if opts.MaxAge <= 0 {
		return nil, errors.New("session: max age must be positive")
	}

	s := &Store{
		name:   opts.CookieName,
		maxAge: opts.MaxAge,
		secure: opts.Secure,
		now:    time.Now,
	}

	if opts.Secret == "" {
		if _, err := rand.Read(s.key[:]); err != nil {
			return nil, fmt.Errorf("session: generate key: %w", err)
		}
		return s, nil
	}

	kdf := hkdf.New(sha256.New, []byte(opts.Secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, s.key[:]); err != nil {
		return nil, fmt.Errorf("session: derive key: %w", err)
	}
	return s, nil
}

// Save replaces the stored bundle with the provided token.
func (s *Store) Save(w http.ResponseWriter, token *oauth2.Token) error {
	if !Usable(token) {
		return ErrEmptyToken
	}

	plain, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("session: encode token: %w", err)
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("session: generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], plain, &nonce, &s.key)

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    base64.RawURLEncoding.EncodeToString(sealed),
		Path:     "/",
		MaxAge:   int(s.maxAge / time.Second),
		Expires:  s.now().Add(s.maxAge),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the token bundle carried by the request. Any cookie that is missing,
// empty or fails to open yields ErrNoSession.
func (s *Store) Load(r *http.Request) (*oauth2.Token, error) {
	cookie, err := r.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return s.Decode(cookie.Value)
}

// Decode opens a raw cookie value.
func (s *Store) Decode(value string) (*oauth2.Token, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrNoSession
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrNoSession
	}

	var token oauth2.Token
	if err := json.Unmarshal(plain, &token); err != nil {
		return nil, ErrNoSession
	}
	if !Usable(&token) {
		return nil, ErrNoSession
	}
	return &token, nil
}

// Present reports whether the request carries a non-empty token bundle.
func (s *Store) Present(r *http.Request) bool {
	_, err := s.Load(r)
	return err == nil
}

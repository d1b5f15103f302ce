// Package flash carries one-shot user messages across a redirect in a signed
// cookie.
package flash

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the name of the flash cookie.
const CookieName = "flash"

// Lifetime is how long a flashed message survives without being shown.
const Lifetime = 10 * time.Minute

// Message categories used by the templates.
const (
	Success = "success"
	Warning = "warning"
	Danger  = "danger"
)

// Message is a single flashed message.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

type claims struct {
	Messages []Message `json:"messages"`
	jwt.RegisteredClaims
}

// Signer reads and writes flash cookies.
type Signer struct {
	key []byte
}

// NewSigner derives the cookie signing key from the application secret.
func NewSigner(secret string) (*Signer, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte("lostfound flash cookie")), key); err != nil {
		return nil, fmt.Errorf("deriving flash key: %w", err)
	}
	return &Signer{key: key}, nil
}

// Add appends a message to those already pending on r and writes the cookie.
// Messages added earlier in the same request are not seen.
func (s *Signer) Add(w http.ResponseWriter, r *http.Request, category, text string) {
	msgs := append(s.read(r), Message{Category: category, Text: text})

	token, err := s.sign(msgs, time.Now().Add(Lifetime))
	if err != nil {
		slog.Error("failed to sign flash cookie", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Lifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending messages and clears the cookie. Invalid or expired
// cookies yield no messages.
func (s *Signer) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(CookieName); err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.read(r)
}

func (s *Signer) read(r *http.Request) []Message {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	c, err := s.parse(cookie.Value)
	if err != nil {
		slog.Warn("discarding flash cookie", "error", err)
		return nil
	}
	return c.Messages
}

func (s *Signer) sign(msgs []Message, expires time.Time) (string, error) {
	c := claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing flash: %w", err)
	}
	return signed, nil
}

func (s *Signer) parse(tokenStr string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing flash: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid flash")
	}
	return c, nil
}

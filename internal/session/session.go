// Package session is the admin gate. It is deliberately cosmetic: one
// configured operator email, a password check at login, and a session
// record persisted under a well-known key. Every protected request
// re-reads that record and requires the authorized flag and the email
// to match; the cookie token only names the session and grants nothing
// by itself. This is not real access control and is not presented as
// such.
package session

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/middleclass/localstore/internal/storage"
)

const storageKey = "adminSession"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrUnauthorizedEmail = errors.New("email is not authorized for admin access")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Record mirrors what the login flow stores per session.
type Record struct {
	Email      string    `json:"email"`
	LoginTime  time.Time `json:"loginTime"`
	RememberMe bool      `json:"rememberMe"`
	Authorized bool      `json:"authorized"`
}

type Gate struct {
	KV              storage.Store
	JWTSecret       []byte
	AuthorizedEmail string

	passwordHash []byte
}

func NewGate(kv storage.Store, jwtSecret []byte, email, password string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Gate{
		KV:              kv,
		JWTSecret:       jwtSecret,
		AuthorizedEmail: email,
		passwordHash:    hash,
	}, nil
}

// Login validates the email format first, then distinguishes an
// unauthorized email from a wrong password, and persists the session
// record on success. No partial state is written on any failure.
func (g *Gate) Login(ctx context.Context, email, password string, remember bool) (Record, error) {
	if !emailPattern.MatchString(email) {
		return Record{}, ErrInvalidEmail
	}
	if email != g.AuthorizedEmail {
		return Record{}, ErrUnauthorizedEmail
	}
	if bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) != nil {
		return Record{}, ErrInvalidPassword
	}

	rec := Record{
		Email:      email,
		LoginTime:  time.Now().UTC(),
		RememberMe: remember,
		Authorized: true,
	}
	if err := storage.PutJSON(ctx, g.KV, storageKey, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (g *Gate) Logout(ctx context.Context) {
	_ = g.KV.Del(ctx, storageKey)
}

// Check re-reads the stored record. Anything short of an email match
// plus authorized=true is unauthenticated: missing key, parse failure,
// a different email, a false or absent flag.
func (g *Gate) Check(ctx context.Context) bool {
	var rec Record
	if err := storage.GetJSON(ctx, g.KV, storageKey, &rec); err != nil {
		return false
	}
	return rec.Email == g.AuthorizedEmail && rec.Authorized
}

// Token signs a cookie value naming the session's email. Remember-me
// sessions live a week, others a day.
func (g *Gate) Token(email string, remember bool) (string, error) {
	ttl := 24 * time.Hour
	if remember {
		ttl = 7 * 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.JWTSecret)
}

// VerifyToken returns the email the cookie names. Callers still have
// to pass Check; an intact token over a missing record is nothing.
func (g *Gate) VerifyToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.JWTSecret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	email, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid subject claim")
	}
	return email, nil
}

// Package auth authenticates the shop's fixed set of operators and checks
// their role against the per-module permission table.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
)

const issuer = "tpv"

type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
}

type account struct {
	user User
	hash []byte
}

// Passwords holds the plain-text passwords of the three built-in accounts.
type Passwords struct {
	Admin  string
	Seller string
	User   string
}

type Claims struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	accounts map[string]account
	secret   []byte
	ttl      time.Duration
	cost     int
	now      func() time.Time
}

type Option func(*Service)

// WithCost sets the bcrypt cost used to hash the configured passwords.
func WithCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService hashes the passwords once; plain text is not retained.
func NewService(secret string, ttl time.Duration, pw Passwords, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	s := &Service{
		accounts: make(map[string]account, 3),
		secret:   []byte(secret),
		ttl:      ttl,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	builtin := []struct {
		username string
		password string
		user     User
	}{
		{"administrador", pw.Admin, User{Username: "administrador", DisplayName: "Administrador", Role: RoleAdmin}},
		{"vendedor", pw.Seller, User{Username: "vendedor", DisplayName: "Vendedor", Role: RoleSeller}},
		{"usuario", pw.User, User{Username: "usuario", DisplayName: "Usuario", Role: RoleUser}},
	}

	for _, b := range builtin {
		if b.password == "" {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(b.password), s.cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", b.username, err)
		}

		s.accounts[b.username] = account{user: b.user, hash: hash}
	}

	return s, nil
}

// Authenticate checks a username (case-insensitive) and password.
func (s *Service) Authenticate(username, password string) (User, error) {
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return acc.user, nil
}

// Login authenticates and issues a signed HS256 token.
func (s *Service) Login(username, password string) (Session, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("signing token: %w", err)
	}

	return Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Verify parses a token issued by Login.
func (s *Service) Verify(token string) (User, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return User{}, ErrInvalidToken
	}

	return User{Username: claims.Username, DisplayName: claims.DisplayName, Role: claims.Role}, nil
}

// Authorize returns ErrForbidden unless user has at least need in module.
func Authorize(user User, module Module, need Access) error {
	if Permission(user.Role, module) < need {
		return fmt.Errorf("%w: %s needs %s access to %s", ErrForbidden, user.Username, need, module)
	}

	return nil
}

type ctxKey struct{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func UserFrom(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}

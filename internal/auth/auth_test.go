package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testPasswords = Passwords{Admin: "Enzema2025", Seller: "Vendedor2025", User: "Usuario2025"}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	svc, err := NewService("secret", time.Hour, testPasswords, append([]Option{WithCost(bcrypt.MinCost)}, opts...)...)
	require.NoError(t, err)

	return svc
}

func TestPermission(t *testing.T) {
	tests := []struct {
		role   Role
		module Module
		want   Access
	}{
		{RoleAdmin, ModuleSettings, AccessWrite},
		{RoleAdmin, ModuleStock, AccessWrite},
		{RoleSeller, ModuleSales, AccessWrite},
		{RoleSeller, ModuleProducts, AccessRead},
		{RoleSeller, ModuleSettings, AccessNone},
		{RoleUser, ModuleSales, AccessRead},
		{RoleUser, ModuleSettings, AccessNone},
		{Role("guest"), ModuleSales, AccessNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.module), func(t *testing.T) {
			assert.Equal(t, tt.want, Permission(tt.role, tt.module))
			assert.Equal(t, tt.want == AccessWrite, CanWrite(tt.role, tt.module))
			assert.Equal(t, tt.want >= AccessRead, CanRead(tt.role, tt.module))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantRole Role
		wantErr  error
	}{
		{name: "admin", username: "administrador", password: "Enzema2025", wantRole: RoleAdmin},
		{name: "username is case-insensitive", username: "VENDEDOR", password: "Vendedor2025", wantRole: RoleSeller},
		{name: "user", username: " usuario ", password: "Usuario2025", wantRole: RoleUser},
		{name: "wrong password", username: "administrador", password: "enzema2025", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "root", password: "Enzema2025", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, u.Role)
		})
	}
}

func TestNewService_SkipsEmptyPasswords(t *testing.T) {
	svc, err := NewService("secret", time.Hour, Passwords{Admin: "x"}, WithCost(bcrypt.MinCost))
	require.NoError(t, err)

	_, err = svc.Authenticate("vendedor", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = NewService("", time.Hour, testPasswords)
	assert.Error(t, err)
}

func TestLoginVerify(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := now

	svc := newTestService(t, WithClock(func() time.Time { return clock }))

	session, err := svc.Login("vendedor", "Vendedor2025")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)

	u, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, User{Username: "vendedor", DisplayName: "Vendedor", Role: RoleSeller}, u)

	clock = now.Add(2 * time.Hour)

	_, err = svc.Verify(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_Rejects(t *testing.T) {
	svc := newTestService(t)

	other, err := NewService("another-secret", time.Hour, testPasswords, WithCost(bcrypt.MinCost))
	require.NoError(t, err)

	foreign, err := other.Login("administrador", "Enzema2025")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": foreign.Token,
		"alg none":     none,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAuthorize(t *testing.T) {
	seller := User{Username: "vendedor", Role: RoleSeller}

	assert.NoError(t, Authorize(seller, ModuleSales, AccessWrite))
	assert.NoError(t, Authorize(seller, ModuleStock, AccessRead))
	assert.ErrorIs(t, Authorize(seller, ModuleStock, AccessWrite), ErrForbidden)
	assert.ErrorIs(t, Authorize(seller, ModuleSettings, AccessRead), ErrForbidden)
}

func TestUserContext(t *testing.T) {
	_, ok := UserFrom(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), User{Username: "usuario", Role: RoleUser})
	u, ok := UserFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, RoleUser, u.Role)
}

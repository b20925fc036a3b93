package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/cryptox"
	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestCreateUser_Success(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.users.CreateUser(ctx, "  alice@example.com ", []byte("secret-pw"), " Alice ")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, env.clock.Now(), p.CreatedAt)

	stored, err := env.repos.Users().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pw", stored.PasswordHash)
	assert.True(t, cryptox.VerifyPassword([]byte("secret-pw"), stored.PasswordHash))
}

func TestCreateUser_DuplicateEmailLeavesFirstUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.users.CreateUser(ctx, "a@example.com", []byte("secret-pw"), "First")
	require.NoError(t, err)

	_, err = env.users.CreateUser(ctx, "a@example.com", []byte("other-pw"), "Second")
	assert.ErrorIs(t, err, common.ErrorDuplicateKey)

	got, err := env.users.FindUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	// Email comparison is case-sensitive.
	_, err = env.users.CreateUser(ctx, "A@example.com", []byte("secret-pw"), "Third")
	assert.NoError(t, err)
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		user     string
	}{
		{"empty email", "", "secret-pw", "A"},
		{"bad email", "not-an-email", "secret-pw", "A"},
		{"empty name", "a@example.com", "secret-pw", "   "},
		{"short password", "a@example.com", "123", "A"},
		{"long password", "a@example.com", strings.Repeat("x", 73), "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.users.CreateUser(context.Background(), tt.email, []byte(tt.password), tt.user)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestGetUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = env.users.FindUserByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateProfile_MergesSuppliedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.login(t, "a@example.com")

	got, err := env.users.UpdateProfile(ctx, p, models.UserPatch{AvatarURL: ptr("https://img.example.com/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "User a@example.com", got.Name)
	assert.Equal(t, "https://img.example.com/a.png", got.AvatarURL)

	got, err = env.users.UpdateProfile(ctx, p, models.UserPatch{Name: ptr(" Ann ")})
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, "https://img.example.com/a.png", got.AvatarURL)

	got, err = env.users.UpdateProfile(ctx, p, models.UserPatch{AvatarURL: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)
	assert.Empty(t, got.AvatarURL)

	unchanged, err := env.users.UpdateProfile(ctx, p, models.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, got, unchanged)
}

func TestUpdateProfile_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.login(t, "a@example.com")

	_, err := env.users.UpdateProfile(ctx, p, models.UserPatch{Name: ptr("  ")})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = env.users.UpdateProfile(ctx, p, models.UserPatch{AvatarURL: ptr("not a url")})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = env.users.UpdateProfile(ctx, nil, models.UserPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, common.ErrorNotAuthenticated)

	env.clock.Advance(2 * env.auth.sessionTTL)
	_, err = env.users.UpdateProfile(ctx, p, models.UserPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, common.ErrorNotAuthenticated)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.login(t, "a@example.com")

	err := env.users.ChangePassword(ctx, p, []byte("wrong"), []byte("new-secret"))
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)

	err = env.users.ChangePassword(ctx, p, []byte("secret-pw"), []byte("1"))
	assert.ErrorIs(t, err, common.ErrorValidation)

	require.NoError(t, env.users.ChangePassword(ctx, p, []byte("secret-pw"), []byte("new-secret")))

	_, err = env.auth.Login(ctx, "a@example.com", []byte("secret-pw"))
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
	_, err = env.auth.Login(ctx, "a@example.com", []byte("new-secret"))
	assert.NoError(t, err)
}

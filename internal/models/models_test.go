package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestUserPatch_Apply_MergesFieldByField(t *testing.T) {
	base := User{ID: "u1", Email: "a@b.c", PasswordHash: "h", Name: "Ann", AvatarURL: "http://a/1.png"}

	tests := []struct {
		name  string
		patch UserPatch
		want  User
	}{
		{name: "empty", patch: UserPatch{}, want: base},
		{
			name:  "name only",
			patch: UserPatch{Name: ptr("Anna")},
			want:  User{ID: "u1", Email: "a@b.c", PasswordHash: "h", Name: "Anna", AvatarURL: "http://a/1.png"},
		},
		{
			name:  "clear avatar",
			patch: UserPatch{AvatarURL: ptr("")},
			want:  User{ID: "u1", Email: "a@b.c", PasswordHash: "h", Name: "Ann"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base
			tt.patch.Apply(&u)
			assert.Equal(t, tt.want, u)
			assert.Equal(t, tt.patch.Name == nil && tt.patch.AvatarURL == nil, tt.patch.Empty())
		})
	}
}

func TestUser_Profile_StripsHash(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	u := &User{ID: "u1", Email: "a@b.c", PasswordHash: "secret", Name: "Ann", CreatedAt: created}

	p := u.Profile()
	require.NotNil(t, p)
	assert.Equal(t, &Profile{ID: "u1", Email: "a@b.c", Name: "Ann", CreatedAt: created}, p)
}

func TestDocumentPath(t *testing.T) {
	assert.Equal(t, "/documents/u1/report.txt", DocumentPath("u1", "report.txt"))
}

func TestSession_IsValid(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}

	assert.True(t, s.IsValid(now))
	assert.False(t, s.IsValid(now.Add(time.Minute)))
	assert.False(t, s.IsValid(now.Add(time.Hour)))
}

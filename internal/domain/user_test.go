package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "alice",
			email:    "a@x.com",
			password: "correct-horse-battery",
			wantErr:  nil,
		},
		{
			name:     "empty username",
			username: "",
			email:    "a@x.com",
			password: "correct-horse-battery",
			wantErr:  ErrEmptyUsername,
		},
		{
			name:     "empty email",
			username: "alice",
			email:    "",
			password: "correct-horse-battery",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			username: "alice",
			email:    "not-an-email",
			password: "correct-horse-battery",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			username: "alice",
			email:    "a@localhost",
			password: "correct-horse-battery",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password over bcrypt limit",
			username: "alice",
			email:    "a@x.com",
			password: strings.Repeat("p", 73),
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "empty password",
			username: "alice",
			email:    "a@x.com",
			password: "",
			wantErr:  ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := NewUser(tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.email, user.Email)
			assert.False(t, user.CreatedAt.IsZero())
			assert.False(t, user.UpdatedAt.IsZero())
		})
	}
}

func TestUserValidate_StoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from storage has no plaintext password, only a hash.
	user := &User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "a@x.com",
		HashedPassword: "$2a$10$somethinghashed",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

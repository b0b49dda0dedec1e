package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()
	validEmail := "test@example.com"
	validPassword := "correct-horse-battery"

	user, err := NewUser(validEmail, validPassword)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Password != validPassword {
		t.Errorf("Expected plaintext password to be kept until hashing")
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	if _, err = NewUser("", validPassword); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	if _, err = NewUser("invalidemail", validPassword); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	if _, err = NewUser(validEmail, ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()
	base := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}

	tests := []struct {
		name   string
		mutate func(u *User)
		want   error
	}{
		{"valid with hash", func(u *User) {}, nil},
		{"missing id", func(u *User) { u.ID = uuid.Nil }, ErrEmptyUserID},
		{"missing email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"no at sign", func(u *User) { u.Email = "test.example.com" }, ErrInvalidEmail},
		{"no domain dot", func(u *User) { u.Email = "test@example" }, ErrInvalidEmail},
		{"display name", func(u *User) { u.Email = "Test <test@example.com>" }, ErrInvalidEmail},
		{"no password or hash", func(u *User) { u.HashedPassword = "" }, ErrEmptyPassword},
		{"short password", func(u *User) { u.Password = "short" }, ErrPasswordTooShort},
		{"long password", func(u *User) { u.Password = strings.Repeat("a", 73) }, ErrPasswordTooLong},
		{"boundary password", func(u *User) { u.Password = strings.Repeat("a", 12) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base
			tt.mutate(&u)
			if err := u.Validate(); err != tt.want {
				t.Errorf("Expected error %v, got %v", tt.want, err)
			}
		})
	}
}

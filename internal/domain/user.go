package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Password length bounds. 72 bytes is the most bcrypt will hash.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

// Validation errors for User. Each wraps ErrValidation.
var (
	ErrEmptyUserID      = invalid("user ID cannot be empty")
	ErrInvalidEmail     = invalid("invalid email format")
	ErrEmptyEmail       = invalid("email cannot be empty")
	ErrPasswordTooShort = invalid("password must be at least 12 characters long")
	ErrPasswordTooLong  = invalid("password must be at most 72 characters long")
	ErrEmptyPassword    = invalid("password cannot be empty")
)

// User represents a registered Taskal account. Tasks and projects are always
// scoped to the user that owns them.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set while registering
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and plaintext password.
// The caller hashes the password before the user is stored.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// A user without a plaintext password must already carry a hash.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password == "" {
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
		return nil
	}

	switch n := len(u.Password); {
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	}

	return nil
}

// validEmail accepts a bare address (no display name) whose domain contains a dot.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	domainPart := email[at+1:]
	dot := strings.Index(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}

package services

import (
	"context"
	"errors"
	"unicode"

	"github.com/kirankamble1523/Task-Manager-App/internal/store"
	"github.com/kirankamble1523/Task-Manager-App/types"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account. The password must satisfy the
// complexity policy, and username and email must be untaken (username is
// checked first). The stored credential is a bcrypt hash.
func (s *UserService) Register(ctx context.Context, username, email, password string) (types.User, error) {
	if !isPasswordComplex(password) {
		return types.User{}, ErrWeakPassword
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return types.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		// Two registrations can race past the pre-checks; the database
		// unique constraints are the backstop.
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			return types.User{}, ErrUsernameTaken
		case errors.Is(err, store.ErrDuplicateEmail):
			return types.User{}, ErrEmailTaken
		}
		return types.User{}, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords collapse into the same ErrInvalidCredentials so the
// caller learns nothing about which check failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// isPasswordComplex reports whether a password is at least 8 characters
// long and contains a lowercase letter, an uppercase letter, and a digit.
func isPasswordComplex(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

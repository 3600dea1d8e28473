package user

import (
	"context"
	"regexp"
	"time"

	"bramble/internal/credential"
	"bramble/internal/models"
	"bramble/internal/store"
)

var (
	usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	emailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const minPasswordLen = 6

// Service manages accounts on top of the cache-backed users collection.
type Service struct {
	users  *store.Collection[models.User]
	hasher *credential.Hasher
}

// NewService creates a new user service.
func NewService(users *store.Collection[models.User], hasher *credential.Hasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Create validates and registers a new account. Validation failures come
// back as *ValidationError, first failing check wins. A taken username is
// reported on the username field before the password policy runs.
func (s *Service) Create(ctx context.Context, username, email, password, verify string) (models.User, error) {
	if !usernameRE.MatchString(username) {
		return models.User{}, &ValidationError{Field: "username", Message: "usernames are 3-20 letters, digits, '_' or '-'"}
	}
	if !emailRE.MatchString(email) {
		return models.User{}, &ValidationError{Field: "email", Message: "that is not a valid email address"}
	}

	existing, err := s.users.All(ctx)
	if err != nil {
		return models.User{}, err
	}
	if _, taken := existing[username]; taken {
		return models.User{}, &ValidationError{Field: "username", Message: "that user already exists"}
	}
	for _, u := range existing {
		if u.Email == email {
			return models.User{}, &ValidationError{Field: "email", Message: "that email address is already registered"}
		}
	}

	if len(password) < minPasswordLen {
		return models.User{}, &ValidationError{Field: "password", Message: "passwords need at least 6 characters"}
	}
	if password != verify {
		return models.User{}, &ValidationError{Field: "verify", Message: "the passwords do not match"}
	}

	hash, err := s.hasher.Hash(username, password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Created:      time.Now().UTC(),
	}
	if err := s.users.Put(ctx, username, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Authenticate checks username and password against the stored accounts and
// returns the authenticated identity. The users collection is small enough
// that a linear scan is fine.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return "", err
	}

	for _, u := range users {
		if u.Username != username {
			continue
		}
		if s.hasher.Verify(username, password, u.PasswordHash) {
			return u.Username, nil
		}
		break
	}
	return "", ErrIncorrectLogin
}

// Get returns the account for username.
func (s *Service) Get(ctx context.Context, username string) (models.User, error) {
	return s.users.Get(ctx, username)
}

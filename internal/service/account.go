package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jask/notewise/internal/database/repository"
)

var (
	ErrMissingField = errors.New("account: required field missing")
	ErrInvalidEmail = errors.New("account: invalid email address")
)

// AccountService validates the login and signup forms and remembers who is
// signed in. No credentials are checked or stored.
type AccountService struct {
	Profiles *repository.ProfileRepo
}

func (s *AccountService) Login(ctx context.Context, email, password string) (repository.Profile, error) {
	return s.save(ctx, "", email, password, false)
}

// Signup behaves like Login plus a required name. An existing profile for the
// same email is overwritten.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (repository.Profile, error) {
	return s.save(ctx, name, email, password, true)
}

func (s *AccountService) Profile(ctx context.Context) (repository.Profile, error) {
	return s.Profiles.Get(ctx)
}

func (s *AccountService) save(ctx context.Context, name, email, password string, needName bool) (repository.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case needName && name == "":
		return repository.Profile{}, fmt.Errorf("name: %w", ErrMissingField)
	case email == "":
		return repository.Profile{}, fmt.Errorf("email: %w", ErrMissingField)
	case password == "":
		return repository.Profile{}, fmt.Errorf("password: %w", ErrMissingField)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return repository.Profile{}, fmt.Errorf("%s: %w", email, ErrInvalidEmail)
	}
	if err := s.Profiles.Save(ctx, repository.Profile{Name: name, Email: email}); err != nil {
		return repository.Profile{}, err
	}
	return s.Profiles.Get(ctx)
}

// Package auth is the local stand-in for account sign-up and sign-in. There
// are no sessions or tokens; it only validates credentials and keeps a
// bcrypt hash on the profile.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/flownote/internal/logger"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ErrInvalidCredentials is returned by SignIn for a wrong email or password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// SignUpRequest is the sign-up form.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirmPassword"`
}

// Gateway is the account backend.
type Gateway interface {
	SignUp(ctx context.Context, req SignUpRequest) (model.Profile, error)
	SignIn(ctx context.Context, email, password string) (model.Profile, error)
}

// Profiles is the part of the store Local writes to.
type Profiles interface {
	Profile() model.Profile
	UpdateProfile(ctx context.Context, patch store.ProfilePatch) (model.Profile, error)
	SetPasswordHash(ctx context.Context, hash string) error
}

// Local keeps the single account in the profile.
type Local struct {
	profiles Profiles
	cost     int
}

// NewLocal returns a Local gateway. A cost of 0 uses bcrypt.DefaultCost.
func NewLocal(p Profiles, cost int) *Local {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Local{profiles: p, cost: cost}
}

// CheckPassword enforces the password rules.
func CheckPassword(password, confirm string) error {
	if password != confirm {
		return model.ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: use at least %d characters", model.ErrWeakPassword, MinPasswordLength)
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return fmt.Errorf("%w: use letters and digits", model.ErrWeakPassword)
	}
	return nil
}

func (l *Local) SignUp(ctx context.Context, req SignUpRequest) (model.Profile, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return model.Profile{}, fmt.Errorf("%w: name is required", model.ErrInvalid)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Profile{}, fmt.Errorf("%w: invalid email %q", model.ErrInvalid, email)
	}
	if err := CheckPassword(req.Password, req.Confirm); err != nil {
		return model.Profile{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), l.cost)
	if err != nil {
		return model.Profile{}, fmt.Errorf("hash password: %w", err)
	}
	if _, err := l.profiles.UpdateProfile(ctx, store.ProfilePatch{Name: &name, Email: &email}); err != nil {
		return model.Profile{}, err
	}
	if err := l.profiles.SetPasswordHash(ctx, string(hash)); err != nil {
		return model.Profile{}, err
	}
	logger.Info("Account created", logger.F("email", email))
	return l.profiles.Profile(), nil
}

func (l *Local) SignIn(_ context.Context, email, password string) (model.Profile, error) {
	p := l.profiles.Profile()
	if p.PasswordHash == "" || !strings.EqualFold(strings.TrimSpace(email), p.Email) {
		return model.Profile{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return model.Profile{}, ErrInvalidCredentials
	}
	return p, nil
}

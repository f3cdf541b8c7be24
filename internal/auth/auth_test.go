package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/flownote/internal/kv"
	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

var ctx = context.Background()

func newTestGateway(t *testing.T) (*Local, *store.Store) {
	t.Helper()
	s, err := store.New(ctx, kv.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	return NewLocal(s, bcrypt.MinCost), s
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		password, confirm string
		want              error
	}{
		{"secret123", "secret124", model.ErrPasswordMismatch},
		{"abc12", "abc12", model.ErrWeakPassword},
		{"abcdefghij", "abcdefghij", model.ErrWeakPassword},
		{"1234567890", "1234567890", model.ErrWeakPassword},
		{"secret123", "secret123", nil},
	}
	for _, tt := range tests {
		if err := CheckPassword(tt.password, tt.confirm); !errors.Is(err, tt.want) {
			t.Errorf("CheckPassword(%q, %q) = %v, want %v", tt.password, tt.confirm, err, tt.want)
		}
	}
}

func TestSignUpAndSignIn(t *testing.T) {
	g, s := newTestGateway(t)
	p, err := g.SignUp(ctx, SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123", Confirm: "secret123"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Ada" || p.PasswordHash == "" || p.PasswordHash == "secret123" {
		t.Fatalf("profile = %+v", p)
	}
	if s.Profile().Email != "ada@example.com" {
		t.Fatal("profile not stored")
	}

	if _, err := g.SignIn(ctx, "ADA@example.com", "secret123"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if _, err := g.SignIn(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
}

func TestSignUpRejectsWithoutChange(t *testing.T) {
	g, s := newTestGateway(t)
	before := s.Profile()
	_, err := g.SignUp(ctx, SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "short1", Confirm: "short1"})
	if !errors.Is(err, model.ErrWeakPassword) {
		t.Fatalf("err = %v", err)
	}
	if s.Profile() != before {
		t.Fatal("rejected sign-up changed the profile")
	}
	if _, err := g.SignUp(ctx, SignUpRequest{Name: "Ada", Email: "nope", Password: "secret123", Confirm: "secret123"}); !errors.Is(err, model.ErrInvalid) {
		t.Fatalf("bad email err = %v", err)
	}
}

func TestSignInWithoutAccount(t *testing.T) {
	g, _ := newTestGateway(t)
	if _, err := g.SignIn(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v", err)
	}
}

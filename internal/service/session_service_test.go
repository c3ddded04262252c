package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"
)

func TestSignUpCreatesCustomerSession(t *testing.T) {
	f := newServiceFixture(t, "session_sign_up")
	ctx := context.Background()

	result, err := f.session.SignUp(ctx, "  New.User@Example.com ", "secret123")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if result.User.Email != "new.user@example.com" {
		t.Fatalf("email should be normalized, got %s", result.User.Email)
	}
	if result.Identity.Role != constants.RoleCustomer || result.Identity.Landing() != constants.LandingCustomer {
		t.Fatalf("unexpected identity: %+v", result.Identity)
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}

	identity, err := f.session.ResolveToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("resolve token failed: %v", err)
	}
	if identity.UserID != result.User.ID || identity.Role != constants.RoleCustomer {
		t.Fatalf("unexpected resolved identity: %+v", identity)
	}

	if _, err := f.session.SignUp(ctx, "new.user@example.com", "secret123"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	f := newServiceFixture(t, "session_short_password")
	_, err := f.session.SignUp(context.Background(), "short@example.com", "12345")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var perr interface{ Key() string }
	if !errors.As(err, &perr) || perr.Key() != "error.password_min_length" {
		t.Fatalf("expected password_min_length key, got %v", err)
	}
	if _, err := f.session.SignUp(context.Background(), "not-an-email", "secret123"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestSignInAndSignOut(t *testing.T) {
	f := newServiceFixture(t, "session_sign_in")
	ctx := context.Background()
	dispatcher := f.createAccount(t, "rider@example.com", constants.RoleDispatcher, "380001", "380002")

	if _, err := f.session.SignIn(ctx, "rider@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.session.SignIn(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	result, err := f.session.SignIn(ctx, "RIDER@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if result.Identity.Landing() != constants.LandingDispatcher {
		t.Fatalf("unexpected landing: %s", result.Identity.Landing())
	}
	if len(result.Identity.Pincodes) != 2 {
		t.Fatalf("dispatcher identity should carry pincodes, got %v", result.Identity.Pincodes)
	}

	if err := f.session.SignOut(ctx, dispatcher.UserID); err != nil {
		t.Fatalf("sign out failed: %v", err)
	}
	if _, err := f.session.ResolveToken(ctx, result.Token); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after sign out, got %v", err)
	}

	again, err := f.session.SignIn(ctx, "rider@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in after sign out failed: %v", err)
	}
	if _, err := f.session.ResolveToken(ctx, again.Token); err != nil {
		t.Fatalf("fresh token should resolve, got %v", err)
	}
}

func TestSignInRejectsDisabledAccount(t *testing.T) {
	f := newServiceFixture(t, "session_disabled")
	principal := f.createAccount(t, "off@example.com", constants.RoleCustomer)
	if err := f.db.Model(&models.User{}).Where("id = ?", principal.UserID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, err := f.session.SignIn(context.Background(), "off@example.com", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	f := newServiceFixture(t, "session_garbage")
	if _, err := f.session.ResolveToken(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLandingForRole(t *testing.T) {
	cases := map[string]string{
		constants.RoleCustomer:   constants.LandingCustomer,
		constants.RoleDispatcher: constants.LandingDispatcher,
		constants.RoleAdmin:      constants.LandingAdmin,
		"":                       constants.LandingAuth,
	}
	for role, want := range cases {
		if got := LandingForRole(role); got != want {
			t.Fatalf("LandingForRole(%q) want %s got %s", role, want, got)
		}
	}
	var nilIdentity *Identity
	if nilIdentity.Landing() != constants.LandingAuth {
		t.Fatalf("nil identity should land on auth")
	}
}

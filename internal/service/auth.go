package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/hash"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/mykafka"
	"github.com/Skotchmaster/auth_service/internal/roles"
	"github.com/Skotchmaster/auth_service/internal/service/token"
	"github.com/Skotchmaster/auth_service/internal/store"
	"github.com/Skotchmaster/auth_service/internal/validate"
)

type AuthService struct {
	Store     *store.Store
	Tokens    *token.Service
	Hasher    *hash.Pool
	Validator *validate.Registration
	Producer  *mykafka.Producer
}

type SigninResult struct {
	ID          uint
	Username    string
	Email       string
	Roles       []string
	AccessToken string
}

// Signup registers a new identity. The validator pre-checks are advisory;
// CreateUser's constraint violation is the authoritative duplicate signal.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, roleNames []string) error {
	l := logging.FromContext(ctx).With("svc", "auth.signup", "username", username)

	if err := s.Validator.CheckDuplicate(ctx, username, email); err != nil {
		l.Warn("signup rejected", "reason", err.Error())
		return err
	}
	if err := s.Validator.CheckRoles(roleNames); err != nil {
		l.Warn("signup rejected", "reason", err.Error())
		return err
	}

	pwHash, err := s.Hasher.Hash(ctx, password)
	if err != nil {
		l.Error("signup failed", "reason", "cannot hash the password", "error", err)
		return err
	}

	user, err := s.Store.CreateUser(ctx, username, email, pwHash)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateUsername) || errors.Is(err, apperr.ErrDuplicateEmail) {
			l.Warn("signup rejected", "reason", err.Error())
			return err
		}
		l.Error("signup failed", "error", err)
		return err
	}

	requested, err := roles.Resolve(roleNames)
	if err != nil {
		return err
	}
	if err := s.Store.AssignRoles(ctx, user, requested); err != nil {
		l.Error("signup failed", "reason", "cannot assign roles", "error", err)
		return err
	}

	s.publish(ctx, l, user.ID, map[string]interface{}{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("signup successful", "user_id", user.ID)
	return nil
}

// Signin verifies credentials and issues an access token. The steps run
// linearly and short-circuit on the first failure.
func (s *AuthService) Signin(ctx context.Context, username, password string) (*SigninResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin", "username", username)

	user, err := s.Store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			l.Warn("signin failed", "reason", "unknown username")
			return nil, err
		}
		l.Error("signin failed", "error", err)
		return nil, err
	}

	ok, err := s.Hasher.Compare(ctx, user.PasswordHash, password)
	if err != nil {
		l.Error("signin failed", "error", err)
		return nil, err
	}
	if !ok {
		l.Warn("signin failed", "reason", "invalid password")
		return nil, apperr.ErrInvalidPassword
	}

	accessToken, err := s.Tokens.Issue(user.ID)
	if err != nil {
		l.Error("signin failed", "reason", "cannot issue token", "error", err)
		return nil, err
	}

	rs, err := s.Store.RolesOf(ctx, user)
	if err != nil {
		l.Error("signin failed", "reason", "cannot load roles", "error", err)
		return nil, err
	}

	s.publish(ctx, l, user.ID, map[string]interface{}{
		"type":     "user_signed_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("signin successful", "user_id", user.ID)
	return &SigninResult{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Roles:       roles.Render(rs),
		AccessToken: accessToken,
	}, nil
}

// publish sends a user event; delivery failures are logged, never surfaced.
func (s *AuthService) publish(ctx context.Context, l *slog.Logger, userID uint, event map[string]interface{}) {
	if err := s.Producer.PublishEvent(ctx, fmt.Sprint(userID), event); err != nil {
		l.Error("event publish failed", "error", err)
	}
}

package validate

import (
	"context"
	"errors"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/roles"
	"github.com/Skotchmaster/auth_service/internal/store"
)

// Registration runs the signup pre-checks. They are a fast path only: the
// store's uniqueness constraints remain the authority on duplicates, so a
// pass here does not guarantee that createUser will succeed.
type Registration struct {
	Store *store.Store
}

// CheckDuplicate reports a username collision before an email collision;
// the first match short-circuits.
func (v *Registration) CheckDuplicate(ctx context.Context, username, email string) error {
	if _, err := v.Store.FindByUsername(ctx, username); err == nil {
		return apperr.ErrDuplicateUsername
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return err
	}

	if _, err := v.Store.FindByEmail(ctx, email); err == nil {
		return apperr.ErrDuplicateEmail
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return err
	}

	return nil
}

// CheckRoles validates every requested role name against the catalog and
// reports the first unknown one.
func (v *Registration) CheckRoles(names []string) error {
	for _, name := range names {
		if !roles.IsValidName(name) {
			return &apperr.UnknownRoleError{Name: name}
		}
	}
	return nil
}

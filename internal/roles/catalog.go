package roles

import (
	"strings"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/models"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// catalog is the fixed role set. IDs are stable and referenced by the
// user_roles associations, so they never change between releases.
var catalog = []models.Role{
	{ID: 1, Name: RoleUser},
	{ID: 2, Name: RoleModerator},
	{ID: 3, Name: RoleAdmin},
}

// All returns a copy of the catalog in id order.
func All() []models.Role {
	out := make([]models.Role, len(catalog))
	copy(out, catalog)
	return out
}

// Default is the role assigned when a signup requests none.
func Default() models.Role {
	return catalog[0]
}

func IsValidName(name string) bool {
	name = strings.ToLower(name)
	for _, r := range catalog {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Resolve maps role names to catalog entries. The first unknown name fails the
// whole request.
func Resolve(names []string) ([]models.Role, error) {
	out := make([]models.Role, 0, len(names))
	for _, name := range names {
		found := false
		for _, r := range catalog {
			if r.Name == strings.ToLower(name) {
				out = append(out, r)
				found = true
				break
			}
		}
		if !found {
			return nil, &apperr.UnknownRoleError{Name: name}
		}
	}
	return out, nil
}

// Render formats a role set for API responses, e.g. admin -> "ROLE_ADMIN",
// ordered by catalog id.
func Render(rs []models.Role) []string {
	out := make([]string, 0, len(rs))
	for _, c := range catalog {
		for _, r := range rs {
			if r.ID == c.ID {
				out = append(out, "ROLE_"+strings.ToUpper(r.Name))
				break
			}
		}
	}
	return out
}

package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/roles"
)

// Store is the credential store. All cross-request consistency lives in the
// database's uniqueness constraints; the store takes no locks of its own.
type Store struct {
	DB *gorm.DB
}

// CreateUser persists a new identity record. The unique indexes on username
// and email are the authoritative duplicate check: a constraint violation is
// reported as a duplicate even when an earlier pre-check passed, which is what
// resolves two concurrent signups racing on the same name.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateField(ctx, username)
		}
		return nil, err
	}
	return &user, nil
}

// duplicateField decides which unique index fired. The row that won the race
// is committed, so a username lookup settles it.
func (s *Store) duplicateField(ctx context.Context, username string) error {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return apperr.ErrDuplicateUsername
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrDuplicateEmail
	}
	return err
}

// AssignRoles replaces the user's role associations with exactly the given
// set. An empty set gets the catalog default.
func (s *Store) AssignRoles(ctx context.Context, user *models.User, rs []models.Role) error {
	if len(rs) == 0 {
		rs = []models.Role{roles.Default()}
	}
	assoc := make([]models.Role, len(rs))
	copy(assoc, rs)
	return s.DB.WithContext(ctx).Model(user).Association("Roles").Replace(assoc)
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) RolesOf(ctx context.Context, user *models.User) ([]models.Role, error) {
	var rs []models.Role
	if err := s.DB.WithContext(ctx).Model(user).Association("Roles").Find(&rs); err != nil {
		return nil, err
	}
	return rs, nil
}

package validate

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/config"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/store"
)

func newTestValidator(t *testing.T) (*Registration, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Role{}))
	require.NoError(t, config.SeedRoles(db))

	s := &store.Store{DB: db}
	return &Registration{Store: s}, s
}

func TestCheckDuplicate_Clean(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	require.NoError(t, v.CheckDuplicate(context.Background(), "alice", "a@x.com"))
}

func TestCheckDuplicate_UsernameBeforeEmail(t *testing.T) {
	t.Parallel()

	v, s := newTestValidator(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "a@x.com", "hash")
	require.NoError(t, err)

	// both collide; the username check runs first and wins
	err = v.CheckDuplicate(ctx, "alice", "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrDuplicateUsername)

	err = v.CheckDuplicate(ctx, "bob", "a@x.com")
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func TestCheckRoles(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)

	require.NoError(t, v.CheckRoles(nil))
	require.NoError(t, v.CheckRoles([]string{"user", "ADMIN"}))

	err := v.CheckRoles([]string{"user", "wizard", "ghost"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnknownRole)

	var unknown *apperr.UnknownRoleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "wizard", unknown.Name)
}

package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/config"
	"github.com/Skotchmaster/auth_service/internal/hash"
	"github.com/Skotchmaster/auth_service/internal/models"
	"github.com/Skotchmaster/auth_service/internal/roles"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	// one connection, or concurrent goroutines each get their own empty
	// in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Role{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	require.NoError(t, config.SeedRoles(db))

	return db
}

func TestCreateUser_RoundTrip(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	pwHash, err := hash.HashPassword("pw123")
	require.NoError(t, err)

	created, err := s.CreateUser(ctx, "alice", "a@x.com", pwHash)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "a@x.com", found.Email)
	assert.NotEqual(t, "pw123", found.PasswordHash)
	assert.True(t, hash.CheckPassword(found.PasswordHash, "pw123"))
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "a@x.com", "hash1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "other@x.com", "hash2")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDuplicateUsername)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "alice", "a@x.com", "hash1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "bob", "a@x.com", "hash2")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func TestCreateUser_ConcurrentDuplicate(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.CreateUser(ctx, "alice", "a@x.com", "hash")
		}(i)
	}
	wg.Wait()

	var okCount, dupCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, apperr.ErrDuplicateUsername), errors.Is(err, apperr.ErrDuplicateEmail):
			dupCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactly one signup must win")
	assert.Equal(t, 1, dupCount, "the loser must see a duplicate error")
}

func TestAssignRoles_ExplicitSet(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "a@x.com", "hash")
	require.NoError(t, err)

	requested, err := roles.Resolve([]string{"admin", "moderator"})
	require.NoError(t, err)
	require.NoError(t, s.AssignRoles(ctx, user, requested))

	rs, err := s.RolesOf(ctx, user)
	require.NoError(t, err)
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"admin", "moderator"}, names)
}

func TestAssignRoles_DefaultWhenEmpty(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "bob", "b@x.com", "hash")
	require.NoError(t, err)
	require.NoError(t, s.AssignRoles(ctx, user, nil))

	rs, err := s.RolesOf(ctx, user)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, roles.Default().ID, rs[0].ID)
}

func TestAssignRoles_ReplacesPrevious(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "carol", "c@x.com", "hash")
	require.NoError(t, err)

	first, err := roles.Resolve([]string{"admin"})
	require.NoError(t, err)
	require.NoError(t, s.AssignRoles(ctx, user, first))

	second, err := roles.Resolve([]string{"user"})
	require.NoError(t, err)
	require.NoError(t, s.AssignRoles(ctx, user, second))

	rs, err := s.RolesOf(ctx, user)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "user", rs[0].Name)
}

func TestFindByID_NotFound(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}

	_, err := s.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestFindByUsername_NotFound(t *testing.T) {
	t.Parallel()

	s := &Store{DB: InitTestDB(t)}

	_, err := s.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

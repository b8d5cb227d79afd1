package service

import (
	"context"
	"testing"

	"github.com/shinyyama/catalog-backend/internal/dbtest"
	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	svc := NewCatalogService(repository.NewCategoryRepository(gdb), repository.NewUserRepository(gdb))

	c, err := svc.CreateCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	dup, err := svc.CreateCategory(ctx, "Electronics")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, dup)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	u, err := svc.CreateUser(ctx, "Ayu", "ayu@example.com")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "Other", "ayu@example.com")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotZero(t, u.ID)
}

// Lookups that never see the row mimic a concurrent insert landing between
// the existence check and Create.
type unseenCategoryRepo struct{ repository.CategoryRepository }

func (unseenCategoryRepo) FindByName(context.Context, string) (*model.Category, error) {
	return nil, nil
}

type unseenUserRepo struct{ repository.UserRepository }

func (unseenUserRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, nil
}

func TestCatalogService_UniqueIndexConflict(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	svc := NewCatalogService(
		unseenCategoryRepo{repository.NewCategoryRepository(gdb)},
		unseenUserRepo{repository.NewUserRepository(gdb)},
	)

	_, err := svc.CreateCategory(ctx, "Books")
	require.NoError(t, err)
	c, err := svc.CreateCategory(ctx, "Books")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, c)

	_, err = svc.CreateUser(ctx, "Ayu", "ayu@example.com")
	require.NoError(t, err)
	u, err := svc.CreateUser(ctx, "Ayu again", "ayu@example.com")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, u)
}

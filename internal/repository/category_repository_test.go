package repository

import (
	"context"
	"testing"

	"github.com/shinyyama/catalog-backend/internal/dbtest"
	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewCategoryRepository(dbtest.Open(t))

	for _, name := range []string{"Electronics", "Books"} {
		require.NoError(t, r.Create(ctx, &model.Category{Name: name}))
	}
	assert.ErrorIs(t, r.Create(ctx, &model.Category{Name: "Books"}), gorm.ErrDuplicatedKey)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Books", list[0].Name)

	c, err := r.FindByName(ctx, "Electronics")
	require.NoError(t, err)
	require.NotNil(t, c)

	byID, err := r.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Name, byID.Name)

	missing, err := r.FindByName(ctx, "Toys")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository(dbtest.Open(t))

	u := &model.User{Name: "Ayu", Email: "ayu@example.com"}
	require.NoError(t, r.Create(ctx, u))
	assert.NotZero(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := r.FindByEmail(ctx, "ayu@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := r.FindByID(ctx, u.ID+1)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductImageRepository(t *testing.T) {
	ctx := context.Background()
	r := NewProductImageRepository(dbtest.Open(t))

	img := &model.ProductImage{ProductID: 5, Path: "x.jpg"}
	require.NoError(t, r.Create(ctx, img))
	require.NoError(t, r.Create(ctx, &model.ProductImage{ProductID: 6, Path: "y.jpg"}))

	list, err := r.ListByProduct(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "x.jpg", list[0].Path)

	require.NoError(t, r.Delete(ctx, img.ID))
	assert.ErrorIs(t, r.Delete(ctx, img.ID), ErrNotFound)

	list, err = r.ListByProduct(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductApplyKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	cat := uint64(3)
	p := Product{ID: 100, Name: "old", CreatedAt: created, UpdatedAt: created}

	p.Apply(ProductFields{CategoryID: &cat, Name: "Phone", Price: 500, Stock: 2})

	assert.Equal(t, uint64(100), p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, created, p.UpdatedAt)
	assert.Equal(t, "Phone", p.Name)
	assert.Equal(t, &cat, p.CategoryID)
	assert.Nil(t, p.UserID)
	assert.Equal(t, ProductFields{CategoryID: &cat, Name: "Phone", Price: 500, Stock: 2}, p.Fields())
}

func TestProductFieldsColumns(t *testing.T) {
	cols := ProductFields{Name: "Phone", Price: 10}.Columns()

	assert.Len(t, cols, 6)
	assert.NotContains(t, cols, "id")
	assert.NotContains(t, cols, "created_at")
	assert.NotContains(t, cols, "updated_at")
	assert.Equal(t, "Phone", cols["name"])
	assert.Equal(t, (*uint64)(nil), cols["category_id"])
}

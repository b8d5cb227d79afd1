package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogSvcMock struct{ mock.Mock }

func (m *catalogSvcMock) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*model.Category)
	return c, args.Error(1)
}

func (m *catalogSvcMock) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Category)
	return list, args.Error(1)
}

func (m *catalogSvcMock) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	args := m.Called(ctx, name, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func TestCatalogHandler_CreateCategory(t *testing.T) {
	svc := new(catalogSvcMock)
	svc.On("CreateCategory", mock.Anything, "Electronics").Return(&model.Category{ID: 1, Name: "Electronics"}, nil).Once()
	svc.On("CreateCategory", mock.Anything, "Electronics").Return(nil, service.ErrConflict).Once()
	h := NewCatalogHandler(svc)

	rec := serve(t, http.MethodPost, "/api/categories", `{"name":" Electronics "}`, h.CreateCategory)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(t, http.MethodPost, "/api/categories", `{"name":"Electronics"}`, h.CreateCategory)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var got ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "conflict", got.Error.Code)

	rec = serve(t, http.MethodPost, "/api/categories", `{"name":"  "}`, h.CreateCategory)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandler_CreateUserConflict(t *testing.T) {
	svc := new(catalogSvcMock)
	svc.On("CreateUser", mock.Anything, "Ayu", "ayu@example.com").Return(nil, service.ErrConflict)
	h := NewCatalogHandler(svc)

	rec := serve(t, http.MethodPost, "/api/users", `{"name":"Ayu","email":"ayu@example.com"}`, h.CreateUser)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	svc := new(catalogSvcMock)
	svc.On("ListCategories", mock.Anything).Return([]model.Category{{ID: 2, Name: "Books"}}, nil)
	h := NewCatalogHandler(svc)

	rec := serve(t, http.MethodGet, "/api/categories", "", h.ListCategories)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []CategoryResponse{{ID: 2, Name: "Books"}}, got)
}

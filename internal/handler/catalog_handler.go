package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/service"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type CategoryResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "name is required"))
	}
	cat, err := h.svc.CreateCategory(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "category already exists"))
		}
		return storageError(c, err, "category")
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	list, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return storageError(c, err, "categories")
	}
	resp := make([]CategoryResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toCategoryResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "email is required"))
	}
	u, err := h.svc.CreateUser(c.Request().Context(), strings.TrimSpace(req.Name), email)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "email already registered"))
		}
		return storageError(c, err, "user")
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func toCategoryResponse(c *model.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

package service

import (
	"context"
	"errors"

	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrConflict = errors.New("already exists")

// CatalogService manages the rows products point at.
type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateUser(ctx context.Context, name, email string) (*model.User, error)
}

type catalogService struct {
	categories repository.CategoryRepository
	users      repository.UserRepository
}

func NewCatalogService(categories repository.CategoryRepository, users repository.UserRepository) CatalogService {
	return &catalogService{categories: categories, users: users}
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	existing, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}
	c := &model.Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, conflictOr(err)
	}
	return c, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *catalogService) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}
	u := &model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, conflictOr(err)
	}
	return u, nil
}

// conflictOr covers a concurrent insert that won the race past the lookup.
func conflictOr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

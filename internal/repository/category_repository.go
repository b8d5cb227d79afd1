package repository

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/shinyyama/catalog-backend/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	SetDB(db *gorm.DB)
}

type categoryRepository struct {
	db atomic.Pointer[gorm.DB]
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	r := &categoryRepository{}
	r.db.Store(db)
	return r
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var c model.Category
	if err := db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var c model.Category
	if err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	list := []model.Category{}
	if err := db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *categoryRepository) SetDB(db *gorm.DB) {
	r.db.Store(db)
}

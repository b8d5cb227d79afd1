package repository

import (
	"context"
	"sync/atomic"

	"github.com/shinyyama/catalog-backend/internal/model"
	"gorm.io/gorm"
)

type ProductImageRepository interface {
	Create(ctx context.Context, img *model.ProductImage) error
	Delete(ctx context.Context, id uint64) error
	ListByProduct(ctx context.Context, productID uint64) ([]model.ProductImage, error)
	SetDB(db *gorm.DB)
}

type productImageRepository struct {
	db atomic.Pointer[gorm.DB]
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepository {
	r := &productImageRepository{}
	r.db.Store(db)
	return r
}

func (r *productImageRepository) Create(ctx context.Context, img *model.ProductImage) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Create(img).Error
}

func (r *productImageRepository) Delete(ctx context.Context, id uint64) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	res := db.WithContext(ctx).Delete(&model.ProductImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productImageRepository) ListByProduct(ctx context.Context, productID uint64) ([]model.ProductImage, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	list := []model.ProductImage{}
	if err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productImageRepository) SetDB(db *gorm.DB) {
	r.db.Store(db)
}

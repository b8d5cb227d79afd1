package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/shinyyama/catalog-backend/internal/model"
	"gorm.io/gorm"
)

type ProductFilter struct {
	CategoryID *uint64
	UserID     *uint64
	Limit      int
	Offset     int
}

// ProductRepository persists products and resolves their relations.
// Lookups return nil without an error when the row (or the referenced row)
// does not exist; any other storage error is returned as is.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uint64) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, f ProductFilter) ([]model.Product, int64, error)

	Category(ctx context.Context, p *model.Product) (*model.Category, error)
	Owner(ctx context.Context, p *model.Product) (*model.User, error)
	Images(ctx context.Context, p *model.Product) ([]model.ProductImage, error)

	SetDB(db *gorm.DB)
}

type productRepository struct {
	db  atomic.Pointer[gorm.DB] // swapped by SetDB while requests are served
	now func() time.Time
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return NewProductRepositoryWithClock(db, time.Now)
}

func NewProductRepositoryWithClock(db *gorm.DB, now func() time.Time) ProductRepository {
	r := &productRepository{now: now}
	r.db.Store(db)
	return r
}

// stamp is truncated to the column precision so a read-back compares equal.
func (r *productRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	now := r.stamp()
	p.ID = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	return db.WithContext(ctx).Create(p).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Product
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Product
		if err := tx.Select("id", "created_at").First(&current, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		// updated_at must move past created_at even when the clock has not.
		now := r.stamp()
		if !now.After(current.CreatedAt) {
			now = current.CreatedAt.Add(time.Microsecond)
		}

		cols := p.Fields().Columns()
		cols["updated_at"] = now
		if err := tx.Model(&model.Product{}).Where("id = ?", p.ID).Updates(cols).Error; err != nil {
			return err
		}
		p.CreatedAt = current.CreatedAt
		p.UpdatedAt = now
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id uint64) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	res := db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, f ProductFilter) ([]model.Product, int64, error) {
	db := r.db.Load()
	if db == nil {
		return nil, 0, ErrDBNotReady
	}
	var (
		products []model.Product
		total    int64
	)
	q := db.WithContext(ctx).Model(&model.Product{})
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q = q.Order("created_at desc").Order("id desc")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Category(ctx context.Context, p *model.Product) (*model.Category, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	if p.CategoryID == nil {
		return nil, nil
	}
	var c model.Category
	if err := db.WithContext(ctx).First(&c, *p.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *productRepository) Owner(ctx context.Context, p *model.Product) (*model.User, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	if p.UserID == nil {
		return nil, nil
	}
	var u model.User
	if err := db.WithContext(ctx).First(&u, *p.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *productRepository) Images(ctx context.Context, p *model.Product) ([]model.ProductImage, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	images := []model.ProductImage{}
	if err := db.WithContext(ctx).
		Where("product_id = ?", p.ID).
		Order("id asc").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productRepository) SetDB(db *gorm.DB) {
	r.db.Store(db)
}

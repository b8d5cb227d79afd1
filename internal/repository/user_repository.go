package repository

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/shinyyama/catalog-backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetDB(db *gorm.DB)
}

type userRepository struct {
	db atomic.Pointer[gorm.DB]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	r := &userRepository{}
	r.db.Store(db)
	return r
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	db := r.db.Load()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	db := r.db.Load()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var u model.User
	if err := db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetDB(db *gorm.DB) {
	r.db.Store(db)
}

package model

import "time"

type ProductImage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `gorm:"column:product_id;not null;index:idx_product_images_product_id"`
	Path      string    `gorm:"column:path;size:512;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

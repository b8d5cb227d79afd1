package model

import "time"

// Product references its category, owner and images by id only. Relations are
// resolved through repository.ProductRepository, never loaded implicitly.
//
// Timestamps are stamped by the repository write path, so gorm's automatic
// tracking is switched off for both columns.
type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	CategoryID  *uint64   `gorm:"column:category_id;index:idx_products_category_id"`
	UserID      *uint64   `gorm:"column:user_id;index:idx_products_user_id"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
	Price       uint      `gorm:"not null"`
	Stock       uint      `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;precision:6;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;precision:6;autoUpdateTime:false"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFields is every attribute a caller may assign. The id and the
// timestamps are deliberately absent.
type ProductFields struct {
	CategoryID  *uint64
	UserID      *uint64
	Name        string
	Description string
	Price       uint
	Stock       uint
}

func (p *Product) Fields() ProductFields {
	return ProductFields{
		CategoryID:  p.CategoryID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

func (p *Product) Apply(f ProductFields) {
	p.CategoryID = f.CategoryID
	p.UserID = f.UserID
	p.Name = f.Name
	p.Description = f.Description
	p.Price = f.Price
	p.Stock = f.Stock
}

// Columns maps the mutable fields to their column names for partial updates.
func (f ProductFields) Columns() map[string]interface{} {
	return map[string]interface{}{
		"category_id": f.CategoryID,
		"user_id":     f.UserID,
		"name":        f.Name,
		"description": f.Description,
		"price":       f.Price,
		"stock":       f.Stock,
	}
}

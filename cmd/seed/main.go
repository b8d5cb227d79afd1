package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/catalog-backend/internal/config"
	"github.com/shinyyama/catalog-backend/internal/db"
	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/repository"
	"gorm.io/gorm"
)

type seedProduct struct {
	Name        string
	Description string
	Price       uint
	Stock       uint
	Images      []string
}

type seedCategory struct {
	Name     string
	Products []seedProduct
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	canSeed, err := shouldSeed(ctx, gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("products already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	var inserted int
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := seed(ctx, tx, "seller@example.com", buildSeedCatalog())
		inserted = n
		return err
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d products", inserted)
	return nil
}

// seed inserts the catalog owned by one seller. Categories and the seller are
// reused when they already exist.
func seed(ctx context.Context, tx *gorm.DB, sellerEmail string, catalog []seedCategory) (int, error) {
	categories := repository.NewCategoryRepository(tx)
	users := repository.NewUserRepository(tx)
	products := repository.NewProductRepository(tx)
	images := repository.NewProductImageRepository(tx)

	seller, err := users.FindByEmail(ctx, sellerEmail)
	if err != nil {
		return 0, fmt.Errorf("find seller: %w", err)
	}
	if seller == nil {
		seller = &model.User{Name: "Sample Seller", Email: sellerEmail}
		if err := users.Create(ctx, seller); err != nil {
			return 0, fmt.Errorf("create seller: %w", err)
		}
	}

	inserted := 0
	for _, sc := range catalog {
		cat, err := categories.FindByName(ctx, sc.Name)
		if err != nil {
			return inserted, fmt.Errorf("find category %q: %w", sc.Name, err)
		}
		if cat == nil {
			cat = &model.Category{Name: sc.Name}
			if err := categories.Create(ctx, cat); err != nil {
				return inserted, fmt.Errorf("create category %q: %w", sc.Name, err)
			}
		}

		for _, sp := range sc.Products {
			p := &model.Product{}
			p.Apply(model.ProductFields{
				CategoryID:  &cat.ID,
				UserID:      &seller.ID,
				Name:        strings.TrimSpace(sp.Name),
				Description: strings.TrimSpace(sp.Description),
				Price:       sp.Price,
				Stock:       sp.Stock,
			})
			if err := products.Create(ctx, p); err != nil {
				return inserted, fmt.Errorf("insert product %q: %w", sp.Name, err)
			}
			for _, path := range sp.Images {
				if err := images.Create(ctx, &model.ProductImage{ProductID: p.ID, Path: path}); err != nil {
					return inserted, fmt.Errorf("insert image %q: %w", path, err)
				}
			}
			inserted++
		}
	}
	return inserted, nil
}

func buildSeedCatalog() []seedCategory {
	return []seedCategory{
		{Name: "Electronics", Products: []seedProduct{
			{Name: "Phone", Description: "6.1 inch, 128GB", Price: 4500000, Stock: 5, Images: []string{picsumPath("phone", 1), picsumPath("phone", 2)}},
			{Name: "Wireless Earbuds", Description: "Noise cancelling", Price: 850000, Stock: 12, Images: []string{picsumPath("earbuds", 1)}},
		}},
		{Name: "Fashion", Products: []seedProduct{
			{Name: "Batik Shirt", Description: "Cotton, size L", Price: 250000, Stock: 20, Images: []string{picsumPath("batik", 1)}},
		}},
		{Name: "Kitchen", Products: []seedProduct{
			{Name: "Cast Iron Pan", Description: "26 cm", Price: 320000, Stock: 8},
		}},
	}
}

func shouldSeed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.Product{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	return strings.EqualFold(os.Getenv("FORCE_SEED"), "true"), nil
}

func picsumPath(slug string, k int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", slug, k)
}

package service

import (
	"context"
	"errors"

	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/repository"
)

var ErrNotFound = errors.New("not found")

// ProductDetail is a product with its relations resolved. Category and Owner
// are nil when the product has no reference or the referenced row is gone.
type ProductDetail struct {
	Product  model.Product
	Category *model.Category
	Owner    *model.User
	Images   []model.ProductImage
}

type ListInput struct {
	CategoryID *uint64
	UserID     *uint64
	Limit      int
	Offset     int
}

type ProductService interface {
	Create(ctx context.Context, fields model.ProductFields) (*model.Product, error)
	Get(ctx context.Context, id uint64) (*ProductDetail, error)
	Update(ctx context.Context, id uint64, fields model.ProductFields) (*model.Product, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, in ListInput) ([]model.Product, int64, error)
	AddImage(ctx context.Context, productID uint64, path string) (*model.ProductImage, error)
}

type productService struct {
	repo   repository.ProductRepository
	images repository.ProductImageRepository
}

func NewProductService(repo repository.ProductRepository, images repository.ProductImageRepository) ProductService {
	return &productService{repo: repo, images: images}
}

func (s *productService) Create(ctx context.Context, fields model.ProductFields) (*model.Product, error) {
	p := &model.Product{}
	p.Apply(fields)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id uint64) (*ProductDetail, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.Category(ctx, p)
	if err != nil {
		return nil, err
	}
	owner, err := s.repo.Owner(ctx, p)
	if err != nil {
		return nil, err
	}
	images, err := s.repo.Images(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product:  *p,
		Category: category,
		Owner:    owner,
		Images:   images,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uint64, fields model.ProductFields) (*model.Product, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(fields)
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *productService) List(ctx context.Context, in ListInput) ([]model.Product, int64, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}
	return s.repo.List(ctx, repository.ProductFilter{
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
}

func (s *productService) AddImage(ctx context.Context, productID uint64, path string) (*model.ProductImage, error) {
	if _, err := s.find(ctx, productID); err != nil {
		return nil, err
	}
	img := &model.ProductImage{ProductID: productID, Path: path}
	if err := s.images.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *productService) find(ctx context.Context, id uint64) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

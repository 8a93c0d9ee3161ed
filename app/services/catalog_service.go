package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/pkg/cache"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

const (
	categoryCacheKey = "aushadhi:catalog:categories"
	catalogCacheTTL  = 5 * time.Minute
)

// CatalogService serves categories and products, caching hot reads in Redis
// and invalidating on every mutation.
type CatalogService struct {
	categories *repositories.CategoryRepository
	products   *repositories.ProductRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		categories: repositories.NewCategoryRepository(),
		products:   repositories.NewProductRepository(),
	}
}

// ─── Categories ───────────────────────────────────────────────────────────────

// Categories returns all categories, cache-first.
func (s *CatalogService) Categories() ([]models.Category, error) {
	var categories []models.Category
	if cache.Get(categoryCacheKey, &categories) {
		return categories, nil
	}
	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}
	_ = cache.Set(categoryCacheKey, categories, catalogCacheTTL)
	return categories, nil
}

func (s *CatalogService) Category(id uint) (models.Category, error) {
	return s.categories.FindByID(id)
}

func (s *CatalogService) CreateCategory(category *models.Category) error {
	if err := s.categories.Create(category); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) UpdateCategory(category *models.Category) error {
	if err := s.categories.Update(category); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) DeleteCategory(id uint) error {
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ─── Products ─────────────────────────────────────────────────────────────────

// ProductFilter narrows product listings.
type ProductFilter struct {
	Page       int
	Limit      int
	CategoryID uint
	Search     string
}

// Products returns a filtered product page. Only the unfiltered first page
// is cached; filtered queries go straight to the database.
func (s *CatalogService) Products(f ProductFilter) ([]models.Product, orm.Pagination, error) {
	if f.CategoryID == 0 && f.Search == "" && f.Page <= 1 {
		key := fmt.Sprintf("aushadhi:catalog:products:first:%d", f.Limit)
		var cached struct {
			Products   []models.Product
			Pagination orm.Pagination
		}
		if cache.Get(key, &cached) {
			return cached.Products, cached.Pagination, nil
		}
		products, pagination, err := s.products.All(f.Page, f.Limit, 0, "")
		if err != nil {
			return nil, orm.Pagination{}, err
		}
		cached.Products, cached.Pagination = products, pagination
		_ = cache.Set(key, cached, catalogCacheTTL)
		return products, pagination, nil
	}
	return s.products.All(f.Page, f.Limit, f.CategoryID, f.Search)
}

func (s *CatalogService) Product(id uint) (models.Product, error) {
	return s.products.FindByID(id)
}

func (s *CatalogService) CreateProduct(product *models.Product, imageURLs []string) error {
	if err := s.products.Create(product); err != nil {
		return err
	}
	if len(imageURLs) > 0 {
		if err := s.products.ReplaceImages(product.ID, imageURLs); err != nil {
			return err
		}
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) UpdateProduct(product *models.Product, imageURLs []string) error {
	if err := s.products.Update(product); err != nil {
		return err
	}
	if imageURLs != nil {
		if err := s.products.ReplaceImages(product.ID, imageURLs); err != nil {
			return err
		}
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) DeleteProduct(id uint) error {
	if err := s.products.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// invalidate drops every catalog cache entry after a mutation.
func (s *CatalogService) invalidate() {
	keys := []string{categoryCacheKey}
	for _, limit := range []int{10, 20, 50, 100} {
		keys = append(keys, fmt.Sprintf("aushadhi:catalog:products:first:%d", limit))
	}
	_ = cache.Del(keys...)
}

package repositories

import (
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// ProductRepository handles database operations for Product and its images.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns products with pagination. categoryID 0 means all categories;
// search filters by name substring.
func (r *ProductRepository) All(page, limit int, categoryID uint, search string) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().
		Model(&models.Product{}).
		Preload("Images").
		Preload("Category").
		Order("created_at desc")

	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var products []models.Product
	pagination, err := q.GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// FindByID returns one product with images and category preloaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Images").
		Preload("Category").
		Where("id = ?", id).
		First(&product)
	return product, err
}

func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

func (r *ProductRepository) Delete(id uint) error {
	return orm.DB().Transaction(func(tx *orm.Query) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}); err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id)
	})
}

// ReplaceImages swaps the product's image set atomically.
func (r *ProductRepository) ReplaceImages(productID uint, urls []string) error {
	return orm.DB().Transaction(func(tx *orm.Query) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}); err != nil {
			return err
		}
		for _, url := range urls {
			img := models.ProductImage{ProductID: productID, URL: url}
			if err := tx.Create(&img); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecrementStock reduces stock for a purchased product. The guard keeps the
// count from going negative under concurrent checkouts.
func (r *ProductRepository) DecrementStock(tx *orm.Query, productID uint, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{"stock": orm.Expr("stock - ?", quantity)})
}

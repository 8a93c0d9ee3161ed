package repositories

import (
	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists an order and its items in one transaction, decrementing
// stock for each line.
func (r *OrderRepository) Create(order *models.Order) error {
	products := NewProductRepository()
	return orm.DB().Transaction(func(tx *orm.Query) error {
		if err := tx.Create(order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := products.DecrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID returns one order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// FindByNumber returns one order by its public order number.
func (r *OrderRepository) FindByNumber(number string) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("order_number = ?", number).
		First(&order)
	return order, err
}

// All returns all orders with pagination, newest first.
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Order("created_at desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// ForUser returns one user's orders with pagination, newest first.
func (r *OrderRepository) ForUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// UpdateStatus sets the status column only. Other columns stay immutable.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	return orm.DB().
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status})
}

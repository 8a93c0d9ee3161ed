package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_branches_table", &CreateBranchesTable{})
	migration.Register("20260101000003_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260101000004_create_contact_messages_table", &CreateContactMessagesTable{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: categories, products, product images --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Product{}, &models.ProductImage{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product_images", "products", "categories")
}

// -------- 0002: branches --------

type CreateBranchesTable struct{}

func (m *CreateBranchesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Branch{})
}

func (m *CreateBranchesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("branches")
}

// -------- 0003: orders, order items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0004: contact messages --------

type CreateContactMessagesTable struct{}

func (m *CreateContactMessagesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ContactMessage{})
}

func (m *CreateContactMessagesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("contact_messages")
}

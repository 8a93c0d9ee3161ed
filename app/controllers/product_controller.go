package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/collection"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController() *ProductController {
	return &ProductController{catalog: services.NewCatalogService()}
}

// productListItem is the list-view projection: the first image is flattened
// into a single thumbnail field, and the discounted price is precomputed.
type productListItem struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	CategoryID  uint    `json:"categoryId"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	FinalPrice  float64 `json:"finalPrice"`
	Stock       int     `json:"stock"`
	InStock     bool    `json:"inStock"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

func toListItem(p models.Product) productListItem {
	return productListItem{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Discount:    p.Discount,
		FinalPrice:  p.EffectivePrice(),
		Stock:       p.Stock,
		InStock:     p.InStock(),
		Image:       p.FirstImage(),
		Description: p.Description,
	}
}

// Index handles GET /api/products with optional ?category=, ?search=,
// ?page= and ?limit=.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	categoryID, _ := strconv.ParseUint(r.URL.Query().Get("category"), 10, 32)

	products, pagination, err := c.catalog.Products(services.ProductFilter{
		Page:       page,
		Limit:      limit,
		CategoryID: uint(categoryID),
		Search:     r.URL.Query().Get("search"),
	})
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load products")
		return
	}

	response.Paginated(w, collection.Map(products, toListItem), pagination)
}

// Show handles GET /api/products/{id}. The detail view keeps the full
// image list.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id := router.ParamUint(r, "id")
	product, err := c.catalog.Product(id)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, product)
}

type productInput struct {
	Name        string   `json:"name"        validate:"required,min=2,max=255"`
	Brand       string   `json:"brand"       validate:"nullable,max=255"`
	CategoryID  uint     `json:"categoryId"  validate:"required"`
	Price       float64  `json:"price"       validate:"required,numeric,min=0"`
	Discount    float64  `json:"discount"    validate:"nullable,numeric,min=0"`
	Stock       int      `json:"stock"       validate:"nullable,numeric,min=0"`
	Description string   `json:"description" validate:"nullable"`
	Images      []string `json:"images"      validate:"nullable"`
}

// Store handles POST /api/products (admin).
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if _, err := c.catalog.Category(in.CategoryID); err != nil {
		response.BadRequest(w, "Unknown category")
		return
	}

	product := models.Product{
		Name:        in.Name,
		Brand:       in.Brand,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Discount:    in.Discount,
		Stock:       in.Stock,
		Description: in.Description,
	}
	if err := c.catalog.CreateProduct(&product, in.Images); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create product")
		return
	}
	response.Created(w, product)
}

// Update handles PUT /api/products/{id} (admin).
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id := router.ParamUint(r, "id")
	product, err := c.catalog.Product(id)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if _, err := c.catalog.Category(in.CategoryID); err != nil {
		response.BadRequest(w, "Unknown category")
		return
	}

	product.Name = in.Name
	product.Brand = in.Brand
	product.CategoryID = in.CategoryID
	product.Price = in.Price
	product.Discount = in.Discount
	product.Stock = in.Stock
	product.Description = in.Description
	if err := c.catalog.UpdateProduct(&product, in.Images); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	response.Success(w, product)
}

// Destroy handles DELETE /api/products/{id} (admin).
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id := router.ParamUint(r, "id")
	if _, err := c.catalog.Product(id); err != nil {
		response.NotFound(w)
		return
	}
	if err := c.catalog.DeleteProduct(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	response.Message(w, "Product deleted")
}

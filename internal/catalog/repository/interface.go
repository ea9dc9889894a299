package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product. The catalog owns the authoritative
// current price; quotes copy it at creation time and never read it back.
type Product struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	SKU            string    `db:"sku"`
	Description    *string   `db:"description"`
	UnitPriceCents int64     `db:"unit_price_cents"`
	Unit           string    `db:"unit"`
	SupplierName   *string   `db:"supplier_name"`
	Category       *string   `db:"category"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	Name           string
	SKU            string
	Description    *string
	UnitPriceCents int64
	Unit           string
	SupplierName   *string
	Category       *string
}

// UpdateProductParams contains data for updating a product. Nil fields are
// left unchanged.
type UpdateProductParams struct {
	ID             uuid.UUID
	Name           *string
	SKU            *string
	Description    *string
	UnitPriceCents *int64
	Unit           *string
	SupplierName   *string
	Category       *string
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	Search    string
	Category  string
	Active    *bool
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// Repository defines catalog storage operations. There is deliberately no
// delete operation: deactivation is the only retirement path, so historical
// quote line items always have a product row to point back at.
type Repository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
}

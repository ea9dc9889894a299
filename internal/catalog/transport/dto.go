package transport

import "github.com/google/uuid"

// Products

type CreateProductRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	SKU            string  `json:"sku" validate:"required,min=1,max=100"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	UnitPriceCents *int64  `json:"unitPriceCents" validate:"required,min=0"`
	Unit           string  `json:"unit" validate:"required,oneof=each bag yard ton cubic-yard"`
	SupplierName   *string `json:"supplierName,omitempty" validate:"omitempty,max=200"`
	Category       *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

type UpdateProductRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU            *string `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	UnitPriceCents *int64  `json:"unitPriceCents,omitempty" validate:"omitempty,min=0"`
	Unit           *string `json:"unit,omitempty" validate:"omitempty,oneof=each bag yard ton cubic-yard"`
	SupplierName   *string `json:"supplierName,omitempty" validate:"omitempty,max=200"`
	Category       *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

type ListProductsRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Category  string `form:"category" validate:"omitempty,max=100"`
	Active    *bool  `form:"active"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name sku unitPriceCents category createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	Description    *string   `json:"description,omitempty"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Unit           string    `json:"unit"`
	SupplierName   *string   `json:"supplierName,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

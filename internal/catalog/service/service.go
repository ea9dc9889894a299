package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"landscape_supply_backend/internal/catalog/repository"
	"landscape_supply_backend/internal/catalog/transport"
	"landscape_supply_backend/platform/apperr"
	"landscape_supply_backend/platform/logger"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	sku := strings.TrimSpace(req.SKU)
	if err := validateProductFields(name, sku, req.UnitPriceCents, &req.Unit); err != nil {
		return transport.ProductResponse{}, err
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Name:           name,
		SKU:            sku,
		Description:    req.Description,
		UnitPriceCents: *req.UnitPriceCents,
		Unit:           req.Unit,
		SupplierName:   trimPtr(req.SupplierName),
		Category:       trimPtr(req.Category),
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", product.ID, "sku", product.SKU)
	return toProductResponse(product), nil
}

// UpdateProduct updates an existing product in place. Quotes that already
// snapshot this product are not affected.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	name := trimPtr(req.Name)
	if name != nil && *name == "" {
		return transport.ProductResponse{}, apperr.Validation("name must not be empty")
	}
	sku := trimPtr(req.SKU)
	if sku != nil && *sku == "" {
		return transport.ProductResponse{}, apperr.Validation("sku must not be empty")
	}
	if req.UnitPriceCents != nil && *req.UnitPriceCents < 0 {
		return transport.ProductResponse{}, apperr.Validation("unit price must not be negative")
	}
	if req.Unit != nil && !isAllowedUnit(*req.Unit) {
		return transport.ProductResponse{}, apperr.Validation("invalid unit of measure")
	}

	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:             id,
		Name:           name,
		SKU:            sku,
		Description:    req.Description,
		UnitPriceCents: req.UnitPriceCents,
		Unit:           req.Unit,
		SupplierName:   trimPtr(req.SupplierName),
		Category:       trimPtr(req.Category),
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "sku", product.SKU)
	return toProductResponse(product), nil
}

// DeactivateProduct soft-retires a product so it can no longer seed new
// quotes. Idempotent: deactivating an already inactive product succeeds.
func (s *Service) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deactivated", "id", id)
	return nil
}

// GetProductByID retrieves a product by ID, inactive ones included.
func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// ListProducts retrieves products with filters and pagination.
func (s *Service) ListProducts(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListProductsParams{
		Search:    strings.TrimSpace(req.Search),
		Category:  strings.TrimSpace(req.Category),
		Active:    req.Active,
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	items, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return toProductListResponse(items, total, page, pageSize), nil
}

func validateProductFields(name, sku string, unitPriceCents *int64, unit *string) error {
	if name == "" {
		return apperr.Validation("name must not be empty")
	}
	if sku == "" {
		return apperr.Validation("sku must not be empty")
	}
	if unitPriceCents == nil || *unitPriceCents < 0 {
		return apperr.Validation("unit price must not be negative")
	}
	if unit == nil || !isAllowedUnit(*unit) {
		return apperr.Validation("invalid unit of measure")
	}
	return nil
}

func isAllowedUnit(unit string) bool {
	switch unit {
	case "each", "bag", "yard", "ton", "cubic-yard":
		return true
	default:
		return false
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func toProductResponse(product repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		SKU:            product.SKU,
		Description:    product.Description,
		UnitPriceCents: product.UnitPriceCents,
		Unit:           product.Unit,
		SupplierName:   product.SupplierName,
		Category:       product.Category,
		Active:         product.Active,
		CreatedAt:      product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      product.UpdatedAt.Format(time.RFC3339),
	}
}

func toProductListResponse(items []repository.Product, total int, page int, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, len(items))
	for i, item := range items {
		responses[i] = toProductResponse(item)
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

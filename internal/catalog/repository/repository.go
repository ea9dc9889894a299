package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"landscape_supply_backend/platform/apperr"
)

const (
	productNotFoundMessage = "product not found"
	skuConflictMessage     = "sku already in use"

	uniqueViolationCode = "23505"

	productColumns = "id, name, sku, description, unit_price_cents, unit, supplier_name, category, active, created_at, updated_at"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateProduct creates a product. The sku unique index makes duplicate
// detection atomic under concurrent creates.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO products (name, sku, description, unit_price_cents, unit, supplier_name, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns

	var product Product
	if err := r.pool.QueryRow(ctx, query,
		params.Name, params.SKU, params.Description, params.UnitPriceCents,
		params.Unit, params.SupplierName, params.Category,
	).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Description,
		&product.UnitPriceCents, &product.Unit, &product.SupplierName, &product.Category,
		&product.Active, &product.CreatedAt, &product.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return Product{}, apperr.Validation(skuConflictMessage)
		}
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

// UpdateProduct updates a product in place. Existing quotes are never touched.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := `
		UPDATE products
		SET
			name = COALESCE($2, name),
			sku = COALESCE($3, sku),
			description = COALESCE($4, description),
			unit_price_cents = COALESCE($5, unit_price_cents),
			unit = COALESCE($6, unit),
			supplier_name = COALESCE($7, supplier_name),
			category = COALESCE($8, category),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns

	var product Product
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.SKU, params.Description,
		params.UnitPriceCents, params.Unit, params.SupplierName, params.Category,
	).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Description,
		&product.UnitPriceCents, &product.Unit, &product.SupplierName, &product.Category,
		&product.Active, &product.CreatedAt, &product.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Product{}, apperr.Validation(skuConflictMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// DeactivateProduct soft-retires a product. Repeated deactivation is a no-op
// that still succeeds; only an unknown id fails.
func (r *Repo) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET active = false, updated_at = now() WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a product by ID, inactive products included so
// historical quotes can still display them.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.SKU, &product.Description,
		&product.UnitPriceCents, &product.Unit, &product.SupplierName, &product.Category,
		&product.Active, &product.CreatedAt, &product.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}

	return product, nil
}

// ListProducts lists products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"true"}
	args := []interface{}{}
	argIdx := 1

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	if params.Active != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *params.Active)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sortColumn := "created_at"
	switch params.SortBy {
	case "name":
		sortColumn = "name"
	case "sku":
		sortColumn = "sku"
	case "unitPriceCents":
		sortColumn = "unit_price_cents"
	case "category":
		sortColumn = "category"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY %s %s, created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.SKU, &product.Description,
			&product.UnitPriceCents, &product.Unit, &product.SupplierName, &product.Category,
			&product.Active, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, total, nil
}

// GetProductsByIDs retrieves products by IDs in a single round trip.
func (r *Repo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.SKU, &product.Description,
			&product.UnitPriceCents, &product.Unit, &product.SupplierName, &product.Category,
			&product.Active, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products by ids: %w", rows.Err())
	}

	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

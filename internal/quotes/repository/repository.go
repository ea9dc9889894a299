package repository

import (
	"context"
	"errors"
	"fmt"

	"landscape_supply_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	quoteNotFoundMsg = "quote not found"

	quoteColumns = "id, customer_name, customer_email, project_name, customer_reference, status, subtotal_cents, created_at, updated_at"
)

// Repo provides database operations for quotes.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateWithItems inserts a quote and its line items in a single transaction.
// The stored subtotal is re-verified against the recomputed sum of line
// totals so a malformed quote can never be persisted.
func (r *Repo) CreateWithItems(ctx context.Context, quote *Quote, items []QuoteLineItem) error {
	var sum int64
	for _, item := range items {
		sum += item.LineTotalCents
	}
	if sum != quote.SubtotalCents {
		return apperr.Validation("subtotal does not match sum of line totals")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quoteQuery := `
		INSERT INTO quotes (
			id, customer_name, customer_email, project_name, customer_reference,
			status, subtotal_cents, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := tx.Exec(ctx, quoteQuery,
		quote.ID, quote.CustomerName, quote.CustomerEmail, quote.ProjectName,
		quote.CustomerReference, quote.Status, quote.SubtotalCents,
		quote.CreatedAt, quote.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	itemQuery := `
		INSERT INTO quote_line_items (
			id, quote_id, product_id, product_name, unit_price_cents, unit,
			quantity, line_total_cents, sort_order, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.QuoteID, item.ProductID, item.ProductName,
			item.UnitPriceCents, item.Unit, item.Quantity, item.LineTotalCents,
			item.SortOrder, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert quote line item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a quote header by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	var q Quote
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.CustomerName, &q.CustomerEmail, &q.ProjectName, &q.CustomerReference,
		&q.Status, &q.SubtotalCents, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &q, nil
}

// GetItemsByQuoteID retrieves all line items for a quote in submission order.
func (r *Repo) GetItemsByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]QuoteLineItem, error) {
	query := `
		SELECT id, quote_id, product_id, product_name, unit_price_cents, unit,
			quantity, line_total_cents, sort_order, created_at
		FROM quote_line_items WHERE quote_id = $1
		ORDER BY sort_order ASC`

	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("query quote line items: %w", err)
	}
	defer rows.Close()

	var items []QuoteLineItem
	for rows.Next() {
		var it QuoteLineItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.ProductID, &it.ProductName,
			&it.UnitPriceCents, &it.Unit, &it.Quantity, &it.LineTotalCents,
			&it.SortOrder, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote line item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote line items: %w", err)
	}
	return items, nil
}

// List retrieves quotes with filtering and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	var referenceParam interface{}
	if params.CustomerReference != nil {
		referenceParam = *params.CustomerReference
	}

	baseQuery := `
		FROM quotes
		WHERE ($1::text IS NULL OR status::text = $1)
			AND ($2::text IS NULL OR customer_reference = $2)
			AND ($3::text IS NULL OR customer_name ILIKE $3 OR customer_email ILIKE $3)
	`
	args := []interface{}{statusParam, referenceParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count quotes: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `
		SELECT ` + quoteColumns + `
		` + baseQuery + `
		ORDER BY
			CASE WHEN $4 = 'status' AND $5 = 'asc' THEN status::text END ASC,
			CASE WHEN $4 = 'status' AND $5 = 'desc' THEN status::text END DESC,
			CASE WHEN $4 = 'subtotalCents' AND $5 = 'asc' THEN subtotal_cents END ASC,
			CASE WHEN $4 = 'subtotalCents' AND $5 = 'desc' THEN subtotal_cents END DESC,
			CASE WHEN $4 = 'createdAt' AND $5 = 'asc' THEN created_at END ASC,
			CASE WHEN $4 = 'createdAt' AND $5 = 'desc' THEN created_at END DESC,
			CASE WHEN $4 = 'updatedAt' AND $5 = 'asc' THEN updated_at END ASC,
			CASE WHEN $4 = 'updatedAt' AND $5 = 'desc' THEN updated_at END DESC,
			created_at DESC
		LIMIT $6 OFFSET $7`

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := params.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	args = append(args, sortBy, sortOrder, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var items []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(
			&q.ID, &q.CustomerName, &q.CustomerEmail, &q.ProjectName, &q.CustomerReference,
			&q.Status, &q.SubtotalCents, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		items = append(items, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatusIf transitions a quote's status with a compare-and-set keyed
// on the expected current status, so two concurrent transitions can never
// both succeed.
func (r *Repo) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (bool, error) {
	query := `UPDATE quotes SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`
	result, err := r.pool.Exec(ctx, query, id, expected, next)
	if err != nil {
		return false, fmt.Errorf("update quote status: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// UpdateCustomerIfDraft updates customer reference fields while the quote is
// still a draft. Snapshot columns and totals are not reachable from here.
func (r *Repo) UpdateCustomerIfDraft(ctx context.Context, params UpdateCustomerParams) (bool, error) {
	query := `
		UPDATE quotes SET
			customer_name = COALESCE($2, customer_name),
			customer_email = COALESCE($3, customer_email),
			project_name = COALESCE($4, project_name),
			customer_reference = COALESCE($5, customer_reference),
			updated_at = now()
		WHERE id = $1 AND status = 'draft'`

	result, err := r.pool.Exec(ctx, query,
		params.ID, params.CustomerName, params.CustomerEmail,
		params.ProjectName, params.CustomerReference,
	)
	if err != nil {
		return false, fmt.Errorf("update quote customer fields: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

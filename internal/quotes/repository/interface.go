package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the database model for a quote header. Once saved with a status
// other than draft, nothing except status may ever change.
type Quote struct {
	ID                uuid.UUID `db:"id"`
	CustomerName      string    `db:"customer_name"`
	CustomerEmail     string    `db:"customer_email"`
	ProjectName       *string   `db:"project_name"`
	CustomerReference *string   `db:"customer_reference"`
	Status            string    `db:"status"`
	SubtotalCents     int64     `db:"subtotal_cents"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// QuoteLineItem is the database model for a denormalized quote line.
// ProductID is a weak reference kept for traceability only; the snapshot
// columns are never re-derived from the catalog.
type QuoteLineItem struct {
	ID             uuid.UUID       `db:"id"`
	QuoteID        uuid.UUID       `db:"quote_id"`
	ProductID      uuid.UUID       `db:"product_id"`
	ProductName    string          `db:"product_name"`
	UnitPriceCents int64           `db:"unit_price_cents"`
	Unit           string          `db:"unit"`
	Quantity       decimal.Decimal `db:"quantity"`
	LineTotalCents int64           `db:"line_total_cents"`
	SortOrder      int             `db:"sort_order"`
	CreatedAt      time.Time       `db:"created_at"`
}

// UpdateCustomerParams contains the mutable customer reference fields.
type UpdateCustomerParams struct {
	ID                uuid.UUID
	CustomerName      *string
	CustomerEmail     *string
	ProjectName       *string
	CustomerReference *string
}

// ListParams contains parameters for listing quotes.
type ListParams struct {
	Status            *string
	CustomerReference *string
	Search            string
	SortBy            string
	SortOrder         string
	Page              int
	PageSize          int
}

// ListResult contains the paginated result of listing quotes.
type ListResult struct {
	Items      []Quote
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Repository defines quote storage operations. There is no operation that
// mutates line items or totals after creation.
type Repository interface {
	// CreateWithItems persists a quote and its items atomically. It
	// re-verifies the stored subtotal against the sum of line totals and
	// rejects the write on mismatch.
	CreateWithItems(ctx context.Context, quote *Quote, items []QuoteLineItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	GetItemsByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]QuoteLineItem, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	// UpdateStatusIf applies a compare-and-set transition keyed on the
	// expected current status. Returns false when no row matched.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next string) (bool, error)
	// UpdateCustomerIfDraft updates customer reference fields only while the
	// quote is still a draft. Returns false when no draft row matched.
	UpdateCustomerIfDraft(ctx context.Context, params UpdateCustomerParams) (bool, error)
}

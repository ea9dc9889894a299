package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus enumerates the quote lifecycle states.
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusIssued    QuoteStatus = "issued"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// Requests

// QuoteLineItemRequest references a product by id only; all pricing data is
// resolved and snapshotted server-side at creation time.
type QuoteLineItemRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CreateQuoteRequest struct {
	CustomerName      string                 `json:"customerName" validate:"required,min=1,max=200"`
	CustomerEmail     string                 `json:"customerEmail" validate:"required,email,max=320"`
	ProjectName       *string                `json:"projectName,omitempty" validate:"omitempty,max=200"`
	CustomerReference *string                `json:"customerReference,omitempty" validate:"omitempty,max=200"`
	LineItems         []QuoteLineItemRequest `json:"lineItems" validate:"required,min=1,dive"`
}

// UpdateQuoteCustomerRequest updates customer-facing reference fields.
// Allowed only while the quote is still a draft; snapshots and totals are
// never updatable through any request.
type UpdateQuoteCustomerRequest struct {
	CustomerName      *string `json:"customerName,omitempty" validate:"omitempty,min=1,max=200"`
	CustomerEmail     *string `json:"customerEmail,omitempty" validate:"omitempty,email,max=320"`
	ProjectName       *string `json:"projectName,omitempty" validate:"omitempty,max=200"`
	CustomerReference *string `json:"customerReference,omitempty" validate:"omitempty,max=200"`
}

type ListQuotesRequest struct {
	Status            string `form:"status" validate:"omitempty,oneof=draft issued cancelled"`
	CustomerReference string `form:"customerReference" validate:"omitempty,max=200"`
	Search            string `form:"search" validate:"max=100"`
	Page              int    `form:"page" validate:"omitempty,min=1"`
	PageSize          int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy            string `form:"sortBy" validate:"omitempty,oneof=status subtotalCents createdAt updatedAt"`
	SortOrder         string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// Responses

// QuoteLineItemResponse carries the denormalized snapshot. productId is a
// weak reference for traceability; the name, price and unit fields are the
// values captured at quote creation, not the product's current ones.
type QuoteLineItemResponse struct {
	ProductID              uuid.UUID       `json:"productId"`
	ProductNameSnapshot    string          `json:"productNameSnapshot"`
	UnitPriceCentsSnapshot int64           `json:"unitPriceCentsSnapshot"`
	UnitSnapshot           string          `json:"unitSnapshot"`
	Quantity               decimal.Decimal `json:"quantity"`
	LineTotalCents         int64           `json:"lineTotalCents"`
}

type QuoteResponse struct {
	ID                uuid.UUID               `json:"id"`
	CustomerName      string                  `json:"customerName"`
	CustomerEmail     string                  `json:"customerEmail"`
	ProjectName       *string                 `json:"projectName,omitempty"`
	CustomerReference *string                 `json:"customerReference,omitempty"`
	Status            QuoteStatus             `json:"status"`
	LineItems         []QuoteLineItemResponse `json:"lineItems"`
	SubtotalCents     int64                   `json:"subtotalCents"`
	CreatedAt         string                  `json:"createdAt"`
	UpdatedAt         string                  `json:"updatedAt"`
}

type QuoteListResponse struct {
	Items      []QuoteResponse `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

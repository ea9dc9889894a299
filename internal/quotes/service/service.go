package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"landscape_supply_backend/internal/quotes/repository"
	"landscape_supply_backend/internal/quotes/transport"
	"landscape_supply_backend/platform/apperr"
	"landscape_supply_backend/platform/logger"
)

// Product is the minimal catalog view the quote builder needs to build a
// line-item snapshot.
type Product struct {
	ID             uuid.UUID
	Name           string
	UnitPriceCents int64
	Unit           string
	Active         bool
}

// ProductReader resolves catalog products at quote-creation time. The quote
// builder reads the catalog exactly once per quote; after that the snapshot
// is on its own.
type ProductReader interface {
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
}

// Service provides business logic for quotes.
type Service struct {
	repo     repository.Repository
	products ProductReader
	log      *logger.Logger
}

// New creates a new quotes service.
func New(repo repository.Repository, products ProductReader, log *logger.Logger) *Service {
	return &Service{repo: repo, products: products, log: log}
}

// Create builds and persists a quote from product references and quantities.
// Every requested product is resolved against the current catalog state, its
// name, price and unit are copied into an immutable line-item snapshot, and
// totals are computed once in fixed point. The whole quote is rejected if any
// reference fails to resolve; nothing is persisted partially.
func (s *Service) Create(ctx context.Context, req transport.CreateQuoteRequest) (*transport.QuoteResponse, error) {
	if len(req.LineItems) == 0 {
		return nil, apperr.Validation("quote must contain at least one line item")
	}
	for i, item := range req.LineItems {
		if item.Quantity.Sign() <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		// Quantity is stored at 3 decimal places. A finer-grained value would
		// be rounded by the database after the line total was already computed
		// from the unrounded value, so the two would disagree. Reject instead.
		if !item.Quantity.Equal(item.Quantity.Round(quantityScale)) {
			return nil, apperr.Validation(fmt.Sprintf("line %d: quantity must have at most %d decimal places", i+1, quantityScale))
		}
	}

	ids := make([]uuid.UUID, 0, len(req.LineItems))
	seen := make(map[uuid.UUID]struct{}, len(req.LineItems))
	for _, item := range req.LineItems {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	resolved, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]Product, len(resolved))
	for _, product := range resolved {
		byID[product.ID] = product
	}

	now := time.Now().UTC()
	quoteID := uuid.New()

	items := make([]repository.QuoteLineItem, 0, len(req.LineItems))
	var subtotal int64
	for i, item := range req.LineItems {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, apperr.NotFound(fmt.Sprintf("product %s not found", item.ProductID))
		}
		if !product.Active {
			return nil, apperr.InvalidState(fmt.Sprintf("product %s is inactive and cannot be quoted", item.ProductID))
		}

		total := lineTotalCents(product.UnitPriceCents, item.Quantity)
		items = append(items, repository.QuoteLineItem{
			ID:             uuid.New(),
			QuoteID:        quoteID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPriceCents: product.UnitPriceCents,
			Unit:           product.Unit,
			Quantity:       item.Quantity,
			LineTotalCents: total,
			SortOrder:      i,
			CreatedAt:      now,
		})
		subtotal += total
	}

	quote := &repository.Quote{
		ID:                quoteID,
		CustomerName:      strings.TrimSpace(req.CustomerName),
		CustomerEmail:     strings.TrimSpace(req.CustomerEmail),
		ProjectName:       req.ProjectName,
		CustomerReference: req.CustomerReference,
		Status:            string(transport.QuoteStatusDraft),
		SubtotalCents:     subtotal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.CreateWithItems(ctx, quote, items); err != nil {
		return nil, err
	}

	s.log.Info("quote created", "id", quote.ID, "lines", len(items), "subtotalCents", subtotal)
	return toQuoteResponse(quote, items), nil
}

// GetByID retrieves a quote with its ordered line items.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByQuoteID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// List retrieves quotes with filters and pagination. Line items are loaded
// per quote; listing stays a header-level operation otherwise.
func (s *Service) List(ctx context.Context, req transport.ListQuotesRequest) (*transport.QuoteListResponse, error) {
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

	params := repository.ListParams{
		Search:    strings.TrimSpace(req.Search),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      page,
		PageSize:  pageSize,
	}
	if req.Status != "" {
		status := req.Status
		params.Status = &status
	}
	if req.CustomerReference != "" {
		reference := req.CustomerReference
		params.CustomerReference = &reference
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.QuoteResponse, 0, len(result.Items))
	for i := range result.Items {
		quote := result.Items[i]
		items, err := s.repo.GetItemsByQuoteID(ctx, quote.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *toQuoteResponse(&quote, items))
	}

	return &transport.QuoteListResponse{
		Items:      responses,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// Issue transitions a draft quote to issued.
func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*transport.QuoteResponse, error) {
	return s.transition(ctx, id, transport.QuoteStatusIssued)
}

// Cancel transitions a draft or issued quote to cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*transport.QuoteResponse, error) {
	return s.transition(ctx, id, transport.QuoteStatusCancelled)
}

// transition applies the state machine and persists the change with a
// compare-and-set keyed on the status that was just read, so concurrent
// transitions cannot both win.
func (s *Service) transition(ctx context.Context, id uuid.UUID, target transport.QuoteStatus) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := transport.QuoteStatus(quote.Status)
	if !canTransition(from, target) {
		return nil, apperr.InvalidState(fmt.Sprintf("cannot transition quote from %s to %s", from, target))
	}

	updated, err := s.repo.UpdateStatusIf(ctx, id, string(from), string(target))
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.InvalidState("quote status changed concurrently")
	}

	s.log.Info("quote status changed", "id", id, "from", from, "to", target)
	return s.GetByID(ctx, id)
}

// UpdateCustomer amends the customer reference fields of a draft quote.
// Issued and cancelled quotes are frozen documents; amending them fails.
func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, req transport.UpdateQuoteCustomerRequest) (*transport.QuoteResponse, error) {
	name := req.CustomerName
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperr.Validation("customer name must not be empty")
		}
		name = &trimmed
	}

	updated, err := s.repo.UpdateCustomerIfDraft(ctx, repository.UpdateCustomerParams{
		ID:                id,
		CustomerName:      name,
		CustomerEmail:     req.CustomerEmail,
		ProjectName:       req.ProjectName,
		CustomerReference: req.CustomerReference,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		// Distinguish a missing quote from a non-draft one.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.InvalidState("only draft quotes can be amended")
	}

	s.log.Info("quote customer fields updated", "id", id)
	return s.GetByID(ctx, id)
}

func toQuoteResponse(quote *repository.Quote, items []repository.QuoteLineItem) *transport.QuoteResponse {
	lineItems := make([]transport.QuoteLineItemResponse, len(items))
	for i, item := range items {
		lineItems[i] = transport.QuoteLineItemResponse{
			ProductID:              item.ProductID,
			ProductNameSnapshot:    item.ProductName,
			UnitPriceCentsSnapshot: item.UnitPriceCents,
			UnitSnapshot:           item.Unit,
			Quantity:               item.Quantity,
			LineTotalCents:         item.LineTotalCents,
		}
	}

	return &transport.QuoteResponse{
		ID:                quote.ID,
		CustomerName:      quote.CustomerName,
		CustomerEmail:     quote.CustomerEmail,
		ProjectName:       quote.ProjectName,
		CustomerReference: quote.CustomerReference,
		Status:            transport.QuoteStatus(quote.Status),
		LineItems:         lineItems,
		SubtotalCents:     quote.SubtotalCents,
		CreatedAt:         quote.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         quote.UpdatedAt.Format(time.RFC3339),
	}
}

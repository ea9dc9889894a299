package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"landscape_supply_backend/internal/quotes/repository"
	"landscape_supply_backend/internal/quotes/transport"
	"landscape_supply_backend/platform/apperr"
	"landscape_supply_backend/platform/logger"
)

// fakeRepo is an in-memory repository for service tests.
type fakeRepo struct {
	quotes map[uuid.UUID]*repository.Quote
	items  map[uuid.UUID][]repository.QuoteLineItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quotes: make(map[uuid.UUID]*repository.Quote),
		items:  make(map[uuid.UUID][]repository.QuoteLineItem),
	}
}

func (f *fakeRepo) CreateWithItems(_ context.Context, quote *repository.Quote, items []repository.QuoteLineItem) error {
	var sum int64
	for _, item := range items {
		sum += item.LineTotalCents
	}
	if sum != quote.SubtotalCents {
		return apperr.Validation("subtotal does not match sum of line totals")
	}
	q := *quote
	f.quotes[quote.ID] = &q
	f.items[quote.ID] = append([]repository.QuoteLineItem(nil), items...)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*repository.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, apperr.NotFound("quote not found")
	}
	copied := *q
	return &copied, nil
}

func (f *fakeRepo) GetItemsByQuoteID(_ context.Context, quoteID uuid.UUID) ([]repository.QuoteLineItem, error) {
	return append([]repository.QuoteLineItem(nil), f.items[quoteID]...), nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) (*repository.ListResult, error) {
	var items []repository.Quote
	for _, q := range f.quotes {
		if params.Status != nil && q.Status != *params.Status {
			continue
		}
		items = append(items, *q)
	}
	return &repository.ListResult{
		Items:      items,
		Total:      len(items),
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: 1,
	}, nil
}

func (f *fakeRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, expected, next string) (bool, error) {
	q, ok := f.quotes[id]
	if !ok || q.Status != expected {
		return false, nil
	}
	q.Status = next
	return true, nil
}

func (f *fakeRepo) UpdateCustomerIfDraft(_ context.Context, params repository.UpdateCustomerParams) (bool, error) {
	q, ok := f.quotes[params.ID]
	if !ok || q.Status != string(transport.QuoteStatusDraft) {
		return false, nil
	}
	if params.CustomerName != nil {
		q.CustomerName = *params.CustomerName
	}
	if params.CustomerEmail != nil {
		q.CustomerEmail = *params.CustomerEmail
	}
	if params.ProjectName != nil {
		q.ProjectName = params.ProjectName
	}
	if params.CustomerReference != nil {
		q.CustomerReference = params.CustomerReference
	}
	return true, nil
}

// fakeProductReader serves a mutable product table so tests can change the
// catalog after a quote is created.
type fakeProductReader struct {
	products map[uuid.UUID]Product
}

func (f *fakeProductReader) GetProductsByIDs(_ context.Context, ids []uuid.UUID) ([]Product, error) {
	var out []Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeRepo, *fakeProductReader) {
	repo := newFakeRepo()
	reader := &fakeProductReader{products: make(map[uuid.UUID]Product)}
	svc := New(repo, reader, logger.New("development"))
	return svc, repo, reader
}

func addProduct(reader *fakeProductReader, name string, priceCents int64, unit string, active bool) uuid.UUID {
	id := uuid.New()
	reader.products[id] = Product{ID: id, Name: name, UnitPriceCents: priceCents, Unit: unit, Active: active}
	return id
}

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createRequest(items ...transport.QuoteLineItemRequest) transport.CreateQuoteRequest {
	return transport.CreateQuoteRequest{
		CustomerName:  "Jordan Meyer",
		CustomerEmail: "jordan@example.com",
		LineItems:     items,
	}
}

func TestCreateQuoteSnapshotsAndSubtotal(t *testing.T) {
	svc, _, reader := newTestService()
	mulch := addProduct(reader, "Premium Hardwood Mulch", 3550, "yard", true)
	rock := addProduct(reader, "River Rock", 8500, "ton", true)

	result, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: mulch, Quantity: qty("3")},
		transport.QuoteLineItemRequest{ProductID: rock, Quantity: qty("2.5")},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result.Status != transport.QuoteStatusDraft {
		t.Fatalf("status = %s, want draft", result.Status)
	}
	if len(result.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(result.LineItems))
	}

	first := result.LineItems[0]
	if first.ProductNameSnapshot != "Premium Hardwood Mulch" || first.UnitPriceCentsSnapshot != 3550 || first.UnitSnapshot != "yard" {
		t.Fatalf("unexpected first snapshot: %+v", first)
	}
	if first.LineTotalCents != 10650 {
		t.Fatalf("first line total = %d, want 10650", first.LineTotalCents)
	}
	if result.LineItems[1].LineTotalCents != 21250 {
		t.Fatalf("second line total = %d, want 21250", result.LineItems[1].LineTotalCents)
	}
	if result.SubtotalCents != 31900 {
		t.Fatalf("subtotal = %d, want 31900", result.SubtotalCents)
	}
}

func TestQuoteImmuneToLaterCatalogEdits(t *testing.T) {
	svc, _, reader := newTestService()
	id := addProduct(reader, "Pea Gravel", 6200, "ton", true)

	created, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("2")},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Rename, reprice and retire the product after the quote exists.
	reader.products[id] = Product{ID: id, Name: "Renamed Gravel", UnitPriceCents: 9999, Unit: "bag", Active: false}

	fetched, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	item := fetched.LineItems[0]
	if item.ProductNameSnapshot != "Pea Gravel" || item.UnitPriceCentsSnapshot != 6200 || item.UnitSnapshot != "ton" {
		t.Fatalf("snapshot changed after catalog edit: %+v", item)
	}
	if fetched.SubtotalCents != created.SubtotalCents {
		t.Fatalf("subtotal changed after catalog edit: %d != %d", fetched.SubtotalCents, created.SubtotalCents)
	}
}

func TestCreateQuoteUnknownProductPersistsNothing(t *testing.T) {
	svc, repo, reader := newTestService()
	known := addProduct(reader, "Topsoil", 2800, "yard", true)
	unknown := uuid.New()

	_, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: known, Quantity: qty("1")},
		transport.QuoteLineItemRequest{ProductID: unknown, Quantity: qty("1")},
	))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if len(repo.quotes) != 0 {
		t.Fatalf("quote was persisted despite failed resolution")
	}
}

func TestCreateQuoteInactiveProductRejected(t *testing.T) {
	svc, repo, reader := newTestService()
	retired := addProduct(reader, "Old Mulch", 3000, "yard", false)

	_, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: retired, Quantity: qty("1")},
	))
	if !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("err = %v, want invalid state", err)
	}
	if len(repo.quotes) != 0 {
		t.Fatalf("quote was persisted for inactive product")
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	svc, _, reader := newTestService()
	id := addProduct(reader, "Compost Blend", 3100, "yard", true)

	if _, err := svc.Create(context.Background(), createRequest()); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("empty line items: err = %v, want validation", err)
	}

	_, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("0")},
	))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("zero quantity: err = %v, want validation", err)
	}

	_, err = svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("-1.5")},
	))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("negative quantity: err = %v, want validation", err)
	}
}

func TestCreateQuoteQuantityScale(t *testing.T) {
	// The quantity column stores 3 decimal places. A finer value would be
	// rounded on write after the line total was computed from the raw value,
	// leaving a stored total that no longer equals quantity times unit price.
	svc, repo, reader := newTestService()
	id := addProduct(reader, "River Rock", 333, "ton", true)

	_, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("0.0015")},
	))
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("four decimal places: err = %v, want validation", err)
	}
	if len(repo.quotes) != 0 {
		t.Fatal("quote was persisted despite over-scale quantity")
	}

	// Trailing zeros beyond the third place are still the same number.
	result, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("2.5000")},
	))
	if err != nil {
		t.Fatalf("trailing zeros: %v", err)
	}
	if result.SubtotalCents != 833 {
		t.Fatalf("subtotal = %d, want 833", result.SubtotalCents)
	}

	if _, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("0.125")},
	)); err != nil {
		t.Fatalf("three decimal places: %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	svc, _, reader := newTestService()
	id := addProduct(reader, "Garden Soil Mix", 3400, "yard", true)

	create := func() uuid.UUID {
		created, err := svc.Create(context.Background(), createRequest(
			transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("1")},
		))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return created.ID
	}

	// draft -> issued -> cancelled
	quoteID := create()
	issued, err := svc.Issue(context.Background(), quoteID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.Status != transport.QuoteStatusIssued {
		t.Fatalf("status = %s, want issued", issued.Status)
	}
	cancelled, err := svc.Cancel(context.Background(), quoteID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != transport.QuoteStatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	// cancelled is terminal, even for a repeated cancel
	if _, err := svc.Issue(context.Background(), quoteID); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("issue cancelled: err = %v, want invalid state", err)
	}
	if _, err := svc.Cancel(context.Background(), quoteID); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("cancel cancelled: err = %v, want invalid state", err)
	}

	// issuing twice fails
	second := create()
	if _, err := svc.Issue(context.Background(), second); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Issue(context.Background(), second); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("double issue: err = %v, want invalid state", err)
	}

	// draft -> cancelled directly
	third := create()
	if _, err := svc.Cancel(context.Background(), third); err != nil {
		t.Fatalf("Cancel draft: %v", err)
	}

	// transitions on a missing quote report not found
	if _, err := svc.Issue(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("issue missing: err = %v, want not found", err)
	}
}

func TestUpdateCustomerOnlyWhileDraft(t *testing.T) {
	svc, _, reader := newTestService()
	id := addProduct(reader, "Crushed Granite", 7400, "ton", true)

	created, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("4")},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "Casey Alvarez"
	reference := "PO-2291"
	updated, err := svc.UpdateCustomer(context.Background(), created.ID, transport.UpdateQuoteCustomerRequest{
		CustomerName:      &newName,
		CustomerReference: &reference,
	})
	if err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if updated.CustomerName != "Casey Alvarez" {
		t.Fatalf("customer name = %q, want Casey Alvarez", updated.CustomerName)
	}
	if updated.CustomerReference == nil || *updated.CustomerReference != "PO-2291" {
		t.Fatalf("customer reference not updated: %+v", updated.CustomerReference)
	}
	if updated.SubtotalCents != created.SubtotalCents {
		t.Fatalf("subtotal changed by customer update")
	}

	if _, err := svc.Issue(context.Background(), created.ID); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.UpdateCustomer(context.Background(), created.ID, transport.UpdateQuoteCustomerRequest{
		CustomerName: &newName,
	}); !apperr.Is(err, apperr.KindInvalidState) {
		t.Fatalf("update issued quote: err = %v, want invalid state", err)
	}

	if _, err := svc.UpdateCustomer(context.Background(), uuid.New(), transport.UpdateQuoteCustomerRequest{
		CustomerName: &newName,
	}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("update missing quote: err = %v, want not found", err)
	}

	blank := "   "
	if _, err := svc.UpdateCustomer(context.Background(), created.ID, transport.UpdateQuoteCustomerRequest{
		CustomerName: &blank,
	}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("blank name: err = %v, want validation", err)
	}
}

func TestCreateQuoteRepeatedProduct(t *testing.T) {
	// The same product may appear on multiple lines; each line keeps its own
	// quantity and total.
	svc, _, reader := newTestService()
	id := addProduct(reader, "Premium Topsoil", 2800, "yard", true)

	result, err := svc.Create(context.Background(), createRequest(
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("1")},
		transport.QuoteLineItemRequest{ProductID: id, Quantity: qty("2.5")},
	))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(result.LineItems) != 2 {
		t.Fatalf("line items = %d, want 2", len(result.LineItems))
	}
	if result.SubtotalCents != 2800+7000 {
		t.Fatalf("subtotal = %d, want 9800", result.SubtotalCents)
	}
}

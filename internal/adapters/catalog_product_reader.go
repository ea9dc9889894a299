// Package adapters wires bounded contexts together at the composition root.
// Each adapter narrows one module's surface into the interface another module
// consumes, so modules never import each other directly.
package adapters

import (
	"context"

	"github.com/google/uuid"

	catalogrepo "landscape_supply_backend/internal/catalog/repository"
	quotesvc "landscape_supply_backend/internal/quotes/service"
)

// CatalogProductReader adapts the catalog repository to the quote builder's
// ProductReader interface.
type CatalogProductReader struct {
	repo catalogrepo.Repository
}

// NewCatalogProductReader creates a product reader backed by the catalog.
func NewCatalogProductReader(repo catalogrepo.Repository) *CatalogProductReader {
	return &CatalogProductReader{repo: repo}
}

// GetProductsByIDs resolves products into the minimal view the quote builder
// snapshots from.
func (a *CatalogProductReader) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]quotesvc.Product, error) {
	products, err := a.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]quotesvc.Product, len(products))
	for i, p := range products {
		out[i] = quotesvc.Product{
			ID:             p.ID,
			Name:           p.Name,
			UnitPriceCents: p.UnitPriceCents,
			Unit:           p.Unit,
			Active:         p.Active,
		}
	}
	return out, nil
}

// Compile-time check that the adapter satisfies the consumer interface.
var _ quotesvc.ProductReader = (*CatalogProductReader)(nil)

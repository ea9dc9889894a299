// Command seed loads a starter catalog of landscape supply products.
// Inserts are idempotent: rows that already exist (by SKU) are left alone,
// so the command is safe to run against a populated database.
package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"landscape_supply_backend/platform/config"
	"landscape_supply_backend/platform/db"
	"landscape_supply_backend/platform/logger"
)

type seedProduct struct {
	Name           string
	SKU            string
	Description    string
	UnitPriceCents int64
	Unit           string
	SupplierName   string
	Category       string
}

var products = []seedProduct{
	{"Premium Hardwood Mulch", "MUL-HW-001", "Double-shredded hardwood mulch, natural brown", 3550, "yard", "Green Valley Supplies", "mulch"},
	{"Red Cedar Mulch", "MUL-RC-002", "Aromatic red cedar mulch, insect resistant", 4200, "yard", "Green Valley Supplies", "mulch"},
	{"Black Dyed Mulch", "MUL-BD-003", "Color-enhanced black mulch, fade resistant", 3800, "yard", "Green Valley Supplies", "mulch"},
	{"Playground Mulch", "MUL-PG-004", "Certified playground-safe engineered wood fiber", 4600, "yard", "SafePlay Materials", "mulch"},
	{"River Rock", "STN-RR-001", "Smooth river rock, 1-3 inch, mixed color", 8500, "ton", "Mountain Stone Co", "stone"},
	{"Pea Gravel", "STN-PG-002", "3/8 inch pea gravel, washed", 6200, "ton", "Mountain Stone Co", "stone"},
	{"Crushed Granite", "STN-CG-003", "Decomposed granite for paths and patios", 7400, "ton", "Mountain Stone Co", "stone"},
	{"Premium Topsoil", "SOI-TS-001", "Screened topsoil, weed-free", 2800, "yard", "Earth Materials Inc", "soil"},
	{"Garden Soil Mix", "SOI-GM-002", "Blended garden soil with organic matter", 3400, "yard", "Earth Materials Inc", "soil"},
	{"Compost Blend", "SOI-CB-003", "Aged organic compost blend", 3100, "yard", "Earth Materials Inc", "soil"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	log := logger.New(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	query := `
		INSERT INTO products (name, sku, description, unit_price_cents, unit, supplier_name, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sku) DO NOTHING`

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range products {
		p := p
		g.Go(func() error {
			tag, err := pool.Exec(gctx, query,
				p.Name, p.SKU, p.Description, p.UnitPriceCents, p.Unit, p.SupplierName, p.Category,
			)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				log.Info("product already present, skipped", "sku", p.SKU)
			} else {
				log.Info("product seeded", "sku", p.SKU, "name", p.Name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("seeding failed", "error", err)
		panic("seeding failed: " + err.Error())
	}
	log.Info("catalog seeding complete", "products", len(products))
}

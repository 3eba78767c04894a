package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
)

// Generator produces synthetic sales records from a configured vocabulary of
// products, regions and channels.
type Generator struct {
	cfg config.Config
	rnd *rand.Rand
	now func() time.Time
}

// Option adjusts generator construction.
type Option func(*Generator)

// WithClock overrides the wall clock, fixing the end of the date window.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator. A zero seed draws one from the clock, so two runs
// only repeat when an explicit seed is given.
func New(cfg config.Config, seed int64, opts ...Option) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		cfg: cfg,
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count records dated uniformly within the past daysBack
// days. Units are 1-10 and the unit price is drawn uniformly from the
// product's configured range, rounded to 2 decimal places.
func (g *Generator) Generate(ctx context.Context, count, daysBack int) (domain.RecordSet, error) {
	if count <= 0 {
		return nil, fmt.Errorf("record count must be positive, got %d", count)
	}
	if daysBack <= 0 {
		return nil, fmt.Errorf("days back must be positive, got %d", daysBack)
	}

	zerolog.Ctx(ctx).Info().
		Int("records", count).
		Int("days_back", daysBack).
		Msg("generating sample sales records")

	end := g.now().Truncate(24 * time.Hour)
	records := make(domain.RecordSet, 0, count)
	for i := 0; i < count; i++ {
		product := g.pick(g.cfg.Products)
		pr := g.cfg.PriceRanges[product]
		price := decimal.NewFromFloat(pr.Min + g.rnd.Float64()*(pr.Max-pr.Min)).Round(2)

		records = append(records, domain.NewSalesRecord(
			end.AddDate(0, 0, -g.rnd.Intn(daysBack)),
			product,
			g.pick(g.cfg.Regions),
			g.pick(g.cfg.Channels),
			1+g.rnd.Intn(10),
			price,
		))
	}
	return records, nil
}

func (g *Generator) pick(values []string) string {
	return values[g.rnd.Intn(len(values))]
}

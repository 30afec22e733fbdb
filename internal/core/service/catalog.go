package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
)

var _ port.CatalogOperator = (*Catalog)(nil)
var _ port.ProductFinder = (*Catalog)(nil)
var _ port.ProductsLister = (*Catalog)(nil)

// A Catalog owns the loaded product set and its derived filtered/sorted
// view with the pagination cursor.
type Catalog struct {
	mu            sync.Mutex
	provider      port.ProductsProvider
	events        port.ClientEventsProducer
	pageSize      int
	pageIncrement int

	products     []domain.Product
	filtered     []domain.Product
	category     domain.Category
	sort         domain.SortKey
	displayCount int
	generation   uint64
}

func NewCatalog(
	provider port.ProductsProvider,
	events port.ClientEventsProducer,
	pageSize, pageIncrement int,
) *Catalog {
	return &Catalog{
		provider:      provider,
		events:        events,
		pageSize:      pageSize,
		pageIncrement: pageIncrement,
		category:      domain.CategoryAll,
		sort:          domain.SortFeatured,
		displayCount:  pageSize,
	}
}

// Load replaces the whole catalog. The provider failure path falls back
// to the built-in product set, so the catalog never stays empty. Each
// call starts a new load generation; a slower, older load finishing
// after a newer one is discarded instead of overwriting its result.
func (c *Catalog) Load(ctx context.Context) error {
	const op = "Catalog.Load"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	gen := c.nextGeneration()

	ps, err := c.provider.FetchProducts(ctx)
	if err != nil {
		log.Warn("falling back to built-in products", "err", err)
		ps = domain.FallbackProducts()
	}

	if !c.publish(gen, ps) {
		log.Warn("stale load discarded", "generation", gen)
		return nil
	}

	log.Info("catalog loaded", "nProducts", len(ps))
	return nil
}

func (c *Catalog) nextGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

func (c *Catalog) publish(gen uint64, ps []domain.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}

	c.products = ps
	c.filtered = slices.Clone(ps)
	c.category = domain.CategoryAll
	c.sort = domain.SortFeatured
	c.displayCount = c.pageSize
	return true
}

// SetCategory re-derives the filtered view from the catalog and resets
// the pagination cursor. The current sort key is re-applied.
func (c *Catalog) SetCategory(ctx context.Context, cat domain.Category) {
	c.mu.Lock()
	c.category = cat
	c.refilterLocked()
	sortProducts(c.filtered, c.sort)
	c.displayCount = c.pageSize
	c.mu.Unlock()

	c.emit(ctx, domain.ClientEvent{
		EventID:  uuid.NewString(),
		Type:     domain.EventCategoryChange,
		Category: cat,
		UnixMs:   time.Now().UnixMilli(),
	})
}

// SetSort reorders the filtered view in place. The pagination cursor is
// left alone. SortNewest reverses the current order, and SortFeatured
// keeps it, so switching back to featured after another sort does not
// restore load order; only re-filtering does.
func (c *Catalog) SetSort(_ context.Context, key domain.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = key
	sortProducts(c.filtered, key)
}

// LoadMore advances the pagination cursor by the configured increment.
func (c *Catalog) LoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.displayCount += c.pageIncrement
}

func (c *Catalog) View() domain.CatalogView {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := min(c.displayCount, len(c.filtered))
	return domain.CatalogView{
		Products:     slices.Clone(c.filtered[:n]),
		Category:     c.category,
		Sort:         c.sort,
		DisplayCount: c.displayCount,
		Total:        len(c.filtered),
		HasMore:      c.displayCount < len(c.filtered),
	}
}

func (c *Catalog) Product(id string) (domain.Product, error) {
	const op = "Catalog.Product"

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
}

// Products returns the full catalog in load order, regardless of the
// current filter.
func (c *Catalog) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.products)
}

func (c *Catalog) refilterLocked() {
	if c.category == domain.CategoryAll {
		c.filtered = slices.Clone(c.products)
		return
	}

	c.filtered = c.filtered[:0:0]
	for _, p := range c.products {
		if p.Category == c.category {
			c.filtered = append(c.filtered, p)
		}
	}
}

func (c *Catalog) emit(ctx context.Context, evt domain.ClientEvent) {
	const op = "Catalog.emit"

	if c.events == nil {
		return
	}
	if err := c.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event", "op", op, "err", err)
	}
}

// sortProducts reorders ps in place. Equal-key elements keep their
// relative order.
func sortProducts(ps []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceLow:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case domain.SortRating:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortNewest:
		slices.Reverse(ps)
	default:
		// featured: order as is
	}
}

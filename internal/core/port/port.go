package port

import (
	"context"
	"sync"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
)

// Outbound ports.

type ProductsProvider interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type TestimonialsProvider interface {
	FetchTestimonials(context.Context) ([]domain.Testimonial, error)
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}

// A Notifier surfaces short user-visible messages (the toast of the
// storefront renderer).
type Notifier interface {
	Notify(message string)
}

// Inbound ports, consumed by the renderer-facing command interface.

type CatalogOperator interface {
	Load(context.Context) error
	SetCategory(context.Context, domain.Category)
	SetSort(context.Context, domain.SortKey)
	LoadMore()
	View() domain.CatalogView
	Product(id string) (domain.Product, error)
}

// A ProductFinder resolves a product id against the loaded catalog.
type ProductFinder interface {
	Product(id string) (domain.Product, error)
}

// A ProductsLister exposes the full catalog in load order.
type ProductsLister interface {
	Products() []domain.Product
}

type CartOperator interface {
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
	AdjustQuantity(ctx context.Context, productID string, delta int) error
	Lines() []domain.CartLine
	Total() float64
	ItemCount() int
	Checkout(context.Context) (string, error)
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

type TestimonialRotator interface {
	Load(context.Context) error
	Advance() int
	GoTo(index int)
	Current() (int, []domain.Testimonial)
}

type PopularityReader interface {
	AddToCartCount(productID string) (int64, error)
}

// Stream processor lifecycle, the broker adapter side.

type ClientEventsProcessor interface {
	Run(context.Context, *sync.WaitGroup)
	Close()
}

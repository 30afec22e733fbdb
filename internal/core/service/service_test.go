package service_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
)

type providerFunc func(context.Context) ([]domain.Product, error)

func (f providerFunc) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return f(ctx)
}

func staticProvider(ps []domain.Product) providerFunc {
	return func(context.Context) ([]domain.Product, error) {
		return ps, nil
	}
}

type testimonialsFunc func(context.Context) ([]domain.Testimonial, error)

func (f testimonialsFunc) FetchTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return f(ctx)
}

type finderMap map[string]domain.Product

func (m finderMap) Product(id string) (domain.Product, error) {
	p, ok := m[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.ClientEvent
}

func (p *recordingEvents) ProduceEvent(_ context.Context, evt domain.ClientEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingEvents) Events() []domain.ClientEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ClientEvent(nil), p.events...)
}

// fixtureProducts returns ten products in load order: four chocolate,
// the rest spread over the other categories, with distinct prices and
// ratings.
func fixtureProducts() []domain.Product {
	categories := []domain.Category{
		domain.CategoryChocolate,
		domain.CategoryWedding,
		domain.CategoryChocolate,
		domain.CategoryBirthday,
		domain.CategoryChocolate,
		domain.CategoryFruit,
		domain.CategoryChocolate,
		domain.CategoryCustom,
		domain.CategoryWedding,
		domain.CategoryFruit,
	}

	ps := make([]domain.Product, len(categories))
	for i, cat := range categories {
		ps[i] = domain.Product{
			ID:          fmt.Sprintf("p%d", i+1),
			Name:        fmt.Sprintf("Cake %d", i+1),
			Category:    cat,
			Price:       30 + float64(i*7%50),
			Description: fmt.Sprintf("Delicious cake number %d", i+1),
			Rating:      3.5 + float64(i%4)*0.4,
		}
	}
	return ps
}

func productIDs(ps []domain.Product) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

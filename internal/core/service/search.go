package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
	"github.com/sweetcrumb/cakeshop/pkg/sched"
)

var _ port.Searcher = (*Search)(nil)

// A Search is the linear substring index over the catalog. The search
// interaction event is debounced so that a burst of keystrokes reports
// only the final query.
type Search struct {
	lister   port.ProductsLister
	events   port.ClientEventsProducer
	debounce *sched.Debouncer
}

func NewSearch(
	lister port.ProductsLister,
	events port.ClientEventsProducer,
	debounce time.Duration,
) *Search {
	return &Search{
		lister:   lister,
		events:   events,
		debounce: sched.NewDebouncer(debounce),
	}
}

// Search matches the query case-insensitively against product name,
// description and category, preserving catalog order. An empty or
// whitespace-only query returns ErrEmptyQuery, which is distinct from a
// query matching nothing.
func (s *Search) Search(ctx context.Context, query string) ([]domain.Product, error) {
	const op = "Search.Search"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrEmptyQuery)
	}

	q := strings.ToLower(trimmed)
	results := []domain.Product{}
	for _, p := range s.lister.Products() {
		if matches(p, q) {
			results = append(results, p)
		}
	}

	s.scheduleEvent(trimmed)
	return results, nil
}

func (s *Search) Close() {
	s.debounce.Stop()
}

// scheduleEvent coalesces rapid consecutive searches: only the last
// query within the debounce window is produced.
func (s *Search) scheduleEvent(query string) {
	const op = "Search.scheduleEvent"

	if s.events == nil {
		return
	}

	evt := domain.ClientEvent{
		EventID: uuid.NewString(),
		Type:    domain.EventSearch,
		Query:   query,
		UnixMs:  time.Now().UnixMilli(),
	}
	s.debounce.Do(func() {
		if err := s.events.ProduceEvent(context.Background(), evt); err != nil {
			slog.Warn("failed to produce client event", "op", op, "err", err)
		}
	})
}

func matches(p domain.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(string(p.Category)), q)
}

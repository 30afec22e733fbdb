package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
	"github.com/sweetcrumb/cakeshop/pkg/sched"
)

var _ port.TestimonialRotator = (*Rotator)(nil)

// A Rotator holds the testimonial list and the current slide index,
// advancing circularly on a timer once testimonials are loaded.
type Rotator struct {
	mu       sync.Mutex
	provider port.TestimonialsProvider
	interval time.Duration

	testimonials []domain.Testimonial
	index        int
	task         *sched.Periodic
}

func NewRotator(
	provider port.TestimonialsProvider, interval time.Duration,
) *Rotator {
	return &Rotator{provider: provider, interval: interval}
}

// Load replaces the testimonial set, falling back to the built-in one on
// any provider failure, and starts the rotation timer on first success.
func (r *Rotator) Load(ctx context.Context) error {
	const op = "Rotator.Load"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ts, err := r.provider.FetchTestimonials(ctx)
	if err != nil {
		log.Warn("falling back to built-in testimonials", "err", err)
		ts = domain.FallbackTestimonials()
	}

	r.mu.Lock()
	r.testimonials = ts
	r.index = 0
	started := r.task != nil
	if !started && len(ts) > 0 {
		r.task = sched.NewPeriodic(r.interval, func() { r.Advance() })
		r.task.Start()
	}
	r.mu.Unlock()

	log.Info("testimonials loaded", "nTestimonials", len(ts))
	return nil
}

// Advance moves to the next slide, wrapping to the first one, and
// returns the new index.
func (r *Rotator) Advance() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.testimonials) == 0 {
		return 0
	}
	r.index = (r.index + 1) % len(r.testimonials)
	return r.index
}

// GoTo jumps to an explicit slide. Out-of-range indexes are ignored.
// The rotation timer is not reset; it keeps ticking from the new index.
func (r *Rotator) GoTo(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.testimonials) {
		return
	}
	r.index = index
}

func (r *Rotator) Current() (int, []domain.Testimonial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index, slices.Clone(r.testimonials)
}

func (r *Rotator) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.task != nil {
		r.task.Stop()
		r.task = nil
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
)

var _ port.CartOperator = (*Cart)(nil)

// A Cart is the line-item ledger: one line per distinct product id,
// quantity >= 1 on every line at rest.
type Cart struct {
	mu       sync.Mutex
	finder   port.ProductFinder
	notifier port.Notifier
	events   port.ClientEventsProducer
	lines    []domain.CartLine
}

func NewCart(
	finder port.ProductFinder,
	notifier port.Notifier,
	events port.ClientEventsProducer,
) *Cart {
	return &Cart{finder: finder, notifier: notifier, events: events}
}

// Add puts the product into the cart, incrementing the quantity when a
// line for the id already exists.
func (c *Cart) Add(ctx context.Context, productID string) error {
	const op = "Cart.Add"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p, err := c.finder.Product(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	if line := c.findLocked(productID); line != nil {
		line.Quantity++
	} else {
		c.lines = append(c.lines, domain.CartLine{Product: p, Quantity: 1})
	}
	c.mu.Unlock()

	c.notifier.Notify(fmt.Sprintf("%s added to cart!", p.Name))
	c.emit(ctx, domain.ClientEvent{
		EventID:     uuid.NewString(),
		Type:        domain.EventAddToCart,
		ProductID:   p.ID,
		ProductName: p.Name,
		Category:    p.Category,
		Quantity:    1,
		UnixMs:      time.Now().UnixMilli(),
	})
	return nil
}

// Remove deletes the line for the product id. A missing line is not an
// error; the removal notification is emitted either way.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	const op = "Cart.Remove"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	c.lines = slices.DeleteFunc(c.lines, func(l domain.CartLine) bool {
		return l.Product.ID == productID
	})
	c.mu.Unlock()

	c.notifier.Notify("Item removed from cart")
	c.emit(ctx, domain.ClientEvent{
		EventID:   uuid.NewString(),
		Type:      domain.EventRemoveFromCart,
		ProductID: productID,
		UnixMs:    time.Now().UnixMilli(),
	})
	return nil
}

// AdjustQuantity shifts the quantity of an existing line by delta. A
// resulting quantity <= 0 removes the line, exactly as Remove does.
// No line for the id is a no-op.
func (c *Cart) AdjustQuantity(ctx context.Context, productID string, delta int) error {
	const op = "Cart.AdjustQuantity"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	line := c.findLocked(productID)
	if line == nil {
		c.mu.Unlock()
		return nil
	}

	line.Quantity += delta
	if line.Quantity <= 0 {
		c.mu.Unlock()
		return c.Remove(ctx, productID)
	}
	c.mu.Unlock()
	return nil
}

func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

// Total is computed fresh on every call; nothing is cached.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return math.Round(total*100) / 100
}

// ItemCount sums quantities across lines, not the line count.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Checkout fails on an empty cart; otherwise it reports the hand-off
// message for the external checkout flow.
func (c *Cart) Checkout(ctx context.Context) (string, error) {
	const op = "Cart.Checkout"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	empty := len(c.lines) == 0
	c.mu.Unlock()

	if empty {
		c.notifier.Notify("Your cart is empty!")
		return "", fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	msg := "Redirecting to checkout..."
	c.notifier.Notify(msg)
	c.emit(ctx, domain.ClientEvent{
		EventID:  uuid.NewString(),
		Type:     domain.EventCheckout,
		Quantity: c.ItemCount(),
		UnixMs:   time.Now().UnixMilli(),
	})
	return msg, nil
}

func (c *Cart) findLocked(productID string) *domain.CartLine {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return &c.lines[i]
		}
	}
	return nil
}

func (c *Cart) emit(ctx context.Context, evt domain.ClientEvent) {
	const op = "Cart.emit"

	if c.events == nil {
		return
	}
	if err := c.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event", "op", op, "err", err)
	}
}

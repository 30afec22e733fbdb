// Package cocktaildb fetches the product source data from TheCocktailDB
// and transforms it into the cake catalog.
package cocktaildb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
	"github.com/sweetcrumb/cakeshop/pkg/retry"
	"golang.org/x/sync/errgroup"
)

const detailConcurrency = 5

var _ port.ProductsProvider = (*Client)(nil)

type Config struct {
	ListURL   string
	DetailURL string
	Limit     int
}

type Client struct {
	httpc     *http.Client
	listURL   string
	detailURL string
	limit     int
}

func New(cfg Config) Client {
	return Client{
		httpc:     &http.Client{Timeout: 10 * time.Second},
		listURL:   cfg.ListURL,
		detailURL: cfg.DetailURL,
		limit:     cfg.Limit,
	}
}

// FetchProducts loads the drink list, then fans out over the per-item
// detail endpoint with bounded concurrency. Any failure fails the whole
// load; the caller decides on the fallback.
func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "cocktaildb.Client.FetchProducts"
	log := slog.With("op", op)

	var list drinkList
	if err := c.getJSON(ctx, c.listURL, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(list.Drinks) == 0 {
		return nil, fmt.Errorf("%s: no drinks in response: %w", op, domain.ErrDataShape)
	}

	drinks := list.Drinks
	if len(drinks) > c.limit {
		drinks = drinks[:c.limit]
	}

	products := make([]domain.Product, len(drinks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, d := range drinks {
		g.Go(func() error {
			detail, err := c.fetchDetail(gctx, d.ID)
			if err != nil {
				return err
			}
			products[i] = transform(detail, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("products fetched", "nProducts", len(products))
	return products, nil
}

func (c Client) fetchDetail(ctx context.Context, id string) (drinkDetail, error) {
	const op = "cocktaildb.Client.fetchDetail"

	var lookup drinkDetailList
	if err := c.getJSON(ctx, c.detailURL+id, &lookup); err != nil {
		return drinkDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(lookup.Drinks) == 0 {
		return drinkDetail{}, fmt.Errorf(
			"%s: empty lookup for %q: %w", op, id, domain.ErrDataShape,
		)
	}
	return lookup.Drinks[0], nil
}

func (c Client) getJSON(ctx context.Context, url string, v any) error {
	retryCfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}
	return retry.Do(ctx, retryCfg, func() error {
		return getJSON(ctx, c.httpc, url, v)
	})
}

func getJSON(ctx context.Context, httpc *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	res, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", res.StatusCode, url)
	}

	return json.NewDecoder(res.Body).Decode(v)
}

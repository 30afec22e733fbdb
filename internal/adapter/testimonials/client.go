// Package testimonials combines RandomUser profiles with Quotable quotes
// into the testimonial set.
package testimonials

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
	"github.com/sweetcrumb/cakeshop/pkg/retry"
)

const fallbackQuote = "Absolutely amazing cakes! The quality and taste " +
	"exceeded all expectations. Will definitely order again!"

var roles = []string{
	"Happy Customer",
	"Wedding Client",
	"Birthday Client",
	"Corporate Client",
	"Regular Customer",
	"Event Planner",
}

var _ port.TestimonialsProvider = (*Client)(nil)

type Config struct {
	UsersURL  string
	QuotesURL string
}

type Client struct {
	httpc     *http.Client
	usersURL  string
	quotesURL string
}

func New(cfg Config) Client {
	return Client{
		httpc:     &http.Client{Timeout: 10 * time.Second},
		usersURL:  cfg.UsersURL,
		quotesURL: cfg.QuotesURL,
	}
}

type userList struct {
	Results []user `json:"results"`
}

type user struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
}

type quote struct {
	Content string `json:"content"`
}

// FetchTestimonials loads both sources and combines them positionally.
// A failure of either source fails the whole load; the caller decides
// on the fallback.
func (c Client) FetchTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	const op = "testimonials.Client.FetchTestimonials"
	log := slog.With("op", op)

	var users userList
	if err := c.getJSON(ctx, c.usersURL, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(users.Results) == 0 {
		return nil, fmt.Errorf("%s: no users in response: %w", op, domain.ErrDataShape)
	}

	var quotes []quote
	if err := c.getJSON(ctx, c.quotesURL, &quotes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ts := combine(users.Results, quotes, time.Now())
	log.Debug("testimonials fetched", "nTestimonials", len(ts))
	return ts, nil
}

// combine pairs users and quotes by position. Missing quotes get the
// stock quote text; the role labels rotate over the fixed list.
func combine(users []user, quotes []quote, now time.Time) []domain.Testimonial {
	ts := make([]domain.Testimonial, len(users))
	for i, u := range users {
		text := fallbackQuote
		if i < len(quotes) && quotes[i].Content != "" {
			text = quotes[i].Content
		}

		ts[i] = domain.Testimonial{
			Name:   u.Name.First + " " + u.Name.Last,
			Avatar: u.Picture.Large,
			Role:   roles[i%len(roles)],
			Rating: math.Round((rand.Float64()*0.5+4.5)*10) / 10,
			Text:   text,
			Date:   now.AddDate(0, 0, -rand.IntN(90)).Format("2006-01-02"),
		}
	}
	return ts
}

func (c Client) getJSON(ctx context.Context, url string, v any) error {
	retryCfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}
	return retry.Do(ctx, retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		res, err := c.httpc.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d from %s", res.StatusCode, url)
		}

		return json.NewDecoder(res.Body).Decode(v)
	})
}

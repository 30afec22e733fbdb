package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop/internal/adapter/httphandler"
	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/service"
)

type staticProducts []domain.Product

func (s staticProducts) FetchProducts(context.Context) ([]domain.Product, error) {
	return s, nil
}

type staticTestimonials []domain.Testimonial

func (s staticTestimonials) FetchTestimonials(context.Context) ([]domain.Testimonial, error) {
	return s, nil
}

type silentNotifier struct{}

func (silentNotifier) Notify(string) {}

type fakePopularity map[string]int64

func (m fakePopularity) AddToCartCount(productID string) (int64, error) {
	return m[productID], nil
}

func storefrontProducts() []domain.Product {
	ps := make([]domain.Product, 12)
	cats := domain.Categories()
	for i := range ps {
		ps[i] = domain.Product{
			ID:          fmt.Sprintf("p%d", i+1),
			Name:        fmt.Sprintf("Cake %d", i+1),
			Category:    cats[i%len(cats)],
			Price:       float64(30 + i),
			Description: "Rich and moist",
			Rating:      4.2,
		}
	}
	return ps
}

func newStorefront(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := service.NewCatalog(staticProducts(storefrontProducts()), nil, 9, 6)
	require.NoError(t, catalog.Load(t.Context()))

	cart := service.NewCart(catalog, silentNotifier{}, nil)

	rotator := service.NewRotator(
		staticTestimonials([]domain.Testimonial{
			{Name: "Anna", Text: "Lovely!"},
			{Name: "Boris", Text: "Great cake"},
		}),
		time.Hour,
	)
	require.NoError(t, rotator.Load(t.Context()))
	t.Cleanup(rotator.Close)

	search := service.NewSearch(catalog, nil, time.Hour)
	t.Cleanup(search.Close)

	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, catalog)
	httphandler.RegisterSearch(mux, search)
	httphandler.RegisterCart(mux, cart)
	httphandler.RegisterTestimonials(mux, rotator)
	httphandler.RegisterPopularity(mux, fakePopularity{"p1": 7})

	srv := httptest.NewServer(httphandler.AllowJSON(mux))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestCatalogEndpoints(t *testing.T) {
	t.Run("GetCatalog", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodGet, srv.URL+"/v1/catalog", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		view := decodeBody[httphandler.CatalogViewResponse](t, res)
		assert.Len(t, view.Products, 9)
		assert.Equal(t, "all", view.Category)
		assert.Equal(t, "featured", view.Sort)
		assert.Equal(t, 12, view.Total)
		assert.True(t, view.HasMore)
	})

	t.Run("PutCategory", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPut, srv.URL+"/v1/catalog/category",
			httphandler.SetCategoryRequest{Category: "chocolate"})

		require.Equal(t, http.StatusOK, res.StatusCode)
		view := decodeBody[httphandler.CatalogViewResponse](t, res)
		assert.Equal(t, "chocolate", view.Category)
		for _, p := range view.Products {
			assert.Equal(t, "chocolate", p.Category)
		}
	})

	t.Run("PutCategoryUnknown", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPut, srv.URL+"/v1/catalog/category",
			httphandler.SetCategoryRequest{Category: "pizza"})

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("PutSort", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPut, srv.URL+"/v1/catalog/sort",
			httphandler.SetSortRequest{Sort: "price-low"})

		require.Equal(t, http.StatusOK, res.StatusCode)
		view := decodeBody[httphandler.CatalogViewResponse](t, res)
		require.NotEmpty(t, view.Products)
		assert.Equal(t, "p1", view.Products[0].ID)
	})

	t.Run("PutSortUnknown", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPut, srv.URL+"/v1/catalog/sort",
			httphandler.SetSortRequest{Sort: "alphabetical"})

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("PostMore", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPost, srv.URL+"/v1/catalog/more", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		view := decodeBody[httphandler.CatalogViewResponse](t, res)
		assert.Len(t, view.Products, 12)
		assert.False(t, view.HasMore)
	})

	t.Run("PostReload", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPost, srv.URL+"/v1/catalog/reload", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		view := decodeBody[httphandler.CatalogViewResponse](t, res)
		assert.Equal(t, "all", view.Category)
		assert.Equal(t, 12, view.Total)
	})

	t.Run("GetProduct", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodGet, srv.URL+"/v1/products/p3", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		p := decodeBody[httphandler.Product](t, res)
		assert.Equal(t, "Cake 3", p.Name)
	})

	t.Run("GetProductNotFound", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodGet, srv.URL+"/v1/products/ghost", nil)

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("Matches", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodGet, srv.URL+"/v1/search?q=cake+1", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		sr := decodeBody[httphandler.SearchResponse](t, res)
		// "Cake 1" plus "Cake 10".."Cake 12"
		assert.Len(t, sr.Results, 4)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodGet, srv.URL+"/v1/search", nil)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestCartEndpoints(t *testing.T) {
	t.Run("AddAndGet", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPost, srv.URL+"/v1/cart/items",
			httphandler.AddCartItemRequest{ProductID: "p1"})
		require.Equal(t, http.StatusOK, res.StatusCode)

		res = doJSON(t, http.MethodPost, srv.URL+"/v1/cart/items",
			httphandler.AddCartItemRequest{ProductID: "p1"})
		require.Equal(t, http.StatusOK, res.StatusCode)

		cart := decodeBody[httphandler.CartResponse](t, res)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, 2, cart.ItemCount)
		assert.InDelta(t, 60.0, cart.Total, 0.001)
	})

	t.Run("AddUnknownProduct", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPost, srv.URL+"/v1/cart/items",
			httphandler.AddCartItemRequest{ProductID: "ghost"})

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("AdjustToZeroRemoves", func(t *testing.T) {
		srv := newStorefront(t)

		doJSON(t, http.MethodPost, srv.URL+"/v1/cart/items",
			httphandler.AddCartItemRequest{ProductID: "p2"})

		res := doJSON(t, http.MethodPatch, srv.URL+"/v1/cart/items/p2",
			httphandler.AdjustQuantityRequest{Delta: -1})

		require.Equal(t, http.StatusOK, res.StatusCode)
		cart := decodeBody[httphandler.CartResponse](t, res)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.ItemCount)
	})

	t.Run("DeleteItem", func(t *testing.T) {
		srv := newStorefront(t)

		doJSON(t, http.MethodPost, srv.URL+"/v1/cart/items",
			httphandler.AddCartItemRequest{ProductID: "p2"})

		res := doJSON(t, http.MethodDelete, srv.URL+"/v1/cart/items/p2", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		cart := decodeBody[httphandler.CartResponse](t, res)
		assert.Empty(t, cart.Items)
	})

	t.Run("CheckoutEmpty", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPost, srv.URL+"/v1/checkout", nil)

		require.Equal(t, http.StatusConflict, res.StatusCode)
		msg := decodeBody[httphandler.MessageResponse](t, res)
		assert.Equal(t, "Your cart is empty!", msg.Message)
	})

	t.Run("Checkout", func(t *testing.T) {
		srv := newStorefront(t)

		doJSON(t, http.MethodPost, srv.URL+"/v1/cart/items",
			httphandler.AddCartItemRequest{ProductID: "p1"})

		res := doJSON(t, http.MethodPost, srv.URL+"/v1/checkout", nil)

		require.Equal(t, http.StatusOK, res.StatusCode)
		msg := decodeBody[httphandler.MessageResponse](t, res)
		assert.Equal(t, "Redirecting to checkout...", msg.Message)
	})
}

func TestTestimonialEndpoints(t *testing.T) {
	t.Run("GetAndAdvance", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodGet, srv.URL+"/v1/testimonials", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		ts := decodeBody[httphandler.TestimonialsResponse](t, res)
		assert.Zero(t, ts.Index)
		assert.Len(t, ts.Testimonials, 2)

		res = doJSON(t, http.MethodPost, srv.URL+"/v1/testimonials/next", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		ts = decodeBody[httphandler.TestimonialsResponse](t, res)
		assert.Equal(t, 1, ts.Index)
	})

	t.Run("PutCurrentOutOfRange", func(t *testing.T) {
		srv := newStorefront(t)

		res := doJSON(t, http.MethodPut, srv.URL+"/v1/testimonials/current",
			httphandler.GoToRequest{Index: 9})

		require.Equal(t, http.StatusOK, res.StatusCode)
		ts := decodeBody[httphandler.TestimonialsResponse](t, res)
		assert.Zero(t, ts.Index)
	})
}

func TestPopularityEndpoint(t *testing.T) {
	srv := newStorefront(t)

	res := doJSON(t, http.MethodGet, srv.URL+"/v1/products/p1/popularity", nil)

	require.Equal(t, http.StatusOK, res.StatusCode)
	pr := decodeBody[httphandler.PopularityResponse](t, res)
	assert.Equal(t, "p1", pr.ProductID)
	assert.Equal(t, int64(7), pr.AddedToCart)
}

func TestAllowJSON(t *testing.T) {
	srv := newStorefront(t)

	req, err := http.NewRequest(
		http.MethodPost, srv.URL+"/v1/cart/items",
		bytes.NewBufferString(`product_id=p1`),
	)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}

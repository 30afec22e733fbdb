package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sweetcrumb/cakeshop/internal/core/domain"
	"github.com/sweetcrumb/cakeshop/internal/core/port"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func toProduct(p domain.Product) Product {
	return Product{
		ID:              p.ID,
		Name:            p.Name,
		Category:        string(p.Category),
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		Image:           p.Image,
		Description:     p.Description,
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		Badge:           string(p.Badge),
		Ingredients:     p.Ingredients,
		Servings:        p.Servings,
		PreparationTime: p.PreparationTime,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = toProduct(p)
	}
	return out
}

// CatalogHandler exposes the derived catalog view and its mutation
// commands: category, sort, pagination and reload.
type CatalogHandler struct {
	catalog port.CatalogOperator
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogOperator) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("PUT /v1/catalog/category", h.PutCategory)
	mux.HandleFunc("PUT /v1/catalog/sort", h.PutSort)
	mux.HandleFunc("POST /v1/catalog/more", h.PostMore)
	mux.HandleFunc("POST /v1/catalog/reload", h.PostReload)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeView(w)
}

func (h CatalogHandler) PutCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PutCategory"
	log := slog.With("op", op)

	var req SetCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	cat, err := domain.ParseCategory(req.Category)
	if err != nil {
		http.Error(w, "unknown category", http.StatusBadRequest)
		log.Warn("rejected category", "category", req.Category)
		return
	}

	h.catalog.SetCategory(r.Context(), cat)
	h.writeView(w)
}

func (h CatalogHandler) PutSort(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PutSort"
	log := slog.With("op", op)

	var req SetSortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	key, err := domain.ParseSortKey(req.Sort)
	if err != nil {
		http.Error(w, "unknown sort key", http.StatusBadRequest)
		log.Warn("rejected sort key", "sort", req.Sort)
		return
	}

	h.catalog.SetSort(r.Context(), key)
	h.writeView(w)
}

func (h CatalogHandler) PostMore(w http.ResponseWriter, r *http.Request) {
	h.catalog.LoadMore()
	h.writeView(w)
}

func (h CatalogHandler) PostReload(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostReload"
	log := slog.With("op", op)

	if err := h.catalog.Load(r.Context()); err != nil {
		http.Error(w, "failed to reload catalog", http.StatusServiceUnavailable)
		log.Error("failed to reload", "err", err)
		return
	}
	h.writeView(w)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.Product(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to read product", http.StatusInternalServerError)
		log.Error("failed to read product", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProduct(p))
}

func (h CatalogHandler) writeView(w http.ResponseWriter) {
	v := h.catalog.View()
	writeJSON(w, http.StatusOK, CatalogViewResponse{
		Products:     toProducts(v.Products),
		Category:     string(v.Category),
		Sort:         string(v.Sort),
		DisplayCount: v.DisplayCount,
		Total:        v.Total,
		HasMore:      v.HasMore,
	})
}

type SearchHandler struct {
	searcher port.Searcher
}

func RegisterSearch(mux *http.ServeMux, searcher port.Searcher) {
	h := SearchHandler{searcher}
	mux.HandleFunc("GET /v1/search", h.GetSearch)
}

func (h SearchHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.GetSearch"
	log := slog.With("op", op)

	query := r.URL.Query().Get("q")
	results, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			http.Error(w, "no query", http.StatusBadRequest)
			return
		}
		http.Error(w, "search failed", http.StatusInternalServerError)
		log.Error("failed to search", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Results: toProducts(results),
	})
}

type CartHandler struct {
	cart port.CartOperator
}

func RegisterCart(mux *http.ServeMux, cart port.CartOperator) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if err := h.cart.Add(r.Context(), req.ProductID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to add item", http.StatusInternalServerError)
		log.Error("failed to add item", "err", err)
		return
	}

	h.writeCart(w)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var req AdjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	id := r.PathValue("id")
	if err := h.cart.AdjustQuantity(r.Context(), id, req.Delta); err != nil {
		http.Error(w, "failed to adjust quantity", http.StatusInternalServerError)
		log.Error("failed to adjust quantity", "err", err)
		return
	}

	h.writeCart(w)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	if err := h.cart.Remove(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "failed to remove item", http.StatusInternalServerError)
		log.Error("failed to remove item", "err", err)
		return
	}

	h.writeCart(w)
}

func (h CartHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostCheckout"
	log := slog.With("op", op)

	msg, err := h.cart.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			writeJSON(w, http.StatusConflict, MessageResponse{
				Message: "Your cart is empty!",
			})
			return
		}
		http.Error(w, "failed to checkout", http.StatusInternalServerError)
		log.Error("failed to checkout", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

func (h CartHandler) writeCart(w http.ResponseWriter) {
	lines := h.cart.Lines()
	items := make([]CartLine, len(lines))
	for i, l := range lines {
		items[i] = CartLine{Product: toProduct(l.Product), Quantity: l.Quantity}
	}

	writeJSON(w, http.StatusOK, CartResponse{
		Items:     items,
		Total:     h.cart.Total(),
		ItemCount: h.cart.ItemCount(),
	})
}

type TestimonialsHandler struct {
	rotator port.TestimonialRotator
}

func RegisterTestimonials(mux *http.ServeMux, rotator port.TestimonialRotator) {
	h := TestimonialsHandler{rotator}
	mux.HandleFunc("GET /v1/testimonials", h.GetTestimonials)
	mux.HandleFunc("POST /v1/testimonials/next", h.PostNext)
	mux.HandleFunc("PUT /v1/testimonials/current", h.PutCurrent)
}

func (h TestimonialsHandler) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	h.writeTestimonials(w)
}

func (h TestimonialsHandler) PostNext(w http.ResponseWriter, r *http.Request) {
	h.rotator.Advance()
	h.writeTestimonials(w)
}

func (h TestimonialsHandler) PutCurrent(w http.ResponseWriter, r *http.Request) {
	const op = "TestimonialsHandler.PutCurrent"
	log := slog.With("op", op)

	var req GoToRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	// out-of-range index is a silent no-op by contract
	h.rotator.GoTo(req.Index)
	h.writeTestimonials(w)
}

func (h TestimonialsHandler) writeTestimonials(w http.ResponseWriter) {
	index, ts := h.rotator.Current()
	out := make([]Testimonial, len(ts))
	for i, t := range ts {
		out[i] = Testimonial{
			Name:   t.Name,
			Avatar: t.Avatar,
			Role:   t.Role,
			Rating: t.Rating,
			Text:   t.Text,
			Date:   t.Date,
		}
	}

	writeJSON(w, http.StatusOK, TestimonialsResponse{
		Index:        index,
		Testimonials: out,
	})
}

type PopularityHandler struct {
	reader port.PopularityReader
}

func RegisterPopularity(mux *http.ServeMux, reader port.PopularityReader) {
	h := PopularityHandler{reader}
	mux.HandleFunc("GET /v1/products/{id}/popularity", h.GetPopularity)
}

func (h PopularityHandler) GetPopularity(w http.ResponseWriter, r *http.Request) {
	const op = "PopularityHandler.GetPopularity"
	log := slog.With("op", op)

	id := r.PathValue("id")
	count, err := h.reader.AddToCartCount(id)
	if err != nil {
		http.Error(w, "failed to read popularity", http.StatusServiceUnavailable)
		log.Error("failed to read popularity", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, PopularityResponse{
		ProductID:   id,
		AddedToCart: count,
	})
}

package httphandler

type (
	Product struct {
		ID              string   `json:"id"`
		Name            string   `json:"name"`
		Category        string   `json:"category"`
		Price           float64  `json:"price"`
		OriginalPrice   float64  `json:"original_price,omitempty"`
		Image           string   `json:"image"`
		Description     string   `json:"description"`
		Rating          float64  `json:"rating"`
		Reviews         int      `json:"reviews"`
		Badge           string   `json:"badge,omitempty"`
		Ingredients     []string `json:"ingredients"`
		Servings        int      `json:"servings"`
		PreparationTime int      `json:"preparation_time"`
	}

	CartLine struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	}

	Testimonial struct {
		Name   string  `json:"name"`
		Avatar string  `json:"avatar"`
		Role   string  `json:"role"`
		Rating float64 `json:"rating"`
		Text   string  `json:"text"`
		Date   string  `json:"date"`
	}
)

type CatalogViewResponse struct {
	Products     []Product `json:"products"`
	Category     string    `json:"category"`
	Sort         string    `json:"sort"`
	DisplayCount int       `json:"display_count"`
	Total        int       `json:"total"`
	HasMore      bool      `json:"has_more"`
}

type SetCategoryRequest struct {
	Category string `json:"category"`
}

type SetSortRequest struct {
	Sort string `json:"sort"`
}

type SearchResponse struct {
	Query   string    `json:"query"`
	Results []Product `json:"results"`
}

type CartResponse struct {
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

type TestimonialsResponse struct {
	Index        int           `json:"index"`
	Testimonials []Testimonial `json:"testimonials"`
}

type GoToRequest struct {
	Index int `json:"index"`
}

type PopularityResponse struct {
	ProductID   string `json:"product_id"`
	AddedToCart int64  `json:"added_to_cart"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package domain

import "errors"

type Category string

const (
	CategoryAll       Category = "all"
	CategoryWedding   Category = "wedding"
	CategoryBirthday  Category = "birthday"
	CategoryChocolate Category = "chocolate"
	CategoryFruit     Category = "fruit"
	CategoryCustom    Category = "custom"
)

// Categories returns the enumerated product categories in bucketing order.
// CategoryAll is a view filter, not a product category, and is not listed.
func Categories() []Category {
	return []Category{
		CategoryWedding,
		CategoryBirthday,
		CategoryChocolate,
		CategoryFruit,
		CategoryCustom,
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c == CategoryAll {
		return c, nil
	}
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest:
		return k, nil
	default:
		return "", ErrUnknownSortKey
	}
}

type Badge string

const (
	BadgeNone Badge = ""
	BadgeNew  Badge = "New"
	BadgeSale Badge = "Sale"
)

type Product struct {
	ID              string
	Name            string
	Category        Category
	Price           float64
	OriginalPrice   float64
	Image           string
	Description     string
	Rating          float64
	Reviews         int
	Badge           Badge
	Ingredients     []string
	Servings        int
	PreparationTime int
}

// A CartLine pairs one product with its quantity.
// Quantity is always >= 1 while the line exists.
type CartLine struct {
	Product  Product
	Quantity int
}

type Testimonial struct {
	Name   string
	Avatar string
	Role   string
	Rating float64
	Text   string
	Date   string
}

// A CatalogView is a derived projection of the catalog: the filtered and
// sorted product list sliced to the pagination cursor.
type CatalogView struct {
	Products     []Product
	Category     Category
	Sort         SortKey
	DisplayCount int
	Total        int
	HasMore      bool
}

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSortKey  = errors.New("unknown sort key")
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrEmptyQuery      = errors.New("empty search query")
	ErrDataShape       = errors.New("unexpected data shape")
)

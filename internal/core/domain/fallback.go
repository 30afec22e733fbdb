package domain

// FallbackProducts returns the built-in product set used when the catalog
// source is unreachable or malformed. The catalog must never stay empty.
func FallbackProducts() []Product {
	return []Product{
		{
			ID:              "1",
			Name:            "Classic Chocolate Dream",
			Category:        CategoryChocolate,
			Price:           45.99,
			OriginalPrice:   65.99,
			Image:           "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=800",
			Description:     "Rich chocolate layers with premium cocoa and silky ganache",
			Rating:          4.8,
			Reviews:         156,
			Badge:           BadgeNew,
			Ingredients:     []string{"Chocolate", "Cream", "Sugar", "Eggs", "Butter"},
			Servings:        8,
			PreparationTime: 45,
		},
		{
			ID:              "2",
			Name:            "Strawberry Romance",
			Category:        CategoryFruit,
			Price:           52.99,
			OriginalPrice:   72.99,
			Image:           "https://images.unsplash.com/photo-1464349095431-e9a21285b5f3?w=800",
			Description:     "Fresh strawberries with vanilla cream in elegant layers",
			Rating:          4.9,
			Reviews:         203,
			Badge:           BadgeSale,
			Ingredients:     []string{"Strawberries", "Vanilla", "Cream", "Sugar"},
			Servings:        10,
			PreparationTime: 60,
		},
		{
			ID:              "3",
			Name:            "Royal Wedding Cake",
			Category:        CategoryWedding,
			Price:           299.99,
			OriginalPrice:   399.99,
			Image:           "https://images.unsplash.com/photo-1535254973040-607b474cb50d?w=800",
			Description:     "Three-tier masterpiece perfect for your special day",
			Rating:          5.0,
			Reviews:         87,
			Badge:           BadgeNone,
			Ingredients:     []string{"Vanilla", "Fondant", "Buttercream", "Edible Flowers"},
			Servings:        50,
			PreparationTime: 180,
		},
	}
}

// FallbackTestimonials returns the built-in testimonial set used when
// either testimonial source fails.
func FallbackTestimonials() []Testimonial {
	return []Testimonial{
		{
			Name:   "Sarah Johnson",
			Avatar: "https://i.pravatar.cc/150?img=1",
			Role:   "Wedding Client",
			Rating: 5.0,
			Text:   "The wedding cake was absolutely stunning! Our guests couldn't stop raving about it. Perfect in every way!",
			Date:   "2024-01-15",
		},
		{
			Name:   "Michael Chen",
			Avatar: "https://i.pravatar.cc/150?img=2",
			Role:   "Birthday Client",
			Rating: 4.9,
			Text:   "Ordered a custom birthday cake and it exceeded all expectations. The attention to detail was incredible!",
			Date:   "2024-01-20",
		},
		{
			Name:   "Emily Rodriguez",
			Avatar: "https://i.pravatar.cc/150?img=3",
			Role:   "Happy Customer",
			Rating: 5.0,
			Text:   "Best cakes in town! Fresh ingredients, beautiful presentation, and heavenly taste. Highly recommended!",
			Date:   "2024-01-25",
		},
	}
}

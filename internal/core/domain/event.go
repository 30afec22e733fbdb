package domain

type EventType string

const (
	EventAddToCart      EventType = "add_to_cart"
	EventRemoveFromCart EventType = "remove_from_cart"
	EventCategoryChange EventType = "category_change"
	EventSearch         EventType = "search"
	EventCheckout       EventType = "checkout"
)

// A ClientEvent is one storefront interaction published to the analytics
// stream. ProductID and Query are filled depending on the event type.
type ClientEvent struct {
	EventID     string
	Type        EventType
	ProductID   string
	ProductName string
	Category    Category
	Query       string
	Quantity    int
	UnixMs      int64
}

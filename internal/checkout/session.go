// Package checkout holds the request-scoped checkout session model. Sessions
// are created and mutated by the cart-sync endpoints; this package only reads
// them for totalling.
package checkout

// LineItem is one cart line with its catalog price data already populated.
type LineItem struct {
	ProductID     string   `json:"product_id"`
	Name          string   `json:"name"`
	Quantity      int      `json:"quantity"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
}

// ActivePrice is the price used for totals: a positive discount price
// supersedes the list price.
func (li LineItem) ActivePrice() float64 {
	if li.DiscountPrice != nil && *li.DiscountPrice > 0 {
		return *li.DiscountPrice
	}
	return li.Price
}

// Session is a shopper's checkout session.
type Session struct {
	ID     string     `json:"id"`
	ShopID string     `json:"shop_id"`
	UserID string     `json:"user_id"`
	Items  []LineItem `json:"items"`
}

// Subtotal sums active price times quantity across all line items. An empty
// session totals 0; non-positive quantities contribute 0.
func (s Session) Subtotal() float64 {
	var total float64
	for _, li := range s.Items {
		if li.Quantity <= 0 {
			continue
		}
		total += li.ActivePrice() * float64(li.Quantity)
	}
	return total
}

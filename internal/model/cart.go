package model

// CartItem is a vehicle held in a session cart. ID is the catalog id and is
// unique within one cart.
type CartItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
	Year     int     `json:"year"`
	Km       int     `json:"km"`
}

// Coupon is an entry of the discount lookup table.
type Coupon struct {
	Code    string  `json:"code"`
	Rate    float64 `json:"rate"`
	Message string  `json:"message"`
}

// DiscountResult is the outcome of applying a coupon code to a cart.
type DiscountResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CartSummary is the cart state together with its derived totals.
type CartSummary struct {
	Items                   []CartItem `json:"items"`
	ItemCount               int        `json:"itemCount"`
	Subtotal                float64    `json:"subtotal"`
	DiscountAmount          float64    `json:"discountAmount"`
	CartTotal               float64    `json:"cartTotal"`
	OrderNote               string     `json:"orderNote"`
	CouponCode              string     `json:"couponCode"`
	Discount                float64    `json:"discount"`
	FormattedSubtotal       string     `json:"formattedSubtotal"`
	FormattedDiscountAmount string     `json:"formattedDiscountAmount"`
	FormattedCartTotal      string     `json:"formattedCartTotal"`
}

// AddToCartRequest represents the request payload for adding an item to the cart.
type AddToCartRequest struct {
	Item     CartItem `json:"item"`
	Quantity *int     `json:"quantity,omitempty"`
}

// ApplyCouponRequest represents the request payload for applying a coupon.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// OrderNoteRequest represents the request payload for setting the order note.
type OrderNoteRequest struct {
	Note string `json:"note"`
}

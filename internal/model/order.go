package model

import "time"

// OrderLine is an item recorded in the payment metadata of an order.
type OrderLine struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is a completed purchase, derived from a succeeded payment intent.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"orderNumber"`
	CreatedAt   time.Time   `json:"createdAt"`
	Status      string      `json:"status"`
	Items       []OrderLine `json:"items"`
	Total       float64     `json:"total"`
	Discount    string      `json:"discount"`
	CouponCode  string      `json:"couponCode"`
	OrderNote   string      `json:"orderNote"`
}

// Payment is a row of the admin payments list.
type Payment struct {
	ID          string            `json:"id"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Status      string            `json:"status"`
	Created     int64             `json:"created"`
	Customer    string            `json:"customer"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// PaymentIntentRequest represents the request payload for starting a checkout.
type PaymentIntentRequest struct {
	CustomerEmail string `json:"customerEmail"`
	Currency      string `json:"currency,omitempty"`
}

// PaymentIntentResponse is returned once a payment intent has been created.
type PaymentIntentResponse struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	OriginalAmount  float64 `json:"originalAmount"`
	AdjustedAmount  float64 `json:"adjustedAmount"`
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// ConfirmOrderRequest represents the request payload for confirming an order.
type ConfirmOrderRequest struct {
	PaymentIntentID string           `json:"paymentIntentId"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerPhone   string           `json:"customerPhone"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
}

// ConfirmOrderResponse is returned once an order has been confirmed.
type ConfirmOrderResponse struct {
	Success     bool    `json:"success"`
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
	Message     string  `json:"message"`
}

// DashboardStats holds the admin dashboard figures.
type DashboardStats struct {
	TotalVehicles int     `json:"totalVehicles"`
	TotalOrders   int     `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	RecentOrders  []Order `json:"recentOrders"`
}

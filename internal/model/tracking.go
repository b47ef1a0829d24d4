package model

// Shipping statuses, in lifecycle order.
const (
	ShippingPending        = "pending"
	ShippingProcessing     = "processing"
	ShippingShipped        = "shipped"
	ShippingInTransit      = "in_transit"
	ShippingOutForDelivery = "out_for_delivery"
	ShippingDelivered      = "delivered"
	ShippingException      = "exception"
)

// Tracking is the shipment status of an order.
type Tracking struct {
	TrackingNumber    string          `json:"trackingNumber"`
	Status            string          `json:"status"`
	OrderDate         string          `json:"orderDate"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
	ActualDelivery    *string         `json:"actualDelivery"`
	Carrier           Carrier         `json:"carrier"`
	TrackingHistory   []TrackingEvent `json:"trackingHistory"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
}

// Carrier describes the company handling a shipment.
type Carrier struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	TrackingURL string `json:"trackingUrl"`
}

// TrackingEvent is one step of a shipment history.
type TrackingEvent struct {
	Status      string `json:"status"`
	Location    string `json:"location"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

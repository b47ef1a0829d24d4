package service

import (
	"context"

	"tasdrives/internal/model"
	"tasdrives/internal/pricing"
)

// CatalogService defines operations for vehicle catalog management.
type CatalogService interface {
	// List retrieves the vehicles matching filter; an empty filter lists all.
	List(ctx context.Context, filter model.VehicleFilter) ([]model.Vehicle, error)

	// GetByID retrieves a single vehicle or model.ErrVehicleNotFound.
	GetByID(ctx context.Context, id int64) (*model.Vehicle, error)

	// GetFeatured retrieves the featured vehicles.
	GetFeatured(ctx context.Context) ([]model.Vehicle, error)

	Create(ctx context.Context, v *model.Vehicle) error
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

// Cart is the part of a session cart the checkout needs.
type Cart interface {
	Summary(formatter *pricing.Formatter) model.CartSummary
	ClearCart(ctx context.Context)
}

// Notifier is the part of a session notification store the checkout needs.
type Notifier interface {
	Add(ctx context.Context, n model.NewNotification) model.Notification
	List() []model.Notification
}

// CheckoutService turns a session cart into a paid order.
type CheckoutService interface {
	// CreatePaymentIntent starts a payment for the current cart total.
	CreatePaymentIntent(ctx context.Context, cart Cart, req *model.PaymentIntentRequest) (*model.PaymentIntentResponse, error)

	// ConfirmOrder verifies the payment with the processor, then records the
	// purchase notification and clears the cart.
	ConfirmOrder(ctx context.Context, cart Cart, notifications Notifier, req *model.ConfirmOrderRequest) (*model.ConfirmOrderResponse, error)

	// HandleWebhook processes a processor notification.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// OrderService derives a customer's order history from the processor.
type OrderService interface {
	ListCustomerOrders(ctx context.Context, email string) ([]model.Order, error)
	GetCustomerOrder(ctx context.Context, email, orderNumber string) (*model.Order, error)
}

// ContactService handles the storefront request forms.
type ContactService interface {
	SendContact(ctx context.Context, req *model.ContactRequest) error
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	CreateAdvisorRequest(ctx context.Context, r *model.AdvisorRequest) error
}

// AdminService provides the back-office reads.
type AdminService interface {
	ListPayments(ctx context.Context) ([]model.Payment, error)
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

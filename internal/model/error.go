package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeMissingField          = "MISSING_FIELD"
	ErrCodeInvalidCoupon         = "INVALID_COUPON"
	ErrCodeInvalidQuantity       = "INVALID_QUANTITY"
	ErrCodeInvalidPrice          = "INVALID_PRICE"
	ErrCodeVehicleNotFound       = "VEHICLE_NOT_FOUND"
	ErrCodeInvalidVehicle        = "INVALID_VEHICLE"
	ErrCodeEmptyCart             = "EMPTY_CART"
	ErrCodeInvalidAmount         = "INVALID_AMOUNT"
	ErrCodeInvalidCurrency       = "INVALID_CURRENCY"
	ErrCodePaymentNotCompleted   = "PAYMENT_NOT_COMPLETED"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeInvalidTrackingNumber = "INVALID_TRACKING_NUMBER"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidCoupon         = NewDomainError(ErrCodeInvalidCoupon, "Cupón inválido o expirado")
	ErrInvalidQuantity       = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPrice          = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrVehicleNotFound       = NewDomainError(ErrCodeVehicleNotFound, "Vehicle not found")
	ErrEmptyCart             = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidAmount         = NewDomainError(ErrCodeInvalidAmount, "A valid amount is required to create a payment")
	ErrInvalidCurrency       = NewDomainError(ErrCodeInvalidCurrency, "Currency is not accepted by this store")
	ErrPaymentNotCompleted   = NewDomainError(ErrCodePaymentNotCompleted, "Payment has not been completed")
	ErrOrderNotFound         = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidTrackingNumber = NewDomainError(ErrCodeInvalidTrackingNumber, "Invalid tracking number")
)

// NewValidationError returns a MISSING_FIELD domain error with the given message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeMissingField, message)
}

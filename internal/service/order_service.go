package service

import (
	"context"
	"encoding/json"
	"strings"

	"tasdrives/internal/model"
	"tasdrives/internal/payment"

	"github.com/rs/zerolog"
)

// orderHistoryLimit is the number of recent intents scanned for orders.
const orderHistoryLimit = 100

// OrderStatusCompleted is the status of every derived order.
const OrderStatusCompleted = "completed"

// orderService implements OrderService.
type orderService struct {
	processor payment.Processor
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(processor payment.Processor, logger zerolog.Logger) OrderService {
	return &orderService{
		processor: processor,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// ListCustomerOrders returns the succeeded payments of email as orders.
func (s *orderService) ListCustomerOrders(ctx context.Context, customerEmail string) ([]model.Order, error) {
	customerEmail = strings.TrimSpace(customerEmail)
	if customerEmail == "" {
		return nil, model.NewValidationError("email is required")
	}

	intents, err := s.processor.ListIntents(ctx, orderHistoryLimit)
	if err != nil {
		return nil, err
	}

	orders := []model.Order{}
	for _, intent := range intents {
		if intent.Status != payment.StatusSucceeded || !strings.EqualFold(intent.ReceiptEmail, customerEmail) {
			continue
		}
		orders = append(orders, toOrder(intent))
	}

	s.logger.Debug().Int("scanned", len(intents)).Int("orders", len(orders)).Msg("customer orders listed")
	return orders, nil
}

// GetCustomerOrder returns one order of email by its order number.
func (s *orderService) GetCustomerOrder(ctx context.Context, customerEmail, orderNumber string) (*model.Order, error) {
	orders, err := s.ListCustomerOrders(ctx, customerEmail)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].OrderNumber == orderNumber {
			return &orders[i], nil
		}
	}
	return nil, model.ErrOrderNotFound
}

// toOrder derives an order from a payment intent and its metadata.
func toOrder(intent payment.Intent) model.Order {
	items := []model.OrderLine{}
	if raw := intent.Metadata[MetaItems]; raw != "" {
		var decoded []model.OrderLine
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil && decoded != nil {
			items = decoded
		}
	}

	return model.Order{
		ID:          intent.ID,
		OrderNumber: payment.OrderNumber(intent.ID, intent.Created),
		CreatedAt:   intent.CreatedAt(),
		Status:      OrderStatusCompleted,
		Items:       items,
		Total:       originalAmount(intent),
		Discount:    intent.Metadata[MetaDiscount],
		CouponCode:  intent.Metadata[MetaCouponCode],
		OrderNote:   intent.Metadata[MetaOrderNote],
	}
}

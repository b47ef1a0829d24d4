package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tasdrives/internal/cart"
	"tasdrives/internal/coupon"
	"tasdrives/internal/email"
	"tasdrives/internal/model"
	"tasdrives/internal/notification"
	"tasdrives/internal/payment"
	"tasdrives/internal/pricing"
	"tasdrives/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T, items ...model.CartItem) *cart.Store {
	t.Helper()

	coupons := coupon.NewStaticValidator(coupon.DefaultCoupons, zerolog.Nop())
	store := cart.NewStore(storage.NewMemoryKV(), coupons, zerolog.Nop())
	require.NoError(t, store.Init(context.Background()))

	for _, item := range items {
		require.NoError(t, store.AddToCart(context.Background(), item, item.Quantity))
	}
	return store
}

func newTestNotifications(t *testing.T) *notification.Store {
	t.Helper()

	store := notification.NewStore(storage.NewMemoryKV(), zerolog.Nop())
	require.NoError(t, store.Init(context.Background()))
	return store
}

func newTestCheckout(processor payment.Processor, sender email.Sender, demo bool) CheckoutService {
	return NewCheckoutService(processor, sender, pricing.Default(), CheckoutConfig{Currency: "mxn", DemoScaling: demo}, zerolog.Nop())
}

var corolla = model.CartItem{ID: 1, Name: "Toyota Corolla 2022", Price: 350000, Quantity: 1, Year: 2022, Km: 15000}

func TestCheckoutService_CreatePaymentIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		processor := new(MockProcessor)
		svc := newTestCheckout(processor, new(MockSender), false)

		_, err := svc.CreatePaymentIntent(ctx, newTestCart(t), &model.PaymentIntentRequest{})

		assert.ErrorIs(t, err, model.ErrEmptyCart)
		processor.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
	})

	t.Run("zero total", func(t *testing.T) {
		processor := new(MockProcessor)
		svc := newTestCheckout(processor, new(MockSender), false)
		free := model.CartItem{ID: 2, Name: "Accesorio", Price: 0, Quantity: 1}

		_, err := svc.CreatePaymentIntent(ctx, newTestCart(t, free), nil)

		assert.ErrorIs(t, err, model.ErrInvalidAmount)
	})

	t.Run("intent carries cart metadata", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		svc := newTestCheckout(processor, new(MockSender), false)
		c := newTestCart(t, corolla)
		c.SetOrderNote(ctx, "Entregar en sucursal")
		result, err := c.ApplyDiscount(ctx, "TASDRIVES10")
		require.NoError(t, err)
		require.True(t, result.Success)

		resp, err := svc.CreatePaymentIntent(ctx, c, &model.PaymentIntentRequest{CustomerEmail: " ana@example.com "})
		require.NoError(t, err)

		assert.InDelta(t, 315000, resp.OriginalAmount, 0.001)
		assert.InDelta(t, 315000, resp.AdjustedAmount, 0.001)
		assert.NotEmpty(t, resp.ClientSecret)

		intent, err := processor.GetIntent(ctx, resp.PaymentIntentID)
		require.NoError(t, err)
		assert.Equal(t, int64(31500000), intent.Amount)
		assert.Equal(t, "mxn", intent.Currency)
		assert.Equal(t, "ana@example.com", intent.ReceiptEmail)
		assert.Equal(t, "Pedido TasDrives (1 artículos)", intent.Description)
		assert.Equal(t, "Entregar en sucursal", intent.Metadata[MetaOrderNote])
		assert.Equal(t, "TASDRIVES10", intent.Metadata[MetaCouponCode])
		assert.Equal(t, "0.1", intent.Metadata[MetaDiscount])
		assert.Equal(t, "315000.00", intent.Metadata[MetaOriginalAmount])

		var lines []model.OrderLine
		require.NoError(t, json.Unmarshal([]byte(intent.Metadata[MetaItems]), &lines))
		require.Len(t, lines, 1)
		assert.Equal(t, corolla.Name, lines[0].Name)
	})

	t.Run("demo scaling divides large totals", func(t *testing.T) {
		processor := new(MockProcessor)
		processor.On("CreateIntent", ctx, mock.MatchedBy(func(req payment.IntentRequest) bool {
			return req.Amount == 1200
		})).Return(&payment.Intent{ID: "pi_demo", ClientSecret: "secret"}, nil)
		svc := newTestCheckout(processor, new(MockSender), true)
		suv := model.CartItem{ID: 3, Name: "SUV", Price: 1200000, Quantity: 1}

		resp, err := svc.CreatePaymentIntent(ctx, newTestCart(t, suv), nil)

		require.NoError(t, err)
		assert.Equal(t, 1200000.0, resp.OriginalAmount)
		assert.Equal(t, 1200.0, resp.AdjustedAmount)
		processor.AssertExpectations(t)
	})

	t.Run("store currency is accepted in any case", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		svc := newTestCheckout(processor, new(MockSender), false)

		resp, err := svc.CreatePaymentIntent(ctx, newTestCart(t, corolla), &model.PaymentIntentRequest{Currency: " MXN "})
		require.NoError(t, err)

		intent, err := processor.GetIntent(ctx, resp.PaymentIntentID)
		require.NoError(t, err)
		assert.Equal(t, "mxn", intent.Currency)
		assert.Equal(t, int64(35000000), intent.Amount)
	})

	t.Run("foreign currency is rejected", func(t *testing.T) {
		for _, currency := range []string{"usd", "JPY"} {
			processor := new(MockProcessor)
			svc := newTestCheckout(processor, new(MockSender), false)

			_, err := svc.CreatePaymentIntent(ctx, newTestCart(t, corolla), &model.PaymentIntentRequest{Currency: currency})

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr, currency)
			assert.Equal(t, model.ErrCodeInvalidCurrency, domainErr.Code)
			processor.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
		}
	})

	t.Run("processor error", func(t *testing.T) {
		processor := new(MockProcessor)
		processor.On("CreateIntent", ctx, mock.Anything).Return(nil, errors.New("card network down"))
		svc := newTestCheckout(processor, new(MockSender), false)

		_, err := svc.CreatePaymentIntent(ctx, newTestCart(t, corolla), nil)

		assert.EqualError(t, err, "card network down")
	})
}

func TestCheckoutService_ConfirmOrder(t *testing.T) {
	ctx := context.Background()

	start := func(t *testing.T, processor *payment.MemoryProcessor, c *cart.Store, customer string) string {
		t.Helper()
		svc := newTestCheckout(processor, email.NewLogSender(zerolog.Nop()), false)
		resp, err := svc.CreatePaymentIntent(ctx, c, &model.PaymentIntentRequest{CustomerEmail: customer})
		require.NoError(t, err)
		return resp.PaymentIntentID
	}

	t.Run("missing intent id", func(t *testing.T) {
		svc := newTestCheckout(new(MockProcessor), new(MockSender), false)

		_, err := svc.ConfirmOrder(ctx, newTestCart(t), newTestNotifications(t), &model.ConfirmOrderRequest{})

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeMissingField, domainErr.Code)
	})

	t.Run("unknown intent", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		svc := newTestCheckout(processor, new(MockSender), false)

		_, err := svc.ConfirmOrder(ctx, newTestCart(t), newTestNotifications(t), &model.ConfirmOrderRequest{PaymentIntentID: "pi_missing"})

		assert.ErrorIs(t, err, model.ErrPaymentNotCompleted)
	})

	t.Run("payment not succeeded leaves cart intact", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		c := newTestCart(t, corolla)
		notifications := newTestNotifications(t)
		id := start(t, processor, c, "ana@example.com")
		svc := newTestCheckout(processor, new(MockSender), false)

		_, err := svc.ConfirmOrder(ctx, c, notifications, &model.ConfirmOrderRequest{PaymentIntentID: id})

		assert.ErrorIs(t, err, model.ErrPaymentNotCompleted)
		assert.Equal(t, 1, c.ItemCount())
		assert.Empty(t, notifications.List())
	})

	t.Run("succeeded payment completes order", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		c := newTestCart(t, corolla)
		notifications := newTestNotifications(t)
		id := start(t, processor, c, "ana@example.com")
		require.NoError(t, processor.Succeed(id))

		sender := new(MockSender)
		sender.On("Send", ctx, mock.MatchedBy(func(msg email.Message) bool {
			return msg.Type == email.TypeOrderConfirmation &&
				len(msg.To) == 1 && msg.To[0] == "ana@example.com" &&
				strings.Contains(msg.HTML, "Ana")
		})).Return(nil)
		svc := newTestCheckout(processor, sender, false)

		resp, err := svc.ConfirmOrder(ctx, c, notifications, &model.ConfirmOrderRequest{
			PaymentIntentID: id,
			CustomerName:    "Ana",
		})
		require.NoError(t, err)

		assert.True(t, resp.Success)
		assert.True(t, strings.HasPrefix(resp.OrderNumber, "TAS-"))
		assert.Equal(t, 350000.0, resp.Total)
		assert.Equal(t, "Pedido confirmado", resp.Message)
		assert.Equal(t, 0, c.ItemCount())

		list := notifications.List()
		require.Len(t, list, 1)
		assert.Equal(t, model.NotificationPurchase, list[0].Type)
		require.NotNil(t, list[0].Data)
		assert.Equal(t, resp.OrderNumber, list[0].Data.OrderNumber)
		sender.AssertExpectations(t)
	})

	t.Run("confirming twice adds one notification", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		c := newTestCart(t, corolla)
		notifications := newTestNotifications(t)
		id := start(t, processor, c, "")
		require.NoError(t, processor.Succeed(id))
		svc := newTestCheckout(processor, new(MockSender), false)

		first, err := svc.ConfirmOrder(ctx, c, notifications, &model.ConfirmOrderRequest{PaymentIntentID: id})
		require.NoError(t, err)
		second, err := svc.ConfirmOrder(ctx, c, notifications, &model.ConfirmOrderRequest{PaymentIntentID: id})
		require.NoError(t, err)

		assert.Equal(t, first.OrderNumber, second.OrderNumber)
		assert.Len(t, notifications.List(), 1)
	})

	t.Run("email failure does not fail the order", func(t *testing.T) {
		processor := payment.NewMemoryProcessor(zerolog.Nop())
		c := newTestCart(t, corolla)
		id := start(t, processor, c, "ana@example.com")
		require.NoError(t, processor.Succeed(id))

		sender := new(MockSender)
		sender.On("Send", ctx, mock.Anything).Return(errors.New("smtp unavailable"))
		svc := newTestCheckout(processor, sender, false)

		resp, err := svc.ConfirmOrder(ctx, c, newTestNotifications(t), &model.ConfirmOrderRequest{PaymentIntentID: id})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		sender.AssertExpectations(t)
	})

	t.Run("processor error is returned", func(t *testing.T) {
		processor := new(MockProcessor)
		processor.On("GetIntent", ctx, "pi_1").Return(nil, errors.New("timeout"))
		svc := newTestCheckout(processor, new(MockSender), false)

		_, err := svc.ConfirmOrder(ctx, newTestCart(t, corolla), newTestNotifications(t), &model.ConfirmOrderRequest{PaymentIntentID: "pi_1"})

		assert.EqualError(t, err, "timeout")
	})
}

func TestCheckoutService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid signature", func(t *testing.T) {
		processor := new(MockProcessor)
		processor.On("ParseWebhook", []byte("{}"), "bad").Return(nil, payment.ErrInvalidSignature)
		svc := newTestCheckout(processor, new(MockSender), false)

		err := svc.HandleWebhook(ctx, []byte("{}"), "bad")

		assert.ErrorIs(t, err, payment.ErrInvalidSignature)
	})

	t.Run("succeeded event", func(t *testing.T) {
		processor := new(MockProcessor)
		processor.On("ParseWebhook", mock.Anything, "sig").Return(&payment.WebhookEvent{
			ID:     "evt_1",
			Type:   payment.EventPaymentIntentSucceeded,
			Intent: &payment.Intent{ID: "pi_12345678", Amount: 100, Created: 1700000000},
		}, nil)
		svc := newTestCheckout(processor, new(MockSender), false)

		assert.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))
	})

	t.Run("other events are ignored", func(t *testing.T) {
		processor := new(MockProcessor)
		processor.On("ParseWebhook", mock.Anything, "sig").Return(&payment.WebhookEvent{ID: "evt_2", Type: "charge.refunded"}, nil)
		svc := newTestCheckout(processor, new(MockSender), false)

		assert.NoError(t, svc.HandleWebhook(ctx, []byte("{}"), "sig"))
	})
}

func TestEncodeOrderLines_FitsMetadataLimit(t *testing.T) {
	items := make([]model.CartItem, 0, 20)
	for i := 1; i <= 20; i++ {
		items = append(items, model.CartItem{ID: i, Name: strings.Repeat("x", 40), Price: 1000, Quantity: 1})
	}

	encoded := encodeOrderLines(items)

	assert.LessOrEqual(t, len(encoded), maxMetadataValue)
	var lines []model.OrderLine
	require.NoError(t, json.Unmarshal([]byte(encoded), &lines))
	assert.NotEmpty(t, lines)
	assert.Less(t, len(lines), len(items))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	// "ñ" is two bytes; cutting inside it backs off to the rune start.
	assert.Equal(t, "a", truncate("añb", 2))
}

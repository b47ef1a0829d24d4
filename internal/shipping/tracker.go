// Package shipping simulates shipment tracking. The status of a shipment is
// derived from the last character of its tracking number.
package shipping

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"tasdrives/internal/model"
)

// MinTrackingNumberLength is the shortest accepted tracking number.
const MinTrackingNumberLength = 8

const (
	day           = 24 * time.Hour
	maxOrderAge   = 10 * day
	timestampISO  = "2006-01-02T15:04:05.000Z"
	eventReceived = "order_received"
)

// statuses is indexed by the lifecycle position of a shipment.
var statuses = []string{
	model.ShippingPending,
	model.ShippingProcessing,
	model.ShippingShipped,
	model.ShippingInTransit,
	model.ShippingOutForDelivery,
	model.ShippingDelivered,
	model.ShippingException,
}

// DefaultCarrier returns the carrier details of the in-house courier.
func DefaultCarrier(trackingNumber string) model.Carrier {
	return model.Carrier{
		Name:        "TasDrives Express",
		Phone:       "+34 912 345 678",
		Email:       "envios@tasdrives.com",
		TrackingURL: "https://tasdrives.com/tracking/" + trackingNumber,
	}
}

// DefaultAddress is the placeholder delivery address of simulated shipments.
var DefaultAddress = model.ShippingAddress{
	Name:       "Cliente de Ejemplo",
	Street:     "Calle Principal 123",
	City:       "Madrid",
	State:      "Madrid",
	PostalCode: "28001",
	Country:    "España",
}

// Tracker produces tracking information for tracking numbers.
type Tracker struct {
	mu   sync.Mutex
	now  func() time.Time
	rand *rand.Rand
}

// NewTracker creates a tracker using the wall clock and a random seed.
func NewTracker() *Tracker {
	return NewTrackerWith(time.Now, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewTrackerWith creates a tracker with an explicit clock and random source.
func NewTrackerWith(now func() time.Time, r *rand.Rand) *Tracker {
	return &Tracker{now: now, rand: r}
}

// StatusIndex maps a tracking number to its position in the lifecycle:
// last digit 1-3 processing, 4-6 in transit, 7 out for delivery, 8-9
// delivered, 0 exception, anything else pending.
func StatusIndex(trackingNumber string) int {
	if trackingNumber == "" {
		return 0
	}

	last := trackingNumber[len(trackingNumber)-1]
	switch {
	case last >= '1' && last <= '3':
		return 1
	case last >= '4' && last <= '6':
		return 3
	case last == '7':
		return 4
	case last == '8' || last == '9':
		return 5
	case last == '0':
		return 6
	default:
		return 0
	}
}

// Track returns the simulated tracking of trackingNumber.
func (t *Tracker) Track(trackingNumber string) (*model.Tracking, error) {
	if len(trackingNumber) < MinTrackingNumberLength {
		return nil, model.ErrInvalidTrackingNumber
	}

	t.mu.Lock()
	now := t.now().UTC()
	age := time.Duration(t.rand.Int64N(int64(maxOrderAge)))
	deliveryDays := 3 + t.rand.IntN(5)
	t.mu.Unlock()

	index := StatusIndex(trackingNumber)
	orderDate := now.Add(-age)
	estimated := orderDate.Add(time.Duration(deliveryDays) * day)

	type event struct {
		at time.Time
		model.TrackingEvent
	}
	history := []event{{
		at: orderDate,
		TrackingEvent: model.TrackingEvent{
			Status:      eventReceived,
			Location:    "Centro de procesamiento, Madrid",
			Description: "Pedido recibido y registrado en el sistema",
		},
	}}
	add := func(after time.Duration, status, location, description string) {
		history = append(history, event{
			at: orderDate.Add(after),
			TrackingEvent: model.TrackingEvent{
				Status:      status,
				Location:    location,
				Description: description,
			},
		})
	}

	if index >= 1 {
		add(day, model.ShippingProcessing, "Centro de procesamiento, Madrid", "Pedido en preparación")
	}
	if index >= 2 {
		add(2*day, model.ShippingShipped, "Centro de distribución, Madrid", "Pedido enviado")
	}
	if index >= 3 {
		add(3*day, model.ShippingInTransit, "En ruta hacia destino", "El pedido está en camino hacia la dirección de entrega")
	}
	if index >= 4 {
		add(time.Duration(deliveryDays-1)*day, model.ShippingOutForDelivery, "Centro de distribución local", "El pedido está en reparto para entrega hoy")
	}
	if index == 5 {
		add(time.Duration(deliveryDays)*day, model.ShippingDelivered, "Dirección de entrega", "Pedido entregado con éxito")
	}
	if index == 6 {
		add(3*day, model.ShippingException, "Centro de distribución", "Problema con la entrega. Contacte con atención al cliente.")
	}

	sort.SliceStable(history, func(i, j int) bool { return history[i].at.Before(history[j].at) })

	events := make([]model.TrackingEvent, len(history))
	for i, e := range history {
		e.Timestamp = e.at.Format(timestampISO)
		events[i] = e.TrackingEvent
	}

	status := statuses[index]
	tracking := &model.Tracking{
		TrackingNumber:    trackingNumber,
		Status:            status,
		OrderDate:         orderDate.Format(timestampISO),
		EstimatedDelivery: estimated.Format(timestampISO),
		Carrier:           DefaultCarrier(trackingNumber),
		TrackingHistory:   events,
		ShippingAddress:   DefaultAddress,
	}
	if status == model.ShippingDelivered {
		delivered := events[len(events)-1].Timestamp
		tracking.ActualDelivery = &delivered
	}

	return tracking, nil
}

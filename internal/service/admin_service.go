package service

import (
	"context"

	"tasdrives/internal/model"
	"tasdrives/internal/payment"
	"tasdrives/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// recentOrdersOnDashboard is the number of orders shown on the dashboard.
const recentOrdersOnDashboard = 5

// adminService implements AdminService.
type adminService struct {
	vehicles  repository.VehicleRepository
	processor payment.Processor
	logger    zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(vehicles repository.VehicleRepository, processor payment.Processor, logger zerolog.Logger) AdminService {
	return &adminService{
		vehicles:  vehicles,
		processor: processor,
		logger:    logger.With().Str("service", "admin").Logger(),
	}
}

// ListPayments lists the most recent payments.
func (s *adminService) ListPayments(ctx context.Context) ([]model.Payment, error) {
	intents, err := s.processor.ListIntents(ctx, orderHistoryLimit)
	if err != nil {
		return nil, err
	}

	payments := make([]model.Payment, 0, len(intents))
	for _, intent := range intents {
		payments = append(payments, model.Payment{
			ID:          intent.ID,
			Amount:      intent.Amount,
			Currency:    intent.Currency,
			Status:      intent.Status,
			Created:     intent.Created,
			Customer:    intent.ReceiptEmail,
			Description: intent.Description,
			Metadata:    intent.Metadata,
		})
	}
	return payments, nil
}

// Dashboard computes the catalog size and sales figures.
func (s *adminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	count, err := s.vehicles.Count(ctx)
	if err != nil {
		return nil, err
	}

	intents, err := s.processor.ListIntents(ctx, orderHistoryLimit)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalVehicles: count,
		RecentOrders:  []model.Order{},
	}

	revenue := decimal.Zero
	for _, intent := range intents {
		if intent.Status != payment.StatusSucceeded {
			continue
		}
		stats.TotalOrders++
		revenue = revenue.Add(decimal.NewFromFloat(originalAmount(intent)))
		if len(stats.RecentOrders) < recentOrdersOnDashboard {
			stats.RecentOrders = append(stats.RecentOrders, toOrder(intent))
		}
	}
	stats.TotalRevenue = revenue.Round(2).InexactFloat64()

	s.logger.Debug().
		Int("vehicles", stats.TotalVehicles).
		Int("orders", stats.TotalOrders).
		Msg("dashboard computed")

	return stats, nil
}

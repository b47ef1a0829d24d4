package repository

import (
	"context"
	"fmt"

	"tasdrives/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// leadRepository implements the LeadRepository interface using PostgreSQL.
type leadRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLeadRepository creates a new PostgreSQL-backed lead repository.
func NewLeadRepository(pool *pgxpool.Pool, logger zerolog.Logger) LeadRepository {
	return &leadRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "lead").Logger(),
	}
}

// CreateAppointment inserts a pending appointment.
func (r *leadRepository) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if a.Status == "" {
		a.Status = model.LeadStatusPending
	}

	query := `
		INSERT INTO appointments (name, email, phone, service, appointment_date, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		a.Name, a.Email, a.Phone, a.Service, a.AppointmentDate, a.Message, a.Status,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", a.Email).Msg("failed to create appointment")
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	r.logger.Debug().Int64("appointment_id", a.ID).Msg("appointment created successfully")
	return nil
}

// CreateAdvisorRequest inserts a pending advisor request.
func (r *leadRepository) CreateAdvisorRequest(ctx context.Context, req *model.AdvisorRequest) error {
	if req.Status == "" {
		req.Status = model.LeadStatusPending
	}

	query := `
		INSERT INTO advisor_requests (name, email, phone, interest, budget, message, preferred_contact, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		req.Name, req.Email, req.Phone, req.Interest, req.Budget, req.Message, req.PreferredContact, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", req.Email).Msg("failed to create advisor request")
		return fmt.Errorf("failed to create advisor request: %w", err)
	}

	r.logger.Debug().Int64("advisor_request_id", req.ID).Msg("advisor request created successfully")
	return nil
}

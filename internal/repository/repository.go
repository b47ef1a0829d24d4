package repository

import (
	"context"

	"tasdrives/internal/model"
)

// VehicleRepository defines the interface for catalog data access operations.
type VehicleRepository interface {
	// GetAll retrieves every vehicle ordered by id.
	GetAll(ctx context.Context) ([]model.Vehicle, error)

	// GetByID retrieves a single vehicle. It returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Vehicle, error)

	// GetFeatured retrieves the vehicles flagged as featured.
	GetFeatured(ctx context.Context) ([]model.Vehicle, error)

	// Filter retrieves the vehicles matching every criterion of filter.
	Filter(ctx context.Context, filter model.VehicleFilter) ([]model.Vehicle, error)

	// Count returns the number of vehicles in the catalog.
	Count(ctx context.Context) (int, error)

	// Create inserts v and fills in its id and timestamps.
	Create(ctx context.Context, v *model.Vehicle) error

	// Update overwrites the vehicle with v.ID. It returns
	// model.ErrVehicleNotFound when no such vehicle exists.
	Update(ctx context.Context, v *model.Vehicle) error

	// Delete removes a vehicle. It returns model.ErrVehicleNotFound when no
	// such vehicle exists.
	Delete(ctx context.Context, id int64) error
}

// LeadRepository stores customer requests coming from the storefront forms.
type LeadRepository interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	CreateAdvisorRequest(ctx context.Context, r *model.AdvisorRequest) error
}

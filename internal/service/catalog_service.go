package service

import (
	"context"
	"strings"
	"time"

	"tasdrives/internal/model"
	"tasdrives/internal/repository"

	"github.com/rs/zerolog"
)

// minVehicleYear is the year of the first production automobile.
const minVehicleYear = 1886

// catalogService implements CatalogService.
type catalogService struct {
	repo   repository.VehicleRepository
	logger zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.VehicleRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// List retrieves the vehicles matching filter.
func (s *catalogService) List(ctx context.Context, filter model.VehicleFilter) ([]model.Vehicle, error) {
	if filter.IsEmpty() {
		return s.repo.GetAll(ctx)
	}

	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		return nil, model.NewDomainError(model.ErrCodeInvalidVehicle, "precioMin must not exceed precioMax")
	}

	s.logger.Debug().
		Strs("brands", filter.Brands).
		Strs("categories", filter.Categories).
		Ints("years", filter.Years).
		Msg("filtering vehicles")

	return s.repo.Filter(ctx, filter)
}

// GetByID retrieves a single vehicle by ID.
func (s *catalogService) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, model.ErrVehicleNotFound
	}
	return v, nil
}

func (s *catalogService) GetFeatured(ctx context.Context) ([]model.Vehicle, error) {
	return s.repo.GetFeatured(ctx)
}

// Create validates and stores a new vehicle.
func (s *catalogService) Create(ctx context.Context, v *model.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return err
	}

	s.logger.Info().Int64("vehicle_id", v.ID).Str("name", v.Name).Msg("vehicle created")
	return nil
}

// Update validates and overwrites an existing vehicle.
func (s *catalogService) Update(ctx context.Context, v *model.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return err
	}

	s.logger.Info().Int64("vehicle_id", v.ID).Msg("vehicle updated")
	return nil
}

func (s *catalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("vehicle_id", id).Msg("vehicle deleted")
	return nil
}

func validateVehicle(v *model.Vehicle) error {
	v.Name = strings.TrimSpace(v.Name)
	v.Brand = strings.TrimSpace(v.Brand)

	switch {
	case v.Name == "":
		return model.NewDomainError(model.ErrCodeInvalidVehicle, "nombre is required")
	case v.Brand == "":
		return model.NewDomainError(model.ErrCodeInvalidVehicle, "marca is required")
	case v.Price < 0:
		return model.ErrInvalidPrice
	case v.Year < minVehicleYear || v.Year > time.Now().Year()+1:
		return model.NewDomainError(model.ErrCodeInvalidVehicle, "anio is out of range")
	case v.Mileage < 0:
		return model.NewDomainError(model.ErrCodeInvalidVehicle, "kilometraje must not be negative")
	case v.Stock < 0:
		return model.NewDomainError(model.ErrCodeInvalidVehicle, "stock must not be negative")
	}
	return nil
}

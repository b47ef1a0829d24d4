package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tasdrives/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const vehicleColumns = `
	id, nombre, marca, categoria, anio, kilometraje, precio, color, destacado,
	etiqueta, imagen, imagenes, video_url, descripcion, caracteristicas,
	especificaciones, stock, created_at, updated_at`

// vehicleRepository implements the VehicleRepository interface using PostgreSQL.
type vehicleRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVehicleRepository creates a new PostgreSQL-backed vehicle repository.
func NewVehicleRepository(pool *pgxpool.Pool, logger zerolog.Logger) VehicleRepository {
	return &vehicleRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "vehicle").Logger(),
	}
}

// GetAll retrieves every vehicle ordered by id.
func (r *vehicleRepository) GetAll(ctx context.Context) ([]model.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles ORDER BY id`
	return r.queryVehicles(ctx, query)
}

// GetByID retrieves a single vehicle by its ID.
func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	v, err := r.scanVehicle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("vehicle_id", id).Msg("vehicle not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("vehicle_id", id).Msg("failed to query vehicle")
		return nil, fmt.Errorf("failed to query vehicle: %w", err)
	}

	return v, nil
}

// GetFeatured retrieves the featured vehicles.
func (r *vehicleRepository) GetFeatured(ctx context.Context) ([]model.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE destacado ORDER BY id`
	return r.queryVehicles(ctx, query)
}

// Filter retrieves the vehicles matching filter.
func (r *vehicleRepository) Filter(ctx context.Context, filter model.VehicleFilter) ([]model.Vehicle, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if len(filter.Brands) > 0 {
		add("marca = ANY(?)", filter.Brands)
	}
	if len(filter.Categories) > 0 {
		add("categoria = ANY(?)", filter.Categories)
	}
	if len(filter.Years) > 0 {
		add("anio = ANY(?)", filter.Years)
	}
	if filter.PriceMin != nil {
		add("precio >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		add("precio <= ?", *filter.PriceMax)
	}

	query := `SELECT` + vehicleColumns + ` FROM vehicles`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY id`

	return r.queryVehicles(ctx, query, args...)
}

// Count returns the number of vehicles in the catalog.
func (r *vehicleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count vehicles")
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}

// Create inserts a new vehicle.
func (r *vehicleRepository) Create(ctx context.Context, v *model.Vehicle) error {
	images, features, specs, err := encodeJSONColumns(v)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vehicles (
			nombre, marca, categoria, anio, kilometraje, precio, color, destacado,
			etiqueta, imagen, imagenes, video_url, descripcion, caracteristicas,
			especificaciones, stock
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query,
		v.Name, v.Brand, v.Category, v.Year, v.Mileage, v.Price, v.Color, v.Featured,
		v.Label, v.Image, images, v.VideoURL, v.Description, features, specs, v.Stock,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", v.Name).Msg("failed to create vehicle")
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	r.logger.Debug().Int64("vehicle_id", v.ID).Msg("vehicle created successfully")
	return nil
}

// Update overwrites an existing vehicle.
func (r *vehicleRepository) Update(ctx context.Context, v *model.Vehicle) error {
	images, features, specs, err := encodeJSONColumns(v)
	if err != nil {
		return err
	}

	query := `
		UPDATE vehicles SET
			nombre = $2, marca = $3, categoria = $4, anio = $5, kilometraje = $6,
			precio = $7, color = $8, destacado = $9, etiqueta = $10, imagen = $11,
			imagenes = $12, video_url = $13, descripcion = $14, caracteristicas = $15,
			especificaciones = $16, stock = $17, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query, v.ID,
		v.Name, v.Brand, v.Category, v.Year, v.Mileage, v.Price, v.Color, v.Featured,
		v.Label, v.Image, images, v.VideoURL, v.Description, features, specs, v.Stock,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrVehicleNotFound
		}
		r.logger.Error().Err(err).Int64("vehicle_id", v.ID).Msg("failed to update vehicle")
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	r.logger.Debug().Int64("vehicle_id", v.ID).Msg("vehicle updated successfully")
	return nil
}

// Delete removes a vehicle.
func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("vehicle_id", id).Msg("failed to delete vehicle")
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVehicleNotFound
	}

	r.logger.Debug().Int64("vehicle_id", id).Msg("vehicle deleted successfully")
	return nil
}

func (r *vehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]model.Vehicle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vehicles")
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []model.Vehicle{}
	for rows.Next() {
		v, err := r.scanVehicle(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan vehicle row")
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating vehicle rows")
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

// scanVehicle reads one row and decodes its JSON text columns.
func (r *vehicleRepository) scanVehicle(row pgx.Row) (*model.Vehicle, error) {
	var (
		v                       model.Vehicle
		images, features, specs *string
	)

	err := row.Scan(
		&v.ID, &v.Name, &v.Brand, &v.Category, &v.Year, &v.Mileage, &v.Price, &v.Color,
		&v.Featured, &v.Label, &v.Image, &images, &v.VideoURL, &v.Description, &features,
		&specs, &v.Stock, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Images = decodeStringList(images, r.logger, v.ID, "imagenes")
	v.Features = decodeStringList(features, r.logger, v.ID, "caracteristicas")
	v.Specs = decodeSpecs(specs, r.logger, v.ID)

	if len(v.Images) == 0 && v.Image != "" {
		v.Images = []string{v.Image}
	}

	return &v, nil
}

func decodeStringList(raw *string, logger zerolog.Logger, id int64, column string) []string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}

	var list []string
	if err := json.Unmarshal([]byte(*raw), &list); err != nil {
		logger.Warn().Err(err).Int64("vehicle_id", id).Str("column", column).Msg("malformed JSON column ignored")
		return nil
	}
	return list
}

// decodeSpecs accepts any JSON object and renders non-string values as text.
func decodeSpecs(raw *string, logger zerolog.Logger, id int64) map[string]string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(*raw), &values); err != nil {
		logger.Warn().Err(err).Int64("vehicle_id", id).Str("column", "especificaciones").Msg("malformed JSON column ignored")
		return nil
	}

	specs := make(map[string]string, len(values))
	for k, val := range values {
		switch t := val.(type) {
		case string:
			specs[k] = t
		case nil:
			specs[k] = ""
		default:
			specs[k] = fmt.Sprint(t)
		}
	}
	return specs
}

// encodeJSONColumns renders the nested fields of v into their TEXT columns.
// Empty values are stored as NULL.
func encodeJSONColumns(v *model.Vehicle) (images, features, specs *string, err error) {
	encode := func(value any, empty bool) (*string, error) {
		if empty {
			return nil, nil
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode vehicle field: %w", err)
		}
		s := string(data)
		return &s, nil
	}

	if images, err = encode(v.Images, len(v.Images) == 0); err != nil {
		return nil, nil, nil, err
	}
	if features, err = encode(v.Features, len(v.Features) == 0); err != nil {
		return nil, nil, nil, err
	}
	if specs, err = encode(v.Specs, len(v.Specs) == 0); err != nil {
		return nil, nil, nil, err
	}
	return images, features, specs, nil
}

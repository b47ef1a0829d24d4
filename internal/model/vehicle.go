package model

import "time"

// Vehicle represents a vehicle listing in the catalog.
type Vehicle struct {
	ID          int64             `json:"id"`
	Name        string            `json:"nombre"`
	Brand       string            `json:"marca"`
	Category    string            `json:"categoria"`
	Year        int               `json:"anio"`
	Mileage     int               `json:"kilometraje"`
	Price       float64           `json:"precio"`
	Color       string            `json:"color"`
	Featured    bool              `json:"destacado"`
	Label       *string           `json:"etiqueta"`
	Image       string            `json:"imagen"`
	Images      []string          `json:"imagenes,omitempty"`
	VideoURL    *string           `json:"video_url,omitempty"`
	Description *string           `json:"descripcion,omitempty"`
	Features    []string          `json:"caracteristicas,omitempty"`
	Specs       map[string]string `json:"especificaciones,omitempty"`
	Stock       int               `json:"stock"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// VehicleFilter narrows a catalog listing. Empty slices and nil bounds do not filter.
type VehicleFilter struct {
	Brands     []string
	Categories []string
	Years      []int
	PriceMin   *float64
	PriceMax   *float64
}

// IsEmpty reports whether the filter has no criteria.
func (f VehicleFilter) IsEmpty() bool {
	return len(f.Brands) == 0 &&
		len(f.Categories) == 0 &&
		len(f.Years) == 0 &&
		f.PriceMin == nil &&
		f.PriceMax == nil
}

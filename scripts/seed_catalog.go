//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"tasdrives/internal/config"
	"tasdrives/internal/database"
	"tasdrives/internal/model"
	"tasdrives/internal/repository"
)

func strPtr(s string) *string { return &s }

// Replaces the vehicles table with the launch catalog.
//
//	go run scripts/seed_catalog.go
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	cfg.Database.AutoMigrate = true
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "TRUNCATE vehicles RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to clear vehicles: %w", err)
	}
	logger.Info().Msg("existing vehicles removed")

	repo := repository.NewVehicleRepository(pool, logger)
	for i := range catalog {
		v := &catalog[i]
		if len(v.Images) == 0 {
			v.Images = []string{v.Image}
		}
		if err := repo.Create(ctx, v); err != nil {
			logger.Error().Err(err).Str("name", v.Name).Msg("failed to insert vehicle")
			continue
		}
		logger.Info().Int64("vehicle_id", v.ID).Str("name", v.Name).Msg("vehicle inserted")
	}

	logger.Info().Int("vehicles", len(catalog)).Msg("catalog seed completed")
	return nil
}

var catalog = []model.Vehicle{
	{
		Name: "Lamborghini", Brand: "Lamborghini", Category: "Deportivo", Year: 2023, Mileage: 0,
		Price: 9290000, Color: "Amarillo y Negro", Featured: true, Label: strPtr("Más vendido"),
		Image:       "/productos/lamborghini/lamborghini-urus.jpg",
		Description: strPtr("SUV de lujo de alto rendimiento con motor V8 biturbo."),
		Features: []string{
			"Motor V8 biturbo de 4.0L con 650 CV",
			"Tracción integral",
			"Cambio automático de 8 velocidades",
			"Frenos carbono-cerámicos",
		},
		Specs: map[string]string{
			"motor":           "V8 biturbo 4.0L",
			"potencia":        "650 CV",
			"aceleracion":     "3.6 segundos (0-100 km/h)",
			"velocidadMaxima": "305 km/h",
		},
		Stock: 1,
	},
	{
		Name: "Jeep Wrangler", Brand: "Jeep", Category: "SUV", Year: 2023, Mileage: 5000,
		Price: 2000000, Color: "Blanco",
		Image:       "/productos/jeep-wrangler/jeep-wrangler.jpg",
		Description: strPtr("Todoterreno icónico con tracción 4x4 para aventuras off-road."),
		Features: []string{
			"Motor V6 de 3.6L con 285 CV",
			"Tracción 4x4",
			"Techo y puertas desmontables",
		},
		Specs: map[string]string{
			"motor":          "V6 3.6L",
			"potencia":       "285 CV",
			"capacidadVadeo": "76 cm",
		},
		Stock: 1,
	},
	{
		Name: "Lamborghini Aventador Matte", Brand: "Lamborghini", Category: "Deportivo", Year: 2021, Mileage: 15000,
		Price: 900000, Color: "Gris Matte",
		Image: "/productos/lamborghini/Lamborghini-Aventador-Matte.jpg",
		Specs: map[string]string{"motor": "V12 6.5L", "potencia": "740 CV"},
		Stock: 1,
	},
	{
		Name: "Ford Mustang Shelby", Brand: "Ford", Category: "Deportivo", Year: 2023, Mileage: 3000,
		Price: 2500000, Color: "Rojo",
		Image: "/productos/ford/Ford-Shelby-GT500.jpg",
		Stock: 1,
	},
	{
		Name: "Toyota Supra MK4", Brand: "Toyota", Category: "Deportivo", Year: 2023, Mileage: 0,
		Price: 1800000, Color: "Negro", Label: strPtr("Nuevo"),
		Image: "/productos/toyota-supra-mk4/Supra-MK4-2.jpg",
		Stock: 1,
	},
	{
		Name: "Nissan GTR R35", Brand: "Nissan", Category: "Deportivo", Year: 2021, Mileage: 8000,
		Price: 3500000, Color: "Personalizado",
		Image: "/productos/nissan/Nissan-GTR-R35.jpg",
		Stock: 1,
	},
	{
		Name: "Bugatti Veyron", Brand: "Bugatti", Category: "SuperDeportivo", Year: 2023, Mileage: 0,
		Price: 1950000, Color: "Beige",
		Image: "/productos/bugatti/Bugatti-Veyron.jpg",
		Stock: 1,
	},
	{
		Name: "Toyota Tacoma", Brand: "Toyota", Category: "Pickup", Year: 2024, Mileage: 12000,
		Price: 1750000, Color: "Blanco",
		Image: "/productos/toyota/toyota-tacoma.jpg",
		Stock: 1,
	},
	{
		Name: "Ford GT 67", Brand: "Ford", Category: "Deportivo", Year: 2017, Mileage: 1250,
		Price: 1750000, Color: "Rojo",
		Image: "/productos/ford/ford-gt-67-heritage.jpg",
		Stock: 1,
	},
	{
		Name: "Nissan Z GT4", Brand: "Nissan", Category: "Deportivo", Year: 2024, Mileage: 12000,
		Price: 1750000, Color: "Gris",
		Image: "/productos/nissan/nissan-z-gt4.jpg",
		Stock: 1,
	},
	{
		Name: "Camaro Strode", Brand: "Chevrolet", Category: "Deportivo", Year: 2022, Mileage: 12000,
		Price: 1750000, Color: "Blanco",
		Image: "/productos/camaro/camaro-strode.jpg",
		Stock: 1,
	},
}

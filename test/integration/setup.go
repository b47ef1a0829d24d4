package integration

import (
	"context"
	"testing"
	"time"

	"tasdrives/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container and applies the storefront schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tasdrives_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Ping(ctx, pool); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedVehicles inserts a small catalog. Ids start at 1 after CleanupDB.
func SeedVehicles(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	vehicles := []struct {
		name     string
		brand    string
		category string
		year     int
		price    float64
		featured bool
	}{
		{"Mustang GT", "Ford", "Deportivo", 2022, 980000, true},
		{"Civic Touring", "Honda", "Sedán", 2021, 520000, false},
		{"Wrangler Rubicon", "Jeep", "SUV", 2023, 1150000, true},
	}

	for _, v := range vehicles {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO vehicles (nombre, marca, categoria, anio, precio, destacado, stock)
			 VALUES ($1, $2, $3, $4, $5, $6, 1)`,
			v.name, v.brand, v.category, v.year, v.price, v.featured,
		)
		if err != nil {
			t.Fatalf("failed to seed vehicle %s: %v", v.name, err)
		}
	}
}

// CleanupDB empties every table and resets the id sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE vehicles, appointments, advisor_requests RESTART IDENTITY")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coastwatch/backend/internal/domain"
)

// PostgresRepository implements domain.ObservationRepository. Inserts are
// append-only; observations are never updated or deleted.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveWeather persists a weather observation to PostgreSQL
func (r *PostgresRepository) SaveWeather(ctx context.Context, obs domain.WeatherObservation) error {
	query := `
		INSERT INTO weather_observations (
			timestamp, location, temperature, humidity,
			wind_speed, wind_direction, pressure, description, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		obs.Timestamp, obs.Location, obs.Temperature, obs.Humidity,
		obs.WindSpeed, obs.WindDirection, obs.Pressure, obs.Description, obs.Source,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save weather observation: %w", err)
	}

	return nil
}

// SaveTide persists a tide observation to PostgreSQL
func (r *PostgresRepository) SaveTide(ctx context.Context, obs domain.TideObservation) error {
	query := `
		INSERT INTO tide_observations (
			timestamp, location, tide_height, tide_type, source
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		obs.Timestamp, obs.Location, obs.TideHeight, obs.TideType, obs.Source,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save tide observation: %w", err)
	}

	return nil
}

// RecentWeather retrieves stored weather observations within a time range
func (r *PostgresRepository) RecentWeather(ctx context.Context, from, to time.Time) ([]domain.WeatherObservation, error) {
	query := `
		SELECT timestamp, location, temperature, humidity,
			   wind_speed, wind_direction, pressure, description, source
		FROM weather_observations
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query weather observations: %w", err)
	}
	defer rows.Close()

	var results []domain.WeatherObservation
	for rows.Next() {
		var w domain.WeatherObservation
		err := rows.Scan(
			&w.Timestamp, &w.Location, &w.Temperature, &w.Humidity,
			&w.WindSpeed, &w.WindDirection, &w.Pressure, &w.Description, &w.Source,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan weather row: %w", err)
		}
		results = append(results, w)
	}

	return results, nil
}

// RecentTide retrieves stored tide observations within a time range
func (r *PostgresRepository) RecentTide(ctx context.Context, from, to time.Time) ([]domain.TideObservation, error) {
	query := `
		SELECT timestamp, location, tide_height, tide_type, source
		FROM tide_observations
		WHERE timestamp BETWEEN $1 AND $2
		ORDER BY timestamp DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query tide observations: %w", err)
	}
	defer rows.Close()

	var results []domain.TideObservation
	for rows.Next() {
		var t domain.TideObservation
		err := rows.Scan(&t.Timestamp, &t.Location, &t.TideHeight, &t.TideType, &t.Source)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan tide row: %w", err)
		}
		results = append(results, t)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

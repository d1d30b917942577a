// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tcassidy/brotherhood-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and import
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Import: existence checks (foreign-key validation, upsert decisions)
		"area_exists":      "SELECT 1 FROM " + config.AreasTable + " WHERE id = $1",
		"community_exists": "SELECT 1 FROM " + config.CommunitiesTable + " WHERE id = $1",
		"person_exists":    "SELECT 1 FROM " + config.PeopleTable + " WHERE id = $1",
		"warrior_exists":   "SELECT 1 FROM " + config.WarriorsTable + " WHERE person_id = $1",
		"venue_exists":     "SELECT 1 FROM " + config.VenuesTable + " WHERE id = $1",
		"event_exists":     "SELECT 1 FROM " + config.EventsTable + " WHERE id = $1",
		"igroup_exists":    "SELECT 1 FROM " + config.IGroupsTable + " WHERE id = $1",
		"fgroup_exists":    "SELECT 1 FROM " + config.FGroupsTable + " WHERE id = $1",

		// API: point lookups
		"area_by_id":      "SELECT id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at FROM " + config.AreasTable + " WHERE id = $1",
		"community_by_id": "SELECT id, area_id, name, code, legacy_id, is_active, created_at, updated_at, deleted_at FROM " + config.CommunitiesTable + " WHERE id = $1",
		"venue_by_id":     "SELECT id, name, address, city, region, postal_code, country, latitude, longitude, area_id, community_id, is_active, created_at, updated_at FROM " + config.VenuesTable + " WHERE id = $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

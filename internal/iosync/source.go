// Package iosync implements the catalog maintenance operation: it
// reconciles overlay-tier proj4 strings against a current external
// projection-definition source. This is an impure I/O package; the
// shipped source reads the spatial_ref_sys table of a PostGIS
// database over pgxpool.
package iosync

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geonym/srsdb/pkg/config"
)

// DefinitionSource provides current authoritative proj4 definitions
// for EPSG codes.
type DefinitionSource interface {
	// Proj4ForEpsg returns the current proj4 definition for an EPSG
	// code, or ErrNoDefinition when the source does not know the
	// code.
	Proj4ForEpsg(ctx context.Context, code int64) (string, error)

	// Close releases the source.
	Close() error
}

// ErrNoDefinition is returned when a source has no definition for a
// code. Sync skips such rows without counting them as failures.
var ErrNoDefinition = errors.New("iosync: no definition for code")

// postgisSource reads definitions from spatial_ref_sys.
type postgisSource struct {
	pool *pgxpool.Pool
}

// NewPostgisSource connects to a PostGIS database and returns it as a
// definition source.
func NewPostgisSource(
	ctx context.Context,
	cfg *config.SyncConfig,
) (DefinitionSource, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, NewConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}

	// a maintenance task does not need a large pool
	poolConfig.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, NewConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, NewConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}

	return &postgisSource{pool: pool}, nil
}

func (s *postgisSource) Proj4ForEpsg(
	ctx context.Context,
	code int64,
) (string, error) {
	query := `
		SELECT proj4text
		FROM spatial_ref_sys
		WHERE auth_name = 'EPSG' AND auth_srid = $1
	`
	var proj4 string
	err := s.pool.QueryRow(ctx, query, code).Scan(&proj4)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoDefinition
	}
	if err != nil {
		return "", NewSourceQueryError(code, err)
	}
	return proj4, nil
}

func (s *postgisSource) Close() error {
	s.pool.Close()
	return nil
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wosamar/rakuten-tools/internal/config"
	"github.com/wosamar/rakuten-tools/internal/engine"
)

// Store reads the mirrored item catalog out of postgres.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Postgres.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Postgres.MaxIdleConns)
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadItems loads every mirrored catalog item, hidden ones included; the
// engine decides what to exclude.
func (s *Store) LoadItems(ctx context.Context) ([]engine.ProductSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT manage_number,
		       COALESCE(title, ''),
		       COALESCE(description_sp, ''),
		       COALESCE(description_pc, ''),
		       COALESCE(sales_description, ''),
		       hide_item
		FROM items
		ORDER BY manage_number
	`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []engine.ProductSnapshot
	for rows.Next() {
		var it engine.ProductSnapshot
		if err := rows.Scan(
			&it.ManageNumber,
			&it.Title,
			&it.Description.SP,
			&it.Description.PC,
			&it.SalesDescription,
			&it.IsHidden,
		); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, it)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

func (s *Store) ListenChannel() string {
	return "item_data_change"
}

// PgxPool exposes the underlying pool for LISTEN/NOTIFY; non-nil for any
// Store built with New.
func (s *Store) PgxPool() *pgxpool.Pool {
	return s.pool
}

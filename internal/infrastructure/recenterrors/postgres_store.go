package recenterrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS min_level_error_batches (
	owner        TEXT PRIMARY KEY,
	batch_id     TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	warehouse_id BIGINT NOT NULL,
	total        INTEGER NOT NULL,
	failed       INTEGER NOT NULL,
	entries      JSONB NOT NULL DEFAULT '[]'
)`

var _ repository.RecentErrorsRepository = (*PostgresStore)(nil)

// PostgresStore lotes en PostgreSQL, para despliegues que ya tienen base de datos y no Redis.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore crea la tabla si no existe.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("recenterrors: crear tabla: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPool crea un pool pequeño: el panel solo hace lecturas y escrituras puntuales.
// El dial fuerza IPv4 cuando el host lo tiene (Docker suele no tener IPv6).
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("recenterrors: parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = dialIPv4
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("recenterrors: crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("recenterrors: ping DB: %w", err)
	}
	return pool, nil
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	d := &net.Dialer{}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ips[0].String(), port))
}

// Save reemplaza el lote anterior del dueño.
func (s *PostgresStore) Save(ctx context.Context, owner string, batch entity.RecentErrorBatch) error {
	entries, err := json.Marshal(batch.Entries)
	if err != nil {
		return fmt.Errorf("recenterrors: %w", err)
	}
	query := `
		INSERT INTO min_level_error_batches (owner, batch_id, created_at, warehouse_id, total, failed, entries)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner) DO UPDATE SET
			batch_id = EXCLUDED.batch_id, created_at = EXCLUDED.created_at,
			warehouse_id = EXCLUDED.warehouse_id, total = EXCLUDED.total,
			failed = EXCLUDED.failed, entries = EXCLUDED.entries`
	_, err = s.pool.Exec(ctx, query,
		owner, batch.ID, batch.CreatedAt, batch.WarehouseID, batch.Total, batch.Failed, entries,
	)
	if err != nil {
		return fmt.Errorf("recenterrors: upsert: %w", err)
	}
	return nil
}

// Latest devuelve nil si no hay lote.
func (s *PostgresStore) Latest(ctx context.Context, owner string) (*entity.RecentErrorBatch, error) {
	query := `
		SELECT batch_id, created_at, warehouse_id, total, failed, entries
		FROM min_level_error_batches WHERE owner = $1`
	var (
		b       entity.RecentErrorBatch
		entries []byte
	)
	err := s.pool.QueryRow(ctx, query, owner).Scan(
		&b.ID, &b.CreatedAt, &b.WarehouseID, &b.Total, &b.Failed, &entries,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recenterrors: select: %w", err)
	}
	if err := json.Unmarshal(entries, &b.Entries); err != nil {
		return nil, nil
	}
	return &b, nil
}

// Clear borra el lote.
func (s *PostgresStore) Clear(ctx context.Context, owner string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM min_level_error_batches WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("recenterrors: delete: %w", err)
	}
	return nil
}

package recenterrors

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
)

// Drivers soportados.
const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selección del almacenamiento.
type Options struct {
	Driver      string
	Dir         string
	RedisAddr   string
	DatabaseURL string
	TTL         time.Duration // solo redis
}

// Open construye el almacenamiento del driver indicado. Sin error, la función devuelta libera las conexiones y nunca es nil.
func Open(ctx context.Context, opts Options) (repository.RecentErrorsRepository, func(), error) {
	switch opts.Driver {
	case DriverRedis:
		client, err := Connect(ctx, opts.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, opts.TTL), func() { _ = client.Close() }, nil
	case DriverPostgres:
		pool, err := NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil
	case DriverFile, "":
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
	return nil, nil, fmt.Errorf("recenterrors: driver desconocido %q", opts.Driver)
}

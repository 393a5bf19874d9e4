package recenterrors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
)

// KeyPrefix prefijo de las claves en Redis.
const KeyPrefix = "inventario:min-level-errors:"

var _ repository.RecentErrorsRepository = (*RedisStore)(nil)

// RedisStore lotes compartidos entre réplicas del gateway, con expiración.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore ttl <= 0 significa sin expiración.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Connect crea el cliente y verifica la conexión.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("recenterrors: ping: %w", err)
	}
	return client, nil
}

func key(owner string) string {
	return KeyPrefix + owner
}

// Save reemplaza el lote anterior.
func (s *RedisStore) Save(ctx context.Context, owner string, batch entity.RecentErrorBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("recenterrors: %w", err)
	}
	if err := s.client.Set(ctx, key(owner), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("recenterrors: set: %w", err)
	}
	return nil
}

// Latest devuelve nil si no hay lote.
func (s *RedisStore) Latest(ctx context.Context, owner string) (*entity.RecentErrorBatch, error) {
	data, err := s.client.Get(ctx, key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recenterrors: get: %w", err)
	}
	var batch entity.RecentErrorBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, nil
	}
	return &batch, nil
}

// Clear borra el lote.
func (s *RedisStore) Clear(ctx context.Context, owner string) error {
	if err := s.client.Del(ctx, key(owner)).Err(); err != nil {
		return fmt.Errorf("recenterrors: del: %w", err)
	}
	return nil
}

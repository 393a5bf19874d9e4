package recenterrors_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/recenterrors"
)

func batch(id string, failed int) entity.RecentErrorBatch {
	b := entity.RecentErrorBatch{ID: id, CreatedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), WarehouseID: 4, Total: 3, Failed: failed}
	for i := 0; i < failed; i++ {
		b.Entries = append(b.Entries, entity.RecentError{ProductID: int64(i + 1), ProductLabel: "P", Message: "inválido"})
	}
	return b
}

// exerciseStore contrato común: vacío, reemplazo, aislamiento por dueño y borrado idempotente.
func exerciseStore(t *testing.T, s repository.RecentErrorsRepository) {
	ctx := context.Background()

	got, err := s.Latest(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Save(ctx, "a", batch("1", 2)))
	require.NoError(t, s.Save(ctx, "a", batch("2", 1)))
	require.NoError(t, s.Save(ctx, "b", batch("3", 3)))

	got, err = s.Latest(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.ID, "el último lote reemplaza al anterior")
	assert.Len(t, got.Entries, 1)
	assert.True(t, got.CreatedAt.Equal(batch("x", 0).CreatedAt))

	require.NoError(t, s.Clear(ctx, "a"))
	require.NoError(t, s.Clear(ctx, "a"))
	got, err = s.Latest(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Latest(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "3", got.ID)
}

func TestFileStore(t *testing.T) {
	s, err := recenterrors.NewFileStore(filepath.Join(t.TempDir(), "errores"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_ArchivoCorruptoEsVacio(t *testing.T) {
	dir := t.TempDir()
	s, err := recenterrors.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), "a", batch("1", 1)))

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.NoError(t, os.WriteFile(files[0], []byte("{no-json"), 0o600))

	got, err := s.Latest(context.Background(), "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, recenterrors.NewRedisStore(client, time.Hour))
}

func TestRedisStore_Expira(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := recenterrors.NewRedisStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", batch("1", 1)))
	assert.True(t, mr.Exists(recenterrors.KeyPrefix+"a"))
	assert.Equal(t, time.Hour, mr.TTL(recenterrors.KeyPrefix+"a"))

	mr.FastForward(2 * time.Hour)
	got, err := s.Latest(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConnect_FallaSinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := recenterrors.Connect(context.Background(), addr)
	assert.Error(t, err)
}

// Requiere una base real: RECENT_ERRORS_TEST_DATABASE_URL=postgres://...
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("RECENT_ERRORS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("RECENT_ERRORS_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := recenterrors.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s, err := recenterrors.NewPostgresStore(ctx, pool)
	require.NoError(t, err)
	for _, owner := range []string{"a", "b"} {
		require.NoError(t, s.Clear(ctx, owner))
	}
	exerciseStore(t, s)
}

func TestNewPool_DSNInvalido(t *testing.T) {
	_, err := recenterrors.NewPool(context.Background(), "postgres://localhost:puerto/db")
	assert.Error(t, err)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := recenterrors.Open(ctx, recenterrors.Options{Driver: recenterrors.DriverFile, Dir: t.TempDir()})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &recenterrors.FileStore{}, s)

	mr := miniredis.RunT(t)
	s, closeRedis, err := recenterrors.Open(ctx, recenterrors.Options{Driver: recenterrors.DriverRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer closeRedis()
	assert.IsType(t, &recenterrors.RedisStore{}, s)

	_, _, err = recenterrors.Open(ctx, recenterrors.Options{Driver: "memcached"})
	assert.Error(t, err)
}

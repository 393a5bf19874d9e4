package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/restapi"
)

// newBackend levanta un backend falso con el endpoint CSRF y h para la API de inventario.
func newBackend(t *testing.T, h http.HandlerFunc) restapi.Repositories {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/csrf/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/api/inventory/", h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := apiclient.New(apiclient.Config{
		BaseURL:           srv.URL,
		BasePath:          "/api/inventory/",
		Timeout:           2 * time.Second,
		CSRFBootstrapPath: "/api/csrf/",
	}, nil)
	require.NoError(t, err)
	return restapi.NewRepositories(c)
}

// memRecent almacén en memoria de lotes de errores.
type memRecent struct {
	mu      sync.Mutex
	batches map[string]entity.RecentErrorBatch
	saves   int
}

func newMemRecent() *memRecent {
	return &memRecent{batches: map[string]entity.RecentErrorBatch{}}
}

func (m *memRecent) Save(_ context.Context, owner string, b entity.RecentErrorBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.batches[owner] = b
	return nil
}

func (m *memRecent) Latest(_ context.Context, owner string) (*entity.RecentErrorBatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.batches[owner]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memRecent) Clear(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.batches, owner)
	return nil
}

// fakeAlerts repositorio de alertas en memoria; failIDs responde 400 en SetResolved.
type fakeAlerts struct {
	mu      sync.Mutex
	items   map[int64]entity.StockAlert
	failIDs map[int64]bool
	patches []int64
	lists   int
}

func newFakeAlerts(alerts ...entity.StockAlert) *fakeAlerts {
	f := &fakeAlerts{items: map[int64]entity.StockAlert{}, failIDs: map[int64]bool{}}
	for _, a := range alerts {
		f.items[a.ID] = a
	}
	return f
}

func (f *fakeAlerts) List(_ context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.StockAlert], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]entity.StockAlert, 0, len(f.items))
	for _, a := range f.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return dto.PageEnvelope[entity.StockAlert]{Items: out, Total: len(out)}, nil
}

func (f *fakeAlerts) SetResolved(_ context.Context, id int64, resolved bool) (*entity.StockAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, id)
	if f.failIDs[id] {
		return nil, &apiclient.APIError{Status: http.StatusBadRequest, Kind: apiclient.KindHTTP, Message: "No se puede modificar la alerta."}
	}
	a, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.Resolved = resolved
	f.items[id] = a
	return &a, nil
}

func (f *fakeAlerts) resolved(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id].Resolved
}

// fakeWarehouses falla el listado si err no es nil.
type fakeWarehouses struct {
	items []entity.Warehouse
	err   error
}

func (f *fakeWarehouses) List(context.Context, *dto.ListQuery) (dto.PageEnvelope[entity.Warehouse], error) {
	if f.err != nil {
		return dto.PageEnvelope[entity.Warehouse]{}, f.err
	}
	return dto.PageEnvelope[entity.Warehouse]{Items: f.items, Total: len(f.items)}, nil
}

func (f *fakeWarehouses) Get(_ context.Context, id int64) (*entity.Warehouse, error) {
	for _, w := range f.items {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWarehouses) Create(_ context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	w := entity.Warehouse{ID: int64(len(f.items) + 1), Code: in.Code, Name: in.Name, Category: in.Category, Active: in.Active}
	f.items = append(f.items, w)
	return &w, nil
}

func (f *fakeWarehouses) Update(context.Context, int64, dto.UpdateWarehouseRequest) (*entity.Warehouse, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeWarehouses) Delete(context.Context, int64) error { return nil }

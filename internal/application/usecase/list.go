package usecase

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
)

// maxExportPages corta la iteración de páginas si el backend reporta un total incoherente.
const maxExportPages = 1000

// FetchFunc consulta una página al backend.
type FetchFunc[T any] func(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[T], error)

// ListPage estado de una vista de listado: filtros y paginación del servidor más un
// filtro de categoría que se aplica solo en cliente sobre la página ya descargada.
// Cada Load cancela la consulta anterior que siga en vuelo.
type ListPage[T any] struct {
	Query    *dto.ListQuery
	Category category.Category

	fetch    FetchFunc[T]
	classify func(T) category.Category

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
}

// NewListPage crea la vista. classify puede ser nil si el recurso no tiene categoría.
func NewListPage[T any](q *dto.ListQuery, fetch FetchFunc[T], classify func(T) category.Category) *ListPage[T] {
	return &ListPage[T]{Query: q, fetch: fetch, classify: classify}
}

// SetFilter cambia un filtro del servidor (vuelve a la página 1).
func (p *ListPage[T]) SetFilter(key, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Query.SetFilter(key, value)
}

// SetPage cambia de página.
func (p *ListPage[T]) SetPage(page int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Query.SetPage(page)
}

// SetCategory cambia el filtro en cliente; no requiere nueva consulta.
func (p *ListPage[T]) SetCategory(c category.Category) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Category = c
}

// Load consulta la página actual y aplica el filtro de categoría.
func (p *ListPage[T]) Load(ctx context.Context) (dto.ListResult[T], error) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.seq++
	seq := p.seq
	q := p.Query.Clone()
	cat := p.Category
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		if p.seq == seq {
			p.cancel = nil
		}
		p.mu.Unlock()
		cancel()
	}()

	env, err := p.fetch(ctx, q)
	if err != nil {
		return dto.ListResult[T]{Page: q.Page, PageSize: q.PageSize, TotalPages: 1, Items: []T{}}, err
	}
	return dto.NewListResult(q, env, applyCategory(env.Items, cat, p.classify)), nil
}

// Close cancela cualquier consulta en vuelo (equivalente a desmontar la vista).
func (p *ListPage[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func applyCategory[T any](items []T, cat category.Category, classify func(T) category.Category) []T {
	if classify == nil {
		return items
	}
	return category.Filter(items, cat, classify)
}

// fetchAll recorre todas las páginas de q (para exportaciones) sin modificar q.
func fetchAll[T any](ctx context.Context, fetch FetchFunc[T], q *dto.ListQuery) ([]T, error) {
	cur := q.Clone()
	cur.Page = dto.DefaultPage
	var out []T
	for i := 0; i < maxExportPages; i++ {
		env, err := fetch(ctx, cur)
		if err != nil {
			return nil, err
		}
		out = append(out, env.Items...)
		if len(env.Items) == 0 || len(out) >= env.Total {
			break
		}
		cur.Page++
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

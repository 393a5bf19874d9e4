package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
)

// Valores por defecto de paginación.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 500
)

// ErrorResponse cuerpo de error HTTP del gateway.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
	Detail  any    `json:"detail,omitempty"`
}

// PageEnvelope forma única de un listado, venga como arreglo o como página.
type PageEnvelope[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// ToPageEnvelope acepta un arreglo desnudo (Total = len), un objeto paginado
// {count, next, previous, results} o null.
func ToPageEnvelope[T any](raw json.RawMessage) (PageEnvelope[T], error) {
	out := PageEnvelope[T]{Items: []T{}}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return out, nil
	}
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &out.Items); err != nil {
			return out, fmt.Errorf("listado: %w", err)
		}
		out.Total = len(out.Items)
	case '{':
		var page struct {
			Count    *int    `json:"count"`
			Next     *string `json:"next"`
			Previous *string `json:"previous"`
			Results  []T     `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return out, fmt.Errorf("página: %w", err)
		}
		if page.Results != nil {
			out.Items = page.Results
		}
		out.Total = len(out.Items)
		if page.Count != nil {
			out.Total = *page.Count
		}
	default:
		return out, fmt.Errorf("listado: forma de respuesta no soportada")
	}
	return out, nil
}

// TotalPages número de páginas para total registros; nunca menor que 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// ListQuery estado de filtros y paginación de un listado. Filtros y página son
// independientes, pero cambiar un filtro siempre vuelve a la página 1.
type ListQuery struct {
	Page     int
	PageSize int
	Ordering string
	Filters  map[string]string
}

// NewListQuery crea la consulta con página 1 y el tamaño y orden dados.
func NewListQuery(pageSize int, ordering string) *ListQuery {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListQuery{Page: DefaultPage, PageSize: pageSize, Ordering: ordering, Filters: map[string]string{}}
}

// SetFilter fija (o borra, con valor vacío) un filtro. Si el valor cambia, la página vuelve a 1.
// Devuelve true si hubo cambio, es decir, si corresponde una nueva consulta.
func (q *ListQuery) SetFilter(key, value string) bool {
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}
	if q.Filters[key] == value {
		return false
	}
	if value == "" {
		delete(q.Filters, key)
	} else {
		q.Filters[key] = value
	}
	q.Page = DefaultPage
	return true
}

// SetBoolFilter filtro booleano; nil lo elimina.
func (q *ListQuery) SetBoolFilter(key string, value *bool) bool {
	if value == nil {
		return q.SetFilter(key, "")
	}
	return q.SetFilter(key, strconv.FormatBool(*value))
}

// SetPage cambia de página (mínimo 1).
func (q *ListQuery) SetPage(page int) bool {
	if page < 1 {
		page = 1
	}
	if q.Page == page {
		return false
	}
	q.Page = page
	return true
}

// SetPageSize cambia el tamaño de página y vuelve a la página 1.
func (q *ListQuery) SetPageSize(size int) bool {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if q.PageSize == size {
		return false
	}
	q.PageSize = size
	q.Page = DefaultPage
	return true
}

// SetOrdering cambia el orden y vuelve a la página 1.
func (q *ListQuery) SetOrdering(ordering string) bool {
	if q.Ordering == ordering {
		return false
	}
	q.Ordering = ordering
	q.Page = DefaultPage
	return true
}

// Values query string para el backend (page, page_size, ordering y filtros).
func (q *ListQuery) Values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}
	page := q.Page
	if page < 1 {
		page = DefaultPage
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(size))
	if q.Ordering != "" {
		v.Set("ordering", q.Ordering)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, q.Filters[k])
	}
	return v
}

// Clone copia independiente (para iterar páginas sin tocar el estado de la vista).
func (q *ListQuery) Clone() *ListQuery {
	c := *q
	c.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		c.Filters[k] = v
	}
	return &c
}

// ListResult página ya filtrada en cliente. Visible puede ser menor que PageSize
// sin que eso dispare otra consulta.
type ListResult[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	Visible    int `json:"visible"`
}

// NewListResult arma el resultado a partir del sobre del servidor y los ítems visibles.
func NewListResult[T any](q *ListQuery, env PageEnvelope[T], visible []T) ListResult[T] {
	return ListResult[T]{
		Items:      visible,
		Total:      env.Total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: TotalPages(env.Total, q.PageSize),
		Visible:    len(visible),
	}
}

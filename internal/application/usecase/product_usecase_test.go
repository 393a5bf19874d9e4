package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-bodega/internal/application/usecase"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

func TestProductList_ServicioSoloEnCatalogo(t *testing.T) {
	repos := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/inventory/products/", r.URL.Path)
		assert.Equal(t, "name", r.URL.Query().Get("ordering"))
		_, _ = w.Write([]byte(`[
			{"id":1,"code":"S-1","name":"Mantenimiento","category":"Servicio técnico"},
			{"id":2,"code":"E-1","name":"Compresor","type":"Máquina"},
			{"id":3,"code":"X-1","name":"Varios"}]`))
	})
	uc := usecase.NewProductUseCase(repos.Products)

	list := uc.NewList()
	defer list.Close()
	list.SetCategory(category.Servicio)
	res, err := list.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "S-1", res.Items[0].Code)
	assert.Equal(t, 3, res.Total)

	// las existencias no distinguen servicios
	p := res.Items[0]
	assert.Equal(t, category.None, usecase.ClassifyStock(entity.StockItem{Product: &p}))
}

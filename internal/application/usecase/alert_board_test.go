package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-bodega/internal/application/usecase"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

func sampleAlerts() []entity.StockAlert {
	return []entity.StockAlert{
		{ID: 1, Product: &entity.Product{Code: "R-1", Category: "Repuesto"}},
		{ID: 2, Product: &entity.Product{Code: "E-1", Category: "Equipo"}},
		{ID: 3, Product: &entity.Product{Code: "R-2", Type: "repuestos"}},
		{ID: 4, Product: &entity.Product{Code: "R-3", Category: "REP"}, Resolved: true},
	}
}

func loadedBoard(t *testing.T, repo *fakeAlerts) *usecase.AlertBoard {
	t.Helper()
	b := usecase.NewAlertUseCase(repo, nil).NewBoard()
	_, err := b.Load(context.Background())
	require.NoError(t, err)
	return b
}

func TestAlertBoard_BulkResuelveSoloLasVisibles(t *testing.T) {
	repo := newFakeAlerts(sampleAlerts()...)
	b := loadedBoard(t, repo)
	b.Page().SetCategory(category.Repuesto)
	_, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, b.Visible(), 3)

	var prompt string
	report, err := b.BulkSetResolved(context.Background(), true, usecase.ConfirmFunc(func(_ context.Context, p string) (bool, error) {
		prompt = p
		return true, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "¿Marcar 2 alertas como resueltas?", prompt)
	assert.Equal(t, "2/2 actualizadas", report.Message)
	assert.ElementsMatch(t, []int64{1, 3}, repo.patches)
	assert.False(t, repo.resolved(2), "el equipo no estaba visible")
	for _, a := range b.Visible() {
		assert.True(t, a.Resolved)
	}
}

func TestAlertBoard_FalloParcialRestauraYRecarga(t *testing.T) {
	repo := newFakeAlerts(sampleAlerts()...)
	repo.failIDs[2] = true
	b := loadedBoard(t, repo)
	listsBefore := repo.lists

	report, err := b.BulkSetResolved(context.Background(), true, usecase.AlwaysConfirm)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "2/3 actualizadas", report.Message)
	assert.Empty(t, report.Errors, "los fallos de alertas no son errores de producto")
	require.Len(t, report.ItemErrors, 1)
	assert.EqualValues(t, 2, report.ItemErrors[0].ItemID)
	assert.Equal(t, "Alerta #2", report.ItemErrors[0].Label)
	assert.Equal(t, "No se puede modificar la alerta.", report.ItemErrors[0].Message)
	assert.Len(t, repo.patches, 3, "todas las peticiones se envían aunque una falle")
	assert.Equal(t, listsBefore+1, repo.lists, "se recarga la página completa")

	got := map[int64]bool{}
	for _, a := range b.Visible() {
		got[a.ID] = a.Resolved
	}
	assert.Equal(t, map[int64]bool{1: true, 2: false, 3: true, 4: true}, got, "el estado visible es el del servidor")
}

func TestAlertBoard_ConfirmacionRechazada(t *testing.T) {
	repo := newFakeAlerts(sampleAlerts()...)
	b := loadedBoard(t, repo)

	_, err := b.BulkSetResolved(context.Background(), true, usecase.ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, nil
	}))
	assert.ErrorIs(t, err, domain.ErrCanceled)
	assert.Empty(t, repo.patches)
	for _, a := range b.Visible() {
		assert.Equal(t, a.ID == 4, a.Resolved)
	}
}

func TestAlertBoard_NadaQueCambiar(t *testing.T) {
	repo := newFakeAlerts(entity.StockAlert{ID: 9, Resolved: true})
	b := loadedBoard(t, repo)
	_, err := b.BulkSetResolved(context.Background(), true, usecase.AlwaysConfirm)
	assert.ErrorIs(t, err, domain.ErrNothingSelected)
}

func TestAlertBoard_ToggleRevierteSiFalla(t *testing.T) {
	repo := newFakeAlerts(sampleAlerts()...)
	repo.failIDs[1] = true
	b := loadedBoard(t, repo)

	_, err := b.Toggle(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, b.Visible()[0].Resolved)

	a, err := b.Toggle(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, a.Resolved)
	assert.True(t, b.Visible()[2].Resolved)

	_, err = b.Toggle(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package apiclient_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

type etiqueta struct{}

func (etiqueta) String() string { return "desde Stringer" }

func TestToAPIError_Transporte(t *testing.T) {
	canceled := apiclient.ToAPIError(fmt.Errorf("envuelto: %w", context.Canceled))
	assert.Equal(t, 0, canceled.Status)
	assert.Equal(t, apiclient.KindCanceled, canceled.Kind)
	assert.Equal(t, apiclient.MsgCanceled, canceled.Message)
	assert.ErrorIs(t, canceled, domain.ErrCanceled)

	timeout := apiclient.ToAPIError(context.DeadlineExceeded)
	assert.Equal(t, apiclient.KindTimeout, timeout.Kind)
	assert.Equal(t, apiclient.MsgTimeout, timeout.Message)
}

func TestToAPIError_DevuelveElMismoError(t *testing.T) {
	orig := &apiclient.APIError{Status: 404, Kind: apiclient.KindHTTP, Message: "x"}
	assert.Same(t, orig, apiclient.ToAPIError(fmt.Errorf("ctx: %w", orig)))
	assert.Nil(t, apiclient.ToAPIError(nil))
}

func TestToAPIError_ErrorArbitrario(t *testing.T) {
	e := apiclient.ToAPIError(errors.New("algo falló"))
	assert.Equal(t, 0, e.Status)
	assert.Equal(t, apiclient.KindUnknown, e.Kind)
	assert.Equal(t, "algo falló", e.Message)
}

func TestAPIError_IsSentinelas(t *testing.T) {
	assert.ErrorIs(t, &apiclient.APIError{Status: 404}, domain.ErrNotFound)
	assert.ErrorIs(t, &apiclient.APIError{Status: 400}, domain.ErrInvalidInput)
	assert.NotErrorIs(t, &apiclient.APIError{Status: 500}, domain.ErrNotFound)
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "normalizado", apiclient.MessageOf(&apiclient.APIError{Message: "normalizado"}))
	assert.Equal(t, apiclient.MsgTimeout, apiclient.MessageOf(context.DeadlineExceeded))
	assert.Equal(t, "texto", apiclient.MessageOf("  texto "))
	assert.Equal(t, "desde Stringer", apiclient.MessageOf(etiqueta{}))
	assert.Equal(t, "campo: malo", apiclient.MessageOf(map[string]any{"campo": "malo"}))
	assert.Equal(t, apiclient.MsgGeneric, apiclient.MessageOf(nil))
	assert.Equal(t, "No se pudo guardar", apiclient.MessageOf("", "No se pudo guardar"))
	assert.Equal(t, "No se pudo guardar", apiclient.MessageOf(struct{}{}, "No se pudo guardar"))
}

package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-bodega/internal/domain/category"
)

func TestClassify_Repuesto(t *testing.T) {
	for _, in := range []string{"Repuestos", "REP", "spare", "  repuesto  ", "Refacción", "Pieza de cambio", "r"} {
		assert.Equal(t, category.Repuesto, category.Classify(in), "entrada %q", in)
	}
}

func TestClassify_Equipo(t *testing.T) {
	for _, in := range []string{"Equipo", "eq", "machine", "Máquina dental", "EQUIPMENT", "e"} {
		assert.Equal(t, category.Equipo, category.Classify(in), "entrada %q", in)
	}
}

func TestClassify_SinCoincidencia(t *testing.T) {
	assert.Equal(t, category.None, category.Classify("banana"))
	assert.Equal(t, category.None, category.Classify(""))
	assert.Equal(t, category.None, category.Classify())
	assert.Equal(t, category.None, category.Classify("   ", "departamento"))
}

func TestClassify_ServicioSoloEnVariante(t *testing.T) {
	assert.Equal(t, category.None, category.Classify("Servicio técnico"))
	assert.Equal(t, category.Servicio, category.ClassifyWithService("Servicio técnico"))
	assert.Equal(t, category.Servicio, category.ClassifyWithService("srv"))
	assert.Equal(t, category.None, category.Classify("s"))
}

func TestClassify_OrdenDeReglas(t *testing.T) {
	// Las variantes de idioma se evalúan antes que los códigos cortos y repuesto antes que equipo.
	assert.Equal(t, category.Repuesto, category.Classify("repuesto de equipo"))
	assert.Equal(t, category.Equipo, category.ClassifyWithService("servicio de equipo"))
}

func TestClassify_PrimerCandidatoValidoGana(t *testing.T) {
	assert.Equal(t, category.Equipo, category.Classify("", "desconocido", "equipo", "repuesto"))
	assert.Equal(t, category.Repuesto, category.Classify("rep", "equipo"))
}

func TestParse(t *testing.T) {
	c, ok := category.Parse("repuesto")
	assert.True(t, ok)
	assert.Equal(t, category.Repuesto, c)

	c, ok = category.Parse("")
	assert.True(t, ok)
	assert.Equal(t, category.None, c)

	_, ok = category.Parse("otra")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	items := []string{"Equipo", "Repuestos", "banana", "eq"}
	byName := func(s string) category.Category { return category.Classify(s) }

	assert.Equal(t, items, category.Filter(items, category.None, byName))
	assert.Equal(t, []string{"Equipo", "eq"}, category.Filter(items, category.Equipo, byName))
	assert.Equal(t, []string{"Repuestos"}, category.Filter(items, category.Repuesto, byName))
}

// Package category infiere la categoría de un producto (equipo, repuesto, servicio)
// a partir de campos de texto libre del backend.
package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category resultado de la clasificación. None significa "sin insignia" y queda
// fuera de cualquier filtro por categoría.
type Category string

const (
	None     Category = ""
	Equipo   Category = "EQUIPO"
	Repuesto Category = "REPUESTO"
	Servicio Category = "SERVICIO"
)

// Parse convierte el valor de un filtro (query string, flag) en Category.
// Devuelve false si el valor no es una categoría conocida; vacío es None.
func Parse(s string) (Category, bool) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case None:
		return None, true
	case Equipo:
		return Equipo, true
	case Repuesto:
		return Repuesto, true
	case Servicio:
		return Servicio, true
	}
	return None, false
}

type matchKind int

const (
	contains matchKind = iota
	prefix
	exact
)

type rule struct {
	kind   matchKind
	needle string
	cat    Category
}

// El orden importa: variantes de idioma/ortografía antes que los códigos cortos.
var rules = []rule{
	{contains, "repuest", Repuesto},
	{contains, "refacc", Repuesto},
	{contains, "recambi", Repuesto},
	{contains, "spare", Repuesto},
	{contains, "replacement", Repuesto},
	{prefix, "pieza", Repuesto},
	{prefix, "parte", Repuesto},
	{prefix, "part ", Repuesto},
	{prefix, "parts", Repuesto},

	{contains, "equipo", Equipo},
	{contains, "equipment", Equipo},
	{contains, "maquina", Equipo},
	{contains, "machine", Equipo},
	{contains, "aparato", Equipo},
	{prefix, "equip", Equipo},
	{prefix, "device", Equipo},

	{contains, "servicio", Servicio},
	{contains, "service", Servicio},
	{contains, "mano de obra", Servicio},

	{exact, "e", Equipo},
	{exact, "eq", Equipo},
	{exact, "eqp", Equipo},
	{exact, "equ", Equipo},
	{exact, "r", Repuesto},
	{exact, "rep", Repuesto},
	{exact, "repu", Repuesto},
	{exact, "rp", Repuesto},
	{exact, "s", Servicio},
	{exact, "serv", Servicio},
	{exact, "srv", Servicio},
}

// Classify clasifica en EQUIPO o REPUESTO. Los candidatos se prueban en orden y
// gana el primero que coincida con alguna regla.
func Classify(values ...string) Category {
	return classify(false, values)
}

// ClassifyWithService igual que Classify pero reconoce también SERVICIO.
func ClassifyWithService(values ...string) Category {
	return classify(true, values)
}

func classify(withService bool, values []string) Category {
	for _, v := range values {
		s := normalize(v)
		if s == "" {
			continue
		}
		if c := match(s, withService); c != None {
			return c
		}
	}
	return None
}

func match(s string, withService bool) Category {
	for _, r := range rules {
		if r.cat == Servicio && !withService {
			continue
		}
		var ok bool
		switch r.kind {
		case contains:
			ok = strings.Contains(s, r.needle)
		case prefix:
			ok = strings.HasPrefix(s, r.needle)
		case exact:
			ok = s == r.needle
		}
		if ok {
			return r.cat
		}
	}
	return None
}

// normalize recorta, pasa a minúsculas y elimina tildes ("Máquina" -> "maquina").
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Filter conserva los elementos cuya categoría coincide con want. Con want == None
// no filtra; con un filtro activo los elementos sin categoría quedan fuera.
func Filter[T any](items []T, want Category, classifyFn func(T) Category) []T {
	if want == None {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if classifyFn(it) == want {
			out = append(out, it)
		}
	}
	return out
}

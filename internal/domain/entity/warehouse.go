package entity

// Categorías de bodega.
const (
	WarehouseCategoryPrincipal = "PRINCIPAL"
	WarehouseCategoryTecnico   = "TECNICO"
	WarehouseCategoryOtra      = "OTRA"
)

// Warehouse representa una bodega tal como la expone el backend.
type Warehouse struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Active   bool   `json:"active"`
	Category string `json:"category"` // PRINCIPAL, TECNICO, OTRA
}

// Label texto para mostrar: "CODE · Nombre" o solo el nombre.
func (w Warehouse) Label() string {
	if w.Code == "" {
		return w.Name
	}
	return w.Code + " · " + w.Name
}

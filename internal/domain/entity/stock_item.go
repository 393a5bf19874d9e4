package entity

import "github.com/shopspring/decimal"

// StockItem existencia de un producto en una bodega. Solo lectura para el cliente.
type StockItem struct {
	ID            int64            `json:"id"`
	ProductID     int64            `json:"product_id"`
	Product       *Product         `json:"product,omitempty"`
	WarehouseID   int64            `json:"warehouse_id"`
	WarehouseName string           `json:"warehouse_name,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	MinQty        *decimal.Decimal `json:"min_qty,omitempty"`
}

// IsNegative indica saldo negativo (autorizado en el backend); solo afecta la presentación.
func (s StockItem) IsNegative() bool {
	return s.Quantity.IsNegative()
}

// BelowMinimum indica que la cantidad está por debajo del mínimo configurado.
func (s StockItem) BelowMinimum() bool {
	return s.MinQty != nil && s.Quantity.LessThan(*s.MinQty)
}

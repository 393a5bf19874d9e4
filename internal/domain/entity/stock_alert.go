package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAlert alerta de mínimo generada por el backend. Solo se alterna Resolved.
type StockAlert struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product"`
	Product       *Product        `json:"product_info,omitempty"`
	WarehouseID   int64           `json:"warehouse"`
	WarehouseName string          `json:"warehouse_name,omitempty"`
	CurrentQty    decimal.Decimal `json:"current_qty"`
	MinQty        decimal.Decimal `json:"min_qty"`
	Resolved      bool            `json:"resolved"`
	TriggeredAt   time.Time       `json:"triggered_at"`
}

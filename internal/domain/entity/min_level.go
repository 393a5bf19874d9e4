package entity

import "github.com/shopspring/decimal"

// MinLevel nivel mínimo de un producto en una bodega.
type MinLevel struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product"`
	WarehouseID  int64           `json:"warehouse"`
	MinQty       decimal.Decimal `json:"min_qty"`
	AlertEnabled bool            `json:"alert_enabled"`
	Product      *Product        `json:"product_info,omitempty"`
}

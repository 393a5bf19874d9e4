package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de repuestos. La transición la decide el backend.
const (
	PartRequestPending   = "PENDING"
	PartRequestApproved  = "APPROVED"
	PartRequestRejected  = "REJECTED"
	PartRequestFulfilled = "FULFILLED"
)

// PartRequest solicitud de repuestos hacia una bodega destino.
type PartRequest struct {
	ID                   int64           `json:"id"`
	ProductID            int64           `json:"product"`
	Product              *Product        `json:"product_info,omitempty"`
	WarehouseDestination int64           `json:"warehouse_destination"`
	Quantity             decimal.Decimal `json:"quantity"`
	Status               string          `json:"status"`
	Note                 string          `json:"note,omitempty"`
	RequestedBy          string          `json:"requested_by,omitempty"`
	Movement             *int64          `json:"movement,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	ReviewedAt           *time.Time      `json:"reviewed_at,omitempty"`
}

// IsPending indica si la solicitud aún puede aprobarse o rechazarse.
func (p PartRequest) IsPending() bool {
	return p.Status == PartRequestPending
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"
	MovementTypeOUT        = "OUT"
	MovementTypeTRANSFER   = "TRANSFER"
	MovementTypeADJUSTMENT = "ADJUSTMENT"
)

// Movement cabecera de un movimiento. Inmutable salvo la anulación (void), que ejecuta el backend.
type Movement struct {
	ID                  int64          `json:"id"`
	Date                string         `json:"date"`
	Type                string         `json:"type"`
	User                string         `json:"user"`
	Note                string         `json:"note"`
	NeedsAuthorization  bool           `json:"needs_authorization"`
	AuthorizedBy        string         `json:"authorized_by,omitempty"`
	AuthorizationReason string         `json:"authorization_reason,omitempty"`
	AppliedAt           *time.Time     `json:"applied_at,omitempty"`
	VoidedAt            *time.Time     `json:"voided_at,omitempty"`
	VoidedBy            string         `json:"voided_by,omitempty"`
	Lines               []MovementLine `json:"lines"`
}

// IsVoided indica si el backend marcó el movimiento como anulado.
func (m Movement) IsVoided() bool {
	return m.VoidedAt != nil
}

// MovementLine renglón de un movimiento con campos opcionales de trazabilidad.
type MovementLine struct {
	ID            int64           `json:"id,omitempty"`
	ProductID     int64           `json:"product"`
	Product       *Product        `json:"product_info,omitempty"`
	WarehouseFrom *int64          `json:"warehouse_from,omitempty"`
	WarehouseTo   *int64          `json:"warehouse_to,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	ClientID      *int64          `json:"client,omitempty"`
	MachineID     *int64          `json:"machine,omitempty"`
	Purpose       string          `json:"purpose,omitempty"`
	WorkOrder     string          `json:"work_order,omitempty"`
}

// IsValidMovementType valida el tipo contra los cuatro tipos soportados.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeTRANSFER, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

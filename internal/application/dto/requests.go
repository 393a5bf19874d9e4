package dto

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Address  string `json:"address" validate:"max=300"`
	Active   bool   `json:"active"`
	Category string `json:"category" validate:"warehouse_category"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega (PATCH parcial).
type UpdateWarehouseRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,min=1,max=20"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Active   *bool   `json:"active,omitempty"`
	Category *string `json:"category,omitempty" validate:"omitempty,warehouse_category"`
}

// MovementLineRequest renglón de un movimiento nuevo.
type MovementLineRequest struct {
	ProductID     int64           `json:"product" validate:"required,gt=0"`
	WarehouseFrom *int64          `json:"warehouse_from,omitempty"`
	WarehouseTo   *int64          `json:"warehouse_to,omitempty"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gt=0"`
	ClientID      *int64          `json:"client,omitempty"`
	MachineID     *int64          `json:"machine,omitempty"`
	Purpose       string          `json:"purpose,omitempty" validate:"max=200"`
	WorkOrder     string          `json:"work_order,omitempty" validate:"max=60"`
}

// CreateMovementRequest entrada para registrar un movimiento.
// Las reglas de saldo y autorización las aplica el backend.
type CreateMovementRequest struct {
	Type                string                `json:"type" validate:"required,movement_type"`
	Date                string                `json:"date,omitempty"`
	Note                string                `json:"note,omitempty" validate:"max=500"`
	AuthorizationReason string                `json:"authorization_reason,omitempty" validate:"max=500"`
	Lines               []MovementLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CheckWarehouses verifica que cada renglón tenga las bodegas que su tipo exige.
func (r CreateMovementRequest) CheckWarehouses() bool {
	for _, l := range r.Lines {
		switch r.Type {
		case entity.MovementTypeIN:
			if l.WarehouseTo == nil {
				return false
			}
		case entity.MovementTypeOUT:
			if l.WarehouseFrom == nil {
				return false
			}
		case entity.MovementTypeTRANSFER:
			if l.WarehouseFrom == nil || l.WarehouseTo == nil || *l.WarehouseFrom == *l.WarehouseTo {
				return false
			}
		case entity.MovementTypeADJUSTMENT:
			if l.WarehouseFrom == nil && l.WarehouseTo == nil {
				return false
			}
		}
	}
	return true
}

// CreateMinLevelRequest entrada para crear un mínimo.
type CreateMinLevelRequest struct {
	ProductID    int64           `json:"product" validate:"required,gt=0"`
	WarehouseID  int64           `json:"warehouse" validate:"required,gt=0"`
	MinQty       decimal.Decimal `json:"min_qty" validate:"gte=0"`
	AlertEnabled bool            `json:"alert_enabled"`
}

// UpdateMinLevelRequest actualización parcial de un mínimo.
type UpdateMinLevelRequest struct {
	MinQty       *decimal.Decimal `json:"min_qty,omitempty"`
	AlertEnabled *bool            `json:"alert_enabled,omitempty"`
}

// BulkMinLevelRequest creación masiva: un mínimo por producto seleccionado en una bodega.
type BulkMinLevelRequest struct {
	WarehouseID  int64           `json:"warehouse" validate:"required,gt=0"`
	ProductIDs   []int64         `json:"products" validate:"required,min=1,dive,gt=0"`
	MinQty       decimal.Decimal `json:"min_qty" validate:"gte=0"`
	AlertEnabled bool            `json:"alert_enabled"`
	// ProductLabels opcional: etiquetas para mostrar en el panel de errores.
	ProductLabels map[int64]string `json:"product_labels,omitempty"`
}

// CreatePartRequestRequest entrada para solicitar repuestos.
type CreatePartRequestRequest struct {
	ProductID            int64           `json:"product" validate:"required,gt=0"`
	WarehouseDestination int64           `json:"warehouse_destination" validate:"required,gt=0"`
	Quantity             decimal.Decimal `json:"quantity" validate:"gt=0"`
	Note                 string          `json:"note,omitempty" validate:"max=500"`
}

// ReviewPartRequest cuerpo de approve/reject.
type ReviewPartRequest struct {
	Note string `json:"note,omitempty" validate:"max=500"`
}

// TraceQuery filtros de trazabilidad de movimientos (cliente, máquina, OT, producto).
type TraceQuery struct {
	ProductID int64  `validate:"gte=0"`
	ClientID  int64  `validate:"gte=0"`
	MachineID int64  `validate:"gte=0"`
	WorkOrder string `validate:"max=60"`
}

// Values query string de la traza; al menos un criterio debe venir informado.
func (q TraceQuery) Values() url.Values {
	v := url.Values{}
	if q.ProductID > 0 {
		v.Set("product", strconv.FormatInt(q.ProductID, 10))
	}
	if q.ClientID > 0 {
		v.Set("client", strconv.FormatInt(q.ClientID, 10))
	}
	if q.MachineID > 0 {
		v.Set("machine", strconv.FormatInt(q.MachineID, 10))
	}
	if q.WorkOrder != "" {
		v.Set("work_order", q.WorkOrder)
	}
	return v
}

// IsEmpty indica que no se informó ningún criterio.
func (q TraceQuery) IsEmpty() bool {
	return len(q.Values()) == 0
}

// BulkReport resultado de una operación masiva. Errors lleva los fallos por producto
// (creación de mínimos); ItemErrors los fallos por registro de las demás operaciones.
type BulkReport struct {
	Total      int                  `json:"total"`
	Succeeded  int                  `json:"succeeded"`
	Failed     int                  `json:"failed"`
	Errors     []entity.RecentError `json:"errors,omitempty"`
	ItemErrors []BulkItemError      `json:"item_errors,omitempty"`
	Message    string               `json:"message"`
}

// BulkItemError fallo de un registro dentro de una operación masiva.
type BulkItemError struct {
	ItemID  int64  `json:"item_id"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// BulkAlertRequest cuerpo del endpoint de resolución masiva de alertas.
type BulkAlertRequest struct {
	IDs      []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
	Resolved bool    `json:"resolved"`
}

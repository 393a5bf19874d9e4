package entity

import "time"

// RecentError fallo de un producto dentro de una creación masiva de mínimos.
type RecentError struct {
	ProductID    int64  `json:"product_id"`
	ProductLabel string `json:"product_label"`
	Message      string `json:"message"`
}

// RecentErrorBatch último lote de errores persistido para el panel de errores recientes.
type RecentErrorBatch struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	WarehouseID int64         `json:"warehouse_id"`
	Total       int           `json:"total"`
	Failed      int           `json:"failed"`
	Entries     []RecentError `json:"entries"`
}

package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.AlertRepository = (*AlertRepository)(nil)

// AlertRepository implementa repository.AlertRepository sobre /alerts/.
type AlertRepository struct {
	c *apiclient.Client
}

func NewAlertRepository(c *apiclient.Client) *AlertRepository {
	return &AlertRepository{c: c}
}

func (r *AlertRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.StockAlert], error) {
	return list[entity.StockAlert](ctx, r.c, pathAlerts, q)
}

// SetResolved PATCH {"resolved": bool}.
func (r *AlertRepository) SetResolved(ctx context.Context, id int64, resolved bool) (*entity.StockAlert, error) {
	return mutate[entity.StockAlert](ctx, r.c, http.MethodPatch, itemPath(pathAlerts, id), map[string]bool{"resolved": resolved})
}

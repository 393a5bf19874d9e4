package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.PartRequestRepository = (*PartRequestRepository)(nil)

// PartRequestRepository implementa repository.PartRequestRepository sobre /part-requests/.
type PartRequestRepository struct {
	c *apiclient.Client
}

func NewPartRequestRepository(c *apiclient.Client) *PartRequestRepository {
	return &PartRequestRepository{c: c}
}

func (r *PartRequestRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.PartRequest], error) {
	return list[entity.PartRequest](ctx, r.c, pathPartRequests, q)
}

func (r *PartRequestRepository) Get(ctx context.Context, id int64) (*entity.PartRequest, error) {
	return get[entity.PartRequest](ctx, r.c, itemPath(pathPartRequests, id))
}

func (r *PartRequestRepository) Create(ctx context.Context, in dto.CreatePartRequestRequest) (*entity.PartRequest, error) {
	return mutate[entity.PartRequest](ctx, r.c, http.MethodPost, pathPartRequests, in)
}

func (r *PartRequestRepository) Approve(ctx context.Context, id int64, in dto.ReviewPartRequest) (*entity.PartRequest, error) {
	return mutate[entity.PartRequest](ctx, r.c, http.MethodPost, itemPath(pathPartRequests, id)+"approve/", in)
}

func (r *PartRequestRepository) Reject(ctx context.Context, id int64, in dto.ReviewPartRequest) (*entity.PartRequest, error) {
	return mutate[entity.PartRequest](ctx, r.c, http.MethodPost, itemPath(pathPartRequests, id)+"reject/", in)
}

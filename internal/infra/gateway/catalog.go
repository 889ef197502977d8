package gateway

import (
	"context"
	"errors"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/client"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/usecase"
)

// CatalogGateway adapts the platform client to the catalog port, translating
// transport failures into domain errors.
type CatalogGateway struct {
	client *client.Client
}

var _ usecase.CatalogGateway = (*CatalogGateway)(nil)

func NewCatalogGateway(cl *client.Client) *CatalogGateway {
	return &CatalogGateway{client: cl}
}

func (g *CatalogGateway) GetVesselByIMO(ctx context.Context, imo int64) (fleetwatch.VesselAisRecord, error) {
	record, err := g.client.GetVesselByIMO(ctx, imo)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fleetwatch.VesselAisRecord{}, domain.NotFoundError{Resource: "vessel"}
		}
		return fleetwatch.VesselAisRecord{}, domain.UpstreamError{Op: "get vessel", Err: err}
	}
	return record, nil
}

func (g *CatalogGateway) SearchVessels(ctx context.Context, query string, page, limit int) (fleetwatch.VesselPage, error) {
	result, err := g.client.SearchVessels(ctx, query, page, limit)
	if err != nil {
		return fleetwatch.VesselPage{}, domain.UpstreamError{Op: "search vessels", Err: err}
	}
	return result, nil
}

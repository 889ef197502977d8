package usecase

import (
	"context"

	"github.com/harborview/fleetwatch"
)

type CatalogUsecase struct {
	gateway CatalogGateway
}

func NewCatalogUsecase(gateway CatalogGateway) *CatalogUsecase {
	return &CatalogUsecase{gateway: gateway}
}

func (uc *CatalogUsecase) GetVesselByIMO(ctx context.Context, imo int64) (fleetwatch.VesselAisRecord, error) {
	return uc.gateway.GetVesselByIMO(ctx, imo)
}

func (uc *CatalogUsecase) SearchVessels(ctx context.Context, query string, page, limit int) (fleetwatch.VesselPage, error) {
	return uc.gateway.SearchVessels(ctx, query, page, limit)
}

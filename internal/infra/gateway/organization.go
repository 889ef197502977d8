package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/harborview/fleetwatch/client"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/usecase"
)

// Organization records change rarely but are read on every quota check, so
// they are cached in memcached and shared across instances.
const orgCacheTTL = 300 // seconds

type OrganizationGateway struct {
	client *client.Client
	mc     *memcache.Client
}

var _ usecase.OrganizationDirectory = (*OrganizationGateway)(nil)

func NewOrganizationGateway(cl *client.Client, mc *memcache.Client) *OrganizationGateway {
	return &OrganizationGateway{client: cl, mc: mc}
}

func (g *OrganizationGateway) GetOrganization(ctx context.Context, orgID string) (domain.Organization, error) {
	cacheKey := "org:" + orgID

	if g.mc != nil {
		item, err := g.mc.Get(cacheKey)
		if err == nil {
			var org domain.Organization
			if err := json.Unmarshal(item.Value, &org); err == nil {
				return org, nil
			}
		} else if !errors.Is(err, memcache.ErrCacheMiss) {
			slog.WarnContext(
				ctx, "Organization cache unavailable",
				slog.String("error", err.Error()),
				slog.String("module", "gateway"),
			)
		}
	}

	rec, err := g.client.GetOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return domain.Organization{}, domain.NotFoundError{Resource: "organization"}
		}
		return domain.Organization{}, domain.UpstreamError{Op: "get organization", Err: err}
	}

	org := domain.Organization{
		OrgID:       rec.OrgID,
		AssignShips: rec.AssignShips,
	}

	if g.mc != nil {
		if serialized, err := json.Marshal(org); err == nil {
			err := g.mc.Set(&memcache.Item{
				Key:        cacheKey,
				Value:      serialized,
				Expiration: orgCacheTTL,
			})
			if err != nil {
				slog.WarnContext(
					ctx, "Failed to cache organization",
					slog.String("error", err.Error()),
					slog.String("module", "gateway"),
				)
			}
		}
	}

	return org, nil
}

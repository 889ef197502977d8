package usecase

import (
	"context"
	"sort"

	"github.com/harborview/fleetwatch/internal/domain"
)

type VisibilityUsecase struct {
	repo TrackingRepository
}

func NewVisibilityUsecase(repo TrackingRepository) *VisibilityUsecase {
	return &VisibilityUsecase{repo: repo}
}

// Filter applies the role visibility policy over the global link list.
// Visibility is derived from the links on every call, never cached: a vessel
// can be tracked by several unrelated tenants at once, and each of them sees
// it through their own links.
//
//   - platform-admin sees everything.
//   - org roles see every link whose IMO is tracked under their resolved
//     organization.
//   - guest sees only links created under their own user id.
//   - any other role sees nothing.
func Filter(identity domain.Identity, records []domain.TrackedVessel) []domain.TrackedVessel {
	switch identity.Role {
	case domain.RolePlatformAdmin:
		return records

	case domain.RoleOrgAdmin, domain.RoleOrgUser:
		orgID := domain.ResolveOrgID(identity.UserID)
		orgIMOs := make(map[int64]struct{})
		for _, r := range records {
			if r.OrgID != nil && *r.OrgID == orgID {
				orgIMOs[r.IMO] = struct{}{}
			}
		}
		visible := make([]domain.TrackedVessel, 0)
		for _, r := range records {
			if _, ok := orgIMOs[r.IMO]; ok {
				visible = append(visible, r)
			}
		}
		return visible

	case domain.RoleGuest:
		visible := make([]domain.TrackedVessel, 0)
		for _, r := range records {
			if r.LoginUserID == identity.UserID {
				visible = append(visible, r)
			}
		}
		return visible

	default:
		// Fail closed: an unrecognized role is denied, not errored.
		return []domain.TrackedVessel{}
	}
}

func (uc *VisibilityUsecase) VisibleVessels(ctx context.Context, identity domain.Identity) ([]domain.TrackedVessel, error) {
	// A guest can only ever see their own links, so the global scan is
	// skipped. The result is identical to filtering the full list.
	if identity.Role == domain.RoleGuest {
		return uc.repo.ListByUser(ctx, identity.UserID)
	}

	records, err := uc.repo.ListGlobal(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(identity, records), nil
}

// ListInPort returns the visible vessels currently inside a port geofence,
// ordered Berth > Terminal > Anchorage > N/A.
func (uc *VisibilityUsecase) ListInPort(ctx context.Context, identity domain.Identity) ([]domain.TrackedVessel, error) {
	visible, err := uc.VisibleVessels(ctx, identity)
	if err != nil {
		return nil, err
	}

	inport := make([]domain.TrackedVessel, 0)
	for _, r := range visible {
		if r.AIS.PullGfType == "inport" {
			inport = append(inport, r)
		}
	}

	sort.SliceStable(inport, func(i, j int) bool {
		return domain.GeofenceRank(inport[i].AIS.GeofenceType) < domain.GeofenceRank(inport[j].AIS.GeofenceType)
	})

	return inport, nil
}

package usecase

import (
	"context"
)

type QuotaUsecase struct {
	repo TrackingRepository
	orgs OrganizationDirectory
}

func NewQuotaUsecase(repo TrackingRepository, orgs OrganizationDirectory) *QuotaUsecase {
	return &QuotaUsecase{repo: repo, orgs: orgs}
}

// QuotaStatus is a point-in-time readout of an organization's allowance.
type QuotaStatus struct {
	OrgID       string `json:"orgId"`
	AssignShips int    `json:"assignShips"`
	Tracked     int64  `json:"tracked"`
	CanAddMore  bool   `json:"canAddMore"`
}

// CanAddMore reports whether the organization is under its assigned-vessel
// quota. This is a check, not a reservation: concurrent adds racing past it
// may transiently exceed the quota, which is accepted as a soft limit.
func (uc *QuotaUsecase) CanAddMore(ctx context.Context, orgID string) (bool, error) {
	status, err := uc.Status(ctx, orgID)
	if err != nil {
		return false, err
	}
	return status.CanAddMore, nil
}

func (uc *QuotaUsecase) Status(ctx context.Context, orgID string) (QuotaStatus, error) {
	org, err := uc.orgs.GetOrganization(ctx, orgID)
	if err != nil {
		return QuotaStatus{}, err
	}

	tracked, err := uc.repo.CountByOrg(ctx, orgID)
	if err != nil {
		return QuotaStatus{}, err
	}

	return QuotaStatus{
		OrgID:       orgID,
		AssignShips: org.AssignShips,
		Tracked:     tracked,
		CanAddMore:  int64(org.AssignShips) > tracked,
	}, nil
}

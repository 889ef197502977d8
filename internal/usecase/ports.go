package usecase

import (
	"context"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
)

// TrackingRepository defines storage operations for tracking links and
// global enrichment records. Both insert operations are insert-if-absent:
// they report false when the record already existed, and concurrent calls
// for the same key converge to exactly one row.
type TrackingRepository interface {
	ListGlobal(ctx context.Context) ([]domain.TrackedVessel, error)
	ListByUser(ctx context.Context, loginUserID string) ([]domain.TrackedVessel, error)
	CountByOrg(ctx context.Context, orgID string) (int64, error)
	HasEnrichment(ctx context.Context, imo int64) (bool, error)
	InsertEnrichmentIfAbsent(ctx context.Context, rec domain.VesselEnrichment) (bool, error)
	InsertLinkIfAbsent(ctx context.Context, link domain.TrackedVessel) (bool, error)
}

// SalesRepository persists sales metadata rows keyed on (imo, caseId).
type SalesRepository interface {
	InsertIfAbsent(ctx context.Context, rec domain.SalesInfo) (bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.SalesInfo, error)
}

// CatalogGateway encapsulates the external catalog/AIS provider.
type CatalogGateway interface {
	GetVesselByIMO(ctx context.Context, imo int64) (fleetwatch.VesselAisRecord, error)
	SearchVessels(ctx context.Context, query string, page, limit int) (fleetwatch.VesselPage, error)
}

// OrganizationDirectory resolves tenant quota documents.
type OrganizationDirectory interface {
	GetOrganization(ctx context.Context, orgID string) (domain.Organization, error)
}

// UserDirectory lists known users for the alert-recipient picker.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// EventPublisher fans out realtime events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event fleetwatch.Event) error
}

package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
)

type TrackingUsecase struct {
	repo    TrackingRepository
	sales   SalesRepository
	catalog CatalogGateway
	signal  EventPublisher

	// Collapses concurrent enrichment fetches for the same IMO into one
	// upstream call. The storage conflict clause already guarantees a single
	// enrichment row; this avoids paying for redundant AIS lookups.
	enrich singleflight.Group
}

func NewTrackingUsecase(
	repo TrackingRepository,
	sales SalesRepository,
	catalog CatalogGateway,
	signal EventPublisher,
) *TrackingUsecase {
	return &TrackingUsecase{
		repo:    repo,
		sales:   sales,
		catalog: catalog,
		signal:  signal,
	}
}

// AddToTrack reconciles one vessel into the requester's tracked set.
//
// The vessel is enriched with AIS data exactly once, globally: when some
// other identity already tracks it, only the per-user link is created. Both
// writes go through insert-if-absent, so calling this twice, or racing it
// from two identities, converges to one enrichment row and one link per
// (user, imo) pair. A pre-existing link is a no-op success, reported as
// StatusDuplicate.
func (uc *TrackingUsecase) AddToTrack(ctx context.Context, identity domain.Identity, imo int64) (domain.TrackedVessel, domain.AddStatus, error) {
	if err := validateRequester(identity); err != nil {
		return domain.TrackedVessel{}, domain.StatusRejected, err
	}
	if imo <= 0 {
		return domain.TrackedVessel{}, domain.StatusRejected, domain.ValidationError{Field: "imo", Reason: "must be a positive number"}
	}

	enriched, err := uc.repo.HasEnrichment(ctx, imo)
	if err != nil {
		return domain.TrackedVessel{}, domain.StatusFailed, err
	}

	if !enriched {
		_, err, _ := uc.enrich.Do(strconv.FormatInt(imo, 10), func() (any, error) {
			record, err := uc.catalog.GetVesselByIMO(ctx, imo)
			if err != nil {
				return nil, err
			}

			// The read above is only an optimization; losing this insert to
			// a concurrent reconciler on another node is fine, the conflict
			// clause makes it a no-op.
			return uc.repo.InsertEnrichmentIfAbsent(ctx, domain.VesselEnrichment{
				IMO:    imo,
				Vessel: record.Vessel,
				AIS:    record.AIS,
			})
		})
		if err != nil {
			// Nothing has been written yet, so the caller may retry.
			return domain.TrackedVessel{}, domain.StatusFailed, err
		}
	}

	link := domain.TrackedVessel{
		IMO:         imo,
		LoginUserID: identity.UserID,
		Email:       identity.Email,
		AddedDate:   time.Now().UTC(),
	}
	if orgID, ok := identity.OrgID(); ok {
		link.OrgID = &orgID
	}

	inserted, err := uc.repo.InsertLinkIfAbsent(ctx, link)
	if err != nil {
		return domain.TrackedVessel{}, domain.StatusFailed, err
	}
	if !inserted {
		return link, domain.StatusDuplicate, nil
	}

	uc.publish(ctx, domain.ChannelTracking, "vessel.tracked", link)

	return link, domain.StatusAdded, nil
}

// ImportRow is one externally supplied row of a bulk import. IMO arrives as
// raw spreadsheet text; Sale is set for sales imports.
type ImportRow struct {
	IMO  string
	Sale *domain.SalesInfo
}

// RowResult reports the outcome of one row, in input order.
type RowResult struct {
	Status domain.AddStatus
	Link   domain.TrackedVessel
	Err    error
}

// ImportBatch runs every row through the same reconciliation as a single
// add. Rows are independent: a bad or failed row never rolls back its
// neighbors, and the caller gets one result per row so the failed subset
// can be fixed and resubmitted.
func (uc *TrackingUsecase) ImportBatch(ctx context.Context, identity domain.Identity, rows []ImportRow) []RowResult {
	results := make([]RowResult, 0, len(rows))

	for _, row := range rows {
		// Rows are independent, so cancellation between rows is safe.
		if err := ctx.Err(); err != nil {
			results = append(results, RowResult{Status: domain.StatusFailed, Err: err})
			continue
		}

		imo, err := parseIMO(row.IMO)
		if err != nil {
			results = append(results, RowResult{Status: domain.StatusRejected, Err: err})
			continue
		}

		link, status, err := uc.AddToTrack(ctx, identity, imo)
		if err != nil {
			results = append(results, RowResult{Status: status, Err: err})
			continue
		}

		if row.Sale != nil {
			sale := *row.Sale
			sale.IMO = imo
			sale.OrgID = link.OrgID
			if _, err := uc.sales.InsertIfAbsent(ctx, sale); err != nil {
				results = append(results, RowResult{Status: domain.StatusFailed, Link: link, Err: err})
				continue
			}
			link.CaseID = sale.CaseID
		}

		results = append(results, RowResult{Status: status, Link: link})
	}

	return results
}

// SalesForOrg lists the sales rows imported under the requester's
// organization. Identities without an organization have no sales view.
func (uc *TrackingUsecase) SalesForOrg(ctx context.Context, identity domain.Identity) ([]domain.SalesInfo, error) {
	if err := validateRequester(identity); err != nil {
		return nil, err
	}
	orgID, ok := identity.OrgID()
	if !ok {
		return []domain.SalesInfo{}, nil
	}
	return uc.sales.ListByOrg(ctx, orgID)
}

func (uc *TrackingUsecase) publish(ctx context.Context, channel, eventType string, body any) {
	if uc.signal == nil {
		return
	}
	event := fleetwatch.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Body:      body,
	}
	if err := uc.signal.Publish(ctx, channel, event); err != nil {
		// Realtime fan-out is advisory; the write already succeeded.
		slog.WarnContext(
			ctx, "Failed to publish event",
			slog.String("error", err.Error()),
			slog.String("channel", channel),
			slog.String("module", "tracking"),
		)
	}
}

func validateRequester(identity domain.Identity) error {
	if identity.UserID == "" {
		return domain.ValidationError{Field: "userId", Reason: "required"}
	}
	if identity.Role == domain.RoleUnknown {
		return domain.ValidationError{Field: "role", Reason: "unrecognized"}
	}
	return nil
}

func parseIMO(raw string) (int64, error) {
	imo, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || imo <= 0 {
		return 0, domain.ValidationError{Field: "imo", Reason: "not a numeric IMO: " + raw}
	}
	return imo, nil
}

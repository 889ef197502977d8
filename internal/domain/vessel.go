package domain

import (
	"time"

	"github.com/harborview/fleetwatch"
)

// TrackedVessel is one tracking link: the assertion that a user (and,
// transitively, their organization) tracks a vessel. At most one link exists
// per (LoginUserID, IMO) pair; the storage layer guarantees this with an
// insert-if-absent keyed on that pair. Links are never mutated in place.
type TrackedVessel struct {
	IMO         int64                  `json:"imo"`
	LoginUserID string                 `json:"loginUserId"`
	OrgID       *string                `json:"orgId,omitempty"`
	Email       string                 `json:"email"`
	AddedDate   time.Time              `json:"addedDate"`
	Vessel      fleetwatch.Vessel      `json:"vessel"`
	AIS         fleetwatch.AisSnapshot `json:"ais"`
	CaseID      string                 `json:"caseId,omitempty"`
}

// VesselEnrichment is the global, tenant-independent record created the
// first time anyone tracks a vessel: catalog attributes plus the AIS sample
// fetched at that moment. Keyed on IMO; at most one per vessel.
type VesselEnrichment struct {
	IMO    int64
	Vessel fleetwatch.Vessel
	AIS    fleetwatch.AisSnapshot
}

// SalesInfo is the sales metadata attached to a vessel by a bulk sales
// import. Keyed on (IMO, CaseID).
type SalesInfo struct {
	IMO             int64   `json:"imo"`
	CaseID          string  `json:"caseId"`
	QuotationNumber string  `json:"salesQuotationNumber"`
	Responsible     string  `json:"salesResponsible"`
	CustomerOwner   string  `json:"customerOwner"`
	VesselName      string  `json:"vesselName"`
	Priority        string  `json:"priority"`
	LastQuoteDate   string  `json:"dateOfLastSentQuote"`
	OrgID           *string `json:"orgId,omitempty"`
}

// AddStatus classifies the outcome of one reconciliation.
type AddStatus int

const (
	StatusAdded AddStatus = iota
	StatusDuplicate
	StatusRejected
	StatusFailed
)

func (s AddStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDuplicate:
		return "duplicate"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Geofence types ordered by how the dashboard ranks them: a vessel at berth
// is more interesting than one at anchorage.
const (
	GeofenceBerth     = "Berth"
	GeofenceTerminal  = "Terminal"
	GeofenceAnchorage = "Anchorage"
)

// GeofenceRank orders Berth > Terminal > Anchorage > N/A; anything else
// sorts last.
func GeofenceRank(geofenceType string) int {
	switch geofenceType {
	case GeofenceBerth:
		return 1
	case GeofenceTerminal:
		return 2
	case GeofenceAnchorage:
		return 3
	case "N/A":
		return 4
	default:
		return 5
	}
}

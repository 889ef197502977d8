package models

import (
	"time"
)

// VesselEnrichment is the global, once-per-hull record of static vessel data
// and the AIS snapshot captured when the vessel was first tracked. AIS is the
// serialized snapshot; its shape follows the upstream feed, so it is stored
// opaquely instead of being flattened into columns.
type VesselEnrichment struct {
	IMO           int64     `json:"imo" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:text"`
	TransportType string    `json:"transportType" gorm:"type:text"`
	Flag          string    `json:"flag" gorm:"type:text"`
	GrossTonnage  float64   `json:"grossTonnage"`
	DeadWeight    float64   `json:"deadWeight"`
	AIS           string    `json:"ais" gorm:"type:text"`
	CDate         time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// TrackedVessel links one user to one hull. The composite key makes re-adds
// natural no-ops under an insert-or-ignore.
type TrackedVessel struct {
	IMO         int64            `json:"imo" gorm:"primaryKey"`
	Enrichment  VesselEnrichment `json:"-" gorm:"foreignKey:IMO;references:IMO;constraint:OnDelete:CASCADE;"`
	LoginUserID string           `json:"loginUserId" gorm:"type:text;index;primaryKey"`
	OrgID       *string          `json:"orgId" gorm:"type:text;index"`
	Email       string           `json:"email" gorm:"type:text"`
	CaseID      string           `json:"caseId" gorm:"type:text"`
	CDate       time.Time        `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

// SalesRecord carries the quotation metadata attached to a vessel by a sales
// import. Keyed per case so one hull can appear in several deals.
type SalesRecord struct {
	IMO             int64     `json:"imo" gorm:"primaryKey"`
	CaseID          string    `json:"caseId" gorm:"type:text;primaryKey"`
	QuotationNumber string    `json:"salesQuotationNumber" gorm:"type:text"`
	Responsible     string    `json:"salesResponsible" gorm:"type:text"`
	CustomerOwner   string    `json:"customerOwner" gorm:"type:text"`
	VesselName      string    `json:"vesselName" gorm:"type:text"`
	Priority        string    `json:"priority" gorm:"type:text"`
	LastQuoteDate   string    `json:"dateOfLastSentQuote" gorm:"type:text"`
	OrgID           *string   `json:"orgId" gorm:"type:text;index"`
	CDate           time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

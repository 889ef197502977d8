package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/infra/database/models"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) InsertIfAbsent(ctx context.Context, rec domain.SalesInfo) (bool, error) {
	row := models.SalesRecord{
		IMO:             rec.IMO,
		CaseID:          rec.CaseID,
		QuotationNumber: rec.QuotationNumber,
		Responsible:     rec.Responsible,
		CustomerOwner:   rec.CustomerOwner,
		VesselName:      rec.VesselName,
		Priority:        rec.Priority,
		LastQuoteDate:   rec.LastQuoteDate,
		OrgID:           rec.OrgID,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "imo"}, {Name: "case_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *SalesRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.SalesInfo, error) {
	var rows []models.SalesRecord
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("c_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.SalesInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SalesInfo{
			IMO:             row.IMO,
			CaseID:          row.CaseID,
			QuotationNumber: row.QuotationNumber,
			Responsible:     row.Responsible,
			CustomerOwner:   row.CustomerOwner,
			VesselName:      row.VesselName,
			Priority:        row.Priority,
			LastQuoteDate:   row.LastQuoteDate,
			OrgID:           row.OrgID,
		})
	}
	return out, nil
}

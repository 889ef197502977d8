package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harborview/fleetwatch"
	"github.com/harborview/fleetwatch/internal/domain"
	"github.com/harborview/fleetwatch/internal/infra/database/models"
)

type TrackingRepository struct {
	db *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

func (r *TrackingRepository) ListGlobal(ctx context.Context) ([]domain.TrackedVessel, error) {
	var rows []models.TrackedVessel
	err := r.db.WithContext(ctx).
		Preload("Enrichment").
		Order("c_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.TrackedVessel, 0, len(rows))
	for _, row := range rows {
		out = append(out, linkFromModel(row))
	}
	return out, nil
}

func (r *TrackingRepository) ListByUser(ctx context.Context, loginUserID string) ([]domain.TrackedVessel, error) {
	var rows []models.TrackedVessel
	err := r.db.WithContext(ctx).
		Preload("Enrichment").
		Where("login_user_id = ?", loginUserID).
		Order("c_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.TrackedVessel, 0, len(rows))
	for _, row := range rows {
		out = append(out, linkFromModel(row))
	}
	return out, nil
}

func (r *TrackingRepository) CountByOrg(ctx context.Context, orgID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TrackedVessel{}).
		Where("org_id = ?", orgID).
		Count(&count).Error
	return count, err
}

func (r *TrackingRepository) HasEnrichment(ctx context.Context, imo int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VesselEnrichment{}).
		Where("imo = ?", imo).
		Count(&count).Error
	return count > 0, err
}

func (r *TrackingRepository) InsertEnrichmentIfAbsent(ctx context.Context, rec domain.VesselEnrichment) (bool, error) {
	ais, err := json.Marshal(rec.AIS)
	if err != nil {
		return false, err
	}

	row := models.VesselEnrichment{
		IMO:           rec.IMO,
		Name:          rec.Vessel.Name,
		TransportType: rec.Vessel.TransportType,
		Flag:          rec.Vessel.Flag,
		GrossTonnage:  rec.Vessel.GrossTonnage,
		DeadWeight:    rec.Vessel.DeadWeight,
		AIS:           string(ais),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "imo"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *TrackingRepository) InsertLinkIfAbsent(ctx context.Context, link domain.TrackedVessel) (bool, error) {
	row := models.TrackedVessel{
		IMO:         link.IMO,
		LoginUserID: link.LoginUserID,
		OrgID:       link.OrgID,
		Email:       link.Email,
		CaseID:      link.CaseID,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "imo"}, {Name: "login_user_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func linkFromModel(row models.TrackedVessel) domain.TrackedVessel {
	link := domain.TrackedVessel{
		IMO:         row.IMO,
		LoginUserID: row.LoginUserID,
		OrgID:       row.OrgID,
		Email:       row.Email,
		CaseID:      row.CaseID,
		AddedDate:   row.CDate,
		Vessel: fleetwatch.Vessel{
			IMO:           row.Enrichment.IMO,
			Name:          row.Enrichment.Name,
			TransportType: row.Enrichment.TransportType,
			Flag:          row.Enrichment.Flag,
			GrossTonnage:  row.Enrichment.GrossTonnage,
			DeadWeight:    row.Enrichment.DeadWeight,
		},
	}

	if row.Enrichment.AIS != "" {
		if err := json.Unmarshal([]byte(row.Enrichment.AIS), &link.AIS); err != nil {
			// A corrupt snapshot degrades the row to statics only.
			slog.Warn(
				"Failed to decode stored AIS snapshot",
				slog.String("error", err.Error()),
				slog.Int64("imo", row.IMO),
				slog.String("module", "repository"),
			)
		}
	}

	return link
}

package scan

import (
	"context"

	"texture-scanner/feature/scan/models"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// recordScan upserts the registry row for a scan. The registry is best
// effort: failures are logged and never fail the operation that triggered
// the write.
func (s *Service) recordScan(ctx context.Context, report *models.Report) {
	if s.db == nil {
		return
	}

	problems := 0
	for i := range report.Gallery {
		if report.Gallery[i].HasProblem {
			problems++
		}
	}

	rec := models.ScanRecord{
		ID:            report.ScanID,
		TotalItems:    report.Summary.TotalItems,
		TotalTextures: report.Summary.TotalTextures,
		Problems:      problems,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		s.logger.Warn("Failed to update scan registry",
			zap.String("scan_id", report.ScanID), zap.Error(err))
	}
}

// ListScans returns the registry catalog, newest first. Without a
// database connection the catalog is empty.
func (s *Service) ListScans(ctx context.Context) ([]models.ScanRecord, error) {
	if s.db == nil {
		return []models.ScanRecord{}, nil
	}

	var records []models.ScanRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

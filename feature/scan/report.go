package scan

import (
	"context"
	"encoding/json"
	"fmt"

	"texture-scanner/core/storage"
	"texture-scanner/feature/scan/models"
	"texture-scanner/feature/scan/script"

	"go.uber.org/zap"
)

// ReportStore persists the canonical report and script text for each scan.
// Every mutation goes through a load -> transform -> save cycle against
// this store; there is no other write path.
type ReportStore struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewReportStore creates a report store over the given blob store.
func NewReportStore(store *storage.Store, logger *zap.Logger) *ReportStore {
	return &ReportStore{store: store, logger: logger}
}

// Load reads the report for a scan. Reports written before pool, category
// and order existed are upgraded on read: the fields are re-derived from
// the stored script when available (else defaulted) and the upgraded
// report is persisted immediately.
func (r *ReportStore) Load(ctx context.Context, scanID string) (*models.Report, error) {
	key := reportPath(scanID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check report for scan %s: %w", scanID, err)
	}
	if !exists {
		return nil, fmt.Errorf("scan %s: %w", scanID, ErrScanNotFound)
	}

	data, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read report for scan %s: %w", scanID, err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report for scan %s: %w", scanID, err)
	}

	if isLegacyReport(data) {
		r.upgrade(ctx, scanID, &report)
		if err := r.Save(ctx, scanID, &report); err != nil {
			return nil, err
		}
		r.logger.Info("Upgraded legacy report", zap.String("scan_id", scanID))
	}

	if len(report.AvailablePools) == 0 {
		report.AvailablePools = []string{models.PoolAllItems, models.PoolOwnRisk}
	}

	return &report, nil
}

// isLegacyReport reports whether raw report JSON predates the pool,
// category and order fields: a non-empty gallery where no item carries an
// order field. The check inspects item fields, not raw bytes, so string
// values that happen to contain "order" cannot mislead it.
func isLegacyReport(data []byte) bool {
	var probe struct {
		Gallery []map[string]json.RawMessage `json:"gallery"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || len(probe.Gallery) == 0 {
		return false
	}
	for _, item := range probe.Gallery {
		if _, ok := item["order"]; ok {
			return false
		}
	}
	return true
}

// upgrade backfills pool, category and order from the stored script.
// Items the script does not declare keep the defaults.
func (r *ReportStore) upgrade(ctx context.Context, scanID string, report *models.Report) {
	text, err := r.ScriptText(ctx, scanID)
	if err != nil {
		// No script available; the unmarshal defaults already applied.
		return
	}

	parsed := script.Parse(text)
	for i := range report.Gallery {
		item := &report.Gallery[i]
		if item.Pool == "" {
			item.Pool = parsed.Pools[item.Key]
		}
		if item.Category == "" {
			item.Category = parsed.Categories[item.Key]
		}
		if order, ok := parsed.Orders[item.Key]; ok && item.Order == models.DefaultOrder {
			item.Order = order
		}
	}
	if len(report.AvailablePools) == 0 {
		report.AvailablePools = parsed.AvailablePools()
	}
}

// Save writes the report for a scan, replacing any previous version.
func (r *ReportStore) Save(ctx context.Context, scanID string, report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report for scan %s: %w", scanID, err)
	}
	if err := r.store.Put(ctx, reportPath(scanID), data, "application/json"); err != nil {
		return fmt.Errorf("failed to save report for scan %s: %w", scanID, err)
	}
	return nil
}

// ScriptText reads the current configuration-script text for a scan.
func (r *ReportStore) ScriptText(ctx context.Context, scanID string) (string, error) {
	exists, err := r.store.Exists(ctx, scriptPath(scanID))
	if err != nil {
		return "", fmt.Errorf("failed to check script for scan %s: %w", scanID, err)
	}
	if !exists {
		return "", fmt.Errorf("scan %s: %w", scanID, ErrScanNotFound)
	}
	data, err := r.store.Get(ctx, scriptPath(scanID))
	if err != nil {
		return "", fmt.Errorf("failed to read script for scan %s: %w", scanID, err)
	}
	return string(data), nil
}

// SaveScript writes the configuration-script text for a scan.
func (r *ReportStore) SaveScript(ctx context.Context, scanID, text string) error {
	if err := r.store.Put(ctx, scriptPath(scanID), []byte(text), "text/x-python"); err != nil {
		return fmt.Errorf("failed to save script for scan %s: %w", scanID, err)
	}
	return nil
}

package scan

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"texture-scanner/core/storage"
	"texture-scanner/feature/scan/models"
	"texture-scanner/feature/scan/script"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// keyPattern validates item keys supplied through add/edit operations,
// after normalization to uppercase.
var keyPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// Service owns the scan lifecycle: the initial reconciliation and every
// subsequent edit operation. Each mutation is a load -> single semantic
// change -> full summary recount -> save transaction, followed by a whole
// regeneration of the script text whenever pool, category, key or order
// membership changed.
type Service struct {
	store   *storage.Store
	reports *ReportStore
	indexer *Indexer
	db      *gorm.DB
	logger  *zap.Logger

	// locks serializes mutations per scan id so concurrent edits to the
	// same scan cannot lose updates.
	locks sync.Map // scan id -> *sync.Mutex
}

// NewService creates a scan service. db may be nil; the registry is then
// disabled and scans can only be addressed by id.
func NewService(store *storage.Store, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		store:   store,
		reports: NewReportStore(store, logger),
		indexer: NewIndexer(store, logger),
		db:      db,
		logger:  logger,
	}
}

// lockScan acquires the per-scan mutex and returns the unlock function.
func (s *Service) lockScan(scanID string) func() {
	mu, _ := s.locks.LoadOrStore(scanID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// StartScan runs the full pipeline for a new upload: persist the script
// verbatim, parse it, index the textures, reconcile both sides and persist
// the initial report under a fresh scan id.
func (s *Service) StartScan(ctx context.Context, scriptText string, uploads []Upload) (*models.Report, error) {
	scanID := uuid.NewString()

	if err := s.reports.SaveScript(ctx, scanID, scriptText); err != nil {
		return nil, err
	}

	parsed := script.Parse(scriptText)

	idx, err := s.indexer.Index(ctx, scanID, uploads, parsed.Keys())
	if err != nil {
		return nil, err
	}

	report := BuildReport(scanID, parsed, idx)
	if err := s.reports.Save(ctx, scanID, report); err != nil {
		return nil, err
	}

	s.recordScan(ctx, report)

	s.logger.Info("Scan completed",
		zap.String("scan_id", scanID),
		zap.Int("total_items", report.Summary.TotalItems),
		zap.Int("total_textures", report.Summary.TotalTextures),
		zap.Int("gallery_size", len(report.Gallery)),
	)
	return report, nil
}

// GetReport returns the current report for a scan.
func (s *Service) GetReport(ctx context.Context, scanID string) (*models.Report, error) {
	return s.reports.Load(ctx, scanID)
}

// GetScriptText returns the current configuration-script text for a scan.
func (s *Service) GetScriptText(ctx context.Context, scanID string) (string, error) {
	return s.reports.ScriptText(ctx, scanID)
}

// regenerateScript rewrites the whole script text from the report gallery.
func (s *Service) regenerateScript(ctx context.Context, scanID string, report *models.Report) error {
	text := script.RenderGallery(report.Gallery)
	if err := s.reports.SaveScript(ctx, scanID, text); err != nil {
		return fmt.Errorf("failed to regenerate script: %w", err)
	}
	return nil
}

// saveAndRegenerate finalizes a mutation: full recount, persist the
// report, regenerate the script and refresh the registry row.
func (s *Service) saveAndRegenerate(ctx context.Context, scanID string, report *models.Report) error {
	report.Sort()
	report.Recount()
	if err := s.reports.Save(ctx, scanID, report); err != nil {
		return err
	}
	if err := s.regenerateScript(ctx, scanID, report); err != nil {
		return err
	}
	s.recordScan(ctx, report)
	return nil
}

// findItem locates a gallery item by key, case-insensitively.
func findItem(report *models.Report, key string) *models.GalleryItem {
	if item := report.Find(key); item != nil {
		return item
	}
	lower := strings.ToLower(key)
	for i := range report.Gallery {
		if strings.ToLower(report.Gallery[i].Key) == lower {
			return &report.Gallery[i]
		}
	}
	return nil
}

package scan

// Edit operations over a scan's report. Every operation here validates
// its inputs before touching anything, applies exactly one semantic
// change inside the per-scan lock, and finishes through saveAndRegenerate.

import (
	"context"
	"fmt"
	"strings"

	"texture-scanner/core/imagemeta"
	"texture-scanner/feature/scan/models"

	"go.uber.org/zap"
)

// validateKey normalizes a submitted item key to uppercase and checks the
// allowed pattern.
func validateKey(key string) (string, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if !keyPattern.MatchString(key) {
		return "", validationErrorf("item key %q must match [A-Z0-9_]+", key)
	}
	return key, nil
}

// validateImage checks that image bytes decode to exactly 16x16 pixels.
func validateImage(image []byte) error {
	dims, err := imagemeta.Probe(image)
	if err != nil {
		return validationErrorf("uploaded file is not a readable image")
	}
	if !dims.IsSquare16() {
		return validationErrorf("image must be exactly 16x16 pixels, uploaded: %s", dims)
	}
	return nil
}

// validatePool checks that the pool is one of the report's available pools.
func validatePool(report *models.Report, pool string) error {
	if !report.HasPool(pool) {
		return validationErrorf("unknown pool %q", pool)
	}
	return nil
}

// AddTexture stores a new 16x16 texture and upserts a fully-resolved
// gallery item with no problem flags.
func (s *Service) AddTexture(ctx context.Context, scanID, key, pool string, image []byte) (*models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return nil, err
	}

	key, err = validateKey(key)
	if err != nil {
		return nil, err
	}
	if err := validatePool(report, pool); err != nil {
		return nil, err
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	storedPath := texturePath(scanID, key)
	if err := s.store.Put(ctx, storedPath, image, "image/png"); err != nil {
		return nil, fmt.Errorf("failed to store texture for %s: %w", key, err)
	}

	// Upsert: a prior entry under the same key (any casing) is replaced.
	if existing := findItem(report, key); existing != nil {
		report.Remove(existing.Key)
	}
	report.Gallery = append(report.Gallery, models.GalleryItem{
		Key:         key,
		Label:       models.AutoLabel(key),
		TexturePath: storedPath,
		Pool:        pool,
		Order:       models.DefaultOrder,
	})

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return nil, err
	}

	s.logger.Info("Texture added", zap.String("scan_id", scanID), zap.String("key", key))
	return report, nil
}

// EditTexture renames an item and/or replaces its texture. With no new
// image and a changed key, the stored texture is renamed to match.
func (s *Service) EditTexture(ctx context.Context, scanID, oldKey, newKey, pool string, image []byte) (*models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return nil, err
	}

	newKey, err = validateKey(newKey)
	if err != nil {
		return nil, err
	}
	if err := validatePool(report, pool); err != nil {
		return nil, err
	}
	if image != nil {
		if err := validateImage(image); err != nil {
			return nil, err
		}
	}

	item := findItem(report, oldKey)
	if item == nil {
		return nil, fmt.Errorf("item %s in scan %s: %w", oldKey, scanID, ErrItemNotFound)
	}

	keyChanged := !strings.EqualFold(item.Key, newKey)

	// Renaming onto a key that already has an entry replaces that entry,
	// keeping the gallery unique by key.
	if keyChanged {
		canonical := item.Key
		if existing := findItem(report, newKey); existing != nil {
			report.Remove(existing.Key)
			item = findItem(report, canonical)
		}
	}

	oldPath := texturePath(scanID, item.Key)
	newPath := texturePath(scanID, newKey)

	switch {
	case image != nil:
		if keyChanged {
			if err := s.store.Delete(ctx, oldPath); err != nil {
				s.logger.Warn("Failed to delete replaced texture",
					zap.String("scan_id", scanID), zap.String("path", oldPath), zap.Error(err))
			}
		}
		if err := s.store.Put(ctx, newPath, image, "image/png"); err != nil {
			return nil, fmt.Errorf("failed to store texture for %s: %w", newKey, err)
		}
		item.TexturePath = newPath
		item.MissingTexture = false
		item.WrongSize = false
		item.WrongSizeInfo = nil
	case keyChanged:
		exists, err := s.store.Exists(ctx, oldPath)
		if err != nil {
			return nil, fmt.Errorf("failed to check texture for %s: %w", item.Key, err)
		}
		if exists {
			if err := s.store.Move(ctx, oldPath, newPath); err != nil {
				return nil, fmt.Errorf("failed to rename texture %s: %w", item.Key, err)
			}
			item.TexturePath = newPath
		}
	}

	item.Key = newKey
	item.Label = models.AutoLabel(newKey)
	item.Pool = pool
	item.RecomputeProblem()

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return nil, err
	}

	s.logger.Info("Texture edited",
		zap.String("scan_id", scanID), zap.String("old_key", oldKey), zap.String("key", newKey))
	return report, nil
}

// DeleteTextures removes the given keys from the gallery together with
// their stored textures. Missing keys and missing blobs are skipped; the
// returned count is the number of gallery items actually removed.
func (s *Service) DeleteTextures(ctx context.Context, scanID string, keys []string) (int, *models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return 0, nil, err
	}

	deleted := 0
	for _, key := range keys {
		item := findItem(report, key)
		if item == nil {
			continue
		}
		if err := s.store.Delete(ctx, texturePath(scanID, item.Key)); err != nil {
			s.logger.Warn("Failed to delete texture blob",
				zap.String("scan_id", scanID), zap.String("key", item.Key), zap.Error(err))
		}
		if report.Remove(item.Key) {
			deleted++
		}
	}

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return 0, nil, err
	}

	s.logger.Info("Textures deleted", zap.String("scan_id", scanID), zap.Int("count", deleted))
	return deleted, report, nil
}

// BulkAddMissing adopts every texture currently lacking a declaration
// (missing_name set, missing_texture clear) into the given pool, clearing
// the flag. Returns the number of items adopted.
func (s *Service) BulkAddMissing(ctx context.Context, scanID, pool string) (int, *models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return 0, nil, err
	}
	if err := validatePool(report, pool); err != nil {
		return 0, nil, err
	}

	added := 0
	for i := range report.Gallery {
		item := &report.Gallery[i]
		if item.MissingName && !item.MissingTexture {
			item.MissingName = false
			item.Pool = pool
			item.RecomputeProblem()
			added++
		}
	}

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return 0, nil, err
	}

	s.logger.Info("Adopted missing items",
		zap.String("scan_id", scanID), zap.String("pool", pool), zap.Int("count", added))
	return added, report, nil
}

// BulkAddToPool assigns the given keys to a pool, clearing missing_name
// on each. Returns the number of items updated.
func (s *Service) BulkAddToPool(ctx context.Context, scanID string, keys []string, pool string) (int, *models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return 0, nil, err
	}
	if err := validatePool(report, pool); err != nil {
		return 0, nil, err
	}

	updated := 0
	for _, key := range keys {
		item := findItem(report, key)
		if item == nil {
			continue
		}
		item.MissingName = false
		item.Pool = pool
		item.RecomputeProblem()
		updated++
	}

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return 0, nil, err
	}
	return updated, report, nil
}

// UpdateCategory sets the category of one item. Problem flags are not
// affected, but the script is regenerated since grouping changed.
func (s *Service) UpdateCategory(ctx context.Context, scanID, key, category string) (*models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return nil, err
	}

	item := findItem(report, key)
	if item == nil {
		return nil, fmt.Errorf("item %s in scan %s: %w", key, scanID, ErrItemNotFound)
	}
	item.Category = category

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return nil, err
	}
	return report, nil
}

// BulkUpdateCategory sets the category on all matching keys. Returns the
// number of items updated.
func (s *Service) BulkUpdateCategory(ctx context.Context, scanID string, keys []string, category string) (int, *models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return 0, nil, err
	}

	updated := 0
	for _, key := range keys {
		if item := findItem(report, key); item != nil {
			item.Category = category
			updated++
		}
	}

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return 0, nil, err
	}
	return updated, report, nil
}

// ReorderItems applies new order values from a key -> order map. Keys
// absent from the map keep their current order.
func (s *Service) ReorderItems(ctx context.Context, scanID string, orders map[string]int) (*models.Report, error) {
	unlock := s.lockScan(scanID)
	defer unlock()

	report, err := s.reports.Load(ctx, scanID)
	if err != nil {
		return nil, err
	}

	for key, order := range orders {
		if item := findItem(report, key); item != nil {
			item.Order = order
		}
	}

	if err := s.saveAndRegenerate(ctx, scanID, report); err != nil {
		return nil, err
	}
	return report, nil
}

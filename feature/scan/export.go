package scan

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
)

// ExportFile is one entry of a scan export: the name inside the archive
// and the storage key holding its contents.
type ExportFile struct {
	Name string
	Key  string
}

// ListExportableFiles returns the archive layout for a scan: the settings
// script at the root plus every stored texture under textures/.
func (s *Service) ListExportableFiles(ctx context.Context, scanID string) ([]ExportFile, error) {
	exists, err := s.store.Exists(ctx, scriptPath(scanID))
	if err != nil {
		return nil, fmt.Errorf("failed to check script for scan %s: %w", scanID, err)
	}
	if !exists {
		return nil, fmt.Errorf("scan %s: %w", scanID, ErrScanNotFound)
	}

	files := []ExportFile{{Name: "settings.py", Key: scriptPath(scanID)}}

	prefix := texturesPrefix(scanID)
	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list textures: %w", err)
	}
	for _, key := range keys {
		files = append(files, ExportFile{
			Name: path.Join("textures", strings.TrimPrefix(key, prefix)),
			Key:  key,
		})
	}
	return files, nil
}

// BuildArchive packages a scan's exportable files into a zip.
func (s *Service) BuildArchive(ctx context.Context, scanID string) ([]byte, error) {
	files, err := s.ListExportableFiles(ctx, scanID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		data, err := s.store.Get(ctx, f.Key)
		if err != nil {
			s.logger.Warn("Skipping unreadable object during export",
				zap.String("scan_id", scanID), zap.String("key", f.Key), zap.Error(err))
			continue
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write archive entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

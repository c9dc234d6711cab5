package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"texture-scanner/core/imagemeta"
	"texture-scanner/core/storage"
	"texture-scanner/feature/scan/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// probeConcurrency bounds parallel dimension probes during indexing.
const probeConcurrency = 8

// Upload is one submitted texture file.
type Upload struct {
	// Filename is the client-provided name, extension included.
	Filename string

	// Data is the raw file contents.
	Data []byte
}

// TextureIndex is the indexer's view of the uploaded texture set.
type TextureIndex struct {
	// Paths maps each resolved key to its stored object path.
	Paths map[string]string

	// Duplicates holds keys that were uploaded more than once.
	Duplicates map[string]struct{}

	// WrongSize maps keys to observed dimensions when a texture is not 16x16.
	WrongSize map[string]imagemeta.Dimensions
}

// Indexer stores uploaded textures and detects collisions and size
// violations.
type Indexer struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewIndexer creates a texture indexer writing through the given store.
func NewIndexer(store *storage.Store, logger *zap.Logger) *Indexer {
	return &Indexer{store: store, logger: logger}
}

// Index processes uploads in submission order. Keys resolve
// case-insensitively against known (declared items first, earlier uploads
// after that), so "first occurrence wins, later ones are duplicates" is
// well-defined. Non-PNG files are skipped. Dimension probes run
// concurrently; a probe failure means "unknown size, assume OK".
func (ix *Indexer) Index(ctx context.Context, scanID string, uploads []Upload, known *models.KeySet) (*TextureIndex, error) {
	idx := &TextureIndex{
		Paths:      make(map[string]string),
		Duplicates: make(map[string]struct{}),
		WrongSize:  make(map[string]imagemeta.Dimensions),
	}

	// Probe all dimensions up front; assignment below stays sequential.
	dims := make([]*imagemeta.Dimensions, len(uploads))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i := range uploads {
		g.Go(func() error {
			d, err := imagemeta.Probe(uploads[i].Data)
			if err == nil {
				dims[i] = &d
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, upload := range uploads {
		if !strings.EqualFold(filepath.Ext(upload.Filename), ".png") {
			continue
		}

		stem := strings.TrimSuffix(upload.Filename, filepath.Ext(upload.Filename))
		key := known.Canonicalize(stem)
		known.Add(key)

		storedPath := texturePath(scanID, key)
		if err := ix.store.Put(ctx, storedPath, upload.Data, "image/png"); err != nil {
			return nil, fmt.Errorf("failed to store texture %s: %w", upload.Filename, err)
		}

		if _, exists := idx.Paths[key]; exists {
			idx.Duplicates[key] = struct{}{}
			ix.logger.Warn("Duplicate texture upload",
				zap.String("scan_id", scanID),
				zap.String("key", key),
				zap.String("filename", upload.Filename),
			)
		}
		idx.Paths[key] = storedPath

		if d := dims[i]; d != nil && !d.IsSquare16() {
			idx.WrongSize[key] = *d
		}
	}

	return idx, nil
}

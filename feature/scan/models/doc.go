// Package models defines the scan data model: the persisted Report with
// its GalleryItem entries and Summary counts, the case-insensitive KeySet
// used for item identity, and the registry row for the scan catalog.
package models

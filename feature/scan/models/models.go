package models

import (
	"encoding/json"
	"sort"
	"strings"

	"texture-scanner/core/imagemeta"
)

// Well-known pools that always exist, even when the uploaded script does
// not declare them.
const (
	PoolAllItems = "ALL_ITEM_POOL"
	PoolOwnRisk  = "OWN_RISK_ITEM_POOL"
)

// DefaultOrder is the sentinel order value meaning "unordered, sort last".
const DefaultOrder = 999

// GalleryItem is one reconciled entry: an item key together with its
// declaration state, texture state and detected problems.
type GalleryItem struct {
	// Key is the case-preserved canonical item key.
	Key string `json:"key"`

	// Label is the display name, auto-derived from the key when the
	// script does not declare the item.
	Label string `json:"label"`

	// TexturePath is the storage path of the item's texture, empty when
	// no texture was uploaded.
	TexturePath string `json:"texture_path,omitempty"`

	// Pool is the pool this item belongs to, empty when unassigned.
	Pool string `json:"pool,omitempty"`

	// Category is the free-text grouping label, empty when uncategorized.
	Category string `json:"category,omitempty"`

	// Order is the position used when regenerating the script.
	Order int `json:"order"`

	MissingTexture bool `json:"missing_texture"`
	MissingName    bool `json:"missing_name"`
	WrongSize      bool `json:"wrong_size"`

	// WrongSizeInfo carries the observed dimensions when WrongSize is set.
	WrongSizeInfo *imagemeta.Dimensions `json:"wrong_size_info,omitempty"`

	Duplicate bool `json:"duplicate"`

	// HasProblem is derived from the four flags above and must be
	// recomputed through RecomputeProblem whenever any of them changes.
	HasProblem bool `json:"has_problem"`
}

// RecomputeProblem rederives HasProblem from the four problem flags.
func (g *GalleryItem) RecomputeProblem() {
	g.HasProblem = g.MissingTexture || g.MissingName || g.WrongSize || g.Duplicate
}

// UnmarshalJSON defaults Order to DefaultOrder when the field is absent,
// so reports written before ordering existed load correctly.
func (g *GalleryItem) UnmarshalJSON(data []byte) error {
	type alias GalleryItem
	aux := struct {
		*alias
		Order *int `json:"order"`
	}{alias: (*alias)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Order == nil {
		g.Order = DefaultOrder
	} else {
		g.Order = *aux.Order
	}
	return nil
}

// Summary provides aggregate counts over a report's gallery.
type Summary struct {
	// TotalItems counts entries declared in the script (missing_name false).
	TotalItems int `json:"total_items"`

	// TotalTextures counts entries with an uploaded texture.
	TotalTextures int `json:"total_textures"`

	// MissingTextures counts declared items without a texture.
	MissingTextures int `json:"missing_textures"`

	// MissingNames counts textures without a declaration.
	MissingNames int `json:"missing_names"`

	// WrongSize counts textures that are not 16x16.
	WrongSize int `json:"wrong_size"`

	// Duplicates counts keys uploaded more than once.
	Duplicates int `json:"duplicates"`
}

// Report is the canonical persisted state of one scan.
type Report struct {
	// ScanID is the opaque unique identifier of the scan.
	ScanID string `json:"scan_id"`

	// Summary holds aggregate counts; always kept equal to a full recount
	// of Gallery.
	Summary Summary `json:"summary"`

	// Gallery is the reconciled item list, unique by key.
	Gallery []GalleryItem `json:"gallery"`

	// AvailablePools lists the pools items may be assigned to.
	AvailablePools []string `json:"available_pools,omitempty"`
}

// Find returns a pointer to the gallery item with the given key, or nil.
func (r *Report) Find(key string) *GalleryItem {
	for i := range r.Gallery {
		if r.Gallery[i].Key == key {
			return &r.Gallery[i]
		}
	}
	return nil
}

// Remove deletes the gallery item with the given key.
// It reports whether an item was removed.
func (r *Report) Remove(key string) bool {
	for i := range r.Gallery {
		if r.Gallery[i].Key == key {
			r.Gallery = append(r.Gallery[:i], r.Gallery[i+1:]...)
			return true
		}
	}
	return false
}

// Recount recomputes the full summary from the gallery. Mutations always
// recount rather than patching individual counters, so the summary can
// never drift and never goes negative.
func (r *Report) Recount() {
	var s Summary
	for i := range r.Gallery {
		item := &r.Gallery[i]
		if !item.MissingName {
			s.TotalItems++
		}
		if !item.MissingTexture {
			s.TotalTextures++
		}
		if item.MissingTexture {
			s.MissingTextures++
		}
		if item.MissingName {
			s.MissingNames++
		}
		if item.WrongSize {
			s.WrongSize++
		}
		if item.Duplicate {
			s.Duplicates++
		}
	}
	r.Summary = s
}

// Sort orders the gallery with problem items first, then case-insensitive
// by key within each partition. The sort is stable.
func (r *Report) Sort() {
	sort.SliceStable(r.Gallery, func(i, j int) bool {
		a, b := &r.Gallery[i], &r.Gallery[j]
		if a.HasProblem != b.HasProblem {
			return a.HasProblem
		}
		return strings.ToLower(a.Key) < strings.ToLower(b.Key)
	})
}

// HasPool reports whether name is one of the report's available pools.
func (r *Report) HasPool(name string) bool {
	for _, p := range r.AvailablePools {
		if p == name {
			return true
		}
	}
	return false
}

// AutoLabel derives a display label from an item key:
// "NETHERITE_PICKAXE" becomes "Netherite Pickaxe".
func AutoLabel(key string) string {
	words := strings.Split(strings.ToLower(key), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// KeySet tracks item keys with case-insensitive identity while preserving
// the canonical casing that first established each key.
type KeySet struct {
	canonical map[string]string // lowercase -> canonical form
}

// NewKeySet creates a key set seeded with the given canonical keys.
func NewKeySet(keys ...string) *KeySet {
	ks := &KeySet{canonical: make(map[string]string, len(keys))}
	for _, k := range keys {
		ks.Add(k)
	}
	return ks
}

// Add registers a key. The first casing seen for a key wins; adding an
// existing key under different casing returns the established form.
func (ks *KeySet) Add(key string) string {
	lower := strings.ToLower(key)
	if existing, ok := ks.canonical[lower]; ok {
		return existing
	}
	ks.canonical[lower] = key
	return key
}

// Resolve looks up the canonical form of a candidate key.
func (ks *KeySet) Resolve(candidate string) (string, bool) {
	c, ok := ks.canonical[strings.ToLower(candidate)]
	return c, ok
}

// Canonicalize returns the established casing for candidate if the key is
// known, otherwise the candidate unchanged.
func (ks *KeySet) Canonicalize(candidate string) string {
	if c, ok := ks.Resolve(candidate); ok {
		return c
	}
	return candidate
}

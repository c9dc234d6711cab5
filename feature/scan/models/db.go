package models

import "time"

// ScanRecord is the registry row for one scan. The registry is a catalog
// only; the blob store remains the source of truth for report contents.
type ScanRecord struct {
	// ID is the scan id (UUID).
	ID string `gorm:"primaryKey;size:36" json:"id"`

	// TotalItems mirrors the report summary at last write.
	TotalItems int `json:"total_items"`

	// TotalTextures mirrors the report summary at last write.
	TotalTextures int `json:"total_textures"`

	// Problems counts gallery entries flagged has_problem at last write.
	Problems int `json:"problems"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the GORM table name.
func (ScanRecord) TableName() string {
	return "scans"
}

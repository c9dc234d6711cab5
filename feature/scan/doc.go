// Package scan implements the texture scan feature.
//
// A scan reconciles two sources of truth uploaded together:
//  1. Settings script: a Python-style file declaring item pools.
//  2. Textures: 16x16 PNG images, one per declared item.
//
// The reconciliation produces a canonical report stored as JSON. Every
// later edit (add, rename, delete, pool and category changes, reorder)
// mutates the report under a per-scan lock, recounts the summary from
// scratch and regenerates the whole settings script from the report, so
// that script, report and stored textures never drift apart.
//
// # Components
//
//   - script: parser and deterministic writer for the settings format.
//   - Indexer: stores uploaded textures and records dimension problems.
//   - ReportStore: report persistence, including legacy report upgrades.
//   - Service: scan lifecycle and all edit operations.
//   - Handler: exposes the HTTP endpoints.
//
// # HTTP Endpoints
//
//   - POST /scan : create a scan from a script plus textures.
//   - GET  /scan/:id : fetch the report.
//   - GET  /scan/:id/settings : fetch the regenerated script.
//   - GET  /scan/:id/export : download script and textures as a zip.
//   - POST /scan/add-texture, /scan/edit-texture, /scan/delete-texture,
//     /scan/bulk-add, /scan/bulk-add-pool, /scan/update-category,
//     /scan/bulk-update-category, /scan/reorder : edit operations.
package scan

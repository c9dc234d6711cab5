package scan

import (
	"texture-scanner/feature/scan/models"
	"texture-scanner/feature/scan/script"
)

// BuildReport merges the parsed item registry and the texture index into
// the initial report for a scan.
//
// The gallery is the union of declared keys and texture keys; each entry
// carries the four problem flags, the derived has_problem, and the pool,
// category and order from the script when declared. Summary counts are
// computed from the underlying sets and always agree with a full gallery
// recount.
func BuildReport(scanID string, parsed script.Result, idx *TextureIndex) *models.Report {
	union := make(map[string]struct{}, len(parsed.Labels)+len(idx.Paths))
	for key := range parsed.Labels {
		union[key] = struct{}{}
	}
	for key := range idx.Paths {
		union[key] = struct{}{}
	}

	gallery := make([]models.GalleryItem, 0, len(union))
	for key := range union {
		texture, hasTexture := idx.Paths[key]
		label, hasName := parsed.Labels[key]
		wrongSize, isWrongSize := idx.WrongSize[key]
		_, isDuplicate := idx.Duplicates[key]

		item := models.GalleryItem{
			Key:            key,
			Label:          label,
			TexturePath:    texture,
			Pool:           parsed.Pools[key],
			Category:       parsed.Categories[key],
			Order:          models.DefaultOrder,
			MissingTexture: !hasTexture,
			MissingName:    !hasName,
			WrongSize:      isWrongSize,
			Duplicate:      isDuplicate,
		}
		if !hasName {
			item.Label = models.AutoLabel(key)
		}
		if order, ok := parsed.Orders[key]; ok {
			item.Order = order
		}
		if isWrongSize {
			item.WrongSizeInfo = &wrongSize
		}
		item.RecomputeProblem()
		gallery = append(gallery, item)
	}

	report := &models.Report{
		ScanID:         scanID,
		Gallery:        gallery,
		AvailablePools: parsed.AvailablePools(),
	}
	report.Sort()
	report.Recount()
	return report
}

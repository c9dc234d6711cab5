package scan

import (
	"fmt"
	"strings"
)

// Storage layout for one scan:
//
//	scans/<id>/report.json
//	scans/<id>/settings.py
//	scans/<id>/textures/<key>.png   (key lowercased)

func reportPath(scanID string) string {
	return fmt.Sprintf("scans/%s/report.json", scanID)
}

func scriptPath(scanID string) string {
	return fmt.Sprintf("scans/%s/settings.py", scanID)
}

func texturesPrefix(scanID string) string {
	return fmt.Sprintf("scans/%s/textures/", scanID)
}

func texturePath(scanID, key string) string {
	return texturesPrefix(scanID) + strings.ToLower(key) + ".png"
}

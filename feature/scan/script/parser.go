package script

import (
	"regexp"
	"strings"

	"texture-scanner/feature/scan/models"
)

var (
	// poolBlockRe captures a complete pool assignment with its list body.
	poolBlockRe = regexp.MustCompile(`(?s)([A-Z_]+_POOL)\s*=\s*\[(.*?)\]`)

	// poolHeaderRe matches just the pool header, so pool names are
	// discovered even when a list body is malformed or unterminated.
	poolHeaderRe = regexp.MustCompile(`([A-Z_]+_POOL)\s*=\s*\[`)

	// itemRe captures one double-quoted item key.
	itemRe = regexp.MustCompile(`"([^"]+)"`)

	// categoryRe matches a category comment line.
	categoryRe = regexp.MustCompile(`^#\s*(.+)$`)
)

// Result holds the normalized item registry parsed from a configuration
// script.
type Result struct {
	// Labels maps each item key to its display label.
	Labels map[string]string

	// Pools maps each item key to the pool that declared it. A key
	// declared in several pools keeps the last-seen pool.
	Pools map[string]string

	// Categories maps item keys to the nearest preceding category comment
	// within the pool that last declared them. Keys with no preceding
	// comment are absent.
	Categories map[string]string

	// Orders maps item keys to their 0-based position within the pool
	// that last declared them.
	Orders map[string]int

	// PoolNames lists every distinct pool name encountered, in document
	// order, including pools whose body failed to parse.
	PoolNames []string
}

// Parse extracts the item registry from configuration-script text.
//
// The parse is non-destructive and repeatable: identical input always
// yields identical maps. A malformed or unterminated pool body degrades to
// an empty pool rather than an error.
func Parse(text string) Result {
	res := Result{
		Labels:     make(map[string]string),
		Pools:      make(map[string]string),
		Categories: make(map[string]string),
		Orders:     make(map[string]int),
	}

	seen := make(map[string]bool)
	for _, m := range poolHeaderRe.FindAllStringSubmatch(text, -1) {
		if name := m[1]; !seen[name] {
			seen[name] = true
			res.PoolNames = append(res.PoolNames, name)
		}
	}

	for _, block := range poolBlockRe.FindAllStringSubmatch(text, -1) {
		poolName, body := block[1], block[2]

		order := 0
		currentCategory := ""
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)

			if cat := categoryRe.FindStringSubmatch(line); cat != nil {
				currentCategory = strings.TrimSpace(cat[1])
				continue
			}

			item := itemRe.FindStringSubmatch(line)
			if item == nil {
				continue
			}
			key := strings.TrimSpace(item[1])

			// A key declared more than once keeps its last declaration:
			// pool, category and order all overwrite.
			res.Pools[key] = poolName
			res.Labels[key] = models.AutoLabel(key)
			res.Orders[key] = order
			if currentCategory != "" {
				res.Categories[key] = currentCategory
			} else {
				delete(res.Categories, key)
			}
			order++
		}
	}

	return res
}

// AvailablePools returns the parsed pool names with the two well-known
// pools appended when missing.
func (r Result) AvailablePools() []string {
	pools := make([]string, len(r.PoolNames))
	copy(pools, r.PoolNames)

	for _, required := range []string{models.PoolAllItems, models.PoolOwnRisk} {
		found := false
		for _, p := range pools {
			if p == required {
				found = true
				break
			}
		}
		if !found {
			pools = append(pools, required)
		}
	}
	return pools
}

// Keys returns the declared item keys as a case-insensitive key set.
func (r Result) Keys() *models.KeySet {
	ks := models.NewKeySet()
	for key := range r.Labels {
		ks.Add(key)
	}
	return ks
}

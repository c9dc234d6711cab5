package script

import (
	"fmt"
	"sort"
	"strings"

	"texture-scanner/feature/scan/models"
)

// Entry is one item to render into the configuration script.
type Entry struct {
	Key      string
	Pool     string
	Category string
	Order    int
}

// Render regenerates the full configuration-script text from item entries.
//
// This is a total regeneration, never a patch: the output is a pure
// function of the entries, so repeated edits can never accumulate stale or
// duplicate lines. Entries without a pool are omitted.
//
// The two well-known pools always render (empty pools render as an empty
// list); any further pools present among the entries follow in first-seen
// order. Within a pool, items sort by order ascending (stable, ties keep
// their relative input order), uncategorized items render first, then one
// group per category in first-seen order with a comment header.
func Render(entries []Entry) string {
	poolNames := []string{models.PoolAllItems, models.PoolOwnRisk}
	byPool := map[string][]Entry{
		models.PoolAllItems: nil,
		models.PoolOwnRisk:  nil,
	}

	for _, e := range entries {
		if e.Pool == "" {
			continue
		}
		if _, ok := byPool[e.Pool]; !ok {
			poolNames = append(poolNames, e.Pool)
		}
		byPool[e.Pool] = append(byPool[e.Pool], e)
	}

	var b strings.Builder
	for _, poolName := range poolNames {
		items := byPool[poolName]
		if len(items) == 0 {
			fmt.Fprintf(&b, "%s = [\n]\n\n", poolName)
			continue
		}

		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Order < items[j].Order
		})

		var uncategorized []string
		var categoryOrder []string
		categorized := make(map[string][]string)

		for _, item := range items {
			if item.Category == "" {
				uncategorized = append(uncategorized, item.Key)
				continue
			}
			if _, ok := categorized[item.Category]; !ok {
				categoryOrder = append(categoryOrder, item.Category)
			}
			categorized[item.Category] = append(categorized[item.Category], item.Key)
		}

		fmt.Fprintf(&b, "%s = [\n", poolName)

		if len(uncategorized) > 0 {
			for _, key := range uncategorized {
				fmt.Fprintf(&b, "    %q,\n", key)
			}
			if len(categoryOrder) > 0 {
				b.WriteString("\n")
			}
		}

		for i, category := range categoryOrder {
			fmt.Fprintf(&b, "    # %s\n", category)
			for _, key := range categorized[category] {
				fmt.Fprintf(&b, "    %q,\n", key)
			}
			if i < len(categoryOrder)-1 {
				b.WriteString("\n")
			}
		}

		b.WriteString("]\n\n")
	}

	return strings.TrimSpace(b.String()) + "\n"
}

// RenderGallery renders a report gallery, keeping each item's pool,
// category and order.
func RenderGallery(gallery []models.GalleryItem) string {
	entries := make([]Entry, 0, len(gallery))
	for _, item := range gallery {
		entries = append(entries, Entry{
			Key:      item.Key,
			Pool:     item.Pool,
			Category: item.Category,
			Order:    item.Order,
		})
	}
	return Render(entries)
}

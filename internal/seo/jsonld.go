package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// ListItem maps a ranked entry to its position.
type ListItem struct {
	Position int
	Name     string
	URL      string
	Image    string
}

// ItemList builds a schema.org ItemList in the given order.
func ItemList(name string, items []ListItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for _, it := range items {
		entry := map[string]any{
			"@type":    "ListItem",
			"position": it.Position,
			"name":     it.Name,
		}
		if it.URL != "" {
			entry["url"] = it.URL
		}
		if it.Image != "" {
			entry["image"] = it.Image
		}
		el = append(el, entry)
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"itemListOrder":   "https://schema.org/ItemListOrderDescending",
		"numberOfItems":   len(items),
		"itemListElement": el,
	}
}

package nav

import (
	"path"
	"strings"
)

// Item represents a side menu entry.
type Item struct {
	Path     string // route relative to the site root, e.g. "/anticipated"
	LabelKey string // i18n key, e.g. "nav.anticipated"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

const (
	WeeklyPath      = "/"
	AnticipatedPath = "/anticipated"
)

// Main is the side menu definition.
var Main = []Item{
	{Path: WeeklyPath, LabelKey: "nav.weekly"},
	{Path: AnticipatedPath, LabelKey: "nav.anticipated"},
}

// Build renders menu items under basePath with active state given the current route.
func Build(basePath, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     Href(basePath, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

// Href joins a route onto the configured base path. Directory routes keep
// their trailing slash so static hosts serve index.html.
func Href(basePath, route string) string {
	base := "/" + strings.Trim(strings.TrimSpace(basePath), "/")
	joined := path.Join(base, route)
	if joined != "/" {
		joined += "/"
	}
	return joined
}

// NormalizeBase turns "", "/", "site", "/site/" into "" or "/site".
func NormalizeBase(basePath string) string {
	trimmed := strings.Trim(strings.TrimSpace(basePath), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func isActive(itemPath, currentPath string) bool {
	currentPath = path.Clean("/" + currentPath)
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/anticipated" or "/anticipated/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

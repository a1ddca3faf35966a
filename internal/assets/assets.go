// Package assets holds the static files served under /assets.
package assets

import (
	"embed"
	"fmt"

	"top10animes.net/rank-web/internal/chrome"
)

//go:embed static/styles.css
var staticFS embed.FS

const (
	Stylesheet = "styles.css"
	Script     = "chrome.js"
)

// Files returns every asset keyed by file name. chrome.js is generated from
// the chrome state machine configuration.
func Files() (map[string][]byte, error) {
	css, err := staticFS.ReadFile("static/" + Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Stylesheet, err)
	}
	js, err := chrome.Script(chrome.DefaultScriptConfig())
	if err != nil {
		return nil, err
	}
	return map[string][]byte{
		Stylesheet: css,
		Script:     js,
	}, nil
}

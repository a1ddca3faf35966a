package chrome

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed chrome.js.tmpl
var scriptSource string

var scriptTemplate = template.Must(template.New("chrome.js").Parse(scriptSource))

// Element ids shared by the templates and the script.
const (
	SideMenuID    = "side-menu"
	ToggleID      = "navigation-menu"
	CloseButtonID = "btn-close-menu"
	ScrollTopID   = "scrollToTop"
)

// ScriptConfig parameterises the browser script.
type ScriptConfig struct {
	Threshold     int
	SideMenuID    string
	ToggleID      string
	CloseButtonID string
	ScrollTopID   string
}

// DefaultScriptConfig matches the ids used by the page templates.
func DefaultScriptConfig() ScriptConfig {
	return ScriptConfig{
		Threshold:     ScrollTopThreshold,
		SideMenuID:    SideMenuID,
		ToggleID:      ToggleID,
		CloseButtonID: CloseButtonID,
		ScrollTopID:   ScrollTopID,
	}
}

// Script renders the browser implementation of the chrome state machine.
func Script(cfg ScriptConfig) ([]byte, error) {
	if cfg.Threshold <= 0 {
		cfg.Threshold = ScrollTopThreshold
	}
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("render chrome script: %w", err)
	}
	return buf.Bytes(), nil
}

package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"strings"

	"top10animes.net/rank-web/internal/cards"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// cardData pairs a card with the page language for the card template.
type cardData struct {
	cards.CardView
	Lang string
}

func (a *Assembler) funcs() template.FuncMap {
	return template.FuncMap{
		"t": a.opts.Bundle.T,
		"card": func(lang string, c cards.CardView) cardData {
			return cardData{CardView: c, Lang: lang}
		},
		// JSON-LD is produced by encoding/json, which escapes <, > and &.
		"jsonld": func(s string) template.JS { return template.JS(s) },
	}
}

// parseTemplates loads every .tmpl file from dir, or from the embedded set
// when dir is blank.
func parseTemplates(funcs template.FuncMap, dir string) (*template.Template, error) {
	var fsys fs.FS
	if strings.TrimSpace(dir) != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	t, err := template.New("_root").Funcs(funcs).ParseFS(fsys, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Render executes the base layout. The page is buffered so a template error
// never leaves partial HTML on w.
func (a *Assembler) Render(w io.Writer, view PageView) error {
	t := a.tmpl
	if a.opts.TemplatesDir != "" {
		tc, err := parseTemplates(a.funcs(), a.opts.TemplatesDir)
		if err != nil {
			return err
		}
		t = tc
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", view); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

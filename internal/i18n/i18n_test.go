package i18n

import (
	"testing"
	"testing/fstest"
)

func TestResolveHonorsQValues(t *testing.T) {
	b, err := LoadDefault("en", []string{"en", "pt"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Resolve("pt;q=0.8, en;q=0.9"); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
	if got := b.Resolve("pt-BR,pt;q=0.9"); got != "pt" {
		t.Fatalf("expected pt, got %s", got)
	}
	if got := b.Resolve("ja, pt;q=0"); got != "en" {
		t.Fatalf("expected fallback en, got %s", got)
	}
	if got := b.Resolve("fr-CA, PT-pt;q=0.5"); got != "pt" {
		t.Fatalf("expected pt from regional tag, got %s", got)
	}
	for _, header := range []string{"", "pt;q=abc", "!!"} {
		if got := b.Resolve(header); got != "en" {
			t.Fatalf("Resolve(%q): expected fallback en, got %s", header, got)
		}
	}
}

func TestBundledLocalesShareKeys(t *testing.T) {
	b, err := LoadDefault("en", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for key := range b.dict["en"] {
		if _, ok := b.dict["pt"][key]; !ok {
			t.Errorf("pt locale missing key %q", key)
		}
	}
	if got := b.T("pt", "header.subtitle"); got != "DA SEMANA" {
		t.Fatalf("unexpected pt subtitle %q", got)
	}
}

func TestTFallsBack(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"a": "A", "b": "B"}`)},
		"pt.json": {Data: []byte(`{"a": "Á"}`)},
	}
	b, err := Load(fsys, "en", []string{"en", "pt", "fr"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("pt", "a"); got != "Á" {
		t.Fatalf("expected Á, got %q", got)
	}
	if got := b.T("pt", "b"); got != "B" {
		t.Fatalf("expected fallback B, got %q", got)
	}
	if got := b.T("pt", "missing"); got != "missing" {
		t.Fatalf("expected key echo, got %q", got)
	}
	if b.IsSupported("fr") {
		t.Fatalf("fr has no locale file and must not be supported")
	}
	if got := b.Supported(); len(got) != 2 || got[0] != "en" || got[1] != "pt" {
		t.Fatalf("unexpected supported list %v", got)
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "en", []string{"en"}); err == nil {
		t.Fatalf("expected error for missing fallback locale")
	}
	bad := fstest.MapFS{"en.json": {Data: []byte(`{`)}}
	if _, err := Load(bad, "en", nil); err == nil {
		t.Fatalf("expected error for malformed locale")
	}
}

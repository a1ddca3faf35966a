package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embedded embed.FS

// Locales exposes the bundled locale files rooted at their directory.
func Locales() fs.FS {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// Bundle holds one flat key/value dictionary per language.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
}

// Load reads <lang>.json for every supported language from fsys.
// Only the fallback locale is mandatory.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}
	if len(supported) == 0 {
		supported = defaultLanguages
	}
	for _, lang := range supported {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		dict, err := readDict(fsys, lang)
		switch {
		case errors.Is(err, fs.ErrNotExist) && lang != fallback:
			continue
		case err != nil:
			return nil, err
		}
		b.dict[lang] = dict
		b.supported[lang] = struct{}{}
	}
	if b.dict[fallback] == nil {
		return nil, fmt.Errorf("i18n: fallback %q has no dictionary", fallback)
	}
	return b, nil
}

var defaultLanguages = []string{"en", "pt"}

func readDict(fsys fs.FS, lang string) (map[string]string, error) {
	raw, err := fs.ReadFile(fsys, path.Clean(lang+".json"))
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", lang, err)
	}
	dict := map[string]string{}
	if err := json.Unmarshal(raw, &dict); err != nil {
		return nil, fmt.Errorf("i18n: decode %s: %w", lang, err)
	}
	return dict, nil
}

// LoadDefault loads the bundled locales.
func LoadDefault(fallback string, supported []string) (*Bundle, error) {
	return Load(Locales(), fallback, supported)
}

// Supported lists the loaded languages in sorted order.
func (b *Bundle) Supported() []string {
	langs := make([]string, 0, len(b.supported))
	for lang := range b.supported {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang has a loaded dictionary.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.supported[lang]
	return ok
}

// T looks key up in lang, then in the fallback language. Unknown keys are
// returned as is.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.dict[lang][key]; ok {
		return v
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Resolve picks the first supported base language of an Accept-Language
// header in weight order. Headers that fail to parse get the fallback.
func (b *Bundle) Resolve(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil {
		return b.fallback
	}
	for _, tag := range tags {
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		if code := base.String(); b.IsSupported(code) {
			return code
		}
	}
	return b.fallback
}

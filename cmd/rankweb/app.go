package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"top10animes.net/rank-web/internal/assets"
	"top10animes.net/rank-web/internal/config"
	"top10animes.net/rank-web/internal/i18n"
	"top10animes.net/rank-web/internal/markup"
	mw "top10animes.net/rank-web/internal/middleware"
	"top10animes.net/rank-web/internal/nav"
	"top10animes.net/rank-web/internal/observability"
	"top10animes.net/rank-web/internal/pages"
	"top10animes.net/rank-web/internal/payload"
	"top10animes.net/rank-web/internal/period"
)

// devTemplatesDir is reparsed on every request in dev mode.
const devTemplatesDir = "internal/pages/templates"

type app struct {
	cfg    config.Config
	logger *zap.Logger
	asm    *pages.Assembler
	assets map[string][]byte
}

// loadConfig resolves the config file, environment and command line flags.
func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.dataSource != "" {
		cfg.DataSource = flags.dataSource
	}
	return cfg, nil
}

// newApp wires the payload source, translations and page assembler.
func newApp(cfg config.Config, logger *zap.Logger, loader pages.Loader) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.LoadDefault(cfg.DefaultLang, cfg.Languages)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	footer, err := markup.Render(cfg.FooterMarkdown)
	if err != nil {
		return nil, fmt.Errorf("render footer: %w", err)
	}
	if loader == nil {
		loader = payload.NewSource(cfg.DataSource, cfg.CacheTTL)
	}
	opts := pages.Options{
		Loader:    loader,
		Bundle:    bundle,
		Period:    period.Formatter{Location: loc, Fallback: cfg.Fallback()},
		BasePath:  cfg.BasePath,
		MaxItems:  cfg.MaxItems,
		SiteName:  cfg.SiteName,
		SiteURL:   cfg.SiteURL,
		SocialURL: cfg.SocialURL,
		Footer:    footer,
	}
	if cfg.Dev {
		opts.TemplatesDir = devTemplatesDir
	}
	asm, err := pages.NewAssembler(opts)
	if err != nil {
		return nil, err
	}
	files, err := assets.Files()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, asm: asm, assets: files}, nil
}

func (a *app) router() http.Handler {
	base := nav.NormalizeBase(a.cfg.BasePath)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
	r.Use(chimw.RealIP)
	r.Use(mw.InjectLogger(a.logger))
	r.Use(mw.Trace(nil))
	r.Use(mw.RequestLogger)
	r.Use(mw.Recovery)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	site := chi.NewRouter()
	site.Use(mw.Locale(a.asm.Bundle()))
	site.Handle("/assets/*", mw.AssetsWithCache(base+"/assets", a.assets))
	site.Get(nav.WeeklyPath, a.page(pages.KindEpisodes))
	site.Get(nav.AnticipatedPath, a.page(pages.KindAnticipated))
	site.Get(nav.AnticipatedPath+"/", a.page(pages.KindAnticipated))

	if base == "" {
		r.Mount("/", site)
	} else {
		r.Mount(base, site)
	}
	return r
}

// page renders a ranking. Query parameters: lang, menu=open, q, min_score, limit.
func (a *app) page(kind pages.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		view := a.asm.Assemble(r.Context(), pages.Request{
			Kind:     kind,
			Lang:     mw.Lang(r),
			Filter:   pages.ParseFilter(q, a.cfg.MaxItems),
			MenuOpen: q.Get("menu") == "open",
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if err := a.asm.Render(w, view); err != nil {
			observability.FromContext(r.Context()).Error("render page", zap.String("kind", kind.String()), zap.Error(err))
			http.Error(w, "template error", http.StatusInternalServerError)
		}
	}
}

// Package pages assembles ranking payloads into full HTML pages.
package pages

import (
	"context"
	"html/template"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"top10animes.net/rank-web/internal/cards"
	"top10animes.net/rank-web/internal/chrome"
	"top10animes.net/rank-web/internal/i18n"
	"top10animes.net/rank-web/internal/nav"
	"top10animes.net/rank-web/internal/payload"
	"top10animes.net/rank-web/internal/period"
	"top10animes.net/rank-web/internal/seo"
)

const tracerName = "top10animes.net/rank-web/internal/pages"

// Kind selects the ranking a page shows.
type Kind int

const (
	KindEpisodes Kind = iota
	KindAnticipated
)

func (k Kind) String() string {
	if k == KindAnticipated {
		return "anticipated"
	}
	return "episodes"
}

// Route is the site-relative path of the page.
func (k Kind) Route() string {
	if k == KindAnticipated {
		return nav.AnticipatedPath
	}
	return nav.WeeklyPath
}

func (k Kind) headerKey() string { return "header." + k.String() }

func (k Kind) titleKey() string { return "site.title." + k.String() }

func (k Kind) descriptionKey() string { return "meta.description." + k.String() }

// Loader supplies payload documents. Failures must already be folded into
// empty documents.
type Loader interface {
	LoadEpisodes(ctx context.Context) payload.EpisodesDocument
	LoadAnticipated(ctx context.Context) payload.AnticipatedDocument
}

// Options configures an Assembler.
type Options struct {
	Loader    Loader
	Bundle    *i18n.Bundle
	Period    period.Formatter
	BasePath  string
	MaxItems  int
	SiteName  string
	SiteURL   string
	SocialURL string
	Footer    template.HTML
	// TemplatesDir reparses templates from disk on every render when set.
	TemplatesDir string
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Request describes one page to assemble.
type Request struct {
	Kind     Kind
	Lang     string
	Filter   Filter
	MenuOpen bool
	// Static pages have no server to answer ?menu=open, so the no-script
	// toggle targets the menu fragment instead.
	Static bool
}

// PageView is the complete view model of a page.
type PageView struct {
	Kind       Kind
	Lang       string
	Route      string
	ToggleHref string
	HeaderKey  string
	Period     string
	Cards      []cards.CardView
	Total      int
	Filter     Filter
	Nav        []nav.RenderedItem
	Chrome     chrome.View
	AssetBase  string
	SiteName   string
	SocialURL  string
	Footer     template.HTML
	SEO        seo.Meta
}

// Assembler builds and renders pages. It is safe for concurrent use.
type Assembler struct {
	opts   Options
	tmpl   *template.Template
	tracer trace.Tracer
}

// NewAssembler parses the embedded templates once.
func NewAssembler(opts Options) (*Assembler, error) {
	if opts.Bundle == nil {
		b, err := i18n.LoadDefault("en", nil)
		if err != nil {
			return nil, err
		}
		opts.Bundle = b
	}
	opts.BasePath = nav.NormalizeBase(opts.BasePath)
	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	a := &Assembler{opts: opts, tracer: tp.Tracer(tracerName)}
	t, err := parseTemplates(a.funcs(), "")
	if err != nil {
		return nil, err
	}
	a.tmpl = t
	return a, nil
}

// Bundle returns the translations used by the templates.
func (a *Assembler) Bundle() *i18n.Bundle { return a.opts.Bundle }

// Assemble reads the payload for req.Kind once and builds the page. Missing
// or malformed payloads produce a page with chrome and no cards.
func (a *Assembler) Assemble(ctx context.Context, req Request) PageView {
	ctx, span := a.tracer.Start(ctx, "pages.Assemble", trace.WithAttributes(
		attribute.String("page.kind", req.Kind.String()),
	))
	defer span.End()

	lang := a.lang(req.Lang)
	route := nav.Href(a.opts.BasePath, req.Kind.Route())
	view := PageView{
		Kind:      req.Kind,
		Lang:      lang,
		Route:     route,
		HeaderKey: req.Kind.headerKey(),
		Filter:    req.Filter,
		Nav:       nav.Build(a.opts.BasePath, req.Kind.Route()),
		Chrome:    chrome.Initial(req.MenuOpen),
		AssetBase: a.opts.BasePath + "/assets",
		SiteName:  a.opts.SiteName,
		SocialURL: a.opts.SocialURL,
		Footer:    a.opts.Footer,
	}
	view.ToggleHref = toggleHref(route, view.Chrome.MenuOpen, req.Static)

	var all []cards.CardView
	switch req.Kind {
	case KindAnticipated:
		doc := a.opts.Loader.LoadAnticipated(ctx)
		view.Period = a.opts.Period.Label(doc.Season)
		all = make([]cards.CardView, 0, len(doc.Animes))
		for i, an := range doc.Animes {
			if an.Ranking <= 0 {
				an.Ranking = i + 1
			}
			all = append(all, cards.Anticipated(an))
		}
	default:
		doc := a.opts.Loader.LoadEpisodes(ctx)
		start, _ := period.ParseDate(doc.StartDate)
		end, _ := period.ParseDate(doc.EndDate)
		view.Period = a.opts.Period.Format(start, end)
		all = make([]cards.CardView, 0, len(doc.Episodes))
		for i, ep := range doc.Episodes {
			all = append(all, cards.Episode(ep, i+1))
		}
	}

	if req.Filter.Limit == 0 {
		req.Filter.Limit = a.opts.MaxItems
		view.Filter.Limit = a.opts.MaxItems
	}
	view.Total = len(all)
	view.Cards = req.Filter.Apply(all)
	view.SEO = a.meta(view)

	span.SetAttributes(
		attribute.String("page.lang", lang),
		attribute.Int("page.items", view.Total),
		attribute.Int("page.cards", len(view.Cards)),
		attribute.Bool("page.filtered", req.Filter.Active()),
	)
	return view
}

func (a *Assembler) lang(requested string) string {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested != "" && a.opts.Bundle.IsSupported(requested) {
		return requested
	}
	return a.opts.Bundle.Fallback()
}

func (a *Assembler) meta(view PageView) seo.Meta {
	b := a.opts.Bundle
	title := b.T(view.Lang, view.Kind.titleKey())
	desc := b.T(view.Lang, view.Kind.descriptionKey())
	m := seo.Meta{
		Title:       title,
		Description: desc,
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Type:        "website",
			SiteName:    a.opts.SiteName,
		},
	}
	if len(view.Cards) > 0 {
		m.OG.Image = view.Cards[0].ImageURL
	}
	if base := strings.TrimRight(a.opts.SiteURL, "/"); base != "" {
		m.Canonical = base + view.Route
		m.OG.URL = m.Canonical
	}

	items := make([]seo.ListItem, 0, len(view.Cards))
	for _, c := range view.Cards {
		items = append(items, seo.ListItem{Position: c.Rank, Name: c.Title, URL: c.Href, Image: c.ImageURL})
	}
	if site := seo.JSON(seo.WebSite(a.opts.SiteName, a.opts.SiteURL)); site != "" {
		m.JSONLD = append(m.JSONLD, site)
	}
	if list := seo.JSON(seo.ItemList(title, items)); list != "" {
		m.JSONLD = append(m.JSONLD, list)
	}
	return m
}

// toggleHref is the no-script target of the hamburger: it flips the menu.
// Static pages open it through the :target rule on #side-menu.
func toggleHref(route string, open, static bool) string {
	if open {
		return route
	}
	if static {
		return "#side-menu"
	}
	q := url.Values{}
	q.Set("menu", "open")
	return route + "?" + q.Encode()
}

package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"top10animes.net/rank-web/internal/config"
	"top10animes.net/rank-web/internal/payload"
	"top10animes.net/rank-web/internal/testutil"
)

// newTestRouter builds the production router over a fixed payload.
func newTestRouter(t *testing.T, loader *testutil.StaticLoader, mutate ...func(*config.Config)) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Timezone = "UTC"
	for _, m := range mutate {
		m(&cfg)
	}
	a, err := newApp(cfg, zap.NewNop(), loader)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a.router()
}

func get(t *testing.T, h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sampleLoader() *testutil.StaticLoader {
	return &testutil.StaticLoader{
		Episodes: payload.EpisodesDocument{Episodes: []payload.Episode{
			{AnimeTitle: "X", EpisodeNumber: "5", EpisodeTitle: "Finale", Score: 4.87, URL: "https://x/y"},
			{AnimeTitle: "Other", EpisodeNumber: "1", Score: 3.2},
		}},
		Anticipated: payload.AnticipatedDocument{Season: "Winter 2026", Animes: []payload.AnticipatedAnime{
			{Ranking: 1, Title: "Alpha", MembersDisplay: "100K"},
		}},
	}
}

func TestHealthz(t *testing.T) {
	rr := get(t, newTestRouter(t, sampleLoader()), "/healthz")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rr.Code, rr.Body.String())
	}
}

func TestWeeklyPage(t *testing.T) {
	rr := get(t, newTestRouter(t, sampleLoader()), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := testutil.ParseHTML(t, rr.Body.Bytes())
	require.Equal(t, 2, doc.Find("a.card-link").Length())
	require.Equal(t, "https://x/y/episode", doc.Find("a.card-link").First().AttrOr("href", ""))
	require.Equal(t, "https://myanimelist.net", doc.Find(".footer-note a").AttrOr("href", ""))
}

func TestPageSpanNesting(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	rr := get(t, newTestRouter(t, sampleLoader()), "/anticipated/")
	require.Equal(t, http.StatusOK, rr.Code)

	var server, page sdktrace.ReadOnlySpan
	for _, s := range sr.Ended() {
		switch s.Name() {
		case "GET /anticipated":
			server = s
		case "pages.Assemble":
			page = s
		}
	}
	require.NotNil(t, server, "server span")
	require.NotNil(t, page, "page span")
	require.Equal(t, trace.SpanKindServer, server.SpanKind())
	require.Equal(t, server.SpanContext().SpanID(), page.Parent().SpanID())

	attrs := map[string]string{}
	for _, kv := range server.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "/anticipated", attrs["http.route"])
	require.Equal(t, "200", attrs["http.response.status_code"])
	for _, kv := range page.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "anticipated", attrs["page.kind"])
	require.Equal(t, "1", attrs["page.cards"])
}

func TestAnticipatedRoutes(t *testing.T) {
	h := newTestRouter(t, sampleLoader())
	for _, path := range []string{"/anticipated", "/anticipated/"} {
		rr := get(t, h, path)
		require.Equal(t, http.StatusOK, rr.Code, path)
		doc := testutil.ParseHTML(t, rr.Body.Bytes())
		require.Equal(t, "WINTER 2026", doc.Find(".header-date").Text())
		require.Equal(t, "Plan to Watch", doc.Find(".score-label").Text())
	}
}

func TestQueryParameters(t *testing.T) {
	h := newTestRouter(t, sampleLoader())

	doc := testutil.ParseHTML(t, get(t, h, "/?menu=open&lang=pt").Body.Bytes())
	require.True(t, doc.Find("#side-menu").HasClass("open"))
	require.Equal(t, "pt", doc.Find("html").AttrOr("lang", ""))

	doc = testutil.ParseHTML(t, get(t, h, "/?q=other").Body.Bytes())
	require.Equal(t, 1, doc.Find("a.card-link").Length())
	require.Equal(t, "2", doc.Find("a.card-link").AttrOr("data-rank", ""))

	doc = testutil.ParseHTML(t, get(t, h, "/", "Accept-Language", "pt-BR,pt;q=0.9").Body.Bytes())
	require.Equal(t, "Nota", doc.Find(".score-label").First().Text())
}

func TestMissingPayloadDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.DataSource = t.TempDir()
	a, err := newApp(cfg, zap.NewNop(), nil)
	require.NoError(t, err)

	rr := get(t, a.router(), "/")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := testutil.ParseHTML(t, rr.Body.Bytes())
	require.Equal(t, 0, doc.Find("a.card-link").Length())
	require.Equal(t, 1, doc.Find("#scrollToTop").Length())
}

func TestPayloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	body := `{"start_date":"2024-01-01","end_date":"2024-01-07","episodes":[{"anime_title":"X","episode_number":5,"episode_title":"Finale","score":4.87,"url":"https://x/y"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, payload.EpisodesFile), []byte(body), 0o644))

	cfg := config.Default()
	cfg.DataSource = dir
	a, err := newApp(cfg, zap.NewNop(), nil)
	require.NoError(t, err)

	doc := testutil.ParseHTML(t, get(t, a.router(), "/").Body.Bytes())
	require.Equal(t, "01/01/2024 - 07/01/2024", doc.Find(".header-date").Text())
	require.Equal(t, "E5 - Finale", doc.Find(".episode-info").Text())
	require.Equal(t, "4.87", doc.Find(".score-value").Text())
}

func TestAssets(t *testing.T) {
	h := newTestRouter(t, sampleLoader())

	rr := get(t, h, "/assets/chrome.js")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "navigation-menu")
	require.NotEmpty(t, rr.Header().Get("ETag"))

	rr = get(t, h, "/assets/styles.css", "If-None-Match", rr.Header().Get("ETag"))
	require.Equal(t, http.StatusOK, rr.Code, "etag is per file")

	rr = get(t, h, "/assets/nope.css")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBasePath(t *testing.T) {
	h := newTestRouter(t, sampleLoader(), func(c *config.Config) { c.BasePath = "/top50" })

	rr := get(t, h, "/top50/anticipated/")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := testutil.ParseHTML(t, rr.Body.Bytes())
	require.Equal(t, "/top50/assets/chrome.js", doc.Find("script[src]").AttrOr("src", ""))

	require.Equal(t, http.StatusOK, get(t, h, "/top50/assets/styles.css").Code)
	require.Equal(t, http.StatusOK, get(t, h, "/healthz").Code)
	require.Equal(t, http.StatusNotFound, get(t, h, "/anticipated").Code)
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site")
	cfgPath := filepath.Join(dir, "rankweb.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_source: "+dir+"\nlog_level: error\n"), 0o644))

	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"build", "--config", cfgPath, "--out", out, "--lang", "pt"})
	require.NoError(t, cmd.Execute())
	require.True(t, strings.HasPrefix(stdout.String(), "build "))

	for _, name := range []string{"index.html", "anticipated/index.html", "assets/styles.css", "assets/chrome.js", "build.json"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(name)))
		require.NoError(t, err, name)
	}
}

func TestBuildRequiresOut(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"build"})
	require.Error(t, cmd.Execute())
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_items: -1\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"build", "--config", cfgPath, "--out", t.TempDir()})
	require.Error(t, cmd.Execute())
}

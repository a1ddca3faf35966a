package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := Render("Scores from **MyAnimeList** ([site](https://myanimelist.net))")
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, "<strong>MyAnimeList</strong>")
	require.Contains(t, html, `href="https://myanimelist.net"`)
	require.Contains(t, html, `rel="nofollow`)
	require.Contains(t, html, `target="_blank"`)
}

func TestRenderStripsScripts(t *testing.T) {
	out, err := Render("hello <script>alert(1)</script> <img src=x onerror=alert(1)>")
	require.NoError(t, err)
	require.False(t, strings.Contains(string(out), "<script"))
	require.False(t, strings.Contains(string(out), "onerror"))
}

func TestRenderBlank(t *testing.T) {
	out, err := Render("  \n ")
	require.NoError(t, err)
	require.Empty(t, out)
}

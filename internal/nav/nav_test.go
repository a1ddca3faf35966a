package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMarksActive(t *testing.T) {
	items := Build("", "/")
	require.Len(t, items, 2)
	require.Equal(t, "/", items[0].Href)
	require.True(t, items[0].Active)
	require.Equal(t, "/anticipated/", items[1].Href)
	require.False(t, items[1].Active)

	items = Build("", "/anticipated/")
	require.False(t, items[0].Active)
	require.True(t, items[1].Active)
}

func TestBuildWithBasePath(t *testing.T) {
	items := Build("/top50/", "/anticipated")
	require.Equal(t, "/top50/", items[0].Href)
	require.Equal(t, "/top50/anticipated/", items[1].Href)
	require.True(t, items[1].Active)
}

func TestHref(t *testing.T) {
	require.Equal(t, "/", Href("", "/"))
	require.Equal(t, "/site/", Href("site", "/"))
	require.Equal(t, "/site/anticipated/", Href("/site", "/anticipated"))
}

func TestNormalizeBase(t *testing.T) {
	require.Equal(t, "", NormalizeBase(""))
	require.Equal(t, "", NormalizeBase("/"))
	require.Equal(t, "/site", NormalizeBase("site"))
	require.Equal(t, "/site", NormalizeBase("/site/"))
}

package assets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Contains(t, string(files[Stylesheet]), ".episode-card.first")
	require.Contains(t, string(files[Stylesheet]), ".scroll-to-top.visible")
	require.Contains(t, string(files[Script]), "scrollToTop")
}

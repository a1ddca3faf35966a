package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"path"
	"strings"
	"time"
)

// AssetsWithCache serves in-memory files below prefix with Cache-Control,
// Vary and ETag handling. Unknown names are 404.
func AssetsWithCache(prefix string, files map[string][]byte) http.Handler {
	etags := make(map[string]string, len(files))
	for name, body := range files {
		etags[name] = contentETag(body)
	}
	modTime := time.Now()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, prefix), "/")
		body, ok := files[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")
		et := etags[name]
		w.Header().Set("ETag", et)
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		// ServeContent picks the content type from the extension.
		http.ServeContent(w, r, path.Base(name), modTime, bytes.NewReader(body))
	})
}

func contentETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

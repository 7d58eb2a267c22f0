package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	clientdist "github.com/electa-dev/electa/client/dist"
)

// Paths of the embedded client assets.
const (
	ClientScriptPath = "/client.js"
	StyleSheetPath   = "/style.css"
)

type asset struct {
	body        []byte
	etag        string
	contentType string
}

func newAsset(body []byte, contentType string) asset {
	sum := sha256.Sum256(body)
	return asset{body: body, etag: fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:])), contentType: contentType}
}

var (
	clientScript = newAsset(clientdist.ElectaJS, "application/javascript; charset=utf-8")
	styleSheet   = newAsset(clientdist.ElectaCSS, "text/css; charset=utf-8")
)

func (s *Server) serveClientScript(w http.ResponseWriter, r *http.Request) {
	serveAsset(w, r, clientScript)
}

func (s *Server) serveStyleSheet(w http.ResponseWriter, r *http.Request) {
	serveAsset(w, r, styleSheet)
}

// serveAsset serves an embedded asset revalidated by ETag, since its URL
// is not versioned.
func serveAsset(w http.ResponseWriter, r *http.Request, a asset) {
	w.Header().Set("ETag", a.etag)
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), a.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(a.body)
}

func etagMatches(ifNoneMatchHeader, etag string) bool {
	if ifNoneMatchHeader == "" || etag == "" {
		return false
	}
	// Handle lists: If-None-Match: "abc", W/"def"
	for _, part := range strings.Split(ifNoneMatchHeader, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == etag || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

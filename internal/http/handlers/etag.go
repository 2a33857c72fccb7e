package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// viewETag derives a strong validator from the catalog version and the view parameters.
func viewETag(version string, parts ...string) string {
	if version == "" {
		return ""
	}
	d := xxhash.New()
	_, _ = d.WriteString(version)
	for _, p := range parts {
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(p)
	}
	return `"` + strconv.FormatUint(d.Sum64(), 16) + `"`
}

// notModified sets the ETag header and reports whether the client copy is
// current. If-None-Match uses weak comparison, so a W/ prefix is ignored.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if etag == "" {
		return false
	}
	w.Header().Set("ETag", etag)
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}

package handler

import (
	"net/http"
	"strings"
)

// IsDataStar reports whether r was sent by the Datastar client, which
// expects server-sent events instead of plain HTML or redirects.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	if r.Header.Get("Datastar-Request") == "true" {
		return true
	}
	return r.URL.Query().Has("datastar")
}

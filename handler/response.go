package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
}

func (rr redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(rr.url)
	}
	http.Redirect(w, r, rr.url, rr.code)
	return nil
}

// Redirect answers 303 See Other, or a client-side redirect event for
// Datastar requests.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// RedirectWithCode is Redirect with an explicit 3xx status.
func RedirectWithCode(url string, code int) Response {
	return redirectResponse{url: url, code: code}
}

type templResponse struct {
	component templ.Component
	status    int
	opts      []datastar.PatchElementOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.component, t.opts...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.status)
	return t.component.Render(r.Context(), w)
}

// Templ renders component as a full HTML response with status 200, or as
// an element patch for Datastar requests.
func Templ(component templ.Component, opts ...datastar.PatchElementOption) Response {
	return templResponse{component: component, status: http.StatusOK, opts: opts}
}

// TemplWithStatus is Templ with a custom status for plain HTML responses.
func TemplWithStatus(component templ.Component, status int) Response {
	return templResponse{component: component, status: status}
}

// WithTarget sets the selector a Datastar patch is applied to.
func WithTarget(selector string) datastar.PatchElementOption {
	return datastar.WithSelector(selector)
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON encodes v with the given status.
func JSON(status int, v any) Response {
	return jsonResponse{status: status, body: v}
}

type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error hands err to the error handler configured for Wrap.
func Error(err error) Response {
	return errorResponse{err: err}
}

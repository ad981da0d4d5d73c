// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value decoded by Bind and
// returns a Response. Responses know how to answer both regular browser
// requests and Datastar requests (server-sent events):
//
//   - Redirect: 303 See Other, or a Datastar redirect event.
//   - Templ: an HTML page, or a Datastar element patch.
//   - JSON: an encoded value with a status.
//
// Bind and render errors are answered by an ErrorHandler; HTTPError values
// keep their status code.
package handler

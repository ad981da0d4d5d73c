// Package clientip extracts the client address from proxy headers or the
// connection, normalises it and carries it through the request context.
//
// The headers in Headers are trusted as-is; only deploy behind proxies that
// overwrite them.
package clientip

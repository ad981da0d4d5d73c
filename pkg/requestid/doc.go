// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware keeps a client supplied X-Request-ID when it is 1 to 128
// characters of letters, digits, '-' or '_', and otherwise generates a UUID.
// The id is stored in the request context, echoed in the response header and
// exposed to the logger through LoggerExtractor.
package requestid

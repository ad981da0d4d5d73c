package logger

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Subject records the token subject under the key "subject".
// If sub is empty, it returns an empty Attr.
func Subject(sub string) slog.Attr {
	if sub == "" {
		return slog.Attr{}
	}
	return slog.String("subject", sub)
}

// ClientID records the client identifier under the key "client_id".
// If id is nil, it returns an empty Attr.
func ClientID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("client_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Path records a request or navigation path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// From records the navigation origin under the key "from".
// If p is empty, it returns an empty Attr.
func From(p string) slog.Attr {
	if p == "" {
		return slog.Attr{}
	}
	return slog.String("from", p)
}

// Outcome records a guard decision under the key "outcome".
func Outcome(o fmt.Stringer) slog.Attr {
	return slog.String("outcome", o.String())
}

// Location records a redirect target under the key "location".
// If loc is empty, it returns an empty Attr.
func Location(loc string) slog.Attr {
	if loc == "" {
		return slog.Attr{}
	}
	return slog.String("location", loc)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

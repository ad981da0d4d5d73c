package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers are consulted in order before falling back to RemoteAddr.
var Headers = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client address of r in canonical form, or "" when
// neither the proxy headers nor RemoteAddr hold a valid IP.
// For X-Forwarded-For the first valid entry wins.
func GetIP(r *http.Request) string {
	for _, h := range Headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parse(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

package route

import (
	"path"
	"strings"
)

type segmentKind uint8

const (
	segmentStatic segmentKind = iota
	segmentParam
	segmentWildcard
)

type segment struct {
	kind  segmentKind
	value string
}

// score ranks a segment: static beats param beats catch-all.
func (s segment) score() int {
	switch s.kind {
	case segmentStatic:
		return 3
	case segmentParam:
		return 2
	default:
		return -1
	}
}

func parseSegments(fullPath string) []segment {
	parts := splitPath(fullPath)
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		switch {
		case p == "*":
			segs = append(segs, segment{kind: segmentWildcard})
		case strings.HasPrefix(p, ":") && len(p) > 1:
			segs = append(segs, segment{kind: segmentParam, value: p[1:]})
		default:
			segs = append(segs, segment{kind: segmentStatic, value: p})
		}
	}
	return segs
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// normalize cleans a request or record path: leading slash, no trailing slash,
// no empty or dot segments.
func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// join resolves a child path against its parent.
func join(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return normalize(child)
	}
	if child == "" {
		return normalize(parent)
	}
	return normalize(parent + "/" + child)
}

// matchEntry reports whether e matches the request segments and returns the
// captured params.
func matchEntry(e Entry, parts []string) (map[string]string, bool) {
	var params map[string]string
	for i, seg := range e.segments {
		if seg.kind == segmentWildcard {
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		switch seg.kind {
		case segmentStatic:
			if parts[i] != seg.value {
				return nil, false
			}
		case segmentParam:
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.value] = parts[i]
		}
	}
	if len(parts) != len(e.segments) {
		return nil, false
	}
	return params, true
}

// better reports whether a ranks above b. Segment scores are compared in
// order, a missing segment scoring 0; on a full tie the earlier definition wins.
func better(a, b Entry) bool {
	n := max(len(a.segments), len(b.segments))
	for i := range n {
		sa, sb := scoreAt(a.segments, i), scoreAt(b.segments, i)
		if sa != sb {
			return sa > sb
		}
	}
	return a.order < b.order
}

func scoreAt(segs []segment, i int) int {
	if i >= len(segs) {
		return 0
	}
	return segs[i].score()
}

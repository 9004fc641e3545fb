// Package router implements the ordered, first-match route table
// (spec.md C6). Unlike the throughput-oriented radix/hash routers this
// package's teacher shipped, matching here is deliberately linear and
// registration-order-sensitive: Find returns the first registered
// route whose method and pattern match, never the "best" match.
package router

import (
	"github.com/searchktools/coroserver/core/http"
	"github.com/searchktools/coroserver/core/optimize"
	"github.com/searchktools/coroserver/internal/seq"
	"github.com/searchktools/coroserver/internal/view"
)

// Handler processes a matched request and writes a response.
type Handler func(req *http.Request, resp *http.Response)

// segmentKind distinguishes a literal path segment from a :param
// capture, decided once at registration time.
type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentParam
)

type segment struct {
	kind segmentKind
	text string // literal text, or param name without the leading ':'
}

// route is one registered method+pattern pair.
type route struct {
	method   http.Method
	pattern  string
	segments []segment
	handler  Handler
}

// Router holds routes in registration order.
type Router struct {
	routes *seq.Seq[*route]
}

// New creates an empty Router.
func New() *Router {
	return &Router{routes: seq.New[*route](nil)}
}

func splitSegments(pattern string) []segment {
	trimmed := stripSlashes(pattern)
	if trimmed == "" {
		return nil
	}
	var segs []segment
	start := 0
	for i := 0; i <= len(trimmed); i++ {
		if i == len(trimmed) || trimmed[i] == '/' {
			if i > start {
				part := trimmed[start:i]
				if len(part) > 0 && part[0] == ':' {
					segs = append(segs, segment{kind: segmentParam, text: part[1:]})
				} else {
					segs = append(segs, segment{kind: segmentLiteral, text: part})
				}
			}
			start = i + 1
		}
	}
	return segs
}

// stripSlashes removes exactly one leading and one trailing slash, per
// spec.md §4.6 ("single trailing-slash strip on both sides"). The
// root path "/" is handled as a special case by the caller before this
// ever runs.
func stripSlashes(p string) string {
	if len(p) > 0 && p[0] == '/' {
		p = p[1:]
	}
	if len(p) > 0 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	return p
}

func (r *Router) add(method http.Method, pattern string, h Handler) {
	rt := &route{
		method:   method,
		pattern:  pattern,
		segments: splitSegments(pattern),
		handler:  h,
	}
	r.routes.Push(rt)
}

func (r *Router) GET(pattern string, h Handler)     { r.add(http.MethodGET, pattern, h) }
func (r *Router) POST(pattern string, h Handler)    { r.add(http.MethodPOST, pattern, h) }
func (r *Router) PUT(pattern string, h Handler)     { r.add(http.MethodPUT, pattern, h) }
func (r *Router) DELETE(pattern string, h Handler)  { r.add(http.MethodDELETE, pattern, h) }
func (r *Router) PATCH(pattern string, h Handler)   { r.add(http.MethodPATCH, pattern, h) }
func (r *Router) OPTIONS(pattern string, h Handler) { r.add(http.MethodOPTIONS, pattern, h) }
func (r *Router) HEAD(pattern string, h Handler)    { r.add(http.MethodHEAD, pattern, h) }

// Find returns the first registered route whose method matches and
// whose pattern matches path, capturing any :param segments into req.
// It returns (nil, false) if nothing matches, including the no-match
// case where more than http.MaxParams segments would need capturing.
func (r *Router) Find(method http.Method, path view.View, req *http.Request) (Handler, bool) {
	var found Handler
	ok := false
	r.routes.Each(func(_ int, rt *route) {
		if ok || rt.method != method {
			return
		}
		req.ParamCount = 0
		if matchRoute(rt, path, req) {
			found = rt.handler
			ok = true
		}
	})
	return found, ok
}

// matchRoute reports whether path matches rt's pattern, writing any
// :param captures directly into req.Params. Exact "/" is a special
// case; otherwise both sides are slash-stripped once and walked
// segment by segment (spec.md §4.6).
func matchRoute(rt *route, path view.View, req *http.Request) bool {
	if len(rt.segments) == 0 {
		return isRootPath(path)
	}

	remaining := view.FromString(stripSlashesView(path))
	for i, seg := range rt.segments {
		if remaining.Empty() {
			return false
		}
		part, rest, hasMore := remaining.SplitOnce('/')
		remaining = rest

		if part.Empty() {
			return false
		}

		switch seg.kind {
		case segmentLiteral:
			if !optimize.ComparePathSIMD(part.String(), seg.text) {
				return false
			}
		case segmentParam:
			if req.ParamCount >= http.MaxParams {
				return false
			}
			req.Params[req.ParamCount] = http.Param{Name: view.FromString(seg.text), Value: part}
			req.ParamCount++
		}

		if !hasMore && i != len(rt.segments)-1 {
			return false
		}
	}
	return remaining.Empty()
}

func isRootPath(path view.View) bool {
	s := path.String()
	return s == "/" || s == ""
}

func stripSlashesView(path view.View) string {
	return stripSlashes(path.String())
}

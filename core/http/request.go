package http

import "github.com/searchktools/coroserver/internal/view"

// Method is the HTTP request method, spec.md §3.
type Method int

const (
	MethodGET Method = iota
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodPATCH
	MethodOPTIONS
	MethodHEAD
	MethodUnknown
)

func (m Method) String() string {
	switch m {
	case MethodGET:
		return "GET"
	case MethodPOST:
		return "POST"
	case MethodPUT:
		return "PUT"
	case MethodDELETE:
		return "DELETE"
	case MethodPATCH:
		return "PATCH"
	case MethodOPTIONS:
		return "OPTIONS"
	case MethodHEAD:
		return "HEAD"
	default:
		return "UNKNOWN"
	}
}

func methodFromView(v view.View) Method {
	switch {
	case v.EqualFoldString("GET"):
		return MethodGET
	case v.EqualFoldString("POST"):
		return MethodPOST
	case v.EqualFoldString("PUT"):
		return MethodPUT
	case v.EqualFoldString("DELETE"):
		return MethodDELETE
	case v.EqualFoldString("PATCH"):
		return MethodPATCH
	case v.EqualFoldString("OPTIONS"):
		return MethodOPTIONS
	case v.EqualFoldString("HEAD"):
		return MethodHEAD
	default:
		return MethodUnknown
	}
}

// MaxParams is the fixed capacity of a Request's path-parameter array,
// spec.md §3/§4.6.
const MaxParams = 16

// Param is a single captured path parameter.
type Param struct {
	Name  view.View
	Value view.View
}

// Request is a parsed HTTP request. Every view it holds aliases the
// connection's read buffer and is valid only until the handler that
// receives it returns (spec.md §3's lifetime invariant).
type Request struct {
	Method     Method
	Path       view.View
	Proto      view.View
	Params     [MaxParams]Param
	ParamCount int
	Headers    Headers
	Body       view.View
}

// Reset clears the request for reuse by the connection's next request.
func (r *Request) Reset() {
	r.Method = MethodUnknown
	r.Path = view.View{}
	r.Proto = view.View{}
	r.ParamCount = 0
	r.Headers.Reset()
	r.Body = view.View{}
}

// Param returns the value of a captured path parameter by name, or the
// zero View if unset.
func (r *Request) Param(name string) (view.View, bool) {
	for i := 0; i < r.ParamCount; i++ {
		if !r.Params[i].Name.EqualFoldString(name) {
			continue
		}
		return r.Params[i].Value, true
	}
	return view.View{}, false
}

package http

import "github.com/searchktools/coroserver/internal/view"

// HeaderField is a single overflow header, preserved in insertion order.
type HeaderField struct {
	Key   view.View
	Value view.View
}

// Headers holds a handful of hot, well-known headers by view plus an
// overflow sequence for everything else, matching spec.md §3's data
// model for both requests and responses. Lookup and Set are
// case-insensitive on key; setting a well-known key assigns its
// dedicated slot; setting any other key linearly scans the overflow and
// either replaces or appends; setting an empty value on a well-known
// slot clears it (equivalent to removal).
type Headers struct {
	Authorization view.View
	Cookie        view.View
	ContentType   view.View
	ContentLength view.View
	Connection    view.View

	overflow []HeaderField
}

const (
	hAuthorization = "Authorization"
	hCookie        = "Cookie"
	hContentType   = "Content-Type"
	hContentLength = "Content-Length"
	hConnection    = "Connection"
)

// Set assigns key=value, dispatching well-known names to their dedicated
// slot and everything else to the overflow sequence (last-write-wins).
func (h *Headers) Set(key, value view.View) {
	switch {
	case key.EqualFoldString(hAuthorization):
		h.Authorization = clearIfEmpty(value)
	case key.EqualFoldString(hCookie):
		h.Cookie = clearIfEmpty(value)
	case key.EqualFoldString(hContentType):
		h.ContentType = clearIfEmpty(value)
	case key.EqualFoldString(hContentLength):
		h.ContentLength = clearIfEmpty(value)
	case key.EqualFoldString(hConnection):
		h.Connection = clearIfEmpty(value)
	default:
		for i := range h.overflow {
			if h.overflow[i].Key.EqualFold(key) {
				h.overflow[i].Value = value
				return
			}
		}
		h.overflow = append(h.overflow, HeaderField{Key: key, Value: value})
	}
}

// SetString is Set for keys/values already materialized as strings
// (response headers set by application code rather than parsed bytes).
func (h *Headers) SetString(key, value string) {
	h.Set(view.FromString(key), view.FromString(value))
}

func clearIfEmpty(v view.View) view.View {
	if v.Empty() {
		return view.View{}
	}
	return v
}

// Get returns the value for key (case-insensitive), checking well-known
// slots first, then the overflow sequence in insertion order.
func (h *Headers) Get(key string) (view.View, bool) {
	switch {
	case equalFoldString(hAuthorization, key):
		return h.Authorization, !h.Authorization.Empty()
	case equalFoldString(hCookie, key):
		return h.Cookie, !h.Cookie.Empty()
	case equalFoldString(hContentType, key):
		return h.ContentType, !h.ContentType.Empty()
	case equalFoldString(hContentLength, key):
		return h.ContentLength, !h.ContentLength.Empty()
	case equalFoldString(hConnection, key):
		return h.Connection, !h.Connection.Empty()
	}
	for _, f := range h.overflow {
		if f.Key.EqualFoldString(key) {
			return f.Value, true
		}
	}
	return view.View{}, false
}

// Each iterates well-known slots (only those set) followed by the
// overflow sequence in insertion order.
func (h *Headers) Each(fn func(key, value view.View)) {
	if !h.Authorization.Empty() {
		fn(view.FromString(hAuthorization), h.Authorization)
	}
	if !h.Cookie.Empty() {
		fn(view.FromString(hCookie), h.Cookie)
	}
	if !h.ContentType.Empty() {
		fn(view.FromString(hContentType), h.ContentType)
	}
	if !h.ContentLength.Empty() {
		fn(view.FromString(hContentLength), h.ContentLength)
	}
	if !h.Connection.Empty() {
		fn(view.FromString(hConnection), h.Connection)
	}
	for _, f := range h.overflow {
		fn(f.Key, f.Value)
	}
}

// Reset clears all slots and overflow entries for reuse.
func (h *Headers) Reset() {
	*h = Headers{overflow: h.overflow[:0]}
}

func equalFoldString(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if foldASCII(a[i]) != foldASCII(b[i]) {
			return false
		}
	}
	return true
}

func foldASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

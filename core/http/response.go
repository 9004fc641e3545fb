package http

import "github.com/searchktools/coroserver/internal/view"

// Response is the application-facing reply, serialized onto the
// connection's fixed write buffer by WriteResponse.
type Response struct {
	Status  int
	Headers Headers
	Body    view.View
}

// Reset clears the response for reuse by the connection's next request.
func (r *Response) Reset() {
	r.Status = 0
	r.Headers.Reset()
	r.Body = view.View{}
}

// SetBody sets the body view and, unless Content-Type was already set
// by the handler, defaults it to text/plain — matching the teacher's
// convention of a sane default rather than an empty header.
func (r *Response) SetBody(b view.View) {
	r.Body = b
	if r.Headers.ContentType.Empty() {
		r.Headers.SetString("Content-Type", "text/plain")
	}
}

// SetBodyString is SetBody for a Go string literal.
func (r *Response) SetBodyString(s string) {
	r.SetBody(view.FromString(s))
}

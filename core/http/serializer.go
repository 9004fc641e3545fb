package http

import (
	"errors"
	"strconv"

	"github.com/searchktools/coroserver/internal/view"
)

// ErrResponseTooLarge is returned by WriteResponse when the serialized
// response would overflow buf. No partial write occurs: buf is left
// untouched and the caller gets a clean 0, err.
var ErrResponseTooLarge = errors.New("http: response too large for buffer")

// WriteResponse serializes resp into buf and returns the number of
// bytes written. It never writes a truncated response: if the
// serialized form doesn't fit, it returns (0, ErrResponseTooLarge) and
// buf is left untouched, per spec.md §4.5.
//
// Content-Length is computed from len(resp.Body) and written whenever the
// body is non-empty, overriding anything the handler set on
// resp.Headers.ContentLength — per spec.md §4.5 it is only auto-injected
// for a non-empty body. Repeated calls on the same Response are not
// guarded against here; spec.md §9 leaves "second send" behavior an open
// issue and the connection driver is responsible for calling this at
// most once per request in the intended path.
func WriteResponse(buf []byte, resp *Response) (int, error) {
	status := resp.Status
	if status == 0 {
		status = 200
	}
	reason := reasonPhrase(status)

	need := len("HTTP/1.1 ") + len(strconv.Itoa(status)) + len(" ") + len(reason) + len("\r\n")
	resp.Headers.Each(func(key, value view.View) {
		if !key.EqualFoldString("Content-Length") {
			need += key.Len() + len(": ") + value.Len() + len("\r\n")
		}
	})
	if resp.Body.Len() > 0 {
		need += len("Content-Length: ") + len(strconv.Itoa(resp.Body.Len())) + len("\r\n")
	}
	need += len("\r\n") + resp.Body.Len()
	if need > len(buf) {
		return 0, ErrResponseTooLarge
	}

	n := 0
	write := func(s string) bool {
		if n+len(s) > len(buf) {
			return false
		}
		n += copy(buf[n:], s)
		return true
	}
	writeView := func(v view.View) bool {
		if n+v.Len() > len(buf) {
			return false
		}
		n += copy(buf[n:], v.Bytes())
		return true
	}

	ok := write("HTTP/1.1 ") &&
		write(strconv.Itoa(status)) &&
		write(" ") &&
		write(reason) &&
		write("\r\n")
	if !ok {
		return 0, ErrResponseTooLarge
	}

	headerOK := true
	resp.Headers.Each(func(key, value view.View) {
		if key.EqualFoldString("Content-Length") {
			return
		}
		if !headerOK {
			return
		}
		headerOK = writeView(key) && write(": ") && writeView(value) && write("\r\n")
	})
	if !headerOK {
		return 0, ErrResponseTooLarge
	}

	if resp.Body.Len() > 0 {
		if !(write("Content-Length: ") && write(strconv.Itoa(resp.Body.Len())) && write("\r\n")) {
			return 0, ErrResponseTooLarge
		}
	}

	if !write("\r\n") {
		return 0, ErrResponseTooLarge
	}

	if !writeView(resp.Body) {
		return 0, ErrResponseTooLarge
	}

	return n, nil
}

package http

import (
	"errors"

	"github.com/searchktools/coroserver/internal/view"
)

// ErrMalformedRequest is returned for a request line or header block
// that doesn't parse, per spec.md §4.5's parser contract: fail fast,
// never guess.
var ErrMalformedRequest = errors.New("http: malformed request")

// splitLine splits v on the first LF, stripping a trailing CR from the
// returned line so callers never see it. Grounded on the teacher's
// unsafeString-based line splitting in its own request parser.
func splitLine(v view.View) (line, rest view.View, ok bool) {
	line, rest, ok = v.SplitOnce('\n')
	if !ok {
		return view.View{}, view.View{}, false
	}
	line = line.TrimRightByte('\r')
	return line, rest, true
}

// ParseRequest parses the request line and headers out of buf into req.
// buf must contain exactly the bytes up to and including the blank line
// that terminates the header block (the connection driver locates that
// boundary via its own rolling \r\n\r\n scan before calling in). The
// body is NOT parsed here: the driver sets req.Body separately once it
// has read Content-Length bytes following buf, per spec.md §4.5.
//
// Every view ParseRequest assigns aliases buf directly; buf must
// outlive req.
func ParseRequest(buf []byte, req *Request) error {
	v := view.Of(buf)

	requestLine, rest, ok := splitLine(v)
	if !ok {
		return ErrMalformedRequest
	}

	methodView, afterMethod, ok := requestLine.SplitOnce(' ')
	if !ok {
		return ErrMalformedRequest
	}
	pathView, protoView, ok := afterMethod.SplitOnce(' ')
	if !ok {
		return ErrMalformedRequest
	}

	req.Method = methodFromView(methodView)
	req.Path = pathView
	req.Proto = protoView

	for {
		line, next, ok := splitLine(rest)
		if !ok {
			return ErrMalformedRequest
		}
		rest = next

		if line.Empty() {
			break
		}

		key, value, ok := line.SplitOnce(':')
		if !ok {
			return ErrMalformedRequest
		}
		req.Headers.Set(key, value.TrimLeftSpace())
	}

	return nil
}

package core

import (
	"golang.org/x/sys/unix"

	"github.com/searchktools/coroserver/core/http"
	"github.com/searchktools/coroserver/core/observability"
	"github.com/searchktools/coroserver/core/router"
	"github.com/searchktools/coroserver/internal/coro"
	"github.com/searchktools/coroserver/internal/view"
)

// Fixed per-connection buffer sizes, spec.md §5's stack-discipline
// invariant: no dynamic allocation on the request/response hot path.
// A request whose header block or body doesn't fit, or a response
// that doesn't fit, is silently dropped by closing the connection —
// spec.md §9 leaves this an open issue rather than a guarded error
// path.
const (
	readBufSize  = 8 * 1024
	writeBufSize = 1 * 1024
)

var notFoundBody = view.FromString("<html><body><h1>404 Not Found</h1></body></html>")

// conn drives one accepted socket for its whole lifetime from a single
// coroutine. Its buffers are plain fixed-size arrays, not pooled. A
// conn is allocated per accepted socket; only its owning coroutine is
// recycled, by the scheduler's free list.
type conn struct {
	fd       int
	readBuf  [readBufSize]byte
	readLen  int
	writeBuf [writeBufSize]byte

	req  http.Request
	resp http.Response
}

// serveConn is the coroutine entry for an accepted connection: parse
// request, dispatch, write response, repeat until Connection: close or
// the peer hangs up. There is deliberately no idle-connection timeout
// (spec.md §9): a client that stops sending mid keep-alive pins this
// coroutine, and its fixed buffers, indefinitely.
func serveConn(co *coro.Coroutine, fd int, rt *router.Router, mon *observability.Monitor) {
	defer unix.Close(fd)

	c := &conn{fd: fd}

	for {
		headerEnd, ok := c.readHeaders(co)
		if !ok {
			return
		}

		if err := http.ParseRequest(c.readBuf[:headerEnd], &c.req); err != nil {
			return
		}

		bodyLen := 0
		if cl, present := c.req.Headers.Get("Content-Length"); present {
			bodyLen = cl.ParseInt()
		}
		if bodyLen < 0 {
			bodyLen = 0
		}
		if headerEnd+bodyLen > len(c.readBuf) {
			// Body doesn't fit the fixed request buffer: drop.
			return
		}
		for c.readLen < headerEnd+bodyLen {
			if _, ok := c.fill(co); !ok {
				return
			}
		}
		c.req.Body = view.Of(c.readBuf[headerEnd : headerEnd+bodyLen])

		closeConn := wantsClose(&c.req)

		start := mon.StartTrace()
		c.dispatch(rt)
		mon.EndTrace(string(c.req.Path.Bytes()), start, c.resp.Status >= 500)

		if closeConn {
			c.resp.Headers.SetString("Connection", "close")
		}

		n, err := http.WriteResponse(c.writeBuf[:], &c.resp)
		if err != nil {
			// Response doesn't fit the fixed response buffer: drop.
			return
		}
		if !c.writeAll(co, c.writeBuf[:n]) {
			return
		}

		consumed := headerEnd + bodyLen
		remaining := c.readLen - consumed
		copy(c.readBuf[:remaining], c.readBuf[consumed:c.readLen])
		c.readLen = remaining

		c.req.Reset()
		c.resp.Reset()

		if closeConn {
			return
		}
	}
}

// wantsClose reports whether the request asked for the connection to be
// closed after the response is sent (spec.md §4.7 step 3).
func wantsClose(req *http.Request) bool {
	v, present := req.Headers.Get("Connection")
	return present && v.EqualFoldString("close")
}

// dispatch runs the matched route handler, or sets a 404 response if
// nothing in rt matches.
func (c *conn) dispatch(rt *router.Router) {
	h, ok := rt.Find(c.req.Method, c.req.Path, &c.req)
	if !ok {
		c.resp.Status = 404
		c.resp.Headers.SetString("Content-Type", "text/html")
		c.resp.SetBody(notFoundBody)
		return
	}
	h(&c.req, &c.resp)
}

// fill reads more bytes from fd into the tail of readBuf, parking the
// coroutine on EAGAIN until the reactor reports readability. It
// reports false on a fatal read error or orderly peer shutdown.
func (c *conn) fill(co *coro.Coroutine) (int, bool) {
	for {
		n, err := unix.Read(c.fd, c.readBuf[c.readLen:])
		if err != nil {
			if err == unix.EAGAIN {
				co.SleepFD(c.fd, unix.EPOLLIN)
				continue
			}
			return 0, false
		}
		if n == 0 {
			return 0, false
		}
		c.readLen += n
		return n, true
	}
}

// writeAll writes every byte of b to fd, parking on EAGAIN.
func (c *conn) writeAll(co *coro.Coroutine, b []byte) bool {
	written := 0
	for written < len(b) {
		n, err := unix.Write(c.fd, b[written:])
		if err != nil {
			if err == unix.EAGAIN {
				co.SleepFD(c.fd, unix.EPOLLOUT)
				continue
			}
			return false
		}
		written += n
	}
	return true
}

// readHeaders reads until the request's header block is complete,
// returning the index of the byte just past the terminating blank
// line. It rescans from three bytes before the previous read's end
// rather than from zero, so a \r\n\r\n split across two reads is never
// missed while still avoiding an O(n^2) full rescan per fill.
func (c *conn) readHeaders(co *coro.Coroutine) (int, bool) {
	scanFrom := 0
	for {
		if end, found := findHeaderEnd(c.readBuf[:c.readLen], scanFrom); found {
			return end, true
		}
		scanFrom = c.readLen
		if scanFrom >= 3 {
			scanFrom -= 3
		} else {
			scanFrom = 0
		}
		if c.readLen >= len(c.readBuf) {
			return 0, false
		}
		if _, ok := c.fill(co); !ok {
			return 0, false
		}
	}
}

// findHeaderEnd searches data for "\r\n\r\n" starting at from, returning
// the index just past it.
func findHeaderEnd(data []byte, from int) (int, bool) {
	for i := from; i+3 < len(data); i++ {
		if data[i] == '\r' && data[i+1] == '\n' && data[i+2] == '\r' && data[i+3] == '\n' {
			return i + 4, true
		}
	}
	return 0, false
}

package core

import (
	"testing"

	"github.com/searchktools/coroserver/core/http"
	"github.com/searchktools/coroserver/core/router"
	"github.com/searchktools/coroserver/internal/view"
)

func TestFindHeaderEndFromStart(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n")
	end, ok := findHeaderEnd(data, 0)
	if !ok {
		t.Fatal("expected header end to be found")
	}
	if end != len(data) {
		t.Fatalf("end = %d, want %d", end, len(data))
	}
}

func TestFindHeaderEndNotFound(t *testing.T) {
	data := []byte("GET / HTTP/1.1\r\nHost: x\r\n")
	if _, ok := findHeaderEnd(data, 0); ok {
		t.Fatal("expected no header end without a trailing blank line")
	}
}

func TestFindHeaderEndRescanFromThreeBack(t *testing.T) {
	// Simulates a boundary split across two reads: the first three
	// bytes of the terminator ("\r\n\r") were already present before
	// scanFrom, only the final "\n" just arrived.
	data := []byte("GET / HTTP/1.1\r\n\r\n")
	scanFrom := len(data) - 1
	end, ok := findHeaderEnd(data, scanFrom-3)
	if !ok {
		t.Fatal("expected rescan from three bytes back to find the boundary")
	}
	if end != len(data) {
		t.Fatalf("end = %d, want %d", end, len(data))
	}
}

func TestDispatchMatchedRoute(t *testing.T) {
	rt := router.New()
	rt.GET("/widgets/:id", func(req *http.Request, resp *http.Response) {
		id, _ := req.Param("id")
		resp.Status = 200
		resp.SetBodyString("widget-" + id.String())
	})

	c := &conn{}
	c.req.Method = http.MethodGET
	c.req.Path = view.FromString("/widgets/7")

	c.dispatch(rt)

	if c.resp.Status != 200 {
		t.Fatalf("status = %d, want 200", c.resp.Status)
	}
	if c.resp.Body.String() != "widget-7" {
		t.Fatalf("body = %q, want widget-7", c.resp.Body.String())
	}
}

func TestWantsClose(t *testing.T) {
	var req http.Request
	if wantsClose(&req) {
		t.Fatal("expected no close for a request with no Connection header")
	}

	req.Headers.SetString("Connection", "close")
	if !wantsClose(&req) {
		t.Fatal("expected close for Connection: close")
	}

	req.Headers.SetString("Connection", "keep-alive")
	if wantsClose(&req) {
		t.Fatal("expected no close for Connection: keep-alive")
	}
}

func TestDispatchNoMatchIs404(t *testing.T) {
	rt := router.New()
	c := &conn{}
	c.req.Method = http.MethodGET
	c.req.Path = view.FromString("/nope")

	c.dispatch(rt)

	if c.resp.Status != 404 {
		t.Fatalf("status = %d, want 404", c.resp.Status)
	}
}

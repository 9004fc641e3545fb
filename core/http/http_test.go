package http

import (
	"strings"
	"testing"

	"github.com/searchktools/coroserver/internal/view"
)

func TestParseRequestLine(t *testing.T) {
	raw := "GET /widgets/42 HTTP/1.1\r\nHost: example.com\r\nAuthorization: Bearer tok\r\n\r\n"
	var req Request
	if err := ParseRequest([]byte(raw), &req); err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Method != MethodGET {
		t.Errorf("Method = %v, want GET", req.Method)
	}
	if req.Path.String() != "/widgets/42" {
		t.Errorf("Path = %q", req.Path.String())
	}
	if req.Proto.String() != "HTTP/1.1" {
		t.Errorf("Proto = %q", req.Proto.String())
	}
	if got, _ := req.Headers.Get("Host"); got.String() != "example.com" {
		t.Errorf("Host header = %q", got.String())
	}
	if req.Headers.Authorization.String() != "Bearer tok" {
		t.Errorf("Authorization = %q", req.Headers.Authorization.String())
	}
}

func TestParseRequestHeaderValueLeftTrim(t *testing.T) {
	raw := "POST /x HTTP/1.1\r\nContent-Type:    text/plain\r\n\r\n"
	var req Request
	if err := ParseRequest([]byte(raw), &req); err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Headers.ContentType.String() != "text/plain" {
		t.Errorf("ContentType = %q, want trimmed", req.Headers.ContentType.String())
	}
}

func TestParseRequestMalformed(t *testing.T) {
	cases := []string{
		"GET /no-proto\r\n\r\n",
		"GETONLY\r\n\r\n",
		"GET /x HTTP/1.1\r\nBadHeaderNoColon\r\n\r\n",
	}
	for _, raw := range cases {
		var req Request
		if err := ParseRequest([]byte(raw), &req); err == nil {
			t.Errorf("ParseRequest(%q) = nil error, want ErrMalformedRequest", raw)
		}
	}
}

func TestWriteResponseRoundTrip(t *testing.T) {
	var resp Response
	resp.Status = 200
	resp.Headers.SetString("Content-Type", "text/plain")
	resp.SetBodyString("hello")

	buf := make([]byte, 256)
	n, err := WriteResponse(buf, &resp)
	if err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	out := string(buf[:n])
	if !strings.HasPrefix(out, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("status line missing: %q", out)
	}
	if !strings.Contains(out, "Content-Length: 5\r\n") {
		t.Errorf("content-length missing: %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\nhello") {
		t.Errorf("body not last: %q", out)
	}
}

func TestWriteResponseOverflowNoPartialWrite(t *testing.T) {
	var resp Response
	resp.Status = 200
	resp.SetBodyString(strings.Repeat("x", 100))

	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xAA
	}
	n, err := WriteResponse(buf, &resp)
	if err != ErrResponseTooLarge {
		t.Fatalf("err = %v, want ErrResponseTooLarge", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	for i, b := range buf {
		if b != 0xAA {
			t.Fatalf("buf[%d] = %x, overflow attempt left a partial write", i, b)
		}
	}
}

func TestWriteResponseEmptyBodyOmitsContentLength(t *testing.T) {
	var resp Response
	resp.Status = 204

	buf := make([]byte, 256)
	n, err := WriteResponse(buf, &resp)
	if err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	out := string(buf[:n])
	if strings.Contains(out, "Content-Length") {
		t.Errorf("expected no Content-Length header for empty body, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\n") {
		t.Errorf("expected response to end at the blank line with no body: %q", out)
	}
}

func TestWriteResponseUnknownStatusEmptyReason(t *testing.T) {
	var resp Response
	resp.Status = 599
	buf := make([]byte, 256)
	n, err := WriteResponse(buf, &resp)
	if err != nil {
		t.Fatalf("WriteResponse: %v", err)
	}
	if !strings.HasPrefix(string(buf[:n]), "HTTP/1.1 599 \r\n") {
		t.Errorf("expected empty reason phrase, got %q", string(buf[:n]))
	}
}

func TestHeadersCaseInsensitiveOverflow(t *testing.T) {
	var h Headers
	h.Set(view.FromString("X-Custom"), view.FromString("one"))
	h.Set(view.FromString("x-custom"), view.FromString("two"))
	v, ok := h.Get("X-CUSTOM")
	if !ok || v.String() != "two" {
		t.Fatalf("Get = %q, %v, want \"two\", true", v.String(), ok)
	}
}

// Package view provides non-owning, zero-allocation views over a backing
// byte buffer, mirroring the StrView utilities the connection driver and
// HTTP parser build on top of.
package view

import "unsafe"

// View is a (pointer, length) pair over bytes owned elsewhere. A View is
// only valid while its backing buffer is alive and unmodified; callers
// must not retain a View past the lifetime of the buffer it was built
// from.
type View struct {
	data []byte
}

// Of builds a View over b without copying.
func Of(b []byte) View {
	return View{data: b}
}

// FromString builds a View aliasing s without copying.
func FromString(s string) View {
	return View{data: unsafeBytes(s)}
}

// Empty reports whether the view has zero length.
func (v View) Empty() bool {
	return len(v.data) == 0
}

// Len returns the view's length in bytes.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the underlying bytes. The caller must not mutate them.
func (v View) Bytes() []byte {
	return v.data
}

// String returns a string that aliases the view's backing buffer. The
// string is invalid once the backing buffer is reused.
func (v View) String() string {
	if len(v.data) == 0 {
		return ""
	}
	return unsafeString(v.data)
}

// Equal reports byte-exact equality.
func (v View) Equal(o View) bool {
	if len(v.data) != len(o.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// EqualFold reports ASCII case-insensitive equality.
func (v View) EqualFold(o View) bool {
	if len(v.data) != len(o.data) {
		return false
	}
	for i := range v.data {
		if foldByte(v.data[i]) != foldByte(o.data[i]) {
			return false
		}
	}
	return true
}

// EqualFoldString reports ASCII case-insensitive equality against s.
func (v View) EqualFoldString(s string) bool {
	if len(v.data) != len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if foldByte(v.data[i]) != foldByte(s[i]) {
			return false
		}
	}
	return true
}

func foldByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// SplitOnce splits the view on the first occurrence of sep, returning the
// prefix, the remainder after sep, and whether sep was found. If sep is
// not found, prefix is the whole view, remainder is empty, and found is
// false.
func (v View) SplitOnce(sep byte) (prefix, remainder View, found bool) {
	for i, b := range v.data {
		if b == sep {
			return View{data: v.data[:i]}, View{data: v.data[i+1:]}, true
		}
	}
	return v, View{}, false
}

// TrimRightByte strips a single trailing occurrence of c, if present.
func (v View) TrimRightByte(c byte) View {
	if n := len(v.data); n > 0 && v.data[n-1] == c {
		return View{data: v.data[:n-1]}
	}
	return v
}

// TrimLeftSpace strips leading ASCII spaces.
func (v View) TrimLeftSpace() View {
	i := 0
	for i < len(v.data) && v.data[i] == ' ' {
		i++
	}
	return View{data: v.data[i:]}
}

// HasPrefix reports whether v begins with prefix.
func (v View) HasPrefix(prefix View) bool {
	if len(prefix.data) > len(v.data) {
		return false
	}
	return View{data: v.data[:len(prefix.data)]}.Equal(prefix)
}

// HasSuffix reports whether v ends with suffix.
func (v View) HasSuffix(suffix View) bool {
	if len(suffix.data) > len(v.data) {
		return false
	}
	return View{data: v.data[len(v.data)-len(suffix.data):]}.Equal(suffix)
}

// ParseInt parses a signed decimal integer, skipping leading whitespace
// and an optional sign, consuming digits, and saturating at the first
// non-digit. An empty or all-whitespace view parses as 0.
func (v View) ParseInt() int {
	i, n := 0, len(v.data)
	for i < n && (v.data[i] == ' ' || v.data[i] == '\t') {
		i++
	}
	neg := false
	if i < n && (v.data[i] == '+' || v.data[i] == '-') {
		neg = v.data[i] == '-'
		i++
	}
	val := 0
	for i < n && v.data[i] >= '0' && v.data[i] <= '9' {
		val = val*10 + int(v.data[i]-'0')
		i++
	}
	if neg {
		return -val
	}
	return val
}

func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

func unsafeBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

package codespace

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// UTF-8 encoder: Table-driven bit template transcoder
// ---------------------------------------------------------------------------
//
// The four UTF-8 length classes are declared as human-readable bit
// templates and compiled once at startup into prefix/payload pairs. One
// generic bit-splitting routine then serves all four classes.

// utf8Template declares one length class: the code point range it covers
// and its byte layout. Each space-separated field is one output byte,
// fixed prefix bits ('0'/'1') followed by payload positions ('x').
type utf8Template struct {
	from, to rune
	template string
}

// The rules are ordered ascending by range and cover the full codespace,
// surrogate gap included.
var utf8Templates = [4]utf8Template{
	{0x000000, 0x00007F, "0xxxxxxx"},
	{0x000080, 0x0007FF, "110xxxxx 10xxxxxx"},
	{0x000800, 0x00FFFF, "1110xxxx 10xxxxxx 10xxxxxx"},
	{0x010000, 0x10FFFF, "11110xxx 10xxxxxx 10xxxxxx 10xxxxxx"},
}

// utf8Pattern is one compiled output byte: the fixed prefix bits shifted
// into final position and the number of payload bits the byte carries.
type utf8Pattern struct {
	prefix  byte
	payload uint
}

// utf8Rule is a compiled template: the range bounds, the ordered byte
// patterns and the total payload width (7, 11, 16 or 21 bits).
type utf8Rule struct {
	from, to rune
	patterns []utf8Pattern
	payload  uint
}

var utf8Rules [4]utf8Rule

func init() {
	for i, t := range utf8Templates {
		r, err := compileUTF8Template(t)
		if err != nil {
			panic(fmt.Sprintf("codespace: compile UTF-8 template %q: %v", t.template, err))
		}
		utf8Rules[i] = r
	}
}

// compileUTF8Template parses a declaration like "110xxxxx 10xxxxxx" into
// its executable form.
func compileUTF8Template(t utf8Template) (utf8Rule, error) {
	fields := strings.Fields(t.template)
	if len(fields) == 0 {
		return utf8Rule{}, fmt.Errorf("empty template")
	}
	r := utf8Rule{from: t.from, to: t.to}
	for _, f := range fields {
		if len(f) != 8 {
			return utf8Rule{}, fmt.Errorf("byte pattern %q is not 8 bits", f)
		}
		var p utf8Pattern
		for _, c := range f {
			switch c {
			case '0', '1':
				if p.payload > 0 {
					return utf8Rule{}, fmt.Errorf("byte pattern %q mixes prefix bits into the payload", f)
				}
				p.prefix = p.prefix<<1 | byte(c-'0')
			case 'x':
				p.payload++
			default:
				return utf8Rule{}, fmt.Errorf("byte pattern %q contains %q, want '0', '1' or 'x'", f, c)
			}
		}
		p.prefix <<= p.payload
		r.patterns = append(r.patterns, p)
		r.payload += p.payload
	}
	return r, nil
}

// ConvertToUTF8 encodes cp as its UTF-8 byte sequence rendered as a
// lower-case hex string, two digits per byte. Surrogate values are encoded
// like any other code point; values outside the codespace are rejected.
func ConvertToUTF8(cp rune) (string, error) {
	if !InCodespace(cp) {
		return "", fmt.Errorf("codespace: code point %#x: %w", cp, ErrCodePointOutOfRange)
	}
	for _, r := range utf8Rules {
		if cp < r.from || cp > r.to {
			continue
		}
		buf := make([]byte, 0, len(r.patterns))
		remaining := r.payload
		for _, p := range r.patterns {
			remaining -= p.payload
			chunk := byte(uint32(cp) >> remaining & (1<<p.payload - 1))
			buf = append(buf, p.prefix|chunk)
		}
		return hex.EncodeToString(buf), nil
	}
	// Unreachable: the rule ranges partition the codespace.
	return "", fmt.Errorf("codespace: code point %#x: %w", cp, ErrCodePointOutOfRange)
}

package codespace

import (
	"encoding/hex"
	"errors"
	"testing"
	"unicode/utf8"
)

func TestConvertToUTF8(t *testing.T) {
	tests := []struct {
		cp   rune
		want string
	}{
		{0x0000, "00"},
		{0x0024, "24"},
		{0x007F, "7f"},
		{0x0080, "c280"},
		{0x00A2, "c2a2"},
		{0x07FF, "dfbf"},
		{0x0800, "e0a080"},
		{0x20AC, "e282ac"},
		{0xFFFF, "efbfbf"},
		{0x10000, "f0908080"},
		{0x10437, "f09090b7"},
		{0x24B62, "f0a4ada2"},
		{0x10FFFF, "f48fbfbf"},
	}

	for _, tc := range tests {
		got, err := ConvertToUTF8(tc.cp)
		if err != nil {
			t.Fatalf("ConvertToUTF8(%#x) failed: %v", tc.cp, err)
		}
		if got != tc.want {
			t.Errorf("ConvertToUTF8(%#x) = %q, want %q", tc.cp, got, tc.want)
		}
	}
}

func TestConvertToUTF8LengthClasses(t *testing.T) {
	// First and last value of each length class.
	tests := []struct {
		cp    rune
		bytes int
	}{
		{0x0000, 1},
		{0x007F, 1},
		{0x0080, 2},
		{0x07FF, 2},
		{0x0800, 3},
		{0xFFFF, 3},
		{0x10000, 4},
		{0x10FFFF, 4},
	}

	for _, tc := range tests {
		got, err := ConvertToUTF8(tc.cp)
		if err != nil {
			t.Fatalf("ConvertToUTF8(%#x) failed: %v", tc.cp, err)
		}
		if len(got) != 2*tc.bytes {
			t.Errorf("ConvertToUTF8(%#x) = %q (%d hex digits), want %d bytes", tc.cp, got, len(got), tc.bytes)
		}
	}
}

func TestConvertToUTF8Surrogates(t *testing.T) {
	// Surrogates are not rejected; they encode like any BMP value.
	tests := []struct {
		cp   rune
		want string
	}{
		{0xD800, "eda080"},
		{0xDBFF, "edafbf"},
		{0xDC00, "edb080"},
		{0xDFFF, "edbfbf"},
	}

	for _, tc := range tests {
		got, err := ConvertToUTF8(tc.cp)
		if err != nil {
			t.Fatalf("ConvertToUTF8(%#x) failed: %v", tc.cp, err)
		}
		if got != tc.want {
			t.Errorf("ConvertToUTF8(%#x) = %q, want %q", tc.cp, got, tc.want)
		}
	}
}

func TestConvertToUTF8OutOfRange(t *testing.T) {
	for _, cp := range []rune{-1, 0x110000} {
		_, err := ConvertToUTF8(cp)
		if !errors.Is(err, ErrCodePointOutOfRange) {
			t.Errorf("ConvertToUTF8(%#x) error = %v, want ErrCodePointOutOfRange", cp, err)
		}
	}
}

func TestConvertToUTF8Deterministic(t *testing.T) {
	for _, cp := range []rune{0x0024, 0x00A2, 0x20AC, 0x10437, 0x10FFFF} {
		first, err := ConvertToUTF8(cp)
		if err != nil {
			t.Fatalf("ConvertToUTF8(%#x) failed: %v", cp, err)
		}
		second, err := ConvertToUTF8(cp)
		if err != nil {
			t.Fatalf("ConvertToUTF8(%#x) failed on second call: %v", cp, err)
		}
		if first != second {
			t.Errorf("ConvertToUTF8(%#x) = %q then %q, want identical", cp, first, second)
		}
	}
}

func TestConvertToUTF8MatchesStdlib(t *testing.T) {
	// The stdlib encoder substitutes RuneError for surrogates, so the
	// comparison skips the gap.
	var buf [4]byte
	for cp := MinCodePoint; cp <= MaxCodePoint; cp++ {
		if IsSurrogate(cp) {
			continue
		}
		got, err := ConvertToUTF8(cp)
		if err != nil {
			t.Fatalf("ConvertToUTF8(%#x) failed: %v", cp, err)
		}
		n := utf8.EncodeRune(buf[:], cp)
		if want := hex.EncodeToString(buf[:n]); got != want {
			t.Fatalf("ConvertToUTF8(%#x) = %q, want %q", cp, got, want)
		}
	}
}

func TestCompileUTF8Template(t *testing.T) {
	r, err := compileUTF8Template(utf8Template{0x80, 0x7FF, "110xxxxx 10xxxxxx"})
	if err != nil {
		t.Fatalf("compileUTF8Template failed: %v", err)
	}
	if r.payload != 11 {
		t.Errorf("payload = %d, want 11", r.payload)
	}
	if len(r.patterns) != 2 {
		t.Fatalf("len(patterns) = %d, want 2", len(r.patterns))
	}
	if r.patterns[0].prefix != 0xC0 || r.patterns[0].payload != 5 {
		t.Errorf("patterns[0] = {%#x, %d}, want {0xc0, 5}", r.patterns[0].prefix, r.patterns[0].payload)
	}
	if r.patterns[1].prefix != 0x80 || r.patterns[1].payload != 6 {
		t.Errorf("patterns[1] = {%#x, %d}, want {0x80, 6}", r.patterns[1].prefix, r.patterns[1].payload)
	}
}

func TestCompileUTF8TemplateInvalid(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"empty", ""},
		{"short byte", "0xxxxxx"},
		{"long byte", "0xxxxxxxx"},
		{"prefix after payload", "1x0xxxxx"},
		{"bad bit", "2xxxxxxx"},
	}

	for _, tc := range tests {
		if _, err := compileUTF8Template(utf8Template{0, 0x7F, tc.template}); err == nil {
			t.Errorf("compileUTF8Template(%s %q) succeeded, want error", tc.name, tc.template)
		}
	}
}

func TestUTF8RulesCoverCodespace(t *testing.T) {
	if utf8Rules[0].from != MinCodePoint {
		t.Errorf("first rule starts at %#x, want %#x", utf8Rules[0].from, MinCodePoint)
	}
	if utf8Rules[len(utf8Rules)-1].to != MaxCodePoint {
		t.Errorf("last rule ends at %#x, want %#x", utf8Rules[len(utf8Rules)-1].to, MaxCodePoint)
	}
	for i := 1; i < len(utf8Rules); i++ {
		if utf8Rules[i].from != utf8Rules[i-1].to+1 {
			t.Errorf("rule %d starts at %#x, want %#x", i, utf8Rules[i].from, utf8Rules[i-1].to+1)
		}
	}
	for i, want := range []uint{7, 11, 16, 21} {
		if utf8Rules[i].payload != want {
			t.Errorf("rule %d payload = %d, want %d", i, utf8Rules[i].payload, want)
		}
	}
}

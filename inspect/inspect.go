// Package inspect builds classification reports for single code points.
// A Report bundles everything the codespace package knows about one value
// and travels over JSON or canonical CBOR.
package inspect

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zerustech/string/codespace"
)

//go:generate go tool stringer -type=Category -trimprefix=Category

// Category is the coarse classification of a code point.
type Category int

const (
	CategoryCharacter Category = iota
	CategoryNoncharacter
	CategoryHighSurrogate
	CategoryLowSurrogate
)

// Classify returns the category of cp. The caller guarantees cp lies in
// the codespace.
func Classify(cp rune) Category {
	switch {
	case codespace.IsHighSurrogate(cp):
		return CategoryHighSurrogate
	case codespace.IsLowSurrogate(cp):
		return CategoryLowSurrogate
	case codespace.IsNoncharacter(cp):
		return CategoryNoncharacter
	}
	return CategoryCharacter
}

// Report describes one code point. UTF16 is empty for surrogate values,
// matching the converter's behavior.
type Report struct {
	CodePoint  rune   `json:"code_point" cbor:"1,keyasint"`
	Notation   string `json:"notation" cbor:"2,keyasint"`
	Plane      int    `json:"plane" cbor:"3,keyasint"`
	PlaneName  string `json:"plane_name,omitempty" cbor:"4,keyasint,omitempty"`
	PlaneAlias string `json:"plane_alias,omitempty" cbor:"5,keyasint,omitempty"`
	Category   string `json:"category" cbor:"6,keyasint"`
	PrivateUse bool   `json:"private_use,omitempty" cbor:"7,keyasint,omitempty"`
	UTF8       string `json:"utf8" cbor:"8,keyasint"`
	UTF16      string `json:"utf16,omitempty" cbor:"9,keyasint,omitempty"`
}

// Inspect builds the report for cp. It fails only when cp lies outside
// the codespace.
func Inspect(cp rune) (Report, error) {
	plane, err := codespace.PlaneOf(cp)
	if err != nil {
		return Report{}, fmt.Errorf("inspect: %w", err)
	}
	utf8Hex, err := codespace.ConvertToUTF8(cp)
	if err != nil {
		return Report{}, fmt.Errorf("inspect: %w", err)
	}
	return Report{
		CodePoint:  cp,
		Notation:   Notation(cp),
		Plane:      plane.Index,
		PlaneName:  plane.Name,
		PlaneAlias: plane.Alias,
		Category:   Classify(cp).String(),
		PrivateUse: codespace.IsPrivateUse(cp),
		UTF8:       utf8Hex,
		UTF16:      codespace.ConvertToUTF16(cp),
	}, nil
}

// Notation renders cp in the conventional U+XXXX form, upper-case hex
// padded to at least four digits.
func Notation(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}

// ParseNotation parses a code point written as U+XXXX or 0xXXXX hex, a
// plain decimal number, or a single literal character.
func ParseNotation(s string) (rune, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("inspect: empty code point")
	}

	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("inspect: cannot parse code point %q", s)
		}
		return boundedCodePoint(v)
	}

	if v, err := strconv.ParseUint(s, 10, 32); err == nil {
		return boundedCodePoint(v)
	}

	if r, size := utf8.DecodeRuneInString(s); size == len(s) {
		if r == utf8.RuneError && s != string(utf8.RuneError) {
			return 0, fmt.Errorf("inspect: cannot parse code point %q", s)
		}
		return r, nil
	}
	return 0, fmt.Errorf("inspect: cannot parse code point %q", s)
}

func boundedCodePoint(v uint64) (rune, error) {
	if v > uint64(codespace.MaxCodePoint) {
		return 0, fmt.Errorf("inspect: %#x: %w", v, codespace.ErrCodePointOutOfRange)
	}
	return rune(v), nil
}

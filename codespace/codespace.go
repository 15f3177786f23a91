// Package codespace describes the structure of the Unicode codespace and
// transcodes single code points. It exposes the fixed constants of the
// codespace (planes, surrogate ranges, noncharacters, private use) together
// with counting queries and the UTF-8/UTF-16 hex encoders.
package codespace

import "errors"

// ---------------------------------------------------------------------------
// Error types
// ---------------------------------------------------------------------------

var (
	// ErrPlaneOutOfRange reports a plane index outside 0-16.
	ErrPlaneOutOfRange = errors.New("plane index out of range")

	// ErrCodePointOutOfRange reports a value outside the codespace.
	ErrCodePointOutOfRange = errors.New("code point out of range")
)

// ---------------------------------------------------------------------------
// Codespace constants
// ---------------------------------------------------------------------------
//
// The codespace is the integer range 0x000000-0x10FFFF. Surrogates occupy
// a 2048-value gap inside the Basic Multilingual Plane and are not valid
// standalone code points. Noncharacters are the 32 values 0xFDD0-0xFDEF
// plus the last two values of every plane.

const (
	// MinCodePoint is the first value of the Unicode codespace.
	MinCodePoint rune = 0x0000

	// MaxCodePoint is the last value of the Unicode codespace.
	MaxCodePoint rune = 0x10FFFF

	// HighSurrogateMin and HighSurrogateMax bound the high (leading)
	// surrogate range.
	HighSurrogateMin rune = 0xD800
	HighSurrogateMax rune = 0xDBFF

	// LowSurrogateMin and LowSurrogateMax bound the low (trailing)
	// surrogate range.
	LowSurrogateMin rune = 0xDC00
	LowSurrogateMax rune = 0xDFFF

	// PrivateUseMin and PrivateUseMax bound the BMP private use area.
	PrivateUseMin rune = 0xE000
	PrivateUseMax rune = 0xF8FF

	// SupplementaryPrivateUseMin is the first code point of the two
	// supplementary private use planes (15 and 16).
	SupplementaryPrivateUseMin rune = 0xF0000

	// PlaneSize is the number of code points in one plane.
	PlaneSize = 0x10000
)

// Arabic Presentation Forms-A noncharacter block.
const (
	noncharBlockMin rune = 0xFDD0
	noncharBlockMax rune = 0xFDEF
)

// noncharacters holds the 66 permanently reserved code points in ascending
// order: the contiguous 0xFDD0-0xFDEF block followed by base+0xFFFE and
// base+0xFFFF for each of the 17 plane bases.
var noncharacters = buildNoncharacters()

func buildNoncharacters() []rune {
	ncs := make([]rune, 0, noncharBlockMax-noncharBlockMin+1+2*NumPlanes)
	for cp := noncharBlockMin; cp <= noncharBlockMax; cp++ {
		ncs = append(ncs, cp)
	}
	for base := MinCodePoint; base <= MaxCodePoint; base += PlaneSize {
		ncs = append(ncs, base+0xFFFE, base+0xFFFF)
	}
	return ncs
}

// ---------------------------------------------------------------------------
// Counting queries
// ---------------------------------------------------------------------------
//
// All counts derive from the constants above; none is stored independently.

// NumberOfCodePoints returns the total size of the codespace (1,114,112).
func NumberOfCodePoints() int {
	return int(MaxCodePoint-MinCodePoint) + 1
}

// NumberOfHighSurrogateCodePoints returns the size of the high surrogate
// range (1,024).
func NumberOfHighSurrogateCodePoints() int {
	return int(HighSurrogateMax-HighSurrogateMin) + 1
}

// NumberOfLowSurrogateCodePoints returns the size of the low surrogate
// range (1,024).
func NumberOfLowSurrogateCodePoints() int {
	return int(LowSurrogateMax-LowSurrogateMin) + 1
}

// NumberOfValidCodePoints returns the number of code points that are not
// surrogates (1,112,064).
func NumberOfValidCodePoints() int {
	return NumberOfCodePoints() - NumberOfHighSurrogateCodePoints() - NumberOfLowSurrogateCodePoints()
}

// NumberOfNoncharacterCodePoints returns the number of permanently reserved
// noncharacters (66).
func NumberOfNoncharacterCodePoints() int {
	return len(noncharacters)
}

// NumberOfCharacterCodePoints returns the number of code points that may be
// assigned to characters (1,111,998): valid code points minus noncharacters.
func NumberOfCharacterCodePoints() int {
	return NumberOfValidCodePoints() - NumberOfNoncharacterCodePoints()
}

// Noncharacters returns the 66 noncharacter code points in ascending order.
// The returned slice is a copy.
func Noncharacters() []rune {
	ncs := make([]rune, len(noncharacters))
	copy(ncs, noncharacters)
	return ncs
}

// ---------------------------------------------------------------------------
// Classification predicates
// ---------------------------------------------------------------------------

// InCodespace returns true if cp lies inside the Unicode codespace.
func InCodespace(cp rune) bool {
	return cp >= MinCodePoint && cp <= MaxCodePoint
}

// IsHighSurrogate returns true if cp is a high (leading) surrogate.
func IsHighSurrogate(cp rune) bool {
	return cp >= HighSurrogateMin && cp <= HighSurrogateMax
}

// IsLowSurrogate returns true if cp is a low (trailing) surrogate.
func IsLowSurrogate(cp rune) bool {
	return cp >= LowSurrogateMin && cp <= LowSurrogateMax
}

// IsSurrogate returns true if cp lies in either surrogate range.
func IsSurrogate(cp rune) bool {
	return cp >= HighSurrogateMin && cp <= LowSurrogateMax
}

// IsNoncharacter returns true if cp is one of the 66 permanently reserved
// noncharacters.
func IsNoncharacter(cp rune) bool {
	if !InCodespace(cp) {
		return false
	}
	if cp >= noncharBlockMin && cp <= noncharBlockMax {
		return true
	}
	return cp&0xFFFF >= 0xFFFE
}

// IsPrivateUse returns true if cp lies in a private use area: the BMP
// range or the two supplementary private use planes, whose noncharacter
// tails are excluded.
func IsPrivateUse(cp rune) bool {
	if cp >= PrivateUseMin && cp <= PrivateUseMax {
		return true
	}
	return cp >= SupplementaryPrivateUseMin && cp <= MaxCodePoint && !IsNoncharacter(cp)
}

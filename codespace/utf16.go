package codespace

import "fmt"

// ---------------------------------------------------------------------------
// UTF-16 encoder: Arithmetic surrogate-pair transcoder
// ---------------------------------------------------------------------------

const (
	// surrogateSelf is the first code point that needs a surrogate pair.
	surrogateSelf rune = 0x10000

	// surrogateOffset is the payload width of one surrogate (10 bits).
	surrogateOffset = 10
)

// ConvertToUTF16 encodes cp as its UTF-16 code unit sequence rendered as a
// lower-case hex string: 4 digits for a single unit, 8 for a surrogate
// pair. Values in the surrogate gap and values outside the codespace
// yield "", never an error.
func ConvertToUTF16(cp rune) string {
	switch {
	case cp >= MinCodePoint && cp < HighSurrogateMin,
		cp > LowSurrogateMax && cp < surrogateSelf:
		return fmt.Sprintf("%04x", cp)
	case cp >= surrogateSelf && cp <= MaxCodePoint:
		v := cp - surrogateSelf
		hi := HighSurrogateMin + v>>surrogateOffset
		lo := LowSurrogateMin + v&(1<<surrogateOffset-1)
		return fmt.Sprintf("%04x%04x", hi, lo)
	}
	return ""
}

package codespace

import "fmt"

// ---------------------------------------------------------------------------
// Plane: One of the 17 partitions of the codespace
// ---------------------------------------------------------------------------
//
// Planes are contiguous 0x10000-sized ranges. Planes 0-3 and 14-16 carry
// standardized names and aliases; planes 4-13 are unassigned and carry
// neither.

// NumPlanes is the number of planes in the Unicode codespace.
const NumPlanes = 17

// Plane describes one plane of the codespace. Low and High are the
// inclusive bounds. Name and Alias are empty for unassigned planes.
type Plane struct {
	Index int
	Low   rune
	High  rune
	Name  string
	Alias string
}

var planes = [NumPlanes]Plane{
	{Index: 0, Low: 0x000000, High: 0x00FFFF, Name: "Basic Multilingual Plane", Alias: "BMP"},
	{Index: 1, Low: 0x010000, High: 0x01FFFF, Name: "Supplementary Multilingual Plane", Alias: "SMP"},
	{Index: 2, Low: 0x020000, High: 0x02FFFF, Name: "Supplementary Ideographic Plane", Alias: "SIP"},
	{Index: 3, Low: 0x030000, High: 0x03FFFF, Name: "Tertiary Ideographic Plane", Alias: "TIP"},
	{Index: 4, Low: 0x040000, High: 0x04FFFF},
	{Index: 5, Low: 0x050000, High: 0x05FFFF},
	{Index: 6, Low: 0x060000, High: 0x06FFFF},
	{Index: 7, Low: 0x070000, High: 0x07FFFF},
	{Index: 8, Low: 0x080000, High: 0x08FFFF},
	{Index: 9, Low: 0x090000, High: 0x09FFFF},
	{Index: 10, Low: 0x0A0000, High: 0x0AFFFF},
	{Index: 11, Low: 0x0B0000, High: 0x0BFFFF},
	{Index: 12, Low: 0x0C0000, High: 0x0CFFFF},
	{Index: 13, Low: 0x0D0000, High: 0x0DFFFF},
	{Index: 14, Low: 0x0E0000, High: 0x0EFFFF, Name: "Supplementary Special-purpose Plane", Alias: "SSP"},
	{Index: 15, Low: 0x0F0000, High: 0x0FFFFF, Name: "Supplementary Private Use Area-A", Alias: "SPUA-A"},
	{Index: 16, Low: 0x100000, High: 0x10FFFF, Name: "Supplementary Private Use Area-B", Alias: "SPUA-B"},
}

// GetPlaneSpecification returns the descriptor for plane index 0-16.
func GetPlaneSpecification(index int) (Plane, error) {
	if index < 0 || index >= NumPlanes {
		return Plane{}, fmt.Errorf("codespace: plane %d: %w", index, ErrPlaneOutOfRange)
	}
	return planes[index], nil
}

// PlaneOf returns the plane containing cp.
func PlaneOf(cp rune) (Plane, error) {
	if !InCodespace(cp) {
		return Plane{}, fmt.Errorf("codespace: code point %#x: %w", cp, ErrCodePointOutOfRange)
	}
	return planes[cp>>16], nil
}

// Planes returns all 17 plane descriptors in index order. The returned
// slice is a copy.
func Planes() []Plane {
	ps := make([]Plane, NumPlanes)
	copy(ps, planes[:])
	return ps
}

// Contains returns true if cp lies inside the plane's range.
func (p Plane) Contains(cp rune) bool {
	return cp >= p.Low && cp <= p.High
}

package inspect

import (
	"bytes"
	"testing"
)

func TestReport_CBORRoundTrip(t *testing.T) {
	r, err := Inspect(0x10437)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	data, err := MarshalReport(&r)
	if err != nil {
		t.Fatalf("MarshalReport: %v", err)
	}

	got, err := UnmarshalReport(data)
	if err != nil {
		t.Fatalf("UnmarshalReport: %v", err)
	}

	if *got != r {
		t.Errorf("round trip: got %+v, want %+v", *got, r)
	}
}

func TestReport_CBORDeterministic(t *testing.T) {
	r, err := Inspect(0xFFFE)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}

	first, err := MarshalReport(&r)
	if err != nil {
		t.Fatalf("MarshalReport: %v", err)
	}
	second, err := MarshalReport(&r)
	if err != nil {
		t.Fatalf("MarshalReport: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("canonical encoding differs between calls: %x vs %x", first, second)
	}
}

func TestUnmarshalReport_Invalid(t *testing.T) {
	if _, err := UnmarshalReport([]byte{0xFF, 0x00}); err == nil {
		t.Error("UnmarshalReport accepted garbage input")
	}
}

package server

import (
	"testing"

	"connectrpc.com/connect"
)

func TestConvertToUTF8Service(t *testing.T) {
	svc := NewTranscodingService()

	tests := []struct {
		cp   uint32
		want string
	}{
		{0x0024, "24"},
		{0x00A2, "c2a2"},
		{0x20AC, "e282ac"},
		{0x10437, "f09090b7"},
		{0xD800, "eda080"},
		{0x10FFFF, "f48fbfbf"},
	}
	for _, tc := range tests {
		resp, err := svc.ConvertToUTF8(bg(), connectReq(&ConvertRequest{CodePoint: tc.cp}))
		if err != nil {
			t.Errorf("ConvertToUTF8(%#x) returned error: %v", tc.cp, err)
			continue
		}
		if resp.Msg.Hex != tc.want {
			t.Errorf("ConvertToUTF8(%#x) = %q, want %q", tc.cp, resp.Msg.Hex, tc.want)
		}
	}
}

func TestConvertToUTF8Service_OutOfRange(t *testing.T) {
	svc := NewTranscodingService()

	_, err := svc.ConvertToUTF8(bg(), connectReq(&ConvertRequest{CodePoint: 0x110000}))
	if err == nil {
		t.Fatal("ConvertToUTF8(0x110000) should fail")
	}
	var connectErr *connect.Error
	if ok := asConnectError(err, &connectErr); !ok {
		t.Fatalf("error is not a connect error: %v", err)
	}
	if connectErr.Code() != connect.CodeOutOfRange {
		t.Errorf("code = %v, want CodeOutOfRange", connectErr.Code())
	}
}

func TestConvertToUTF16Service(t *testing.T) {
	svc := NewTranscodingService()

	tests := []struct {
		cp   uint32
		want string
	}{
		{0x0024, "0024"},
		{0x20AC, "20ac"},
		{0x10437, "d801dc37"},
		{0x10FFFF, "dbffdfff"},
		{0xD800, ""},
		{0xDFFF, ""},
		{0x110000, ""},
	}
	for _, tc := range tests {
		resp, err := svc.ConvertToUTF16(bg(), connectReq(&ConvertRequest{CodePoint: tc.cp}))
		if err != nil {
			t.Errorf("ConvertToUTF16(%#x) returned error: %v", tc.cp, err)
			continue
		}
		if resp.Msg.Hex != tc.want {
			t.Errorf("ConvertToUTF16(%#x) = %q, want %q", tc.cp, resp.Msg.Hex, tc.want)
		}
	}
}

func TestTranscode(t *testing.T) {
	svc := NewTranscodingService()

	resp, err := svc.Transcode(bg(), connectReq(&TranscodeRequest{CodePoint: 0x10437}))
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}

	msg := resp.Msg
	if msg.UTF8 != "f09090b7" {
		t.Errorf("UTF8 = %q, want %q", msg.UTF8, "f09090b7")
	}
	if msg.UTF16 != "d801dc37" {
		t.Errorf("UTF16 = %q, want %q", msg.UTF16, "d801dc37")
	}
	if msg.Plane != 1 {
		t.Errorf("Plane = %d, want 1", msg.Plane)
	}
	if msg.Category != "Character" {
		t.Errorf("Category = %q, want %q", msg.Category, "Character")
	}
	if msg.Notation != "U+10437" {
		t.Errorf("Notation = %q, want %q", msg.Notation, "U+10437")
	}
}

func TestTranscode_Surrogate(t *testing.T) {
	svc := NewTranscodingService()

	resp, err := svc.Transcode(bg(), connectReq(&TranscodeRequest{CodePoint: 0xDC00}))
	if err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}

	msg := resp.Msg
	if msg.UTF8 != "edb080" {
		t.Errorf("UTF8 = %q, want %q", msg.UTF8, "edb080")
	}
	if msg.UTF16 != "" {
		t.Errorf("UTF16 = %q, want empty string", msg.UTF16)
	}
	if msg.Category != "LowSurrogate" {
		t.Errorf("Category = %q, want %q", msg.Category, "LowSurrogate")
	}
}

func TestTranscode_OutOfRange(t *testing.T) {
	svc := NewTranscodingService()

	_, err := svc.Transcode(bg(), connectReq(&TranscodeRequest{CodePoint: 0x110000}))
	if err == nil {
		t.Fatal("Transcode(0x110000) should fail")
	}
	var connectErr *connect.Error
	if ok := asConnectError(err, &connectErr); !ok {
		t.Fatalf("error is not a connect error: %v", err)
	}
	if connectErr.Code() != connect.CodeOutOfRange {
		t.Errorf("code = %v, want CodeOutOfRange", connectErr.Code())
	}
}

package main

import "testing"

// ---------------------------------------------------------------------------
// Remote helper tests
// ---------------------------------------------------------------------------

func TestSplitProcedure(t *testing.T) {
	service, method, err := splitProcedure("/zerus.v1.TranscodingService/Transcode")
	if err != nil {
		t.Fatalf("splitProcedure failed: %v", err)
	}
	if service != "zerus.v1.TranscodingService" {
		t.Errorf("service = %q, want zerus.v1.TranscodingService", service)
	}
	if method != "Transcode" {
		t.Errorf("method = %q, want Transcode", method)
	}
}

func TestSplitProcedure_Invalid(t *testing.T) {
	if _, _, err := splitProcedure("no-slashes"); err == nil {
		t.Errorf("expected error for malformed procedure")
	}
}

func TestRenderTranscodeLine(t *testing.T) {
	got := renderTranscodeLine("U+10437", "Character", 1, "f09090b7", "d801dc37")
	want := "U+10437  Character  plane 1  utf8=f09090b7  utf16=d801dc37\n"
	if got != want {
		t.Errorf("renderTranscodeLine = %q, want %q", got, want)
	}
}

func TestRenderTranscodeLine_NoUTF16(t *testing.T) {
	got := renderTranscodeLine("U+D800", "HighSurrogate", 0, "eda080", "")
	want := "U+D800  HighSurrogate  plane 0  utf8=eda080\n"
	if got != want {
		t.Errorf("renderTranscodeLine = %q, want %q", got, want)
	}
}

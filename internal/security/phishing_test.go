package security

import (
	"strings"
	"testing"
)

func TestDetectPhishingLinks_CleanText(t *testing.T) {
	scan := DetectPhishingLinks("See https://example.com/guide and http://docs.example.org/page for details.")
	if scan.Found != 2 {
		t.Fatalf("expected 2 urls found, got %d", scan.Found)
	}
	if !scan.Clean() {
		t.Fatalf("expected no suspicious urls, got %v", scan.Suspicious)
	}
}

func TestDetectPhishingLinks_NoLinks(t *testing.T) {
	scan := DetectPhishingLinks("plain text without any links")
	if scan.Found != 0 || !scan.Clean() {
		t.Fatalf("unexpected scan: %+v", scan)
	}
}

func TestDetectPhishingLinks_CredentialSeparator(t *testing.T) {
	scan := DetectPhishingLinks("login at https://bank.com@evil.example/steal now")
	if scan.Found != 1 || len(scan.Suspicious) != 1 {
		t.Fatalf("expected the @ url flagged, got %+v", scan)
	}
}

func TestDetectPhishingLinks_DoubleSchemeSeparator(t *testing.T) {
	scan := DetectPhishingLinks("click https://evil.example//redirect//https://real.example")
	if len(scan.Suspicious) != 1 {
		t.Fatalf("expected the double-separator url flagged, got %+v", scan)
	}
}

func TestDetectPhishingLinks_ExcessiveLength(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("a", 300)
	scan := DetectPhishingLinks("see " + long)
	if len(scan.Suspicious) != 1 || scan.Suspicious[0] != long {
		t.Fatalf("expected the long url flagged, got %+v", scan)
	}
}

func TestDetectPhishingLinks_MixedLinks(t *testing.T) {
	scan := DetectPhishingLinks("good https://example.com bad https://a@b.example end")
	if scan.Found != 2 {
		t.Fatalf("expected 2 urls found, got %d", scan.Found)
	}
	if len(scan.Suspicious) != 1 || !strings.Contains(scan.Suspicious[0], "@") {
		t.Fatalf("expected only the @ url flagged, got %v", scan.Suspicious)
	}
}

package security

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// pngHeader is a minimal valid PNG signature plus IHDR start, enough for
// content-type detection.
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R',
}

func newTestValidator(t *testing.T, maxBytes int64) *UploadValidator {
	t.Helper()
	v, err := NewUploadValidator(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("NewUploadValidator: %v", err)
	}
	return v
}

func TestUploadValidator_Success(t *testing.T) {
	v := newTestValidator(t, DefaultMaxUploadBytes)

	content := "hello upload"
	result, err := v.Validate(strings.NewReader(content), "notes.txt")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Name != "notes.txt" {
		t.Fatalf("unexpected name: %s", result.Name)
	}
	if result.Size != int64(len(content)) {
		t.Fatalf("unexpected size: %d", result.Size)
	}
	if len(result.Digest) != 64 {
		t.Fatalf("expected sha256 hex digest, got %q", result.Digest)
	}

	stored, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(stored) != content {
		t.Fatalf("stored content mismatch")
	}
}

func TestUploadValidator_UnsupportedExtension(t *testing.T) {
	v := newTestValidator(t, DefaultMaxUploadBytes)

	for _, name := range []string{"script.exe", "archive.zip", "noextension", "double.txt.sh"} {
		if _, err := v.Validate(strings.NewReader("x"), name); err != domain.ErrUnsupportedType {
			t.Fatalf("expected ErrUnsupportedType for %q, got %v", name, err)
		}
	}
}

func TestUploadValidator_TooLargeLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	v, err := NewUploadValidator(dir, 1024)
	if err != nil {
		t.Fatalf("NewUploadValidator: %v", err)
	}

	big := bytes.Repeat([]byte("a"), 5000)
	if _, err := v.Validate(bytes.NewReader(big), "big.txt"); err != domain.ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading tmp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected partial file to be removed, found %d entries", len(entries))
	}
}

func TestUploadValidator_SuspiciousContentRemoved(t *testing.T) {
	dir := t.TempDir()
	v, err := NewUploadValidator(dir, DefaultMaxUploadBytes)
	if err != nil {
		t.Fatalf("NewUploadValidator: %v", err)
	}

	// ZIP magic bytes behind an allowed extension.
	payload := append([]byte{'P', 'K', 0x03, 0x04}, bytes.Repeat([]byte{0}, 64)...)
	if _, err := v.Validate(bytes.NewReader(payload), "fake.png"); err != domain.ErrSuspiciousType {
		t.Fatalf("expected ErrSuspiciousType, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading tmp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected rejected file to be removed, found %d entries", len(entries))
	}
}

func TestUploadValidator_PNGContentAccepted(t *testing.T) {
	v := newTestValidator(t, DefaultMaxUploadBytes)

	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 32)...)
	result, err := v.Validate(bytes.NewReader(payload), "chart.png")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	defer os.Remove(result.Path)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd":  "passwd",
		"notes.txt":         "notes.txt",
		"my report (1).pdf": "my_report__1_.pdf",
		"/abs/path/a.png":   "a.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUploadValidator_RandomizedStorageName(t *testing.T) {
	v := newTestValidator(t, DefaultMaxUploadBytes)

	first, err := v.Validate(strings.NewReader("one"), "same.txt")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	second, err := v.Validate(strings.NewReader("two"), "same.txt")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if first.Path == second.Path {
		t.Fatalf("expected unique storage paths for identical filenames")
	}
	if !strings.HasSuffix(filepath.Base(first.Path), "_same.txt") {
		t.Fatalf("expected prefix_name layout, got %s", first.Path)
	}
}

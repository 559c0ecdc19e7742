package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

const (
	// DefaultMaxUploadBytes is the upload size ceiling (10 MiB).
	DefaultMaxUploadBytes = 10 << 20

	uploadChunkSize = 4096
)

var (
	allowedExtensions = map[string]struct{}{
		".png": {}, ".jpg": {}, ".jpeg": {}, ".pdf": {}, ".txt": {},
	}
	allowedMIMEPrefixes = []string{"image/", "text/", "application/pdf"}

	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// UploadResult describes a validated upload sitting in temporary storage.
type UploadResult struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

// UploadValidator streams uploads to temporary storage while enforcing a
// size ceiling, filename sanitisation and extension/MIME allow-listing.
type UploadValidator struct {
	tmpDir   string
	maxBytes int64
}

// NewUploadValidator creates the validator and its temp directory.
func NewUploadValidator(tmpDir string, maxBytes int64) (*UploadValidator, error) {
	if tmpDir == "" {
		tmpDir = "./uploads/tmp"
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("upload tmp dir: %w", err)
	}
	return &UploadValidator{tmpDir: tmpDir, maxBytes: maxBytes}, nil
}

// SanitizeFilename strips directory components and replaces characters
// outside [A-Za-z0-9._-].
func SanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(filename), "_")
}

// Validate streams the body to a uniquely named temporary file. The partial
// file is deleted on every failure path; on success the caller owns the file
// at Path and is responsible for moving or removing it.
func (v *UploadValidator) Validate(r io.Reader, filename string) (*UploadResult, error) {
	name := SanitizeFilename(filename)
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedType
	}

	path := filepath.Join(v.tmpDir, randomHex(8)+"_"+name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("upload: create temp file: %w", err)
	}

	hash := sha256.New()
	size, err := v.stream(r, f, hash)
	closeErr := f.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("upload: close temp file: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	mime, err := mimetype.DetectFile(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("upload: detect mime: %w", err)
	}
	if !allowedMIME(mime.String()) {
		_ = os.Remove(path)
		return nil, domain.ErrSuspiciousType
	}

	return &UploadResult{
		Name:   name,
		Path:   path,
		Size:   size,
		Digest: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// stream copies r into the file in fixed-size chunks, feeding the digest as
// it goes, and aborts the moment the ceiling is crossed.
func (v *UploadValidator) stream(r io.Reader, f *os.File, hash io.Writer) (int64, error) {
	buf := make([]byte, uploadChunkSize)
	var size int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			size += int64(n)
			if size > v.maxBytes {
				return size, domain.ErrTooLarge
			}
			if _, err := f.Write(buf[:n]); err != nil {
				return size, fmt.Errorf("upload: write: %w", err)
			}
			_, _ = hash.Write(buf[:n])
		}
		if readErr == io.EOF {
			return size, nil
		}
		if readErr != nil {
			return size, fmt.Errorf("upload: read: %w", readErr)
		}
	}
}

func allowedMIME(mime string) bool {
	for _, prefix := range allowedMIMEPrefixes {
		if strings.HasPrefix(mime, prefix) {
			return true
		}
	}
	return false
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", os.Getpid())
	}
	return hex.EncodeToString(b)
}

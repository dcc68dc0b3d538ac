package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pngHeader is the 8-byte PNG signature followed by an IHDR chunk start.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestEncodeImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := EncodeImage(path)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("unexpected data URL prefix: %s", got)
	}
}

func TestEncodeImageRejectsText(t *testing.T) {
	if _, err := EncodeImageBytes([]byte("hello, world")); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage, got %v", err)
	}
}

func TestEncodeImageMissingFile(t *testing.T) {
	if _, err := EncodeImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

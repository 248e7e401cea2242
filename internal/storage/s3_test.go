package storage

import (
	"strings"
	"testing"

	"recyloop/pkg/types"
)

func TestEvidenceKey(t *testing.T) {
	key := evidenceKey("my invoice.pdf", types.ResiduePlastic)

	if !strings.HasPrefix(key, "evidence/plastic/") {
		t.Errorf("key %q missing category path segment", key)
	}
	if !strings.HasSuffix(key, "_my_invoice.pdf") {
		t.Errorf("key %q does not end with the sanitized file name", key)
	}
	if strings.Contains(key, " ") {
		t.Errorf("key %q contains whitespace", key)
	}

	// The nanoid segment keeps repeated desired names from colliding.
	other := evidenceKey("my invoice.pdf", types.ResiduePlastic)
	if key == other {
		t.Error("expected distinct keys for repeated file names")
	}

	crossCategory := evidenceKey("my invoice.pdf", types.ResidueGlass)
	if strings.HasPrefix(crossCategory, "evidence/plastic/") {
		t.Errorf("key %q should carry its own category segment", crossCategory)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain.pdf", "plain.pdf"},
		{"has space.pdf", "has_space.pdf"},
		{"path/traversal.pdf", "path_traversal.pdf"},
		{`back\slash.pdf`, "back_slash.pdf"},
	}

	for _, tt := range tests {
		if got := sanitizeFileName(tt.in); got != tt.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"proof.mp4", "video/mp4"},
		{"clip.mov", "video/quicktime"},
		{"invoice.pdf", "application/pdf"},
		{"form.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"metadata.json", "application/json"},
		{"unknown.bin", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := contentTypeFor(tt.fileName); got != tt.want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", tt.fileName, got, tt.want)
		}
	}
}

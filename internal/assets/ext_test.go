package assets

import "testing"

func TestExtensionFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"simple extension", "https://example.com/photo.jpg", ".jpg"},
		{"query string ignored", "https://files.notion.so/img.png?X-Amz-Signature=abc", ".png"},
		{"uppercase is lowered", "https://example.com/DOC.PDF", ".pdf"},
		{"no extension", "https://example.com/asset", ""},
		{"overlong extension rejected", "https://example.com/file.somethingverylong", ""},
		{"dot in directory only", "https://example.com/v1.2/asset", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extensionFromURL(tt.url); got != tt.want {
				t.Errorf("extensionFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtensionFromContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{"jpeg", "image/jpeg", ".jpg"},
		{"png with charset parameter", "image/png; charset=binary", ".png"},
		{"svg", "image/svg+xml", ".svg"},
		{"pdf", "application/pdf", ".pdf"},
		{"empty falls back", "", ".bin"},
		{"unknown falls back", "application/x-mystery", ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extensionFromContentType(tt.contentType, ".bin"); got != tt.want {
				t.Errorf("extensionFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestSafeID(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{"uuid dashes survive", "0f3a-4b2c-8d1e", "fb", "0f3a-4b2c-8d1e"},
		{"punctuation stripped", "a/b:c.d", "fb", "abcd"},
		{"nothing survives", "//::..", "fb", "fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := safeID(tt.value, tt.fallback); got != tt.want {
				t.Errorf("safeID(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestHashID_StableAndShort(t *testing.T) {
	t.Parallel()
	first := hashID("https://example.com/a.png")
	second := hashID("https://example.com/a.png")
	if first != second {
		t.Errorf("hashID is not stable: %q vs %q", first, second)
	}
	if len(first) != 16 {
		t.Errorf("hashID length = %d, want 16", len(first))
	}
	if other := hashID("https://example.com/b.png"); other == first {
		t.Error("distinct URLs produced the same id")
	}
}

func TestStripExtension(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"notion-originals/abc.jpg", "notion-originals/abc"},
		{"notion-originals/abc", "notion-originals/abc"},
		{"dir.v2/abc.png", "dir.v2/abc"},
	}

	for _, tt := range tests {
		if got := stripExtension(tt.key); got != tt.want {
			t.Errorf("stripExtension(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

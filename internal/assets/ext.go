package assets

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	urlExtPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
	unsafeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// extensionFromURL extracts a plausible file extension from the URL path.
// Returns "" when the path has none or it looks like garbage.
func extensionFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if urlExtPattern.MatchString(ext) {
		return ext
	}
	return ""
}

// extensionFromContentType maps a response content type to an extension,
// falling back when the type is unknown.
func extensionFromContentType(contentType, fallback string) string {
	if contentType == "" {
		return fallback
	}
	normalized := strings.ToLower(contentType)
	switch {
	case strings.Contains(normalized, "image/jpeg"):
		return ".jpg"
	case strings.Contains(normalized, "image/png"):
		return ".png"
	case strings.Contains(normalized, "image/webp"):
		return ".webp"
	case strings.Contains(normalized, "image/gif"):
		return ".gif"
	case strings.Contains(normalized, "image/svg+xml"):
		return ".svg"
	case strings.Contains(normalized, "video/mp4"):
		return ".mp4"
	case strings.Contains(normalized, "application/pdf"):
		return ".pdf"
	}
	return fallback
}

// safeID strips everything that is not alphanumeric, underscore or hyphen.
// Returns fallback when nothing survives.
func safeID(value, fallback string) string {
	clean := strings.TrimSpace(unsafeIDChars.ReplaceAllString(value, ""))
	if clean == "" {
		return fallback
	}
	return clean
}

// hashID derives a short stable identifier from a URL, for assets whose
// block id is unusable.
func hashID(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:16]
}

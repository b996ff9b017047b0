// Package imagehost implements catalog.ImageUploader against Cloudinary and
// against a local directory served by the API itself.
package imagehost

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// uniqueStem turns an uploaded filename into a stem that is safe in a URL
// path and unlikely to collide: the sanitized base name plus a random UUID.
func uniqueStem(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	stem := sanitize(base)
	if stem == "" {
		stem = "image"
	}
	return stem + "-" + uuid.NewString()
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// extension returns the lowercased extension of filename, dot included, or
// "" when it is not a plain alphanumeric suffix.
func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || sanitize(ext[1:]) != ext[1:] {
		return ""
	}
	return ext
}

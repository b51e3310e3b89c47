package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxKeyFilenameLength = 100

// GenerateStorageKey returns a collision free object key of the form
// <kind>/<ownerID>/<uuid>_<sanitized filename>.
func GenerateStorageKey(kind string, ownerID uint64, filename string) string {
	return fmt.Sprintf("%s/%d/%s_%s", kind, ownerID, uuid.NewString(), SanitizeFilename(filename))
}

// SanitizeFilename strips directories and any character outside [A-Za-z0-9._-].
func SanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		return "file"
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := strings.TrimLeft(b.String(), ".")
	if name == "" {
		return "file"
	}
	if len(name) > maxKeyFilenameLength {
		name = name[len(name)-maxKeyFilenameLength:]
	}
	return name
}

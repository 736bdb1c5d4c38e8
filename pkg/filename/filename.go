package filename

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ai-renamer-be/pkg/fsaccess"
)

var ErrNoExtension = errors.New("file name has no extension")

// SupportedExtensions is the allow-list used when reading a folder.
var SupportedExtensions = []string{"pdf", "jpg", "jpeg", "png", "txt", "doc", "docx"}

// ExtensionOf returns the lowercased text after the last dot.
func ExtensionOf(name string) (string, error) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrNoExtension, name)
	}
	return strings.ToLower(name[i+1:]), nil
}

// MimeOf maps an extension to the MIME type sent to the AI endpoint.
// Unknown extensions fall back to text/plain.
func MimeOf(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "text/plain"
	}
}

// IsSupported reports whether name carries an allow-listed extension.
func IsSupported(name string) bool {
	ext, err := ExtensionOf(name)
	if err != nil {
		return false
	}
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// EnsureExtension appends ".ext" unless candidate already ends with it.
// An existing different extension is left in place.
func EnsureExtension(candidate, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if strings.HasSuffix(candidate, "."+ext) {
		return candidate
	}
	return candidate + "." + ext
}

// SplitName splits at the last dot. ext is empty when there is none.
func SplitName(name string) (base, ext string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// NextAvailableName scans for "base(N).ext" and returns the next free
// number. The unnumbered name counts as (1), so the first duplicate is (2).
func NextAvailableName(ctx context.Context, dir fsaccess.Lister, base, ext string) (string, error) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `\((\d+)\)` + extSuffixPattern(ext) + `$`)

	entries, err := dir.Entries(ctx)
	if err != nil {
		return "", err
	}

	highest := 1
	for _, e := range entries {
		m := pattern.FindStringSubmatch(e.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	return numbered(base, ext, highest+1), nil
}

func extSuffixPattern(ext string) string {
	if ext == "" {
		return ""
	}
	return `\.` + regexp.QuoteMeta(ext)
}

func numbered(base, ext string, n int) string {
	if ext == "" {
		return fmt.Sprintf("%s(%d)", base, n)
	}
	return fmt.Sprintf("%s(%d).%s", base, n, ext)
}

// ValidateEntryName rejects names that would leave the directory.
func ValidateEntryName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("file name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("file name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("file name %q contains a path separator", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("file name %q contains a NUL byte", name)
	}
	return nil
}

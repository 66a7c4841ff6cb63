package constants

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AllowedExtensions holds the default allowed file extensions for receipt
// images. Every entry must have a registered decoder.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"bmp":  {},
}

// ExtensionList returns the default allowed extensions as a sorted slice.
func ExtensionList() []string {
	out := make([]string, 0, len(AllowedExtensions))
	for ext := range AllowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ParseExtensions turns a comma-separated extension list into a lookup set.
// Empty input yields the default AllowedExtensions.
func ParseExtensions(csv string) map[string]struct{} {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return AllowedExtensions
	}
	out := make(map[string]struct{})
	for _, raw := range strings.Split(csv, ",") {
		ext := NormalizeExt(strings.TrimSpace(raw))
		if ext != "" {
			out[ext] = struct{}{}
		}
	}
	if len(out) == 0 {
		return AllowedExtensions
	}
	return out
}

// ParseByteSize parses human-readable sizes like "5MB", "2KB" or "1GB" into
// bytes using 1024-based multipliers. A bare number is taken as bytes.
func ParseByteSize(s string) (int64, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty size")
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(v, "GB"):
		multiplier = 1024 * 1024 * 1024
		v = strings.TrimSuffix(v, "GB")
	case strings.HasSuffix(v, "MB"):
		multiplier = 1024 * 1024
		v = strings.TrimSuffix(v, "MB")
	case strings.HasSuffix(v, "KB"):
		multiplier = 1024
		v = strings.TrimSuffix(v, "KB")
	case strings.HasSuffix(v, "B"):
		v = strings.TrimSuffix(v, "B")
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return int64(n * float64(multiplier)), nil
}

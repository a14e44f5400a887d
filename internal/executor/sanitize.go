package executor

import (
	"strings"
	"unicode"

	"github.com/tomastro/sortify/internal/model"
)

// SanitizeDirName turns a category label into a destination directory name
// safe for the host filesystem. Labels matching the taxonomy are
// case-normalized to their canonical spelling; anything else is trimmed and
// stripped of path separators, reserved punctuation and control characters.
// An empty result falls back to Other.
func SanitizeDirName(label string) string {
	trimmed := strings.TrimSpace(label)

	for _, c := range model.Taxonomy() {
		if strings.EqualFold(trimmed, string(c)) {
			return string(c)
		}
	}

	sanitized := strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return -1
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, trimmed)

	sanitized = strings.TrimSpace(sanitized)
	if sanitized == "" {
		return string(model.CategoryOther)
	}

	return sanitized
}

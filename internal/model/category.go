// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Category is one label from the fixed classification taxonomy.
type Category string

// The fixed taxonomy. Every classification decision resolves to one of these.
const (
	CategoryDocuments Category = "Documents"
	CategoryImages    Category = "Images"
	CategoryMusic     Category = "Music"
	CategoryVideo     Category = "Video"
	CategoryCode      Category = "Code"
	CategoryArchives  Category = "Archives"
	CategoryOther     Category = "Other"
)

// Taxonomy returns every valid category in display order.
func Taxonomy() []Category {
	return []Category{
		CategoryDocuments,
		CategoryImages,
		CategoryMusic,
		CategoryVideo,
		CategoryCode,
		CategoryArchives,
		CategoryOther,
	}
}

// ParseCategory resolves a raw label to a taxonomy category. Matching is
// case-insensitive after trimming surrounding whitespace; any label outside
// the taxonomy collapses to CategoryOther.
func ParseCategory(raw string) Category {
	label := strings.TrimSpace(raw)
	for _, c := range Taxonomy() {
		if strings.EqualFold(label, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// IsCategoryName reports whether name exactly matches a taxonomy label.
// The scanner uses this to skip already-sorted output directories.
func IsCategoryName(name string) bool {
	for _, c := range Taxonomy() {
		if name == string(c) {
			return true
		}
	}
	return false
}

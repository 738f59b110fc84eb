package domain

import (
	"fmt"
	"strings"
)

// Assessment is a single product-catalog entry. Entries are immutable once
// crawled; one row per catalog product.
type Assessment struct {
	// ID uniquely identifies the assessment. Rows without an ID in the
	// source catalog are assigned one at load time.
	ID string

	// Title is the assessment name.
	Title string

	// URL is the product page address. Used as the ground-truth key
	// during evaluation.
	URL string

	// Description is the free-text product description.
	Description string

	// Category is the catalog category.
	Category string

	// TestType is the assessment type (e.g. "Knowledge & Skills").
	TestType string

	// Level is the seniority level the assessment targets.
	Level string

	// DurationMin is the assessment duration in minutes. Empty when the
	// catalog does not state one; kept as text to round-trip the source.
	DurationMin string

	// Language is the assessment language.
	Language string

	// Tags holds comma-separated catalog tags.
	Tags string
}

// Document renders the text representation that is embedded at index time.
// The template is fixed: changing it changes the embedding space, which
// invalidates every previously built index.
func (a Assessment) Document() string {
	return fmt.Sprintf(
		"Assessment Name: %s. Category: %s. Type: %s. Level: %s. "+
			"Duration: %s minutes. Language: %s. Tags: %s. Description: %s. ",
		a.Title, a.Category, a.TestType, a.Level,
		a.DurationMin, a.Language, a.Tags, a.Description,
	)
}

// HasText reports whether the entry carries any usable text for embedding.
// Entries with neither title nor description cannot be indexed.
func (a Assessment) HasText() bool {
	return strings.TrimSpace(a.Title) != "" || strings.TrimSpace(a.Description) != ""
}

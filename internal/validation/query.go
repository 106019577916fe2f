// Package validation normalizes free-text input before it reaches generation.
package validation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	MinQueryLength = 2
	MaxQueryLength = 100
)

var (
	ErrQueryTooShort = errors.New("search query must be at least 2 characters long")
	ErrQueryTooLong  = errors.New("search query must be less than 100 characters")
)

// SanitizeQuery trims q, drops any markup, and collapses runs of whitespace to a
// single space.
func SanitizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if strings.ContainsAny(q, "<>") {
		q = stripMarkup(q)
	}
	return strings.Join(strings.Fields(q), " ")
}

// ValidateQuery sanitizes q and checks its length in characters.
func ValidateQuery(q string) (string, error) {
	clean := SanitizeQuery(q)
	n := utf8.RuneCountInString(clean)
	switch {
	case n < MinQueryLength:
		return "", ErrQueryTooShort
	case n > MaxQueryLength:
		return "", ErrQueryTooLong
	}
	return clean, nil
}

func stripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.NewReplacer("<", " ", ">", " ").Replace(s)
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}

package entity

import (
	"fmt"
	"regexp"
	"time"
)

// dateLayout is the canonical wire and storage format for article dates.
const dateLayout = "2006-01-02"

var dateFormatRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a real calendar day in "YYYY-MM-DD" form.
// It rejects shapes like "2026-2-3" that time.Parse would accept leniently
// elsewhere, and impossible days like "2026-02-30".
func IsValidDate(s string) bool {
	if !dateFormatRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// FormatDate renders t as a canonical UTC calendar day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Today returns the current UTC calendar day in canonical form.
func Today() string {
	return FormatDate(time.Now())
}

// Validate checks the article's invariants before persistence.
func (a *Article) Validate() error {
	if !IsValidDate(a.Date) {
		return &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a valid YYYY-MM-DD date", a.Date)}
	}
	if !IsSupportedLanguage(string(a.Language)) {
		return &ValidationError{Field: "language", Message: fmt.Sprintf("%q is not a supported language code", a.Language)}
	}
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if a.Content == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if a.Language == BaseLanguage && a.IsTranslated {
		return &ValidationError{Field: "is_translated", Message: "base-language article cannot be marked translated"}
	}
	seen := make(map[string]struct{}, len(a.Sources))
	for _, src := range a.Sources {
		if src.URI == "" {
			return &ValidationError{Field: "sources", Message: "source uri is required"}
		}
		if _, dup := seen[src.URI]; dup {
			return &ValidationError{Field: "sources", Message: fmt.Sprintf("duplicate source uri %q", src.URI)}
		}
		seen[src.URI] = struct{}{}
	}
	return nil
}

package textparse

import (
	"regexp"
	"strings"
)

// fieldValue captures up to a newline, comma or semicolon. A comma directly
// followed by a digit is part of the value so "$50,000" survives.
const fieldValue = `((?:[^\n,;]|,\d)*)`

func labelPattern(label string) string {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return `(?i)\b` + strings.Join(words, `\s+`) + `\b[*_]*`
}

// ExtractField finds "Label: value" in text and returns the value.
//
// The label matches case-insensitively on word boundaries, so "Age" does not
// match inside "Average" or "Ages". An occurrence followed by a colon is
// preferred; failing that, the first "Label value" occurrence is used. The
// value runs to the first newline, comma or semicolon and is returned trimmed
// of whitespace and bold markers. ok is false when no non-empty value exists.
func ExtractField(text, label string) (value string, ok bool) {
	if strings.TrimSpace(label) == "" || strings.TrimSpace(text) == "" {
		return "", false
	}
	lp := labelPattern(label)
	colon := regexp.MustCompile(lp + `[ \t]*:[*_]*[ \t]*` + fieldValue)
	for _, m := range colon.FindAllStringSubmatch(text, -1) {
		if v := cleanFieldValue(m[1]); v != "" {
			return v, true
		}
	}
	bare := regexp.MustCompile(lp + `[ \t]+` + fieldValue)
	for _, m := range bare.FindAllStringSubmatch(text, -1) {
		if v := cleanFieldValue(m[1]); v != "" {
			return v, true
		}
	}
	return "", false
}

// ExtractFieldOr returns the field value or fallback when it is absent.
func ExtractFieldOr(text, label, fallback string) string {
	if v, ok := ExtractField(text, label); ok {
		return v
	}
	return fallback
}

func cleanFieldValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "*_")
	return strings.TrimSpace(v)
}

// Package textparse holds the line-oriented primitives used to pull structure
// out of free-form model output: section splitting, bullet items with quoted
// evidence, and labeled single-value fields.
//
// Nothing in this package returns an error. Input that does not look like
// what we expect produces empty results.
package textparse

import (
	"regexp"
	"strings"
)

var (
	htmlTagRE   = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	mdHeaderRE  = regexp.MustCompile(`^#{1,6}(?:\s+|$)`)
	starBullet  = regexp.MustCompile(`^\*\s+(.*)$`)
	numberedRE  = regexp.MustCompile(`^(?:#{1,6}\s*)?(?:\*\*|__)?\s*(\d+)\.(?:\s+(.*))?$`)
	boldReplace = strings.NewReplacer("**", "", "__", "")
)

// quoteChars are the characters that mark a line as quoted evidence.
const quoteChars = "\"“”«»„"

// StripDecoration removes markdown and HTML decoration from a single line:
// blockquote markers, a leading markdown header, bold markers, inline tags and
// a wrapping pair of italic markers. Bullet markers are left alone.
func StripDecoration(line string) string {
	s := strings.TrimSpace(line)
	s = htmlTagRE.ReplaceAllString(s, "")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimSpace(s[1:])
	}
	s = mdHeaderRE.ReplaceAllString(s, "")
	s = boldReplace.Replace(s)
	s = strings.TrimSpace(s)
	if len(s) > 1 && (s[0] == '*' || s[0] == '_') && s[1] != ' ' {
		s = s[1:]
	}
	s = strings.TrimRight(s, "*_")
	return strings.TrimSpace(s)
}

// IsMarkdownHeader reports whether the line is a markdown header with text.
func IsMarkdownHeader(line string) bool {
	s := strings.TrimSpace(line)
	return mdHeaderRE.MatchString(s) && strings.TrimSpace(strings.TrimLeft(s, "#")) != ""
}

// Bullet returns the text of a bullet line with its marker removed. "-" and
// "•" may be glued to the text; "*" needs a space so bold text is not read as
// a bullet. Rules such as "---" and markers with no text are not bullets.
func Bullet(line string) (string, bool) {
	s := strings.TrimSpace(line)
	var text string
	switch {
	case strings.HasPrefix(s, "•"):
		text = strings.TrimPrefix(s, "•")
	case strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "--"):
		text = s[1:]
	default:
		m := starBullet.FindStringSubmatch(s)
		if m == nil {
			return "", false
		}
		text = m[1]
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// Numbered returns the text of a numbered line ("1. Foo", "**2. Bar**",
// "### 3. Baz") with the number and decoration removed. A number alone on its
// line ("1.") is still numbered, with empty text.
func Numbered(line string) (string, bool) {
	m := numberedRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return StripDecoration(m[2]), true
}

// HasQuote reports whether the line contains a double-quote style character.
func HasQuote(line string) bool {
	return strings.ContainsAny(line, quoteChars)
}

// TrimQuotes removes surrounding quote characters and whitespace.
func TrimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), quoteChars+"'"))
}

// Lines splits text on newlines, normalising CRLF endings.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

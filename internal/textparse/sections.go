package textparse

import (
	"regexp"
	"sort"
	"strings"
)

type headingMatcher struct {
	keyword string
	colon   *regexp.Regexp
	bare    *regexp.Regexp
}

func newHeadingMatcher(keyword string) headingMatcher {
	words := strings.Fields(keyword)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	pattern := strings.Join(words, `\s+`)
	return headingMatcher{
		keyword: keyword,
		colon:   regexp.MustCompile(`(?i)^` + pattern + `\s*:(.*)$`),
		bare:    regexp.MustCompile(`(?i)^` + pattern + `\s*$`),
	}
}

// match returns the text following the heading on the same line.
func (h headingMatcher) match(raw, cleaned string) (string, bool) {
	if m := h.colon.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if isHeadingShaped(raw) && h.bare.MatchString(cleaned) {
		return "", true
	}
	return "", false
}

var labelOnlyRE = regexp.MustCompile(`^[\p{L}][\p{L}\p{N} &/'()-]{0,60}:$`)

// isUnknownHeading reports whether a line that matched no keyword still looks
// like a heading: a markdown header, a fully bold line, or a short label
// followed only by a colon.
func isUnknownHeading(raw, cleaned string) bool {
	if _, ok := Bullet(raw); ok {
		return false
	}
	if HasQuote(cleaned) {
		return false
	}
	return isHeadingShaped(raw) || labelOnlyRE.MatchString(cleaned)
}

// isHeadingShaped reports whether a line is a markdown header or is bold from
// start to finish, so a heading without a trailing colon is still accepted.
func isHeadingShaped(raw string) bool {
	s := strings.TrimSpace(raw)
	if IsMarkdownHeader(s) {
		return true
	}
	for _, marker := range []string{"**", "__"} {
		if len(s) > 2*len(marker) && strings.HasPrefix(s, marker) && strings.HasSuffix(s, marker) {
			return true
		}
	}
	return false
}

func matchHeading(matchers []headingMatcher, raw, cleaned string) (string, string, bool) {
	for _, m := range matchers {
		if rest, ok := m.match(raw, cleaned); ok {
			return m.keyword, rest, true
		}
	}
	return "", "", false
}

// endsSection reports whether the unknown heading at lines[0] closes the
// section it sits in. A markdown header always does. A bold or "Label:" line
// only does when no bullet follows it in the same block, so lead-ins such as
// "Supporting quote:" or "**Top three**" stay part of the section.
func endsSection(lines []string, matchers []headingMatcher) bool {
	if IsMarkdownHeader(lines[0]) {
		return true
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" || IsMarkdownHeader(line) {
			return true
		}
		if _, _, ok := matchHeading(matchers, line, StripDecoration(line)); ok {
			return true
		}
		if _, ok := Bullet(line); ok {
			return false
		}
	}
	return true
}

// SplitSections partitions text into the sections introduced by the given
// heading keywords. A heading is a line that starts with "<keyword>:" once
// decoration is removed; matching ignores case and treats any whitespace run
// inside the keyword as equivalent.
//
// Every keyword is present in the result, mapped to "" when no heading for it
// was found. Lines before the first recognised heading are dropped, and so is
// everything under a heading that is not one of the keywords. A bold or
// "Label:" line directly followed by bullets is content, not a heading. When two
// keywords could match the same line the longer keyword wins.
func SplitSections(text string, keywords []string) map[string]string {
	sections := make(map[string]string, len(keywords))
	matchers := make([]headingMatcher, 0, len(keywords))
	for _, kw := range keywords {
		if _, seen := sections[kw]; seen || strings.TrimSpace(kw) == "" {
			continue
		}
		sections[kw] = ""
		matchers = append(matchers, newHeadingMatcher(kw))
	}
	sort.SliceStable(matchers, func(i, j int) bool {
		return len(matchers[i].keyword) > len(matchers[j].keyword)
	})

	bodies := make(map[string][]string, len(matchers))
	current := ""
	lines := Lines(text)
	for i, line := range lines {
		cleaned := StripDecoration(line)
		if kw, rest, ok := matchHeading(matchers, line, cleaned); ok {
			current = kw
			if rest != "" {
				bodies[current] = append(bodies[current], rest)
			}
			continue
		}
		if current == "" {
			continue
		}
		if isUnknownHeading(line, cleaned) && endsSection(lines[i:], matchers) {
			current = ""
			continue
		}
		bodies[current] = append(bodies[current], line)
	}

	for kw, body := range bodies {
		sections[kw] = strings.TrimSpace(strings.Join(body, "\n"))
	}
	return sections
}

// HasAnySection reports whether at least one of the keywords appears as a
// heading in text.
func HasAnySection(text string, keywords []string) bool {
	matchers := make([]headingMatcher, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			matchers = append(matchers, newHeadingMatcher(kw))
		}
	}
	for _, line := range Lines(text) {
		if _, _, ok := matchHeading(matchers, line, StripDecoration(line)); ok {
			return true
		}
	}
	return false
}

// LooksLikeHeading reports whether line is shaped like a heading rather than
// content: a markdown header, a fully bold line, or a bare "Label:" line.
func LooksLikeHeading(line string) bool {
	return isUnknownHeading(line, StripDecoration(line))
}

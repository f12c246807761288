package assembler

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/onesheet/internal/textparse"
)

var (
	headlineLabelRE = regexp.MustCompile(`(?i)^headline\s*:\s*`)
	originalRE      = regexp.MustCompile(`(?i)^(?:original(?:\s+review)?|review)\s*:\s*(.*)$`)
	reasonRE        = regexp.MustCompile(`(?i)^(?:why|reason(?:ing)?)\s*:\s*(.*)$`)
)

// Headlines extracts numbered headline blocks. The numbered line (or the
// first plain line after it) is the headline; "Original:"/"Review:" and
// "Why:"/"Reason:" lines fill the other fields. Blocks with no headline are
// dropped.
func Headlines(raw string) []Headline {
	headlines := []Headline{}
	var cur *Headline
	flush := func() {
		if cur != nil && cur.Headline != "" {
			cur.ID = uuid.New().String()
			headlines = append(headlines, *cur)
		}
		cur = nil
	}

	for _, line := range textparse.Lines(raw) {
		if text, ok := textparse.Numbered(line); ok {
			flush()
			cur = &Headline{Headline: headlineText(text)}
			continue
		}
		if cur == nil {
			continue
		}
		s := contentLine(line)
		if s == "" {
			continue
		}
		switch {
		case originalRE.MatchString(s):
			if cur.OriginalReview == "" {
				cur.OriginalReview = textparse.TrimQuotes(originalRE.FindStringSubmatch(s)[1])
			}
		case reasonRE.MatchString(s):
			if cur.Reasoning == "" {
				cur.Reasoning = strings.TrimSpace(reasonRE.FindStringSubmatch(s)[1])
			}
		case cur.Headline == "":
			cur.Headline = headlineText(s)
		}
	}
	flush()
	return headlines
}

// contentLine strips a bullet marker and decoration from line.
func contentLine(line string) string {
	s := strings.TrimSpace(line)
	if b, ok := textparse.Bullet(s); ok {
		s = b
	}
	return textparse.StripDecoration(s)
}

func headlineText(s string) string {
	s = textparse.StripDecoration(s)
	s = headlineLabelRE.ReplaceAllString(s, "")
	return textparse.TrimQuotes(s)
}

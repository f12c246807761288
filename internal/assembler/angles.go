package assembler

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MikeSquared-Agency/onesheet/internal/textparse"
)

// boldLeadRE matches "1. **Title:** rest of the line" or "1. **Title** - rest",
// where the bold title and its description share one line. Without a colon
// or dash the bold span is just emphasis inside the title.
var boldLeadRE = regexp.MustCompile(`^(?:#{1,6}\s*)?\d+\.\s+(?:\*\*|__)(.+?)(?:\*\*|__)(\s*[:\-–])?\s*(.+)$`)

type angleDraft struct {
	title string
	desc  []string
}

// Angles extracts numbered marketing angles. Each numbered line opens an
// angle; the lines after it, up to the next numbered line, form its
// description. Angles without a title are dropped and Priority follows the
// order of the angles that remain.
func Angles(raw string) []Angle {
	var drafts []angleDraft
	for _, line := range textparse.Lines(raw) {
		if title, ok := textparse.Numbered(line); ok {
			d := angleDraft{title: cleanTitle(title)}
			m := boldLeadRE.FindStringSubmatch(strings.TrimSpace(line))
			if m != nil && (m[2] != "" || strings.HasSuffix(strings.TrimSpace(m[1]), ":")) {
				if rest := textparse.StripDecoration(m[3]); rest != "" {
					d.title = cleanTitle(textparse.StripDecoration(m[1]))
					d.desc = append(d.desc, rest)
				}
			}
			drafts = append(drafts, d)
			continue
		}
		if len(drafts) == 0 {
			continue
		}
		if s := contentLine(line); s != "" {
			last := &drafts[len(drafts)-1]
			last.desc = append(last.desc, s)
		}
	}

	kept := lo.Filter(drafts, func(d angleDraft, _ int) bool { return d.title != "" })
	return lo.Map(kept, func(d angleDraft, i int) Angle {
		return Angle{
			ID:          uuid.New().String(),
			Title:       d.title,
			Description: strings.Join(d.desc, " "),
			Priority:    i + 1,
		}
	})
}

// cleanTitle drops surrounding quotes and a trailing colon.
func cleanTitle(s string) string {
	s = textparse.TrimQuotes(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, ":"))
	return textparse.TrimQuotes(s)
}

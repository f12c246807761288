package assembler

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MikeSquared-Agency/onesheet/internal/textparse"
)

var (
	visualBlockRE   = regexp.MustCompile(`(?i)^(?:benefit|pain\s*point)\s*\d+\s*:\s*(.*)$`)
	visualConceptRE = regexp.MustCompile(`(?i)^(?:visual\s+)?(?:visual|concept|idea)\s*\d+\s*:\s*(.*)$`)
	visualPromptRE  = regexp.MustCompile(`(?i)^(?:midjourney\s+)?(?:prompt|midjourney)(?:\s*\d+)?\s*:\s*(.*)$`)
)

// VisualIdeas extracts visual concepts and Midjourney prompts grouped by the
// benefit or pain point they illustrate. Blocks start at "Benefit N:" or
// "Pain Point N:" lines, or at markdown headers when the text has neither.
// Blocks without a label are dropped, as are header blocks with no concepts
// or prompts.
func VisualIdeas(raw string) []VisualIdea {
	lines := textparse.Lines(raw)
	byHeader := !lo.SomeBy(lines, func(l string) bool {
		return visualBlockRE.MatchString(contentLine(l))
	})

	ideas := []VisualIdea{}
	var cur *VisualIdea
	flush := func() {
		empty := len(cur.VisualConcepts) == 0 && len(cur.MidjourneyPrompts) == 0
		if cur.BenefitOrPainPoint != "" && !(byHeader && empty) {
			cur.ID = uuid.New().String()
			ideas = append(ideas, *cur)
		}
		cur = nil
	}
	open := func(label string) {
		if cur != nil {
			flush()
		}
		cur = &VisualIdea{
			BenefitOrPainPoint: cleanTitle(label),
			VisualConcepts:     []string{},
			MidjourneyPrompts:  []string{},
		}
	}

	for _, line := range lines {
		s := contentLine(line)
		if !byHeader {
			if m := visualBlockRE.FindStringSubmatch(s); m != nil {
				open(m[1])
				continue
			}
		} else if textparse.IsMarkdownHeader(line) {
			open(s)
			continue
		}
		if cur == nil || s == "" {
			continue
		}
		if m := visualConceptRE.FindStringSubmatch(s); m != nil {
			if v := textparse.TrimQuotes(m[1]); v != "" {
				cur.VisualConcepts = append(cur.VisualConcepts, v)
			}
			continue
		}
		if m := visualPromptRE.FindStringSubmatch(s); m != nil {
			if v := strings.Trim(textparse.TrimQuotes(m[1]), "`"); v != "" {
				cur.MidjourneyPrompts = append(cur.MidjourneyPrompts, v)
			}
		}
	}
	if cur != nil {
		flush()
	}
	return ideas
}

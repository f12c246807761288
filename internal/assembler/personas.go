package assembler

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MikeSquared-Agency/onesheet/internal/textparse"
)

var (
	personaHeadingRE = regexp.MustCompile(`(?i)^(?:persona|profile|segment)\s+\d+\s*:\s*(.*)$`)
	personaLabelRE   = regexp.MustCompile(`(?i)^(?:persona|profile|segment)(?:\s+\d+)?\s*[:.\-–]\s*`)
	quotedRE         = regexp.MustCompile(`["“”«»„]([^"“”«»„]+)["“”«»„]`)

	// personaSubsections are markdown headers that sit inside a persona and
	// must not start a new one.
	personaSubsections = regexp.MustCompile(`(?i)^(?:demographics?|customer\s+language|key\s+phrases|awareness(?:\s+level)?|psychographics|goals|motivations|pain\s+points|objections|background|quotes)\s*:?$`)

	languageHeadings = []string{"Customer Language", "Key Phrases"}
)

type personaBlock struct {
	heading string
	body    []string
}

// Personas extracts persona profiles. Blocks start at "Persona N:",
// "Profile N:" or "Segment N:" lines; text without any of those is split on
// markdown headers instead. A persona without a title is discarded.
func Personas(raw string) []Persona {
	blocks, byHeader := personaBlocks(raw)

	personas := []Persona{}
	for _, b := range blocks {
		body := strings.Join(b.body, "\n")
		p := Persona{
			Title: b.heading,
			Demographics: Demographics{
				Age:        field(body, "Age"),
				Gender:     field(body, "Gender"),
				Location:   field(body, "Location"),
				Income:     field(body, "Income"),
				Education:  field(body, "Education"),
				Occupation: field(body, "Occupation"),
			},
			CustomerLanguage: customerLanguage(body),
		}
		level, hasLevel := awarenessField(body)
		p.AwarenessLevel = ClassifyAwareness(level)

		if byHeader && !hasLevel && p.Demographics == (Demographics{}) && len(p.CustomerLanguage) == 0 {
			continue
		}
		if p.Title == "" {
			p.Title = cleanTitle(firstNonEmpty(field(body, "Name"), field(body, "Title")))
		}
		if p.Title == "" {
			continue
		}
		p.ID = uuid.New().String()
		personas = append(personas, p)
	}
	return personas
}

func personaBlocks(raw string) ([]personaBlock, bool) {
	lines := textparse.Lines(raw)
	byHeader := !lo.SomeBy(lines, func(l string) bool {
		return personaHeadingRE.MatchString(textparse.StripDecoration(l))
	})

	var blocks []personaBlock
	for _, line := range lines {
		cleaned := textparse.StripDecoration(line)
		if !byHeader {
			if m := personaHeadingRE.FindStringSubmatch(cleaned); m != nil {
				blocks = append(blocks, personaBlock{heading: cleanTitle(m[1])})
				continue
			}
		} else if textparse.IsMarkdownHeader(line) && !personaSubsections.MatchString(cleaned) {
			blocks = append(blocks, personaBlock{heading: cleanTitle(personaLabelRE.ReplaceAllString(cleaned, ""))})
			continue
		}
		if len(blocks) > 0 {
			last := &blocks[len(blocks)-1]
			last.body = append(last.body, line)
		}
	}
	return blocks, byHeader
}

func field(text, label string) string {
	v, _ := textparse.ExtractField(text, label)
	return v
}

func firstNonEmpty(vals ...string) string {
	v, _ := lo.Find(vals, func(s string) bool { return s != "" })
	return v
}

func awarenessField(body string) (string, bool) {
	if v, ok := textparse.ExtractField(body, "Awareness Level"); ok {
		return v, true
	}
	return textparse.ExtractField(body, "Awareness")
}

// ClassifyAwareness maps free text onto an awareness level. Keywords are
// checked in funnel order so "unaware" wins over anything else; text with
// no keyword is Unaware.
func ClassifyAwareness(text string) AwarenessLevel {
	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "unaware"):
		return Unaware
	case strings.Contains(s, "problem"):
		return ProblemAware
	case strings.Contains(s, "solution"):
		return SolutionAware
	case strings.Contains(s, "product"):
		return ProductAware
	case strings.Contains(s, "most"):
		return MostAware
	default:
		return Unaware
	}
}

// customerLanguage collects the phrases under a Customer Language or Key
// Phrases heading. Quoted fragments are preferred; an unquoted bullet is
// taken whole.
func customerLanguage(body string) []string {
	sections := textparse.SplitSections(body, languageHeadings)

	var phrases []string
	for _, h := range languageHeadings {
		for _, line := range textparse.Lines(sections[h]) {
			if ms := quotedRE.FindAllStringSubmatch(line, -1); len(ms) > 0 {
				for _, m := range ms {
					phrases = append(phrases, strings.TrimSpace(m[1]))
				}
				continue
			}
			if b, ok := textparse.Bullet(line); ok {
				phrases = append(phrases, textparse.TrimQuotes(textparse.StripDecoration(b)))
			}
		}
	}
	return lo.Uniq(lo.Compact(phrases))
}

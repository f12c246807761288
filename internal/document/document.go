// Package document renders assembled results as a OneSheet: a Markdown
// research document, optionally converted to HTML.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
)

// EmptyMessage is shown in place of a result with no records.
const EmptyMessage = "No items generated, try regenerating."

var sectionTitles = map[prompt.Kind]string{
	prompt.KindAngles:          "Marketing Angles",
	prompt.KindBenefits:        "Benefits",
	prompt.KindPainPoints:      "Pain Points",
	prompt.KindFeatures:        "Features",
	prompt.KindObjections:      "Objections",
	prompt.KindFailedSolutions: "Failed Solutions",
	prompt.KindPersonas:        "Customer Personas",
	prompt.KindCompetitorGap:   "Competitor Gaps",
	prompt.KindHeadlines:       "Headlines",
	prompt.KindOneLiners:       "One-Liners",
	prompt.KindVisualIdeas:     "Visual Ideas",
	prompt.KindProblemSolution: "Problem / Solution Scenarios",
}

var awarenessLabels = map[assembler.AwarenessLevel]string{
	assembler.Unaware:       "Unaware",
	assembler.ProblemAware:  "Problem aware",
	assembler.SolutionAware: "Solution aware",
	assembler.ProductAware:  "Product aware",
	assembler.MostAware:     "Most aware",
}

// SectionTitle returns the heading used for kind.
func SectionTitle(kind prompt.Kind) string {
	if t, ok := sectionTitles[kind]; ok {
		return t
	}
	words := strings.Fields(strings.ReplaceAll(string(kind), "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Build renders results as one Markdown document, a section per result in
// the order given.
func Build(title string, results []assembler.Result) string {
	var b strings.Builder
	if title = strings.TrimSpace(title); title == "" {
		title = "OneSheet"
	}
	fmt.Fprintf(&b, "# %s\n", title)

	for _, r := range results {
		fmt.Fprintf(&b, "\n## %s\n\n", SectionTitle(r.Kind))
		if r.Degraded() {
			fmt.Fprintf(&b, "_%s_\n", EmptyMessage)
			continue
		}
		writeAngles(&b, r.Angles)
		writePersonas(&b, r.Personas)
		writeBundle(&b, r.Bundle)
		writeHeadlines(&b, r.Headlines)
		writeVisualIdeas(&b, r.VisualIdeas)
		writeList(&b, r.Items)
	}
	return b.String()
}

// HTML converts Markdown to HTML.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func writeAngles(b *strings.Builder, angles []assembler.Angle) {
	for _, a := range angles {
		if a.Description == "" {
			fmt.Fprintf(b, "%d. **%s**\n", a.Priority, a.Title)
			continue
		}
		fmt.Fprintf(b, "%d. **%s**: %s\n", a.Priority, a.Title, a.Description)
	}
}

func writePersonas(b *strings.Builder, personas []assembler.Persona) {
	for i, p := range personas {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "### %s\n\n", p.Title)
		fmt.Fprintf(b, "- **Awareness:** %s\n", awarenessLabels[p.AwarenessLevel])
		d := p.Demographics
		for _, f := range [][2]string{
			{"Age", d.Age},
			{"Gender", d.Gender},
			{"Location", d.Location},
			{"Income", d.Income},
			{"Education", d.Education},
			{"Occupation", d.Occupation},
		} {
			if f[1] != "" {
				fmt.Fprintf(b, "- **%s:** %s\n", f[0], f[1])
			}
		}
		if len(p.CustomerLanguage) > 0 {
			b.WriteString("- **Customer language:**\n")
			for _, phrase := range p.CustomerLanguage {
				fmt.Fprintf(b, "  - \"%s\"\n", phrase)
			}
		}
	}
}

func writeBundle(b *strings.Builder, bundle assembler.CategoryBundle) {
	groups := []struct {
		name  string
		items []assembler.BundleItem
	}{
		{"Benefits", bundle.Benefits},
		{"Pain Points", bundle.PainPoints},
		{"Features", bundle.Features},
		{"Objections", bundle.Objections},
		{"Failed Solutions", bundle.FailedSolutions},
		{"Other", bundle.Other},
	}

	var nonEmpty int
	for _, g := range groups {
		if len(g.items) > 0 {
			nonEmpty++
		}
	}
	for _, g := range groups {
		if len(g.items) == 0 {
			continue
		}
		if nonEmpty > 1 {
			fmt.Fprintf(b, "### %s\n\n", g.name)
		}
		for _, it := range g.items {
			fmt.Fprintf(b, "- %s\n", it.Text)
			writeEvidence(b, it.Evidence)
		}
		if nonEmpty > 1 {
			b.WriteString("\n")
		}
	}
}

func writeHeadlines(b *strings.Builder, headlines []assembler.Headline) {
	for i, h := range headlines {
		fmt.Fprintf(b, "%d. **%s**\n", i+1, h.Headline)
		if h.OriginalReview != "" {
			fmt.Fprintf(b, "   - Original: \"%s\"\n", h.OriginalReview)
		}
		if h.Reasoning != "" {
			fmt.Fprintf(b, "   - Why: %s\n", h.Reasoning)
		}
	}
}

func writeVisualIdeas(b *strings.Builder, ideas []assembler.VisualIdea) {
	for i, v := range ideas {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "### %s\n\n", v.BenefitOrPainPoint)
		for _, c := range v.VisualConcepts {
			fmt.Fprintf(b, "- %s\n", c)
		}
		for _, p := range v.MidjourneyPrompts {
			fmt.Fprintf(b, "- Prompt: `%s`\n", strings.ReplaceAll(p, "`", "'"))
		}
	}
}

func writeList(b *strings.Builder, items []assembler.ListItem) {
	for _, it := range items {
		fmt.Fprintf(b, "%d. %s\n", it.Position, it.Text)
		writeEvidence(b, it.Evidence)
	}
}

func writeEvidence(b *strings.Builder, evidence []string) {
	for _, e := range evidence {
		fmt.Fprintf(b, "   - _%s_\n", e)
	}
}

package assembler

import "github.com/MikeSquared-Agency/onesheet/internal/prompt"

// AwarenessLevel is where a persona sits in the awareness funnel.
type AwarenessLevel string

const (
	Unaware       AwarenessLevel = "unaware"
	ProblemAware  AwarenessLevel = "problemAware"
	SolutionAware AwarenessLevel = "solutionAware"
	ProductAware  AwarenessLevel = "productAware"
	MostAware     AwarenessLevel = "mostAware"
)

// Angle is a marketing angle. Priority is its 1-based position.
type Angle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

type Demographics struct {
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	Location   string `json:"location"`
	Income     string `json:"income"`
	Education  string `json:"education"`
	Occupation string `json:"occupation"`
}

type Persona struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Demographics     Demographics   `json:"demographics"`
	AwarenessLevel   AwarenessLevel `json:"awareness_level"`
	CustomerLanguage []string       `json:"customer_language"`
}

// BundleItem is one bullet of a category bundle with its quoted evidence.
type BundleItem struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Evidence []string `json:"evidence"`
}

// CategoryBundle groups benefit-style items by the heading they appeared
// under. Other holds items from text that had no recognised heading.
type CategoryBundle struct {
	ID              string       `json:"id"`
	Benefits        []BundleItem `json:"benefits"`
	PainPoints      []BundleItem `json:"pain_points"`
	Features        []BundleItem `json:"features"`
	Objections      []BundleItem `json:"objections"`
	FailedSolutions []BundleItem `json:"failed_solutions"`
	Other           []BundleItem `json:"other"`
}

// Count returns the number of items across all categories.
func (b CategoryBundle) Count() int {
	return len(b.Benefits) + len(b.PainPoints) + len(b.Features) +
		len(b.Objections) + len(b.FailedSolutions) + len(b.Other)
}

type Headline struct {
	ID             string `json:"id"`
	Headline       string `json:"headline"`
	OriginalReview string `json:"original_review"`
	Reasoning      string `json:"reasoning"`
}

type VisualIdea struct {
	ID                 string   `json:"id"`
	BenefitOrPainPoint string   `json:"benefit_or_pain_point"`
	VisualConcepts     []string `json:"visual_concepts"`
	MidjourneyPrompts  []string `json:"midjourney_prompts"`
}

// ListItem is an entry of a plain list output (one-liners, competitor gaps,
// problem/solution scenarios).
type ListItem struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Evidence []string `json:"evidence"`
	Position int      `json:"position"`
}

// Result is the typed output of one completion. Only the field matching Kind
// is populated; every slice is non-nil so JSON never carries null.
type Result struct {
	Kind        prompt.Kind    `json:"kind"`
	Angles      []Angle        `json:"angles"`
	Personas    []Persona      `json:"personas"`
	Bundle      CategoryBundle `json:"bundle"`
	Headlines   []Headline     `json:"headlines"`
	VisualIdeas []VisualIdea   `json:"visual_ideas"`
	Items       []ListItem     `json:"items"`
}

// NewResult returns an empty result for kind.
func NewResult(kind prompt.Kind) Result {
	return Result{
		Kind:        kind,
		Angles:      []Angle{},
		Personas:    []Persona{},
		Bundle:      newBundle(),
		Headlines:   []Headline{},
		VisualIdeas: []VisualIdea{},
		Items:       []ListItem{},
	}
}

// Count returns the number of records extracted.
func (r Result) Count() int {
	return len(r.Angles) + len(r.Personas) + r.Bundle.Count() +
		len(r.Headlines) + len(r.VisualIdeas) + len(r.Items)
}

// Degraded reports whether extraction produced nothing. This is the normal
// outcome for off-format model output, not an error.
func (r Result) Degraded() bool {
	return r.Count() == 0
}

// Record is one extracted record tagged with its type, as stored.
type Record struct {
	Type  string
	ID    string
	Value any
}

// Records flattens the result into tagged records in document order. Bundle
// items come category by category.
func (r Result) Records() []Record {
	out := []Record{}
	for _, a := range r.Angles {
		out = append(out, Record{Type: "angle", ID: a.ID, Value: a})
	}
	for _, p := range r.Personas {
		out = append(out, Record{Type: "persona", ID: p.ID, Value: p})
	}
	for _, c := range r.Bundle.categories() {
		for _, it := range c.items {
			out = append(out, Record{Type: c.name, ID: it.ID, Value: it})
		}
	}
	for _, h := range r.Headlines {
		out = append(out, Record{Type: "headline", ID: h.ID, Value: h})
	}
	for _, v := range r.VisualIdeas {
		out = append(out, Record{Type: "visual_idea", ID: v.ID, Value: v})
	}
	for _, it := range r.Items {
		out = append(out, Record{Type: "list_item", ID: it.ID, Value: it})
	}
	return out
}

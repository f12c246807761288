package assembler

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
	"github.com/MikeSquared-Agency/onesheet/internal/textparse"
)

// bundleHeadings maps each accepted heading to its category. Singular forms
// are accepted because models drift between them.
var bundleHeadings = map[string]string{
	"Benefits":         "benefits",
	"Benefit":          "benefits",
	"Pain Points":      "pain_points",
	"Pain Point":       "pain_points",
	"Features":         "features",
	"Feature":          "features",
	"Objections":       "objections",
	"Objection":        "objections",
	"Failed Solutions": "failed_solutions",
	"Failed Solution":  "failed_solutions",
}

// bundleKeywords lists plural headings before singular ones so a category's
// items keep that order.
var bundleKeywords = []string{
	"Benefits", "Benefit", "Pain Points", "Pain Point", "Features", "Feature",
	"Objections", "Objection", "Failed Solutions", "Failed Solution",
}

// kindCategories is the category each single-category kind asks for.
var kindCategories = map[prompt.Kind]string{
	prompt.KindBenefits:        "benefits",
	prompt.KindPainPoints:      "pain_points",
	prompt.KindFeatures:        "features",
	prompt.KindObjections:      "objections",
	prompt.KindFailedSolutions: "failed_solutions",
}

func newBundle() CategoryBundle {
	return CategoryBundle{
		Benefits:        []BundleItem{},
		PainPoints:      []BundleItem{},
		Features:        []BundleItem{},
		Objections:      []BundleItem{},
		FailedSolutions: []BundleItem{},
		Other:           []BundleItem{},
	}
}

func (b *CategoryBundle) category(name string) *[]BundleItem {
	switch name {
	case "benefits":
		return &b.Benefits
	case "pain_points":
		return &b.PainPoints
	case "features":
		return &b.Features
	case "objections":
		return &b.Objections
	case "failed_solutions":
		return &b.FailedSolutions
	default:
		return &b.Other
	}
}

type category struct {
	name  string
	items []BundleItem
}

func (b CategoryBundle) categories() []category {
	return []category{
		{"benefit", b.Benefits},
		{"pain_point", b.PainPoints},
		{"feature", b.Features},
		{"objection", b.Objections},
		{"failed_solution", b.FailedSolutions},
		{"other", b.Other},
	}
}

// Bundle sorts bullet items into categories by the heading they appear
// under. Text that has none of the category headings is treated as a single
// uncategorised list and lands in Other.
func Bundle(raw string) CategoryBundle {
	return bundleInto(raw, "other")
}

// BundleFor is Bundle for a completion of kind. When the text has no
// category headings its items go to the category kind asked for, falling
// back to Other for kinds that name no single category.
func BundleFor(kind prompt.Kind, raw string) CategoryBundle {
	name, ok := kindCategories[kind]
	if !ok {
		name = "other"
	}
	return bundleInto(raw, name)
}

func bundleInto(raw, fallback string) CategoryBundle {
	b := newBundle()
	b.ID = uuid.New().String()

	if !textparse.HasAnySection(raw, bundleKeywords) {
		dst := b.category(fallback)
		*dst = bundleItems(textparse.ExtractItems(raw))
		return b
	}

	sections := textparse.SplitSections(raw, bundleKeywords)
	for _, heading := range bundleKeywords {
		dst := b.category(bundleHeadings[heading])
		*dst = append(*dst, bundleItems(textparse.ExtractItems(sections[heading]))...)
	}
	return b
}

func bundleItems(items []textparse.Item) []BundleItem {
	return lo.Map(items, func(it textparse.Item, _ int) BundleItem {
		return BundleItem{
			ID:       uuid.New().String(),
			Text:     textparse.StripDecoration(it.Text),
			Evidence: it.Evidence,
		}
	})
}

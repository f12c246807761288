// Package prompt fills the OneSheet prompt templates.
//
// A Catalog is built once at start-up (the built-in set or a YAML file) and
// handed to NewEngine. Neither is modified afterwards, so an Engine is safe to
// share between goroutines.
package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrUnknownTemplateKind is returned when a kind is not in the catalog.
var ErrUnknownTemplateKind = errors.New("unknown template kind")

// Kind identifies a prompt template and the assembler for its output.
type Kind string

const (
	KindAngles          Kind = "angles"
	KindBenefits        Kind = "benefits"
	KindPainPoints      Kind = "pain_points"
	KindFeatures        Kind = "features"
	KindObjections      Kind = "objections"
	KindFailedSolutions Kind = "failed_solutions"
	KindPersonas        Kind = "personas"
	KindCompetitorGap   Kind = "competitor_gap"
	KindHeadlines       Kind = "headlines"
	KindOneLiners       Kind = "one_liners"
	KindVisualIdeas     Kind = "visual_ideas"
	KindProblemSolution Kind = "problem_solution"
)

// ParseKind normalises a user-supplied kind ("Pain Points", "pain-points").
// It does not check the catalog.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return Kind(s)
}

// Template is a prompt body with {placeholder} tokens.
type Template struct {
	Kind         Kind     `yaml:"kind" json:"kind"`
	Description  string   `yaml:"description" json:"description"`
	System       string   `yaml:"system" json:"system,omitempty"`
	Body         string   `yaml:"body" json:"-"`
	Placeholders []string `yaml:"placeholders" json:"placeholders"`
}

// Catalog is an immutable set of templates keyed by kind.
type Catalog struct {
	templates map[Kind]Template
}

// NewCatalog builds a catalog from templates. Later duplicates replace
// earlier ones. Templates without a kind are rejected.
func NewCatalog(templates ...Template) (Catalog, error) {
	c := Catalog{templates: make(map[Kind]Template, len(templates))}
	for _, t := range templates {
		if strings.TrimSpace(string(t.Kind)) == "" {
			return Catalog{}, fmt.Errorf("template without kind: %q", t.Description)
		}
		t.Placeholders = append([]string(nil), t.Placeholders...)
		if len(t.Placeholders) == 0 {
			t.Placeholders = Placeholders(t.Body)
		}
		c.templates[t.Kind] = t
	}
	return c, nil
}

// Lookup returns a copy of the template for kind.
func (c Catalog) Lookup(kind Kind) (Template, bool) {
	t, ok := c.templates[kind]
	if !ok {
		return Template{}, false
	}
	t.Placeholders = append([]string(nil), t.Placeholders...)
	return t, true
}

// Kinds returns the catalog's kinds in sorted order.
func (c Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.templates))
	for k := range c.templates {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Len returns the number of templates.
func (c Catalog) Len() int {
	return len(c.templates)
}

var (
	tokenRE     = regexp.MustCompile(`\{([^{}]*)\}`)
	strayBraces = strings.NewReplacer("{", "", "}", "")
)

// Placeholders lists the distinct {name} tokens in body in order of first use.
func Placeholders(body string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range tokenRE.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Engine renders templates from a fixed catalog.
type Engine struct {
	catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// Render fills the template for kind with values.
//
// Each {name} token is replaced by values[name], or by "" when the name is
// absent. Substitution is a single pass, so values are never re-scanned. Any
// {...} token that survives, and any stray brace, is then removed: the
// output never contains "{" or "}".
func (e *Engine) Render(kind Kind, values map[string]string) (string, error) {
	t, ok := e.catalog.templates[kind]
	if !ok {
		return "", fmt.Errorf("render %q: %w", kind, ErrUnknownTemplateKind)
	}
	out := tokenRE.ReplaceAllStringFunc(t.Body, func(tok string) string {
		return values[tok[1:len(tok)-1]]
	})
	out = tokenRE.ReplaceAllString(out, "")
	return strayBraces.Replace(out), nil
}

// System returns the system prompt for kind.
func (e *Engine) System(kind Kind) (string, error) {
	t, ok := e.catalog.templates[kind]
	if !ok {
		return "", fmt.Errorf("system prompt %q: %w", kind, ErrUnknownTemplateKind)
	}
	if t.System == "" {
		return defaultSystemPrompt, nil
	}
	return t.System, nil
}

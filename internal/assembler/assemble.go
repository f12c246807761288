// Package assembler turns raw model completions into typed OneSheet records.
//
// Every assembler is a pure function of its input. Text that does not match
// the expected shape yields fewer records, or none; it is never an error.
// Records get a fresh id when they are built.
package assembler

import (
	"fmt"

	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
)

// Assemble runs the assembler for kind over raw. Only an unknown kind is an
// error.
func Assemble(kind prompt.Kind, raw string) (Result, error) {
	r := NewResult(kind)
	switch kind {
	case prompt.KindAngles:
		r.Angles = Angles(raw)
	case prompt.KindPersonas:
		r.Personas = Personas(raw)
	case prompt.KindBenefits, prompt.KindPainPoints, prompt.KindFeatures,
		prompt.KindObjections, prompt.KindFailedSolutions:
		r.Bundle = BundleFor(kind, raw)
	case prompt.KindHeadlines:
		r.Headlines = Headlines(raw)
	case prompt.KindVisualIdeas:
		r.VisualIdeas = VisualIdeas(raw)
	case prompt.KindOneLiners, prompt.KindCompetitorGap, prompt.KindProblemSolution:
		r.Items = List(raw)
	default:
		return Result{}, fmt.Errorf("assemble %q: %w", kind, prompt.ErrUnknownTemplateKind)
	}
	return r, nil
}

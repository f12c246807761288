package extractor

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
)

// GenerationRequest asks for one completion of a template.
type GenerationRequest struct {
	Kind   prompt.Kind       `json:"kind"`
	Values map[string]string `json:"values"`
}

// GenerationResult holds everything about one generation: the prompt sent,
// the raw completion and the records assembled from it.
type GenerationResult struct {
	ID        uuid.UUID         `json:"id"`
	Kind      prompt.Kind       `json:"kind"`
	Values    map[string]string `json:"values"`
	Prompt    string            `json:"prompt"`
	Raw       string            `json:"raw"`
	Result    assembler.Result  `json:"result"`
	Model     string            `json:"model"`
	CreatedAt time.Time         `json:"created_at"`
}

package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/llm"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
)

// ErrNoLLM is returned by Generate when no model client is configured.
var ErrNoLLM = errors.New("no llm configured")

const (
	defaultMaxTokens = 4096
	defaultTimeout   = 120 * time.Second
)

type Options struct {
	MaxTokens int
	Timeout   time.Duration
}

type Extractor struct {
	llm       llm.Client
	engine    *prompt.Engine
	logger    *slog.Logger
	maxTokens int
	timeout   time.Duration
}

// New builds an extractor. client may be nil, in which case only Parse works.
func New(client llm.Client, engine *prompt.Engine, logger *slog.Logger, opts Options) *Extractor {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Extractor{
		llm:       client,
		engine:    engine,
		logger:    logger,
		maxTokens: opts.MaxTokens,
		timeout:   opts.Timeout,
	}
}

func (e *Extractor) HasLLM() bool {
	return e.llm != nil
}

func (e *Extractor) Engine() *prompt.Engine {
	return e.engine
}

// Generate renders the prompt for req, sends it to the model and assembles
// the completion.
func (e *Extractor) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if e.llm == nil {
		return nil, ErrNoLLM
	}

	userPrompt, err := e.engine.Render(req.Kind, req.Values)
	if err != nil {
		return nil, err
	}
	system, err := e.engine.System(req.Kind)
	if err != nil {
		return nil, err
	}

	e.logger.Info("generating",
		"kind", req.Kind,
		"model", e.llm.Model(),
		"prompt_len", len(userPrompt),
	)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.llm.Complete(ctx, system, []llm.Message{llm.User(userPrompt)}, e.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	result, err := e.Parse(req.Kind, raw)
	if err != nil {
		return nil, err
	}

	return &GenerationResult{
		ID:        uuid.New(),
		Kind:      req.Kind,
		Values:    req.Values,
		Prompt:    userPrompt,
		Raw:       raw,
		Result:    result,
		Model:     e.llm.Model(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Parse assembles a completion that was produced elsewhere. Kinds that are
// in the catalog but have no dedicated assembler are read as plain lists.
func (e *Extractor) Parse(kind prompt.Kind, raw string) (assembler.Result, error) {
	result, err := assembler.Assemble(kind, raw)
	if err != nil {
		if _, ok := e.engine.Catalog().Lookup(kind); !ok {
			return assembler.Result{}, err
		}
		result = assembler.NewResult(kind)
		result.Items = assembler.List(raw)
	}

	if result.Degraded() {
		e.logger.Info("no records extracted",
			"kind", kind,
			"raw_len", len(raw),
		)
		return result, nil
	}

	e.logger.Info("extraction complete",
		"kind", kind,
		"records", result.Count(),
	)
	return result, nil
}

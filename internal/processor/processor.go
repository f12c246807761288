package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
	"github.com/MikeSquared-Agency/onesheet/internal/hermes"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
	"github.com/MikeSquared-Agency/onesheet/internal/slack"
)

// Generator produces one generation. Satisfied by *extractor.Extractor.
type Generator interface {
	Generate(ctx context.Context, req extractor.GenerationRequest) (*extractor.GenerationResult, error)
}

// GenerationStore persists generations. Satisfied by *store.Store.
type GenerationStore interface {
	WriteGeneration(ctx context.Context, ownerUUID uuid.UUID, g *extractor.GenerationResult) (uuid.UUID, error)
}

// Publisher emits generation outcomes. Satisfied by *hermes.Client.
type Publisher interface {
	PublishCompleted(evt hermes.GenerationCompleted) error
	PublishFailed(evt hermes.GenerationFailed) error
}

// SummaryPoster posts generation summaries. Satisfied by *slack.Poster.
type SummaryPoster interface {
	PostGenerationSummary(ctx context.Context, g *extractor.GenerationResult) (string, error)
	PostThread(ctx context.Context, threadTS, text string) error
}

// Processor runs the event-driven generation pipeline: generate, persist,
// post to Slack and announce the outcome. Store and Slack are optional.
type Processor struct {
	generator Generator
	store     GenerationStore
	hermes    Publisher
	slack     SummaryPoster
	logger    *slog.Logger

	mu     sync.Mutex
	posted map[string]hermes.GenerateRequested // keyed by Slack summary TS
}

// New builds a processor. store and sl may be nil; pass untyped nils, not
// nil pointers wrapped in the interfaces.
func New(gen Generator, store GenerationStore, h Publisher, sl SummaryPoster, logger *slog.Logger) *Processor {
	return &Processor{
		generator: gen,
		store:     store,
		hermes:    h,
		slack:     sl,
		logger:    logger,
		posted:    make(map[string]hermes.GenerateRequested),
	}
}

// HandleGenerateRequested is the NATS handler for onesheet.generate.requested.
func (p *Processor) HandleGenerateRequested(subject string, data []byte) {
	var evt hermes.GenerateRequested
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse generate request", "subject", subject, "error", err)
		return
	}
	p.run(context.Background(), evt)
}

// HandleReaction is the NATS handler for Slack reactions. A regenerate
// reaction on a posted summary re-runs the request behind it.
func (p *Processor) HandleReaction(subject string, data []byte) {
	ctx := context.Background()

	evt, err := slack.ParseReactionEvent(data, p.logger)
	if err != nil {
		p.logger.Error("failed to parse reaction", "error", err)
		return
	}
	if slack.ParseReaction(evt.Reaction) != slack.ActionRegenerate {
		return
	}

	p.mu.Lock()
	req, ok := p.posted[evt.MessageTS]
	if ok {
		delete(p.posted, evt.MessageTS)
	}
	p.mu.Unlock()
	if !ok {
		return // not a summary we posted
	}

	p.logger.Info("regenerating from reaction",
		"reaction", evt.Reaction,
		"request_id", req.RequestID,
		"kind", req.Kind,
	)
	if p.slack != nil {
		if err := p.slack.PostThread(ctx, evt.MessageTS, "Regenerating..."); err != nil {
			p.logger.Error("failed to post regenerate thread", "error", err)
		}
	}
	p.run(ctx, req)
}

func (p *Processor) run(ctx context.Context, evt hermes.GenerateRequested) {
	ownerUUID := uuid.Nil
	if evt.OwnerUUID != "" {
		id, err := uuid.Parse(evt.OwnerUUID)
		if err != nil {
			p.fail(evt, fmt.Errorf("invalid owner uuid %q: %w", evt.OwnerUUID, err))
			return
		}
		ownerUUID = id
	}

	p.logger.Info("processing generate request",
		"request_id", evt.RequestID,
		"kind", evt.Kind,
		"owner", evt.OwnerUUID,
	)

	g, err := p.generator.Generate(ctx, extractor.GenerationRequest{
		Kind:   prompt.ParseKind(evt.Kind),
		Values: evt.Values,
	})
	if err != nil {
		p.fail(evt, err)
		return
	}

	generationID := g.ID
	if p.store != nil {
		id, err := p.store.WriteGeneration(ctx, ownerUUID, g)
		if err != nil {
			p.logger.Error("persistence failed", "request_id", evt.RequestID, "error", err)
		} else {
			generationID = id
		}
	}

	if p.slack != nil {
		ts, err := p.slack.PostGenerationSummary(ctx, g)
		if err != nil {
			p.logger.Error("slack post failed", "error", err)
		} else {
			p.mu.Lock()
			p.posted[ts] = evt
			p.mu.Unlock()
		}
	}

	if err := p.hermes.PublishCompleted(hermes.GenerationCompleted{
		RequestID:    evt.RequestID,
		GenerationID: generationID.String(),
		Kind:         evt.Kind,
		Count:        g.Result.Count(),
		Degraded:     g.Result.Degraded(),
		Timestamp:    time.Now().UTC(),
	}); err != nil {
		p.logger.Error("failed to publish generation completed", "error", err)
	}

	p.logger.Info("generate request processed",
		"request_id", evt.RequestID,
		"generation_id", generationID,
		"records", g.Result.Count(),
	)
}

func (p *Processor) fail(evt hermes.GenerateRequested, err error) {
	p.logger.Error("generation failed", "request_id", evt.RequestID, "kind", evt.Kind, "error", err)
	if perr := p.hermes.PublishFailed(hermes.GenerationFailed{
		RequestID: evt.RequestID,
		Kind:      evt.Kind,
		Error:     err.Error(),
	}); perr != nil {
		p.logger.Error("failed to publish generation failed", "error", perr)
	}
}

package slack

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/document"
	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
)

// maxSummaryItems caps the records listed in one summary message.
const maxSummaryItems = 10

type Poster struct {
	client  *slackapi.Client
	channel string
	logger  *slog.Logger
}

// NewPoster builds a poster for channel. opts are passed to the Slack client
// (tests point it at a local server with slackapi.OptionAPIURL).
func NewPoster(token, channel string, logger *slog.Logger, opts ...slackapi.Option) *Poster {
	opts = append([]slackapi.Option{
		slackapi.OptionHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	}, opts...)
	return &Poster{
		client:  slackapi.New(token, opts...),
		channel: channel,
		logger:  logger,
	}
}

// PostGenerationSummary posts a short summary of a generation to the
// configured channel. Returns the message timestamp (ts), which is how
// reactions on the summary are traced back to the generation.
func (p *Poster) PostGenerationSummary(ctx context.Context, g *extractor.GenerationResult) (string, error) {
	text := formatSummary(g)

	_, ts, err := p.client.PostMessageContext(ctx, p.channel,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionBlocks(
			slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, text, false, false), nil, nil),
			slackapi.NewContextBlock("",
				slackapi.NewTextBlockObject(slackapi.MarkdownType, "React :repeat: to regenerate", false, false),
			),
		),
	)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}

	p.logger.Info("posted generation summary to slack", "ts", ts, "kind", g.Kind, "generation_id", g.ID)
	return ts, nil
}

// PostThread posts a threaded reply to a message.
func (p *Poster) PostThread(ctx context.Context, threadTS, text string) error {
	_, _, err := p.client.PostMessageContext(ctx, p.channel,
		slackapi.MsgOptionText(text, false),
		slackapi.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("slack thread reply: %w", err)
	}
	return nil
}

func formatSummary(g *extractor.GenerationResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*%s*", document.SectionTitle(g.Kind))
	if name := g.Values["productName"]; name != "" {
		fmt.Fprintf(&sb, " for %s", name)
	}
	if g.Model != "" {
		fmt.Fprintf(&sb, " (%s)", g.Model)
	}
	sb.WriteString("\n\n")

	if g.Result.Degraded() {
		fmt.Fprintf(&sb, "_%s_", document.EmptyMessage)
		return sb.String()
	}

	records := g.Result.Records()
	fmt.Fprintf(&sb, "*Items generated: %d*\n", len(records))
	for i, rec := range records {
		if i == maxSummaryItems {
			fmt.Fprintf(&sb, "_and %d more_\n", len(records)-maxSummaryItems)
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, recordText(rec))
	}
	return sb.String()
}

// recordText is the one-line label of a record.
func recordText(rec assembler.Record) string {
	switch v := rec.Value.(type) {
	case assembler.Angle:
		return v.Title
	case assembler.Persona:
		if v.AwarenessLevel != "" {
			return fmt.Sprintf("%s [%s]", v.Title, v.AwarenessLevel)
		}
		return v.Title
	case assembler.BundleItem:
		return fmt.Sprintf("[%s] %s", rec.Type, v.Text)
	case assembler.Headline:
		return v.Headline
	case assembler.VisualIdea:
		return v.BenefitOrPainPoint
	case assembler.ListItem:
		return v.Text
	default:
		return rec.Type
	}
}

package slack

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// ReactionEvent is the structure received from slack-forwarder via NATS.
type ReactionEvent struct {
	Reaction  string `json:"reaction"`
	UserID    string `json:"user_id"`
	Channel   string `json:"channel"`
	MessageTS string `json:"message_ts"`
}

// Action is what a reaction on a generation summary asks for.
type Action string

const (
	ActionRegenerate Action = "regenerate"
	ActionNone       Action = "none"
)

// ParseReaction converts a Slack reaction emoji name to an action.
func ParseReaction(reaction string) Action {
	switch reaction {
	case "repeat", "arrows_counterclockwise", "-1", "thumbsdown":
		return ActionRegenerate
	default:
		return ActionNone
	}
}

// ParseReactionEvent parses a NATS message payload from slack-forwarder into a ReactionEvent.
func ParseReactionEvent(data []byte, logger *slog.Logger) (*ReactionEvent, error) {
	var wrapper struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse reaction wrapper: %w", err)
	}

	evt := &ReactionEvent{
		Reaction:  wrapper.Metadata["text"],
		UserID:    wrapper.Metadata["user_id"],
		Channel:   wrapper.Metadata["channel_id"],
		MessageTS: wrapper.Metadata["message_ts"],
	}

	// Clean reaction text (remove colons if present)
	if len(evt.Reaction) > 2 && evt.Reaction[0] == ':' && evt.Reaction[len(evt.Reaction)-1] == ':' {
		evt.Reaction = evt.Reaction[1 : len(evt.Reaction)-1]
	}
	if evt.MessageTS == "" {
		logger.Debug("reaction without message_ts", "reaction", evt.Reaction)
	}

	return evt, nil
}

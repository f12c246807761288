package hermes

import (
	"fmt"
	"time"
)

// Subjects used by the onesheet agent.
const (
	SubjectGenerateRequested   = "onesheet.generate.requested"
	SubjectGenerationCompleted = "onesheet.generation.completed"
	SubjectGenerationFailed    = "onesheet.generation.failed"
	SubjectRegistered          = "swarm.agent.onesheet.registered"

	// SubjectSlackReaction carries reactions forwarded from Slack.
	SubjectSlackReaction = "swarm.slack.reaction"
)

// GenerateRequested asks the agent to render, complete and extract one
// template kind.
type GenerateRequested struct {
	RequestID string            `json:"request_id"`
	Kind      string            `json:"kind"`
	Values    map[string]string `json:"values"`
	OwnerUUID string            `json:"owner_uuid,omitempty"`
}

type GenerationCompleted struct {
	RequestID    string    `json:"request_id"`
	GenerationID string    `json:"generation_id"`
	Kind         string    `json:"kind"`
	Count        int       `json:"count"`
	Degraded     bool      `json:"degraded"`
	Timestamp    time.Time `json:"timestamp"`
}

type GenerationFailed struct {
	RequestID string `json:"request_id"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// Registered is announced once on start-up.
type Registered struct {
	Timestamp string `json:"timestamp"`
	Port      int    `json:"port"`
	Mode      string `json:"mode"`
	Templates int    `json:"templates"`
}

// PublishCompleted announces a finished generation. A zero Timestamp is set
// to now.
func (c *Client) PublishCompleted(evt GenerationCompleted) error {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	return c.Publish(SubjectGenerationCompleted, evt)
}

// PublishFailed announces a generation that produced no result.
func (c *Client) PublishFailed(evt GenerationFailed) error {
	if evt.Error == "" {
		return fmt.Errorf("generation failed event for %q has no error", evt.RequestID)
	}
	return c.Publish(SubjectGenerationFailed, evt)
}

func (c *Client) PublishRegistered(evt Registered) error {
	return c.Publish(SubjectRegistered, evt)
}

package processor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
	"github.com/MikeSquared-Agency/onesheet/internal/hermes"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGenerator struct {
	raw   string
	err   error
	calls []extractor.GenerationRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req extractor.GenerationRequest) (*extractor.GenerationResult, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	result, err := assembler.Assemble(req.Kind, f.raw)
	if err != nil {
		return nil, err
	}
	return &extractor.GenerationResult{
		ID:     uuid.New(),
		Kind:   req.Kind,
		Values: req.Values,
		Raw:    f.raw,
		Result: result,
		Model:  "fake",
	}, nil
}

type fakeStore struct {
	id     uuid.UUID
	err    error
	owners []uuid.UUID
}

func (f *fakeStore) WriteGeneration(_ context.Context, ownerUUID uuid.UUID, _ *extractor.GenerationResult) (uuid.UUID, error) {
	f.owners = append(f.owners, ownerUUID)
	return f.id, f.err
}

type published struct {
	subject string
	data    any
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (f *fakePublisher) record(subject string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{subject, data})
	return nil
}

func (f *fakePublisher) PublishCompleted(evt hermes.GenerationCompleted) error {
	return f.record(hermes.SubjectGenerationCompleted, evt)
}

func (f *fakePublisher) PublishFailed(evt hermes.GenerationFailed) error {
	return f.record(hermes.SubjectGenerationFailed, evt)
}

type fakePoster struct {
	ts      string
	err     error
	posts   int
	threads []string
}

func (f *fakePoster) PostGenerationSummary(context.Context, *extractor.GenerationResult) (string, error) {
	f.posts++
	return f.ts, f.err
}

func (f *fakePoster) PostThread(_ context.Context, threadTS, _ string) error {
	f.threads = append(f.threads, threadTS)
	return nil
}

func request(t *testing.T, evt hermes.GenerateRequested) []byte {
	t.Helper()
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestHandleGenerateRequested_Completed(t *testing.T) {
	gen := &fakeGenerator{raw: "1. Save time\nCook less.\n2. Feel lighter"}
	st := &fakeStore{id: uuid.New()}
	pub := &fakePublisher{}
	poster := &fakePoster{ts: "111.222"}
	owner := uuid.New()

	p := New(gen, st, pub, poster, discardLogger())
	p.HandleGenerateRequested(hermes.SubjectGenerateRequested, request(t, hermes.GenerateRequested{
		RequestID: "req-1",
		Kind:      "angles",
		Values:    map[string]string{"productName": "Greens"},
		OwnerUUID: owner.String(),
	}))

	if len(gen.calls) != 1 || gen.calls[0].Kind != prompt.KindAngles {
		t.Fatalf("expected one angles generation, got %+v", gen.calls)
	}
	if len(st.owners) != 1 || st.owners[0] != owner {
		t.Errorf("expected generation persisted for owner %s, got %v", owner, st.owners)
	}
	if poster.posts != 1 {
		t.Errorf("expected one slack post, got %d", poster.posts)
	}
	if len(pub.msgs) != 1 || pub.msgs[0].subject != hermes.SubjectGenerationCompleted {
		t.Fatalf("expected completed event, got %+v", pub.msgs)
	}
	done := pub.msgs[0].data.(hermes.GenerationCompleted)
	if done.RequestID != "req-1" || done.GenerationID != st.id.String() {
		t.Errorf("unexpected completed event: %+v", done)
	}
	if done.Count != 2 || done.Degraded {
		t.Errorf("expected 2 records, not degraded, got %+v", done)
	}
}

func TestHandleGenerateRequested_DegradedIsNotFailure(t *testing.T) {
	gen := &fakeGenerator{raw: "I cannot help with that."}
	pub := &fakePublisher{}

	p := New(gen, nil, pub, nil, discardLogger())
	p.HandleGenerateRequested(hermes.SubjectGenerateRequested, request(t, hermes.GenerateRequested{
		RequestID: "req-2",
		Kind:      "headlines",
	}))

	if len(pub.msgs) != 1 || pub.msgs[0].subject != hermes.SubjectGenerationCompleted {
		t.Fatalf("expected completed event, got %+v", pub.msgs)
	}
	done := pub.msgs[0].data.(hermes.GenerationCompleted)
	if !done.Degraded || done.Count != 0 {
		t.Errorf("expected degraded result, got %+v", done)
	}
}

func TestHandleGenerateRequested_Failed(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		evt  hermes.GenerateRequested
	}{
		{
			name: "upstream error",
			gen:  &fakeGenerator{err: errors.New("llm completion: api error 529")},
			evt:  hermes.GenerateRequested{RequestID: "r", Kind: "angles"},
		},
		{
			name: "unknown kind",
			gen:  &fakeGenerator{err: prompt.ErrUnknownTemplateKind},
			evt:  hermes.GenerateRequested{RequestID: "r", Kind: "slogans"},
		},
		{
			name: "invalid owner",
			gen:  &fakeGenerator{},
			evt:  hermes.GenerateRequested{RequestID: "r", Kind: "angles", OwnerUUID: "not-a-uuid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &fakeStore{}
			pub := &fakePublisher{}
			poster := &fakePoster{}

			p := New(tt.gen, st, pub, poster, discardLogger())
			p.HandleGenerateRequested(hermes.SubjectGenerateRequested, request(t, tt.evt))

			if len(pub.msgs) != 1 || pub.msgs[0].subject != hermes.SubjectGenerationFailed {
				t.Fatalf("expected failed event, got %+v", pub.msgs)
			}
			failed := pub.msgs[0].data.(hermes.GenerationFailed)
			if failed.RequestID != "r" || failed.Error == "" {
				t.Errorf("unexpected failed event: %+v", failed)
			}
			if len(st.owners) != 0 || poster.posts != 0 {
				t.Error("expected nothing persisted or posted on failure")
			}
		})
	}
}

func TestHandleGenerateRequested_StoreErrorKeepsResult(t *testing.T) {
	gen := &fakeGenerator{raw: "- one\n- two"}
	st := &fakeStore{err: errors.New("connection refused")}
	pub := &fakePublisher{}

	p := New(gen, st, pub, nil, discardLogger())
	p.HandleGenerateRequested(hermes.SubjectGenerateRequested, request(t, hermes.GenerateRequested{
		RequestID: "req-3",
		Kind:      "one_liners",
	}))

	if len(pub.msgs) != 1 || pub.msgs[0].subject != hermes.SubjectGenerationCompleted {
		t.Fatalf("expected completed event despite store error, got %+v", pub.msgs)
	}
	done := pub.msgs[0].data.(hermes.GenerationCompleted)
	if done.GenerationID == uuid.Nil.String() || done.Count != 2 {
		t.Errorf("unexpected completed event: %+v", done)
	}
}

func TestHandleGenerateRequested_InvalidPayload(t *testing.T) {
	gen := &fakeGenerator{}
	pub := &fakePublisher{}

	p := New(gen, nil, pub, nil, discardLogger())
	p.HandleGenerateRequested(hermes.SubjectGenerateRequested, []byte("not json"))

	if len(gen.calls) != 0 || len(pub.msgs) != 0 {
		t.Error("expected invalid payload to be dropped")
	}
}

func reaction(t *testing.T, emoji, ts string) []byte {
	t.Helper()
	data, _ := json.Marshal(map[string]any{
		"metadata": map[string]string{
			"text":       ":" + emoji + ":",
			"user_id":    "U1",
			"channel_id": "C1",
			"message_ts": ts,
		},
	})
	return data
}

func TestHandleReaction_Regenerates(t *testing.T) {
	gen := &fakeGenerator{raw: "- one"}
	pub := &fakePublisher{}
	poster := &fakePoster{ts: "111.222"}

	p := New(gen, nil, pub, poster, discardLogger())
	p.HandleGenerateRequested(hermes.SubjectGenerateRequested, request(t, hermes.GenerateRequested{
		RequestID: "req-4",
		Kind:      "one_liners",
		Values:    map[string]string{"productName": "Greens"},
	}))

	p.HandleReaction(hermes.SubjectSlackReaction, reaction(t, "repeat", "111.222"))

	if len(gen.calls) != 2 {
		t.Fatalf("expected regeneration, got %d calls", len(gen.calls))
	}
	if gen.calls[1].Values["productName"] != "Greens" {
		t.Errorf("expected original values on regeneration, got %v", gen.calls[1].Values)
	}
	if len(poster.threads) != 1 || poster.threads[0] != "111.222" {
		t.Errorf("expected thread reply on the summary, got %v", poster.threads)
	}
	if len(pub.msgs) != 2 {
		t.Errorf("expected two completed events, got %d", len(pub.msgs))
	}
}

func TestHandleReaction_Ignored(t *testing.T) {
	tests := []struct {
		name  string
		emoji string
		ts    string
	}{
		{"not a regenerate reaction", "heart", "111.222"},
		{"untracked message", "repeat", "999.999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{raw: "- one"}
			poster := &fakePoster{ts: "111.222"}

			p := New(gen, nil, &fakePublisher{}, poster, discardLogger())
			p.HandleGenerateRequested(hermes.SubjectGenerateRequested, request(t, hermes.GenerateRequested{
				RequestID: "req-5",
				Kind:      "one_liners",
			}))
			p.HandleReaction(hermes.SubjectSlackReaction, reaction(t, tt.emoji, tt.ts))

			if len(gen.calls) != 1 {
				t.Errorf("expected no regeneration, got %d calls", len(gen.calls))
			}
			if len(poster.threads) != 0 {
				t.Errorf("expected no thread reply, got %v", poster.threads)
			}
		})
	}
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
)

// ErrNotFound is returned when a generation does not exist.
var ErrNotFound = errors.New("not found")

// WriteGeneration stores a generation and its records in one transaction.
// Records are written in document order. ownerUUID may be uuid.Nil.
func (s *Store) WriteGeneration(ctx context.Context, ownerUUID uuid.UUID, g *extractor.GenerationResult) (uuid.UUID, error) {
	values, err := json.Marshal(valuesOrEmpty(g.Values))
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal values: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	id := g.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := g.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	records := g.Result.Records()
	_, err = tx.Exec(ctx, `
		INSERT INTO onesheet_generations (id, kind, owner_uuid, request_values, raw_completion, model, record_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, string(g.Kind), nullableUUID(ownerUUID), values, g.Raw, g.Model, len(records), createdAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert generation: %w", err)
	}

	for i, rec := range records {
		payload, err := json.Marshal(rec.Value)
		if err != nil {
			return uuid.Nil, fmt.Errorf("marshal %s record: %w", rec.Type, err)
		}
		recID, err := uuid.Parse(rec.ID)
		if err != nil {
			recID = uuid.New()
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO onesheet_records (id, generation_id, kind, position, payload)
			VALUES ($1, $2, $3, $4, $5)`,
			recID, id, rec.Type, i+1, payload,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

type GenerationRow struct {
	ID          uuid.UUID         `json:"id"`
	Kind        string            `json:"kind"`
	OwnerUUID   uuid.UUID         `json:"owner_uuid"`
	Values      map[string]string `json:"values"`
	Raw         string            `json:"raw"`
	Model       string            `json:"model"`
	RecordCount int               `json:"record_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// GetGeneration fetches a generation by ID.
func (s *Store) GetGeneration(ctx context.Context, id uuid.UUID) (*GenerationRow, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, kind, owner_uuid, request_values, raw_completion, model, record_count, created_at
		FROM onesheet_generations WHERE id = $1`, id)

	var g GenerationRow
	var owner *uuid.UUID
	var values []byte
	err := row.Scan(&g.ID, &g.Kind, &owner, &values, &g.Raw, &g.Model, &g.RecordCount, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get generation: %w", err)
	}
	if owner != nil {
		g.OwnerUUID = *owner
	}
	g.Values = map[string]string{}
	if err := json.Unmarshal(values, &g.Values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return &g, nil
}

type RecordRow struct {
	ID           uuid.UUID       `json:"id"`
	GenerationID uuid.UUID       `json:"generation_id"`
	Kind         string          `json:"kind"`
	Position     int             `json:"position"`
	Payload      json.RawMessage `json:"payload"`
}

// ListRecords returns a generation's records ordered by position.
func (s *Store) ListRecords(ctx context.Context, generationID uuid.UUID) ([]RecordRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, generation_id, kind, position, payload
		FROM onesheet_records WHERE generation_id = $1
		ORDER BY position`, generationID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []RecordRow{}
	for rows.Next() {
		var r RecordRow
		var payload []byte
		if err := rows.Scan(&r.ID, &r.GenerationID, &r.Kind, &r.Position, &payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Payload = json.RawMessage(payload)
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func valuesOrEmpty(v map[string]string) map[string]string {
	if v == nil {
		return map[string]string{}
	}
	return v
}

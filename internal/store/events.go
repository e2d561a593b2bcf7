package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMEventData is one provider request as recorded by the logging
// middleware.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded event with its row identity.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMEventData
}

// EventRecorder is the write-side interface the llm logging middleware
// needs. *Store satisfies it.
type EventRecorder interface {
	AppendLLMEvent(ctx context.Context, data LLMEventData) error
}

// AppendLLMEvent inserts one event row.
func (s *Store) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO llm_events
		(created_at, provider, model, purpose, input_tokens, output_tokens,
		 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

// RecentLLMEvents returns up to limit events, newest first.
func (s *Store) RecentLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, created_at, provider, model, purpose, input_tokens, output_tokens,
		latency_ms, success, error_message, request_body, response_body
		FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLLMEvent returns the event with the given id, or nil when absent.
func (s *Store) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, created_at, provider, model, purpose, input_tokens, output_tokens,
		latency_ms, success, error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	e, err := scanLLMEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// UsageByPurpose aggregates all recorded events by purpose.
func (s *Store) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// UsageByModel aggregates all recorded events by served model.
func (s *Store) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		FROM llm_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dst ...any) error
}

func scanLLMEvent(r rowScanner) (LLMEvent, error) {
	var e LLMEvent
	var createdAt int64
	var success int
	err := r.Scan(&e.ID, &createdAt, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		return LLMEvent{}, err
	}
	e.Timestamp = time.Unix(createdAt, 0)
	e.Success = success != 0
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

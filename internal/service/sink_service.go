package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"intervox/internal/model"
)

const (
	saveEvaluationPath = "/save_evaluation"
	sinkTimeout        = 10 * time.Second
)

// SinkService persists scored answers to the backend, best-effort.
// Persist returns an error so the caller can log what was lost, but the
// caller is expected to discard it: persistence failure never alters
// the interview flow.
type SinkService struct {
	backendHost string
	client      *http.Client
}

// NewSinkService creates a sink posting to backendHost. An empty host
// disables persistence entirely.
func NewSinkService(backendHost string) *SinkService {
	return &SinkService{
		backendHost: backendHost,
		client: &http.Client{
			Timeout: sinkTimeout,
		},
	}
}

// savePayload is the wire body for one persisted evaluation.
type savePayload struct {
	Room         string         `json:"room"`
	QuestionID   int            `json:"question_id"`
	QuestionText string         `json:"question_text"`
	AnswerText   string         `json:"answer_text"`
	Scores       map[string]int `json:"scores"`
	Rationale    string         `json:"rationale"`
}

// Persist sends one scored answer to the backend. When no backend host
// is configured the call is a no-op, not an error.
func (s *SinkService) Persist(ctx context.Context, room string, scored *model.ScoredAnswer) error {
	if s.backendHost == "" {
		return nil
	}

	body, err := json.Marshal(savePayload{
		Room:         room,
		QuestionID:   scored.QuestionID,
		QuestionText: scored.QuestionText,
		AnswerText:   scored.AnswerText,
		Scores:       scored.Scores,
		Rationale:    scored.Rationale,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.backendHost+saveEvaluationPath, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sink returned status %d", resp.StatusCode)
	}
	return nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"intervox/internal/config"
	"intervox/internal/model"
)

// EvaluatorService scores accepted answers against the session's skill
// rubric by calling the external scoring oracle. Every failure path
// degrades to a valid fallback result; Evaluate never returns an error.
type EvaluatorService struct {
	config *config.OracleConfig
	client *http.Client
	log    *slog.Logger
}

// NewEvaluatorService creates a new evaluator service.
func NewEvaluatorService(cfg *config.OracleConfig) *EvaluatorService {
	return &EvaluatorService{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: slog.With("component", "evaluator"),
	}
}

// oracleResult mirrors the JSON object the oracle is instructed to
// return and nothing else.
type oracleResult struct {
	Scores    map[string]int `json:"scores"`
	Rationale string         `json:"rationale"`
}

// Evaluate scores one accepted answer. When the oracle is not
// configured it returns an empty-scores result noting the missing
// configuration; when the oracle call or parse fails it returns the raw
// response text as the rationale, preserving evidence instead of
// discarding it.
func (s *EvaluatorService) Evaluate(ctx context.Context, role, jd, question, answer string, questionID int) *model.ScoredAnswer {
	scored := &model.ScoredAnswer{
		QuestionID:   questionID,
		QuestionText: question,
		AnswerText:   answer,
		Scores:       map[string]int{},
	}

	if !s.config.IsEnabled() {
		scored.Rationale = "LLM_EVAL_URL not configured (demo fallback)"
		return scored
	}

	prompt := s.buildEvaluationPrompt(role, jd, question, answer)
	raw, err := s.callOracle(ctx, prompt)
	if err != nil {
		s.log.Warn("oracle call failed, saving raw text", "question", questionID, "error", err)
		scored.Rationale = raw
		return scored
	}

	var result oracleResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.Warn("oracle response parse failed, saving raw text", "question", questionID, "error", err)
		scored.Rationale = raw
		return scored
	}

	if result.Scores != nil {
		scored.Scores = result.Scores
	}
	scored.Rationale = result.Rationale
	return scored
}

// callOracle posts the evaluation prompt and returns the response body.
// The body is returned even on error so callers can preserve it.
func (s *EvaluatorService) callOracle(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (s *EvaluatorService) buildEvaluationPrompt(role, jd, question, answer string) string {
	return fmt.Sprintf(`Please evaluate the following candidate answer for role: %s

Job description: %s

Question: %s

Answer: %s

Return a JSON object ONLY with: {"scores": {<skill_name>:1-5,...}, "rationale":"brief text"}.`,
		role, jd, question, answer)
}

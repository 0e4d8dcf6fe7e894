package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"intervox/internal/model"
	"intervox/internal/repository"
)

// EvaluationHandler stores and lists scored answers. Save is the target
// of the evaluation sink; List is the retrieval boundary.
type EvaluationHandler struct {
	repo repository.EvaluationRepo
}

// NewEvaluationHandler creates a new evaluation handler.
func NewEvaluationHandler(repo repository.EvaluationRepo) *EvaluationHandler {
	return &EvaluationHandler{repo: repo}
}

// SaveEvaluationRequest is the wire body posted by the sink.
type SaveEvaluationRequest struct {
	Room         string         `json:"room"`
	QuestionID   int            `json:"question_id"`
	QuestionText string         `json:"question_text"`
	AnswerText   string         `json:"answer_text"`
	Scores       map[string]int `json:"scores"`
	Rationale    string         `json:"rationale"`
}

// Save handles POST /save_evaluation
func (h *EvaluationHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := &model.EvaluationRecord{
		Room:         req.Room,
		QuestionID:   req.QuestionID,
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		Scores:       req.Scores,
		Rationale:    req.Rationale,
	}
	if err := h.repo.Insert(r.Context(), rec); err != nil {
		slog.Warn("failed to store evaluation", "room", req.Room, "question", req.QuestionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store evaluation")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

// List handles GET /v1/evaluations
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		records []*model.EvaluationRecord
		err     error
	)
	if room := r.URL.Query().Get("room"); room != "" {
		records, err = h.repo.ListByRoom(r.Context(), room)
	} else {
		records, err = h.repo.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*model.EvaluationRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"evaluations": records})
}

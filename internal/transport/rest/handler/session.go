package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"intervox/internal/service"
)

// SessionHandler handles session endpoints.
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSessionRequest is the request body for starting an interview.
// Either roleSlug references a seeded role profile, or the role fields
// are supplied inline.
type CreateSessionRequest struct {
	RoleSlug       string   `json:"roleSlug,omitempty"`
	Role           string   `json:"role,omitempty"`
	JobDescription string   `json:"jobDescription,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Identity       string   `json:"identity,omitempty"`
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RoleSlug == "" && req.Role == "" {
		writeError(w, http.StatusBadRequest, "role or roleSlug is required")
		return
	}

	grant, err := h.sessionSvc.CreateSession(r.Context(), service.CreateSessionParams{
		RoleSlug:       req.RoleSlug,
		Role:           req.Role,
		JobDescription: req.JobDescription,
		Skills:         req.Skills,
		Identity:       req.Identity,
	})
	if err != nil {
		if errors.Is(err, service.ErrRoleNotFound) {
			writeError(w, http.StatusNotFound, "role profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, grant)
}

// Get handles GET /v1/sessions/{room}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	room := mux.Vars(r)["room"]

	meta, err := h.sessionSvc.GetSession(r.Context(), room)
	if err != nil {
		if errors.Is(err, service.ErrSessionMissing) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, meta)
}

package handler

import (
	"net/http"

	"intervox/internal/model"
	"intervox/internal/repository"
)

// RoleHandler lists the seeded role profiles.
type RoleHandler struct {
	repo repository.RoleRepo
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(repo repository.RoleRepo) *RoleHandler {
	return &RoleHandler{repo: repo}
}

// List handles GET /v1/roles
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profiles == nil {
		profiles = []*model.RoleProfile{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"roles": profiles})
}

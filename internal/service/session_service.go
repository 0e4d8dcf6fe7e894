package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"intervox/internal/cache"
	"intervox/internal/model"
	"intervox/internal/repository"
)

var (
	ErrRoleNotFound   = errors.New("role profile not found")
	ErrSessionMissing = errors.New("session not found")
)

// SessionService creates interview sessions: it allocates a room,
// stashes the session metadata the dialogue engine is built from, and
// issues the candidate's join token.
type SessionService struct {
	roles       repository.RoleRepo
	sessions    cache.SessionCache
	tokens      *TokenService
	publicURL   string
	backendHost string
}

// NewSessionService creates a new session service.
func NewSessionService(roles repository.RoleRepo, sessions cache.SessionCache, tokens *TokenService, publicURL, backendHost string) *SessionService {
	return &SessionService{
		roles:       roles,
		sessions:    sessions,
		tokens:      tokens,
		publicURL:   publicURL,
		backendHost: backendHost,
	}
}

// CreateSessionParams are the inputs for one interview session. Either
// RoleSlug references a seeded role profile, or Role/JobDescription/
// Skills are supplied inline.
type CreateSessionParams struct {
	RoleSlug       string
	Role           string
	JobDescription string
	Skills         []string
	Identity       string
}

// CreateSession allocates a room, stores its metadata and returns the
// grant the candidate uses to attach.
func (s *SessionService) CreateSession(ctx context.Context, p CreateSessionParams) (*model.SessionGrant, error) {
	role, jd, skills := p.Role, p.JobDescription, p.Skills

	if p.RoleSlug != "" {
		profile, err := s.roles.GetBySlug(ctx, p.RoleSlug)
		if err != nil {
			return nil, fmt.Errorf("failed to load role profile: %w", err)
		}
		if profile == nil {
			return nil, ErrRoleNotFound
		}
		role, jd, skills = profile.Role, profile.JobDescription, profile.Skills
	}

	room := "room_" + uuid.New().String()[:8]
	identity := p.Identity
	if identity == "" {
		identity = "candidate_" + uuid.New().String()[:8]
	}

	meta := &model.SessionMeta{
		Room:           room,
		Role:           role,
		JobDescription: jd,
		Skills:         skills,
		BackendHost:    s.backendHost,
		CreatedAt:      time.Now(),
	}
	if err := s.sessions.Set(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to store session metadata: %w", err)
	}

	token, err := s.tokens.IssueRoomToken(room, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to issue join token: %w", err)
	}

	return &model.SessionGrant{
		Room:  room,
		Token: token,
		URL:   s.publicURL,
	}, nil
}

// GetSession returns the stored metadata for one room.
func (s *SessionService) GetSession(ctx context.Context, room string) (*model.SessionMeta, error) {
	meta, err := s.sessions.Get(ctx, room)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrSessionMissing
	}
	return meta, nil
}

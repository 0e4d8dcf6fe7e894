package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervox/internal/model"
)

func sampleScored() *model.ScoredAnswer {
	return &model.ScoredAnswer{
		QuestionID:   2,
		QuestionText: "ask about deployments",
		AnswerText:   "we shipped with canary releases",
		Scores:       map[string]int{"DevOps": 5},
		Rationale:    "specific and recent",
	}
}

func TestPersistPostsEvaluation(t *testing.T) {
	var gotPath string
	var got savePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSinkService(srv.URL)
	err := s.Persist(context.Background(), "room_ab12", sampleScored())

	require.NoError(t, err)
	assert.Equal(t, "/save_evaluation", gotPath)
	assert.Equal(t, "room_ab12", got.Room)
	assert.Equal(t, 2, got.QuestionID)
	assert.Equal(t, "ask about deployments", got.QuestionText)
	assert.Equal(t, map[string]int{"DevOps": 5}, got.Scores)
	assert.Equal(t, "specific and recent", got.Rationale)
}

func TestPersistNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSinkService(srv.URL)
	err := s.Persist(context.Background(), "room_ab12", sampleScored())

	assert.ErrorContains(t, err, "status 500")
}

func TestPersistUnconfiguredIsNoop(t *testing.T) {
	s := NewSinkService("")
	assert.NoError(t, s.Persist(context.Background(), "room_ab12", sampleScored()))
}

func TestPersistUnreachableBackendIsError(t *testing.T) {
	s := NewSinkService("http://127.0.0.1:1")
	assert.Error(t, s.Persist(context.Background(), "room_ab12", sampleScored()))
}

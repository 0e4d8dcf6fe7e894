package model

import "time"

// Stage is the dialogue controller's position in its fixed state machine.
// Transitions only move forward; Finished is terminal.
type Stage string

const (
	StageIdle            Stage = "idle"
	StageAwaitingConsent Stage = "awaiting_consent"
	StageAsking          Stage = "asking"
	StageFinished        Stage = "finished"
)

// Session is one candidate's end-to-end interview instance.
// Role, JobDescription and Skills are immutable after creation;
// Stage, QuestionCount and LastQuestionText are mutated only by the
// dialogue engine that owns the session.
type Session struct {
	Room             string    `json:"room"`
	Role             string    `json:"role"`
	JobDescription   string    `json:"jd"`
	Skills           []string  `json:"skills"`
	QuestionCount    int       `json:"questionCount"`
	Stage            Stage     `json:"stage"`
	LastQuestionText string    `json:"lastQuestionText,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SessionMeta is the metadata stashed when a session is created and
// consumed by the session host when the candidate attaches. Field names
// match the metadata format the dialogue engine is constructed from.
type SessionMeta struct {
	Room           string    `json:"room"`
	Role           string    `json:"role"`
	JobDescription string    `json:"jd"`
	Skills         []string  `json:"skills"`
	BackendHost    string    `json:"backend_host"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionGrant is returned by session creation: the room identifier,
// a join token for the session host endpoint, and the URL to attach to.
type SessionGrant struct {
	Room  string `json:"room"`
	Token string `json:"token"`
	URL   string `json:"url"`
}

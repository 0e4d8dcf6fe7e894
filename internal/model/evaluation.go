package model

import "time"

// ScoredAnswer is the result of evaluating one accepted answer against
// the session's skill rubric. It is produced by the evaluator, handed
// straight to the sink, and not retained by the controller.
type ScoredAnswer struct {
	QuestionID   int            `json:"question_id"`
	QuestionText string         `json:"question_text"`
	AnswerText   string         `json:"answer_text"`
	Scores       map[string]int `json:"scores"` // skill name -> 1..5
	Rationale    string         `json:"rationale"`
}

// EvaluationRecord is one persisted scored answer.
type EvaluationRecord struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	Room         string         `json:"room" bson:"room"`
	QuestionID   int            `json:"question_id" bson:"questionId"`
	QuestionText string         `json:"question_text" bson:"questionText"`
	AnswerText   string         `json:"answer_text" bson:"answerText"`
	Scores       map[string]int `json:"scores" bson:"scores"`
	Rationale    string         `json:"rationale" bson:"rationale"`
	CreatedAt    time.Time      `json:"created_at" bson:"createdAt"`
}

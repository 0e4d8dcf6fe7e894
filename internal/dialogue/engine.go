// Package dialogue implements the per-session turn-taking controller.
// One engine owns one session; the session host delivers utterances
// serially, so the engine never handles two events at once.
package dialogue

import (
	"context"
	"log/slog"
	"time"

	"intervox/internal/classify"
	"intervox/internal/model"
)

// Speaker is the boundary to the session host: it delivers instruction
// text to the question generator / speech stack and closes the session.
type Speaker interface {
	Speak(ctx context.Context, instructions string) error
	Close(ctx context.Context) error
}

// Evaluator scores one accepted answer. Implementations never fail;
// degraded results are still valid results.
type Evaluator interface {
	Evaluate(ctx context.Context, role, jd, question, answer string, questionID int) *model.ScoredAnswer
}

// Sink persists one scored answer, best-effort. The engine logs and
// discards the error; it never alters control flow.
type Sink interface {
	Persist(ctx context.Context, room string, scored *model.ScoredAnswer) error
}

// Config holds the engine's tunables. The delays are UX parameters
// (breathing room between the candidate's turn and the next spoken
// line), not correctness requirements; tests set them to zero.
type Config struct {
	MaxQuestions  int
	ConsentDelay  time.Duration
	QuestionDelay time.Duration
	CloseGrace    time.Duration
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		MaxQuestions:  6,
		ConsentDelay:  150 * time.Millisecond,
		QuestionDelay: 200 * time.Millisecond,
		CloseGrace:    300 * time.Millisecond,
	}
}

// Engine is the dialogue controller for one session. It decides, after
// every candidate utterance, whether to re-prompt for consent, ask a
// follow-up, score and persist the answer, advance, or end.
type Engine struct {
	sess      *model.Session
	speaker   Speaker
	evaluator Evaluator
	sink      Sink
	cfg       Config
	log       *slog.Logger
}

// NewEngine builds an engine from session metadata.
func NewEngine(meta *model.SessionMeta, speaker Speaker, evaluator Evaluator, sink Sink, cfg Config) *Engine {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultConfig().MaxQuestions
	}
	return &Engine{
		sess: &model.Session{
			Room:           meta.Room,
			Role:           meta.Role,
			JobDescription: meta.JobDescription,
			Skills:         meta.Skills,
			Stage:          model.StageIdle,
			CreatedAt:      time.Now(),
		},
		speaker:   speaker,
		evaluator: evaluator,
		sink:      sink,
		cfg:       cfg,
		log:       slog.With("component", "dialogue", "room", meta.Room),
	}
}

// Session exposes the current session state, for the host and tests.
func (e *Engine) Session() *model.Session {
	return e.sess
}

// Start greets the candidate and asks for recording consent. It is the
// Idle to AwaitingConsent transition and runs once per session.
func (e *Engine) Start(ctx context.Context) error {
	e.sess.Stage = model.StageAwaitingConsent
	return e.speaker.Speak(ctx, greeting(e.sess.Role))
}

// HandleUtterance is invoked once per completed candidate utterance and
// branches strictly on the current stage. It is the only place the
// engine evaluates speech and decides follow-ups or the next question.
func (e *Engine) HandleUtterance(ctx context.Context, text string) error {
	e.log.Info("utterance completed", "stage", e.sess.Stage, "text", truncate(text, 200))

	switch e.sess.Stage {
	case model.StageAwaitingConsent:
		return e.handleConsent(ctx, text)
	case model.StageAsking:
		return e.handleAnswer(ctx, text)
	default:
		// Idle before Start, or Finished: no state change, no side
		// effects beyond this log line.
		e.log.Debug("ignoring utterance", "stage", e.sess.Stage)
		return nil
	}
}

func (e *Engine) handleConsent(ctx context.Context, text string) error {
	if !classify.Affirmative(text) {
		// Stay in AwaitingConsent and ask again for an explicit
		// yes/no. There is no cap on re-prompts; candidate silence
		// is the host's concern.
		return e.speaker.Speak(ctx, consentReprompt)
	}

	e.sess.Stage = model.StageAsking
	e.pause(ctx, e.cfg.ConsentDelay)
	return e.askOneQuestion(ctx)
}

func (e *Engine) handleAnswer(ctx context.Context, text string) error {
	// Short or hedging answer: ask for a concrete example and wait for
	// the elaborated answer to the same question. No evaluation, no
	// question budget consumed.
	if classify.NeedsExample(text) && e.sess.QuestionCount < e.cfg.MaxQuestions {
		return e.speaker.Speak(ctx, followUpRequest)
	}

	// Answer accepted. Evaluate, then persist, in that order; neither
	// outcome alters the dialogue beyond logging.
	scored := e.evaluator.Evaluate(ctx, e.sess.Role, e.sess.JobDescription, e.sess.LastQuestionText, text, e.sess.QuestionCount)
	if err := e.sink.Persist(ctx, e.sess.Room, scored); err != nil {
		e.log.Warn("failed to persist evaluation",
			"question", scored.QuestionID, "error", err)
	}

	if e.sess.QuestionCount >= e.cfg.MaxQuestions {
		if err := e.speaker.Speak(ctx, closingStatement); err != nil {
			return err
		}
		e.sess.Stage = model.StageFinished
		e.pause(ctx, e.cfg.CloseGrace)
		if err := e.speaker.Close(ctx); err != nil {
			e.log.Warn("failed to close session", "error", err)
		}
		return nil
	}

	e.pause(ctx, e.cfg.QuestionDelay)
	return e.askOneQuestion(ctx)
}

// askOneQuestion consumes one unit of the question budget and directs
// the generator to speak exactly one open-ended question. The recorded
// LastQuestionText is the instruction, not the generated question; the
// evaluator works with that approximation.
func (e *Engine) askOneQuestion(ctx context.Context) error {
	e.sess.QuestionCount++
	instr := questionInstruction(e.sess.Role, e.sess.Skills)
	e.sess.LastQuestionText = instr
	e.sess.Stage = model.StageAsking
	return e.speaker.Speak(ctx, instr)
}

// pause sleeps for d unless the context ends first.
func (e *Engine) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

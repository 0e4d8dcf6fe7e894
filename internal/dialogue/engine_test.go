package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervox/internal/model"
)

// recorder collects the observable side effects of one engine in order,
// so tests can assert both counts and sequencing.
type recorder struct {
	events []string
}

type fakeSpeaker struct {
	rec    *recorder
	spoken []string
	closed bool
	err    error
}

func (s *fakeSpeaker) Speak(ctx context.Context, instructions string) error {
	s.rec.events = append(s.rec.events, "speak")
	s.spoken = append(s.spoken, instructions)
	return s.err
}

func (s *fakeSpeaker) Close(ctx context.Context) error {
	s.rec.events = append(s.rec.events, "close")
	s.closed = true
	return nil
}

type fakeEvaluator struct {
	rec    *recorder
	calls  int
	result *model.ScoredAnswer
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, role, jd, question, answer string, questionID int) *model.ScoredAnswer {
	e.rec.events = append(e.rec.events, "evaluate")
	e.calls++
	if e.result != nil {
		return e.result
	}
	return &model.ScoredAnswer{
		QuestionID:   questionID,
		QuestionText: question,
		AnswerText:   answer,
		Scores:       map[string]int{"Go": 4},
		Rationale:    "solid answer",
	}
}

type fakeSink struct {
	rec       *recorder
	persisted []*model.ScoredAnswer
	err       error
}

func (s *fakeSink) Persist(ctx context.Context, room string, scored *model.ScoredAnswer) error {
	s.rec.events = append(s.rec.events, "persist")
	s.persisted = append(s.persisted, scored)
	return s.err
}

const acceptedAnswer = "In my last role I led the migration of our billing system to Go and reduced tail latency by forty percent"

func newTestEngine(maxQuestions int) (*Engine, *fakeSpeaker, *fakeEvaluator, *fakeSink) {
	rec := &recorder{}
	speaker := &fakeSpeaker{rec: rec}
	evaluator := &fakeEvaluator{rec: rec}
	sink := &fakeSink{rec: rec}
	meta := &model.SessionMeta{
		Room:           "room_test01",
		Role:           "Backend Engineer",
		JobDescription: "Build and operate Go services",
		Skills:         []string{"Go", "Distributed Systems"},
	}
	eng := NewEngine(meta, speaker, evaluator, sink, Config{MaxQuestions: maxQuestions})
	return eng, speaker, evaluator, sink
}

func TestStartGreetsAndAwaitsConsent(t *testing.T) {
	eng, speaker, _, _ := newTestEngine(2)

	require.NoError(t, eng.Start(context.Background()))

	assert.Equal(t, model.StageAwaitingConsent, eng.Session().Stage)
	require.Len(t, speaker.spoken, 1)
	assert.Contains(t, speaker.spoken[0], "Backend Engineer")
	assert.Contains(t, speaker.spoken[0], "yes or no")
}

func TestConsentAffirmativeAsksFirstQuestion(t *testing.T) {
	// Scenario A: "yes" at AwaitingConsent transitions to Asking,
	// questionCount becomes 1, one ask-one-question speak fires.
	eng, speaker, _, _ := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))

	require.NoError(t, eng.HandleUtterance(ctx, "yes"))

	assert.Equal(t, model.StageAsking, eng.Session().Stage)
	assert.Equal(t, 1, eng.Session().QuestionCount)
	require.Len(t, speaker.spoken, 2)
	assert.Contains(t, speaker.spoken[1], "exactly one")
	assert.Contains(t, speaker.spoken[1], "Go, Distributed Systems")
	assert.Equal(t, speaker.spoken[1], eng.Session().LastQuestionText)
}

func TestConsentNonAffirmativeReprompts(t *testing.T) {
	eng, speaker, evaluator, sink := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))

	for _, utterance := range []string{"what is this about", "hmm", "absolutely not"} {
		require.NoError(t, eng.HandleUtterance(ctx, utterance))
		assert.Equal(t, model.StageAwaitingConsent, eng.Session().Stage)
		assert.Equal(t, 0, eng.Session().QuestionCount)
	}

	// greeting + three re-prompts, nothing evaluated or persisted
	assert.Len(t, speaker.spoken, 4)
	assert.Contains(t, speaker.spoken[3], "yes or no")
	assert.Zero(t, evaluator.calls)
	assert.Empty(t, sink.persisted)
}

func TestShortAnswerTriggersFollowUp(t *testing.T) {
	// Scenario B: a short hedging answer gets a follow-up request; no
	// budget consumed, no evaluator or sink call.
	eng, speaker, evaluator, sink := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))

	require.NoError(t, eng.HandleUtterance(ctx, "I used to do that"))

	assert.Equal(t, model.StageAsking, eng.Session().Stage)
	assert.Equal(t, 1, eng.Session().QuestionCount)
	assert.Contains(t, speaker.spoken[len(speaker.spoken)-1], "specific example")
	assert.Zero(t, evaluator.calls)
	assert.Empty(t, sink.persisted)
}

func TestAcceptedAnswerEvaluatesPersistsAndAdvances(t *testing.T) {
	// Scenario C: a long non-hedging answer is evaluated once,
	// persisted once with the evaluator's output, then the next
	// question is asked.
	eng, speaker, evaluator, sink := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))
	firstQuestion := eng.Session().LastQuestionText

	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))

	assert.Equal(t, 1, evaluator.calls)
	require.Len(t, sink.persisted, 1)
	assert.Equal(t, firstQuestion, sink.persisted[0].QuestionText)
	assert.Equal(t, acceptedAnswer, sink.persisted[0].AnswerText)
	assert.Equal(t, map[string]int{"Go": 4}, sink.persisted[0].Scores)
	assert.Equal(t, 2, eng.Session().QuestionCount)
	assert.Equal(t, model.StageAsking, eng.Session().Stage)
	assert.False(t, speaker.closed)
}

func TestOrderingFollowUpBeforeEvalBeforePersistBeforeSpeak(t *testing.T) {
	eng, speaker, _, sink := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))

	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))

	// For the accepted answer: evaluate strictly before persist,
	// persist strictly before the next question is spoken.
	events := speaker.rec.events
	assert.Equal(t, []string{"speak", "speak", "evaluate", "persist", "speak"}, events)
	require.Len(t, sink.persisted, 1)
}

func TestSinkFailureIsSwallowed(t *testing.T) {
	eng, _, _, sink := newTestEngine(2)
	sink.err = errors.New("backend unreachable")
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))

	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))

	// Persistence failed but the interview advanced anyway.
	assert.Equal(t, 2, eng.Session().QuestionCount)
	assert.Equal(t, model.StageAsking, eng.Session().Stage)
}

func TestDegradedEvaluationStillPersistsAndProgresses(t *testing.T) {
	// Scenario D: evaluator degrades (empty scores, raw rationale); the
	// sink is still attempted with that result and the session still
	// progresses per the budget.
	eng, _, evaluator, sink := newTestEngine(2)
	evaluator.result = &model.ScoredAnswer{
		QuestionID: 1,
		AnswerText: acceptedAnswer,
		Scores:     map[string]int{},
		Rationale:  "upstream timeout body",
	}
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))

	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))

	require.Len(t, sink.persisted, 1)
	assert.Empty(t, sink.persisted[0].Scores)
	assert.Equal(t, "upstream timeout body", sink.persisted[0].Rationale)
	assert.Equal(t, 2, eng.Session().QuestionCount)
}

func TestQuestionBudgetClosesInterview(t *testing.T) {
	// Scenario E: after maxQuestions accepted answers the closing
	// statement is spoken exactly once, the stage becomes Finished and
	// the session is closed.
	eng, speaker, _, sink := newTestEngine(2)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))
	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))
	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))

	assert.Equal(t, model.StageFinished, eng.Session().Stage)
	assert.Equal(t, 2, eng.Session().QuestionCount)
	assert.True(t, speaker.closed)
	assert.Len(t, sink.persisted, 2)

	closings := 0
	for _, s := range speaker.spoken {
		if strings.Contains(s, "concludes our questions") {
			closings++
		}
	}
	assert.Equal(t, 1, closings)
}

func TestFinishedIsAbsorbing(t *testing.T) {
	eng, speaker, evaluator, sink := newTestEngine(1)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))
	require.NoError(t, eng.HandleUtterance(ctx, acceptedAnswer))
	require.Equal(t, model.StageFinished, eng.Session().Stage)

	spokenBefore := len(speaker.spoken)
	require.NoError(t, eng.HandleUtterance(ctx, "hello? one more thing"))

	assert.Equal(t, model.StageFinished, eng.Session().Stage)
	assert.Len(t, speaker.spoken, spokenBefore)
	assert.Equal(t, 1, evaluator.calls)
	assert.Len(t, sink.persisted, 1)
}

func TestIdleIgnoresUtterances(t *testing.T) {
	eng, speaker, evaluator, sink := newTestEngine(2)

	require.NoError(t, eng.HandleUtterance(context.Background(), "yes"))

	assert.Equal(t, model.StageIdle, eng.Session().Stage)
	assert.Empty(t, speaker.spoken)
	assert.Zero(t, evaluator.calls)
	assert.Empty(t, sink.persisted)
}

func TestExhaustedBudgetAcceptsShortFinalAnswer(t *testing.T) {
	// Once the budget is spent, even a short answer is scored rather
	// than re-asked: the follow-up gate requires remaining budget.
	eng, _, evaluator, _ := newTestEngine(1)
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "yes"))

	require.NoError(t, eng.HandleUtterance(ctx, "it went fine"))

	assert.Equal(t, 1, evaluator.calls)
	assert.Equal(t, model.StageFinished, eng.Session().Stage)
}

func TestQuestionInstructionWithoutSkills(t *testing.T) {
	rec := &recorder{}
	speaker := &fakeSpeaker{rec: rec}
	meta := &model.SessionMeta{Room: "room_x", Role: "Generalist"}
	eng := NewEngine(meta, speaker, &fakeEvaluator{rec: rec}, &fakeSink{rec: rec}, Config{MaxQuestions: 1})
	ctx := context.Background()
	require.NoError(t, eng.Start(ctx))
	require.NoError(t, eng.HandleUtterance(ctx, "sure"))

	assert.Contains(t, speaker.spoken[1], "general experience")
}

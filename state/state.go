package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/exercise"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/part"
	"github.com/jsphweid/eartrainer/playback"
	"github.com/sirupsen/logrus"
)

// ErrQuestionComplete is returned when answering a question whose segments
// were all answered already. Call NextQuestion first.
var ErrQuestionComplete = errors.New("question is already complete")

const DefaultCadencePause = 100 * time.Millisecond

// ExerciseState drives one learner through one exercise: it holds the current
// question, validates answers segment by segment, keeps score and plays the
// cadence and question. Use one instance per session.
type ExerciseState struct {
	mu sync.RWMutex

	exercise exercise.Exercise
	player   playback.Player
	log      logrus.FieldLogger

	settings     model.ExerciseSettings
	cadencePause time.Duration
	bpm          float64

	currentQuestion         model.Question
	totalCorrectAnswers     int
	totalQuestions          int
	currentAnswers          []model.CurrentAnswer
	currentSegmentToAnswer  int
	currentlyPlayingSegment *int
	timesPlayed             int
}

type Option func(*ExerciseState)

func WithSettings(s model.ExerciseSettings) Option {
	return func(e *ExerciseState) {
		e.settings = s
	}
}

func WithCadencePause(d time.Duration) Option {
	return func(e *ExerciseState) {
		e.cadencePause = d
	}
}

func WithTempo(bpm float64) Option {
	return func(e *ExerciseState) {
		e.bpm = bpm
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *ExerciseState) {
		e.log = log
	}
}

// New loads the exercise with the given id and its first question
func New(id string, provider exercise.Provider, player playback.Player, opts ...Option) (*ExerciseState, error) {
	ex, err := provider.GetExercise(id)
	if err != nil {
		return nil, fmt.Errorf("could not load exercise: %w", err)
	}

	e := &ExerciseState{
		exercise:     ex,
		player:       player,
		log:          logrus.StandardLogger(),
		settings:     model.DefaultExerciseSettings(),
		cadencePause: DefaultCadencePause,
		bpm:          part.DefaultBPM,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithField("exercise", ex.ID())
	e.NextQuestion()
	return e, nil
}

func (e *ExerciseState) Name() string {
	return e.exercise.Name()
}

func (e *ExerciseState) ExerciseID() string {
	return e.exercise.ID()
}

func (e *ExerciseState) AnswerList() model.AnswerList {
	return e.exercise.AnswerList()
}

func (e *ExerciseState) Settings() model.ExerciseSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

func (e *ExerciseState) UpdateSettings(s model.ExerciseSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
}

func (e *ExerciseState) TotalCorrectAnswers() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalCorrectAnswers
}

func (e *ExerciseState) TotalQuestions() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalQuestions
}

// Accuracy is the share of segments answered right on the first try
func (e *ExerciseState) Accuracy() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.totalQuestions == 0 {
		return 0
	}
	return float64(e.totalCorrectAnswers) / float64(e.totalQuestions)
}

func (e *ExerciseState) CurrentAnswers() []model.CurrentAnswer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]model.CurrentAnswer(nil), e.currentAnswers...)
}

func (e *ExerciseState) CurrentSegmentToAnswer() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentSegmentToAnswer
}

func (e *ExerciseState) CurrentQuestion() model.Question {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentQuestion
}

// CurrentlyPlayingSegment reports the index of the segment sounding right now
func (e *ExerciseState) CurrentlyPlayingSegment() (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.currentlyPlayingSegment == nil {
		return 0, false
	}
	return *e.currentlyPlayingSegment, true
}

func (e *ExerciseState) IsQuestionComplete() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentSegmentToAnswer >= len(e.currentQuestion.Segments)
}

func (e *ExerciseState) answeredCurrentWrong() bool {
	for _, a := range e.currentAnswers {
		if a.WasWrong {
			return true
		}
	}
	return false
}

// Answer checks candidate against the segment waiting for an answer. A wrong
// answer keeps the learner on the same segment. A right answer only counts as
// correct if nothing in the current question was answered wrong before.
func (e *ExerciseState) Answer(candidate string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currentSegmentToAnswer >= len(e.currentQuestion.Segments) {
		return false, ErrQuestionComplete
	}

	segment := e.currentQuestion.Segments[e.currentSegmentToAnswer]
	if segment.RightAnswer != candidate {
		e.currentAnswers[e.currentSegmentToAnswer].WasWrong = true
		e.log.WithFields(logrus.Fields{
			"segment": e.currentSegmentToAnswer,
			"answer":  candidate,
		}).Debug("wrong answer")
		return false, nil
	}

	e.totalQuestions++
	if !e.answeredCurrentWrong() {
		e.totalCorrectAnswers++
	}
	answer := candidate
	e.currentAnswers[e.currentSegmentToAnswer].Answer = &answer
	e.currentSegmentToAnswer++
	e.log.WithFields(logrus.Fields{
		"segment":        e.currentSegmentToAnswer - 1,
		"totalCorrect":   e.totalCorrectAnswers,
		"totalQuestions": e.totalQuestions,
	}).Debug("right answer")
	return true, nil
}

// NextQuestion replaces the current question and forgets all answers given to it
func (e *ExerciseState) NextQuestion() {
	q := e.exercise.Question()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentQuestion = q
	e.currentAnswers = make([]model.CurrentAnswer, len(q.Segments))
	e.currentSegmentToAnswer = 0
	e.timesPlayed = 0
	e.log.WithField("segments", len(q.Segments)).Debug("next question")
}

func (e *ExerciseState) shouldPlayCadence() bool {
	if !e.currentQuestion.HasCadence() {
		return false
	}
	switch e.settings.PlayCadence {
	case model.CadenceNever:
		return false
	case model.CadenceOnlyOnRepeat:
		return e.timesPlayed > 0
	default:
		return true
	}
}

// PlayCurrentCadenceAndQuestion plays the cadence when the question has one and
// the settings allow it, pauses briefly, then plays the question
func (e *ExerciseState) PlayCurrentCadenceAndQuestion(ctx context.Context) error {
	e.mu.RLock()
	playCadence := e.shouldPlayCadence()
	cadence := e.currentQuestion.Cadence
	pause := e.cadencePause
	bpm := e.bpm
	e.mu.RUnlock()

	if playCadence {
		if err := e.player.PlayPart(ctx, part.ToSteady(cadence, bpm)); err != nil {
			return err
		}
		if err := playback.Delay(ctx, pause); err != nil {
			return err
		}
	}
	return e.PlayCurrentQuestion(ctx)
}

// PlayCurrentQuestion plays every segment in order. On failure the segment
// that failed is left as the currently playing one.
func (e *ExerciseState) PlayCurrentQuestion(ctx context.Context) error {
	e.mu.Lock()
	e.timesPlayed++
	segments := e.currentQuestion.Segments
	bpm := e.bpm
	e.mu.Unlock()

	parts := make([]part.SteadyPart, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, part.ToSteady(s.PartToPlay, bpm))
	}

	err := playback.PlaySequence(ctx, e.player, parts, func(i int) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.currentlyPlayingSegment = &i
	})
	if err != nil {
		e.log.WithError(err).Warn("playback failed")
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentlyPlayingSegment = nil
	return nil
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/eartrainer/exercise"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/playback"
	"github.com/jsphweid/eartrainer/state"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Catalog        *exercise.Catalog
	Player         playback.Player
	Log            *logrus.Logger
	Settings       model.ExerciseSettings
	CadencePause   time.Duration
	Tempo          float64
	ReplayDebounce time.Duration
	CorsOrigins    []string
}

type session struct {
	id         string
	exerciseId string
	state      *state.ExerciseState

	// one playback at a time per session
	playMu   sync.Mutex
	debounce func(f func())

	// cancelled when the session is deleted or the server closes
	ctx     context.Context
	cancel  context.CancelFunc
	deleted bool
}

// Server exposes drill sessions over HTTP. Sessions live in memory only.
type Server struct {
	opts     Options
	validate *validator.Validate

	mu       sync.RWMutex
	sessions map[string]*session
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Player == nil {
		opts.Player = playback.Silent{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts:     opts,
		validate: validator.New(),
		sessions: make(map[string]*session),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/exercises", s.HandleListExercises).Methods(http.MethodGet)
	router.HandleFunc("/sessions", s.HandleCreateSession).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", s.HandleGetSession).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}", s.HandleDeleteSession).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/answer", s.HandleAnswer).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/next", s.HandleNext).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/play", s.HandlePlay).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/settings", s.HandleUpdateSettings).Methods(http.MethodPut)

	origins := s.opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	})
	return c.Handler(router)
}

// Close stops every playback still running and waits for it to return
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.opts.Log.WithError(err).Warn("could not write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (s *Server) decode(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
	}
	return sess, ok
}

func status(sess *session) model.SessionStatus {
	st := sess.state
	res := model.SessionStatus{
		Id:                     sess.id,
		ExerciseId:             sess.exerciseId,
		Name:                   st.Name(),
		AnswerList:             st.AnswerList(),
		Settings:               st.Settings(),
		TotalCorrectAnswers:    st.TotalCorrectAnswers(),
		TotalQuestions:         st.TotalQuestions(),
		CurrentSegmentToAnswer: st.CurrentSegmentToAnswer(),
	}
	if i, ok := st.CurrentlyPlayingSegment(); ok {
		res.CurrentlyPlayingSegment = &i
	}
	for _, a := range st.CurrentAnswers() {
		res.CurrentAnswers = append(res.CurrentAnswers, model.SegmentStatus{Answer: a.Answer, WasWrong: a.WasWrong})
	}
	return res
}

func (s *Server) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	res := s.opts.Catalog.Overviews()
	if res == nil {
		res = make([]model.ExerciseOverview, 0)
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var input model.CreateSessionRequestBody
	if err := s.decode(r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return
	}

	id := uuid.New().String()
	log := s.opts.Log.WithField("session", id)
	st, err := state.New(input.ExerciseId, s.opts.Catalog, s.opts.Player,
		state.WithSettings(s.opts.Settings),
		state.WithCadencePause(s.opts.CadencePause),
		state.WithTempo(s.opts.Tempo),
		state.WithLogger(log),
	)
	if errors.Is(err, exercise.ErrExerciseNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.WithError(err).Error("could not create session")
		s.writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	sess := &session{
		id:         id,
		exerciseId: input.ExerciseId,
		state:      st,
		debounce:   debounce.New(s.opts.ReplayDebounce),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.WithField("exercise", input.ExerciseId).Info("session created")
	s.writeJSON(w, http.StatusCreated, status(sess))
}

func (s *Server) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, status(sess))
}

func (s *Server) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, sess.id)
	sess.deleted = true
	s.mu.Unlock()
	sess.cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	var input model.AnswerRequestBody
	if err := s.decode(r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return
	}

	correct, err := sess.state.Answer(input.Answer)
	if errors.Is(err, state.ErrQuestionComplete) {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, model.AnswerResponse{
		Correct:          correct,
		QuestionComplete: sess.state.IsQuestionComplete(),
		Session:          status(sess),
	})
}

func (s *Server) HandleNext(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	sess.state.NextQuestion()
	s.writeJSON(w, http.StatusOK, status(sess))
}

// HandlePlay starts playback in the background. Requests arriving in quick
// succession collapse into one playback. ?cadence=false skips the cadence.
func (s *Server) HandlePlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	withCadence := r.URL.Query().Get("cadence") != "false"

	sess.debounce(func() {
		s.play(sess, withCadence)
	})
	s.writeJSON(w, http.StatusAccepted, status(sess))
}

func (s *Server) play(sess *session, withCadence bool) {
	s.mu.Lock()
	if s.closed || sess.deleted {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	sess.playMu.Lock()
	defer sess.playMu.Unlock()

	var err error
	if withCadence {
		err = sess.state.PlayCurrentCadenceAndQuestion(sess.ctx)
	} else {
		err = sess.state.PlayCurrentQuestion(sess.ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.opts.Log.WithField("session", sess.id).WithError(err).Error("playback failed")
	}
}

func (s *Server) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.getSession(w, r)
	if !ok {
		return
	}
	var input model.ExerciseSettings
	if err := s.decode(r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, "Could not read request body: "+err.Error())
		return
	}
	sess.state.UpdateSettings(input)
	s.writeJSON(w, http.StatusOK, status(sess))
}

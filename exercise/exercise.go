package exercise

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/util"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// Exercise produces questions on demand. How questions are picked is up to
// the implementation.
type Exercise interface {
	ID() string
	Name() string
	Summary() string
	Question() model.Question
	AnswerList() model.AnswerList
}

type Provider interface {
	GetExercise(id string) (Exercise, error)
}

type Catalog struct {
	mu        sync.RWMutex
	exercises map[string]Exercise
}

func NewCatalog(exercises ...Exercise) *Catalog {
	c := &Catalog{exercises: make(map[string]Exercise)}
	for _, e := range exercises {
		c.Register(e)
	}
	return c
}

// DefaultCatalog holds every built-in exercise
func DefaultCatalog() *Catalog {
	return NewCatalog(
		NewNotesInKey(NotesInKeyOptions{}),
		NewNotesInKey(NotesInKeyOptions{
			ID:               "melodicDictation",
			Name:             "Melodic Dictation",
			NumberOfSegments: 3,
		}),
		NewInterval(IntervalOptions{}),
	)
}

// Register replaces any exercise with the same id
func (c *Catalog) Register(e Exercise) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exercises[e.ID()] = e
}

func (c *Catalog) GetExercise(id string) (Exercise, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.exercises[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrExerciseNotFound, id)
	}
	return e, nil
}

func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return util.SortedKeys(c.exercises)
}

func (c *Catalog) Overviews() []model.ExerciseOverview {
	var res []model.ExerciseOverview
	for _, id := range c.IDs() {
		e, err := c.GetExercise(id)
		if err != nil {
			continue
		}
		res = append(res, model.ExerciseOverview{Id: e.ID(), Name: e.Name(), Summary: e.Summary()})
	}
	return res
}

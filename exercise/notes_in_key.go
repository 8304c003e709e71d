package exercise

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/key"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/part"
	"github.com/jsphweid/eartrainer/scaledegree"
)

var diatonicDegrees = []scaledegree.ScaleDegree{"1", "2", "3", "4", "5", "6", "7"}

type NotesInKeyOptions struct {
	ID               string
	Name             string
	NumberOfSegments int
	// nil picks a random key for every question
	Key *key.Key
	// defaults to the diatonic major degrees
	Degrees []scaledegree.ScaleDegree
	Rand    *rand.Rand
}

// NotesInKey plays a cadence followed by notes the learner names by scale degree
type NotesInKey struct {
	// guards opts.Rand
	mu   sync.Mutex
	opts NotesInKeyOptions
}

func NewNotesInKey(opts NotesInKeyOptions) *NotesInKey {
	if opts.ID == "" {
		opts.ID = "notesInKey"
	}
	if opts.Name == "" {
		opts.Name = "Notes in Key"
	}
	if opts.NumberOfSegments <= 0 {
		opts.NumberOfSegments = 1
	}
	if len(opts.Degrees) == 0 {
		opts.Degrees = diatonicDegrees
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &NotesInKey{opts: opts}
}

func (e *NotesInKey) ID() string {
	return e.opts.ID
}

func (e *NotesInKey) Name() string {
	return e.opts.Name
}

func (e *NotesInKey) Summary() string {
	return fmt.Sprintf("Identify %d note(s) by scale degree after hearing a cadence", e.opts.NumberOfSegments)
}

func (e *NotesInKey) pickKey() key.Key {
	if e.opts.Key != nil {
		return *e.opts.Key
	}
	return key.Key(e.opts.Rand.Intn(12))
}

func (e *NotesInKey) Question() model.Question {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := e.pickKey()
	octave := TonicOctave(k)

	var q model.Question
	q.Cadence = Cadence(k)
	for i := 0; i < e.opts.NumberOfSegments; i++ {
		degree := e.opts.Degrees[e.opts.Rand.Intn(len(e.opts.Degrees))]
		n := scaledegree.NoteFromScaleDegree(k, degree, octave)
		q.Segments = append(q.Segments, model.Segment{
			PartToPlay:  part.FromNotes(n),
			RightAnswer: string(scaledegree.ScaleDegreeFromNote(k, n)),
		})
	}
	return q
}

func (e *NotesInKey) AnswerList() model.AnswerList {
	var row []model.Answer
	for _, d := range scaledegree.All() {
		for _, allowed := range e.opts.Degrees {
			if d == allowed {
				row = append(row, string(d))
				break
			}
		}
	}
	return model.AnswerList{row}
}

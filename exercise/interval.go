package exercise

import (
	"math/rand"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/interval"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/note"
	"github.com/jsphweid/eartrainer/part"
	"github.com/jsphweid/eartrainer/util"
)

type IntervalOptions struct {
	ID        string
	Name      string
	Intervals []interval.Interval
	// both notes of a question fall inside Range, nil means C3 to C5
	Range *NoteRange
	Rand  *rand.Rand
}

// NoteRange is an inclusive span of absolute pitches
type NoteRange struct {
	Low  note.Note
	High note.Note
}

// Interval plays two notes one after the other, the learner names the distance.
// There is no tonal context so no cadence is played.
type Interval struct {
	// guards opts.Rand
	mu    sync.Mutex
	opts  IntervalOptions
	notes NoteRange
}

func NewInterval(opts IntervalOptions) *Interval {
	if opts.ID == "" {
		opts.ID = "interval"
	}
	if opts.Name == "" {
		opts.Name = "Interval Recognition"
	}
	if len(opts.Intervals) == 0 {
		opts.Intervals = interval.All()[1:]
	}
	notes := NoteRange{Low: note.MustParse("C3"), High: note.MustParse("C5")}
	if opts.Range != nil {
		notes = *opts.Range
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Interval{opts: opts, notes: notes}
}

func (e *Interval) ID() string {
	return e.opts.ID
}

func (e *Interval) Name() string {
	return e.opts.Name
}

func (e *Interval) Summary() string {
	return "Identify the distance between two notes"
}

func (e *Interval) Question() model.Question {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.opts.Intervals[e.opts.Rand.Intn(len(e.opts.Intervals))]
	span := util.Max(int(e.notes.High-e.notes.Low)-int(i), 0)
	low := e.notes.Low + note.Note(e.opts.Rand.Intn(span+1))
	return model.Question{
		Segments: []model.Segment{{
			PartToPlay:  part.FromNotes(low, low.Transpose(i)),
			RightAnswer: i.String(),
		}},
	}
}

func (e *Interval) AnswerList() model.AnswerList {
	var row []model.Answer
	for _, i := range e.opts.Intervals {
		row = append(row, i.String())
	}
	return model.AnswerList{row}
}

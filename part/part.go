package part

import (
	"time"

	"github.com/jsphweid/eartrainer/note"
)

const (
	DefaultBPM      = 120
	DefaultVelocity = 90
)

// Event is a set of notes sounding together. A zero Duration means a quarter
// note at the tempo the part is made steady with.
type Event struct {
	Notes    []note.Note
	Duration time.Duration
}

// Material is anything playable: a single note, a melody or a chord progression
type Material []Event

func FromNotes(notes ...note.Note) Material {
	res := make(Material, 0, len(notes))
	for _, n := range notes {
		res = append(res, Event{Notes: []note.Note{n}})
	}
	return res
}

func FromChords(chords ...[]note.Note) Material {
	res := make(Material, 0, len(chords))
	for _, c := range chords {
		res = append(res, Event{Notes: c})
	}
	return res
}

// Harmonic plays every note at once
func Harmonic(notes ...note.Note) Material {
	return Material{{Notes: notes}}
}

type TimedEvent struct {
	Time     time.Duration
	Duration time.Duration
	Notes    []note.Note
	Velocity uint8
}

// SteadyPart is material laid out back to back at a fixed tempo
type SteadyPart []TimedEvent

func QuarterNote(bpm float64) time.Duration {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	return time.Duration(float64(time.Minute) / bpm)
}

func ToSteady(m Material, bpm float64) SteadyPart {
	quarter := QuarterNote(bpm)
	res := make(SteadyPart, 0, len(m))
	var offset time.Duration
	for _, evt := range m {
		d := evt.Duration
		if d <= 0 {
			d = quarter
		}
		res = append(res, TimedEvent{
			Time:     offset,
			Duration: d,
			Notes:    evt.Notes,
			Velocity: DefaultVelocity,
		})
		offset += d
	}
	return res
}

// Duration is the time from the start of the part until its last note ends
func (p SteadyPart) Duration() time.Duration {
	var end time.Duration
	for _, evt := range p {
		if e := evt.Time + evt.Duration; e > end {
			end = e
		}
	}
	return end
}

func (p SteadyPart) Notes() []note.Note {
	var res []note.Note
	for _, evt := range p {
		res = append(res, evt.Notes...)
	}
	return res
}

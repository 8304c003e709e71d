package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jsphweid/eartrainer/note"
	"github.com/jsphweid/eartrainer/part"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerQuarter = 960

var (
	ErrNoteOutOfRange = errors.New("note is outside the MIDI range")
	ErrEmptyFile      = errors.New("midi file holds no data")
)

type noteMsg struct {
	tick  uint32
	isOff bool
	key   uint8
	vel   uint8
}

func ticks(d time.Duration, bpm float64) uint32 {
	return uint32(float64(d) / float64(part.QuarterNote(bpm)) * TicksPerQuarter)
}

// NewSMF lays the part out on a single track at the given tempo
func NewSMF(p part.SteadyPart, bpm float64, channel uint8) (*smf.SMF, error) {
	if bpm <= 0 {
		bpm = part.DefaultBPM
	}

	var msgs []noteMsg
	for _, evt := range p {
		for _, n := range evt.Notes {
			if !n.Valid() {
				return nil, fmt.Errorf("%w: %d", ErrNoteOutOfRange, n)
			}
			start := ticks(evt.Time, bpm)
			end := ticks(evt.Time+evt.Duration, bpm)
			msgs = append(msgs,
				noteMsg{tick: start, key: uint8(n), vel: evt.Velocity},
				noteMsg{tick: end, key: uint8(n), isOff: true},
			)
		}
	}

	// note offs first so repeated notes retrigger
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].isOff && !msgs[j].isOff
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for _, m := range msgs {
		if m.isOff {
			track.Add(m.tick-last, midi.NoteOff(channel, m.key))
		} else {
			track.Add(m.tick-last, midi.NoteOn(channel, m.key, m.vel))
		}
		last = m.tick
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("could not add track: %w", err)
	}
	return s, nil
}

func WriteSteadyPart(w io.Writer, p part.SteadyPart, bpm float64) error {
	s, err := NewSMF(p, bpm, 0)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

func WriteMidiFile(filepath string, p part.SteadyPart, bpm float64) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("could not create midi file: %w", err)
	}
	defer f.Close()
	return WriteSteadyPart(f, p, bpm)
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Parse(dat)
}

func Parse(dat []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("error parsing midi file: %v", r)
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	if res == nil {
		return nil, ErrEmptyFile
	}
	return res, nil
}

type reducedEvent struct {
	offset    time.Duration
	isNoteOff bool
	note      note.Note
	velocity  uint8
}

// ToSteadyPart groups notes starting at the same instant into one event.
// Event durations come from the first note of the group to end.
func ToSteadyPart(s *smf.SMF) part.SteadyPart {
	var reduced []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			offset := time.Duration(s.TimeAt(absTicks)) * time.Microsecond
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				reduced = append(reduced, reducedEvent{offset: offset, note: note.Note(key), velocity: velocity})
			case event.Message.GetNoteOn(&channel, &key, &velocity),
				event.Message.GetNoteOff(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{offset: offset, note: note.Note(key), isNoteOff: true})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reduced, func(i, j int) bool {
		if reduced[i].offset != reduced[j].offset {
			return reduced[i].offset < reduced[j].offset
		}
		return reduced[i].isNoteOff && !reduced[j].isNoteOff
	})

	var res part.SteadyPart
	pressed := make(map[note.Note]int)
	for _, evt := range reduced {
		if evt.isNoteOff {
			idx, ok := pressed[evt.note]
			if !ok {
				continue
			}
			delete(pressed, evt.note)
			if d := evt.offset - res[idx].Time; res[idx].Duration == 0 || d < res[idx].Duration {
				res[idx].Duration = d
			}
			continue
		}
		if len(res) == 0 || res[len(res)-1].Time != evt.offset {
			res = append(res, part.TimedEvent{Time: evt.offset, Velocity: evt.velocity})
		}
		last := len(res) - 1
		res[last].Notes = append(res[last].Notes, evt.note)
		pressed[evt.note] = last
	}
	return res
}

func ReadSteadyPart(filepath string) (part.SteadyPart, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, err
	}
	return ToSteadyPart(s), nil
}

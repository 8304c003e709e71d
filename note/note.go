package note

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jsphweid/eartrainer/interval"
	"github.com/jsphweid/eartrainer/key"
	"github.com/jsphweid/eartrainer/util"
)

var ErrInvalidNote = errors.New("invalid note")

// Note is an absolute pitch expressed as a MIDI note number (C4 = 60)
type Note int

const (
	Lowest  Note = 0
	Highest Note = 127
	MiddleC Note = 60
)

var noteRegex = regexp.MustCompile(`^([A-Ga-g])([#b]*)(-?\d+)$`)

// New resolves a note type to an absolute pitch in the given octave
func New(k key.Key, octave int) Note {
	return Note((octave+1)*12 + util.Mod(int(k), 12))
}

func Parse(s string) (Note, error) {
	match := noteRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	letter, err := key.Parse(match[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	octave, err := strconv.Atoi(match[3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}
	// accidentals shift the absolute pitch, so Cb4 is B3 rather than B4
	n := New(letter, octave)
	for _, r := range match[2] {
		if r == '#' {
			n++
		} else {
			n--
		}
	}
	if !n.Valid() {
		return 0, fmt.Errorf("%w: %q is outside the MIDI range", ErrInvalidNote, s)
	}
	return n, nil
}

func MustParse(s string) Note {
	n, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// Key drops the octave, returning the note type
func (n Note) Key() key.Key {
	return key.Key(util.Mod(int(n), 12))
}

func (n Note) Octave() int {
	return (int(n)-util.Mod(int(n), 12))/12 - 1
}

func (n Note) Transpose(i interval.Interval) Note {
	return n + Note(i)
}

func (n Note) Valid() bool {
	return n >= Lowest && n <= Highest
}

func (n Note) String() string {
	return fmt.Sprintf("%v%d", n.Key(), n.Octave())
}

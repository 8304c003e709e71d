package scaledegree

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jsphweid/eartrainer/interval"
	"github.com/jsphweid/eartrainer/key"
	"github.com/jsphweid/eartrainer/note"
	"github.com/jsphweid/eartrainer/util"
)

var ErrInvalidScaleDegree = errors.New("invalid scale degree")

type Accidental string

const (
	Natural Accidental = ""
	Sharp   Accidental = "#"
	Flat    Accidental = "b"
)

type DiatonicScaleDegree int

// ScaleDegree spells every chromatic note exactly once.
// Use EnharmonicScaleDegree for alternative spellings.
type ScaleDegree string

// EnharmonicScaleDegree is a superset of ScaleDegree
type EnharmonicScaleDegree string

// ChromaticScaleDegree is 1-based: 1 is the tonic, 13 the tonic an octave up
type ChromaticScaleDegree int

const (
	MinChromatic ChromaticScaleDegree = 1
	MaxChromatic ChromaticScaleDegree = 16
)

const DefaultOctave = 4

var canonical = []struct {
	degree    ScaleDegree
	chromatic ChromaticScaleDegree
}{
	{"1", 1},
	{"b2", 2},
	{"2", 3},
	{"b3", 4},
	{"3", 5},
	{"4", 6},
	{"#4", 7},
	{"5", 8},
	{"b6", 9},
	{"6", 10},
	{"b7", 11},
	{"7", 12},
}

var enharmonicExtras = map[EnharmonicScaleDegree]ChromaticScaleDegree{
	"b5":  7,
	"#5":  9,
	"bb7": 10,
	"8":   13,
	"9":   15,
	"#9":  16,
}

var (
	degreeToChromatic     = make(map[ScaleDegree]ChromaticScaleDegree, len(canonical))
	enharmonicToChromatic = make(map[EnharmonicScaleDegree]ChromaticScaleDegree, len(canonical)+len(enharmonicExtras))
	chromaticToDegree     = make(map[ChromaticScaleDegree]ScaleDegree, len(canonical))
)

func init() {
	for _, v := range canonical {
		if _, ok := chromaticToDegree[v.chromatic]; ok {
			panic(fmt.Sprintf("scale degree table is not injective at chromatic degree %d", v.chromatic))
		}
		degreeToChromatic[v.degree] = v.chromatic
		enharmonicToChromatic[EnharmonicScaleDegree(v.degree)] = v.chromatic
		chromaticToDegree[v.chromatic] = v.degree
	}
	for k, v := range enharmonicExtras {
		if _, ok := enharmonicToChromatic[k]; ok {
			panic(fmt.Sprintf("enharmonic scale degree %q redefines a canonical degree", k))
		}
		enharmonicToChromatic[k] = v
	}
}

// All returns the twelve canonical degrees in ascending chromatic order
func All() []ScaleDegree {
	res := make([]ScaleDegree, 0, len(canonical))
	for _, v := range canonical {
		res = append(res, v.degree)
	}
	return res
}

// AllEnharmonic returns every recognized spelling, canonical ones first
func AllEnharmonic() []EnharmonicScaleDegree {
	res := make([]EnharmonicScaleDegree, 0, len(enharmonicToChromatic))
	for _, v := range canonical {
		res = append(res, EnharmonicScaleDegree(v.degree))
	}
	for _, k := range util.SortedKeys(enharmonicExtras) {
		res = append(res, k)
	}
	return res
}

func IsValid(s string) bool {
	_, ok := degreeToChromatic[ScaleDegree(s)]
	return ok
}

func IsValidEnharmonic(s string) bool {
	_, ok := enharmonicToChromatic[EnharmonicScaleDegree(s)]
	return ok
}

func ToChromatic(d ScaleDegree) ChromaticScaleDegree {
	c, ok := degreeToChromatic[d]
	if !ok {
		panic(fmt.Sprintf("%q is not a canonical scale degree", d))
	}
	return c
}

func EnharmonicToChromatic(d EnharmonicScaleDegree) ChromaticScaleDegree {
	c, ok := enharmonicToChromatic[d]
	if !ok {
		panic(fmt.Sprintf("%q is not a known scale degree", d))
	}
	return c
}

// ToScaleDegree inverts ToChromatic. c must be in [1, 12]; use Reduce first
// for degrees reached through extended spellings.
func ToScaleDegree(c ChromaticScaleDegree) ScaleDegree {
	d, ok := chromaticToDegree[c]
	if !ok {
		panic(fmt.Sprintf("chromatic scale degree %d is outside [1, 12]", c))
	}
	return d
}

// Reduce folds a chromatic degree into the first octave
func Reduce(c ChromaticScaleDegree) ChromaticScaleDegree {
	return ChromaticScaleDegree(util.Mod(int(c)-1, int(interval.Octave)) + 1)
}

// Canonical returns the canonical spelling sharing the enharmonic's pitch class
func Canonical(d EnharmonicScaleDegree) ScaleDegree {
	return ToScaleDegree(Reduce(EnharmonicToChromatic(d)))
}

func NoteFromScaleDegree(k key.Key, d ScaleDegree, octave int) note.Note {
	return note.New(key.Transpose(k, interval.Interval(ToChromatic(d)-1)), octave)
}

func NoteFromEnharmonicScaleDegree(k key.Key, d EnharmonicScaleDegree, octave int) note.Note {
	return note.New(k, octave).Transpose(interval.Interval(EnharmonicToChromatic(d) - 1))
}

// ScaleDegreeFromNote ignores the octave of n
func ScaleDegreeFromNote(k key.Key, n note.Note) ScaleDegree {
	distance := key.Distance(k, n.Key())
	c := ChromaticScaleDegree(util.Mod(distance, int(interval.Octave)) + 1)
	return ToScaleDegree(c)
}

type Parsed struct {
	DiatonicScaleDegree DiatonicScaleDegree
	Accidental          Accidental
}

var parseRegex = regexp.MustCompile(`^(b|#)?([1-7])$`)

func Parse(s string) (Parsed, error) {
	match := parseRegex.FindStringSubmatch(s)
	if match == nil {
		return Parsed{}, fmt.Errorf("%w: %q", ErrInvalidScaleDegree, s)
	}
	diatonic, _ := strconv.Atoi(match[2])
	return Parsed{
		DiatonicScaleDegree: DiatonicScaleDegree(diatonic),
		Accidental:          Accidental(match[1]),
	}, nil
}

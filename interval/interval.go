package interval

import "fmt"

// Interval is a chromatic distance in semitones
type Interval int

const (
	Unison Interval = iota
	MinorSecond
	MajorSecond
	MinorThird
	MajorThird
	PerfectFourth
	AugmentedFourth
	PerfectFifth
	MinorSixth
	MajorSixth
	MinorSeventh
	MajorSeventh
	Octave
)

// Tritone is spelled both ways depending on context
const Tritone = AugmentedFourth

var names = map[Interval]string{
	Unison:          "Unison",
	MinorSecond:     "Minor 2nd",
	MajorSecond:     "Major 2nd",
	MinorThird:      "Minor 3rd",
	MajorThird:      "Major 3rd",
	PerfectFourth:   "Perfect 4th",
	AugmentedFourth: "Tritone",
	PerfectFifth:    "Perfect 5th",
	MinorSixth:      "Minor 6th",
	MajorSixth:      "Major 6th",
	MinorSeventh:    "Minor 7th",
	MajorSeventh:    "Major 7th",
	Octave:          "Octave",
}

func (i Interval) String() string {
	if name, ok := names[i]; ok {
		return name
	}
	return fmt.Sprintf("%d semitones", int(i))
}

// All returns Unison through Octave in ascending order
func All() []Interval {
	res := make([]Interval, 0, Octave+1)
	for i := Unison; i <= Octave; i++ {
		res = append(res, i)
	}
	return res
}

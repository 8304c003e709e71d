package scaledegree

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsphweid/eartrainer/key"
	"github.com/jsphweid/eartrainer/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRoundTrip(t *testing.T) {
	for _, d := range All() {
		assert.Equal(t, d, ToScaleDegree(ToChromatic(d)))
	}
}

func TestCanonicalCoversFirstOctave(t *testing.T) {
	seen := make(map[ChromaticScaleDegree]bool)
	for _, d := range All() {
		seen[ToChromatic(d)] = true
	}
	assert.Len(t, seen, 12)
	for c := ChromaticScaleDegree(1); c <= 12; c++ {
		assert.True(t, seen[c], "missing chromatic degree %d", c)
	}
}

func TestEnharmonicNeverContradictsCanonical(t *testing.T) {
	for _, d := range All() {
		assert.Equal(t, ToChromatic(d), EnharmonicToChromatic(EnharmonicScaleDegree(d)))
	}
}

func TestEnharmonicMatchesCanonicalCounterpart(t *testing.T) {
	for _, e := range AllEnharmonic() {
		c := EnharmonicToChromatic(e)
		assert.GreaterOrEqual(t, c, MinChromatic)
		assert.LessOrEqual(t, c, MaxChromatic)
		if c <= 12 {
			assert.Equal(t, c, ToChromatic(ToScaleDegree(c)), string(e))
		}
	}
}

func TestEnharmonicExtras(t *testing.T) {
	cases := map[EnharmonicScaleDegree]ChromaticScaleDegree{
		"b5":  7,
		"#5":  9,
		"bb7": 10,
		"8":   13,
		"9":   15,
		"#9":  16,
	}
	for d, c := range cases {
		assert.Equal(t, c, EnharmonicToChromatic(d), string(d))
	}
}

func TestCanonicalSpellingIsLossy(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(ScaleDegree("#4"), Canonical("b5"))
	assert.Equal(ScaleDegree("b6"), Canonical("#5"))
	assert.Equal(ScaleDegree("6"), Canonical("bb7"))
	assert.Equal(ScaleDegree("1"), Canonical("8"))
	assert.Equal(ScaleDegree("2"), Canonical("9"))
	assert.Equal(ScaleDegree("b3"), Canonical("#9"))
}

func TestToScaleDegreePanicsOutsideFirstOctave(t *testing.T) {
	assert.Panics(t, func() { ToScaleDegree(13) })
	assert.Panics(t, func() { ToScaleDegree(0) })
}

func TestReduce(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(ChromaticScaleDegree(1), Reduce(13))
	assert.Equal(ChromaticScaleDegree(4), Reduce(16))
	assert.Equal(ChromaticScaleDegree(12), Reduce(12))
}

func TestNoteFromScaleDegree(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(note.MustParse("C4"), NoteFromScaleDegree(key.C, "1", DefaultOctave))
	assert.Equal(note.MustParse("Eb4"), NoteFromScaleDegree(key.C, "b3", DefaultOctave))
	assert.Equal(note.MustParse("D4"), NoteFromScaleDegree(key.A, "4", DefaultOctave))
	assert.Equal(note.MustParse("F#2"), NoteFromScaleDegree(key.D, "3", 2))
}

func TestNoteFromEnharmonicScaleDegree(t *testing.T) {
	assert.Equal(t, note.MustParse("D5"), NoteFromEnharmonicScaleDegree(key.C, "9", 4))
	assert.Equal(t, note.MustParse("Gb4"), NoteFromEnharmonicScaleDegree(key.C, "b5", 4))
}

func TestScaleDegreeFromNoteIsOctaveInvariant(t *testing.T) {
	for _, k := range key.All() {
		for _, d := range All() {
			for octave := 1; octave <= 7; octave++ {
				n := NoteFromScaleDegree(k, d, octave)
				assert.Equal(t, d, ScaleDegreeFromNote(k, n), "key %v degree %v octave %v", k, d, octave)
			}
		}
	}
}

func TestScaleDegreeFromNote(t *testing.T) {
	assert.Equal(t, ScaleDegree("b7"), ScaleDegreeFromNote(key.D, note.MustParse("C2")))
	assert.Equal(t, ScaleDegree("7"), ScaleDegreeFromNote(key.Db, note.MustParse("C6")))
}

func TestParse(t *testing.T) {
	cases := map[string]Parsed{
		"#4": {DiatonicScaleDegree: 4, Accidental: Sharp},
		"b7": {DiatonicScaleDegree: 7, Accidental: Flat},
		"5":  {DiatonicScaleDegree: 5, Accidental: Natural},
	}
	for input, expected := range cases {
		t.Run(fmt.Sprintf("parse %v", input), func(t *testing.T) {
			parsed, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
		})
	}
}

func TestParseFailsWithoutValidDigit(t *testing.T) {
	for _, input := range []string{"9", "x3", "", "b", "#8", "3b"} {
		_, err := Parse(input)
		assert.True(t, errors.Is(err, ErrInvalidScaleDegree), input)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("#4"))
	assert.False(t, IsValid("b5"))
	assert.True(t, IsValidEnharmonic("b5"))
	assert.False(t, IsValidEnharmonic("b9"))
}

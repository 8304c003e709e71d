package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOctaveIsTwelveSemitones(t *testing.T) {
	assert.Equal(t, Interval(12), Octave)
}

func TestNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Minor 3rd", MinorThird.String())
	assert.Equal("Tritone", Tritone.String())
	assert.Equal("14 semitones", Interval(14).String())
}

func TestAllIsAscending(t *testing.T) {
	all := All()
	assert.Len(t, all, 13)
	for i, v := range all {
		assert.Equal(t, Interval(i), v)
	}
}

package exercise

import (
	"github.com/jsphweid/eartrainer/key"
	"github.com/jsphweid/eartrainer/note"
	"github.com/jsphweid/eartrainer/part"
)

// semitones above the tonic, bass first
var ivViIVoicings = [][]int{
	{-12, 0, 4, 7},
	{-7, 0, 5, 9},
	{-5, -1, 2, 7},
	{-12, 0, 4, 7},
}

// TonicOctave keeps every key's tonic within a fifth of middle C
func TonicOctave(k key.Key) int {
	if k > key.FSharp {
		return 3
	}
	return 4
}

// Cadence is a I-IV-V-I progression establishing k
func Cadence(k key.Key) part.Material {
	tonic := note.New(k, TonicOctave(k))
	chords := make([][]note.Note, 0, len(ivViIVoicings))
	for _, voicing := range ivViIVoicings {
		var chord []note.Note
		for _, offset := range voicing {
			chord = append(chord, tonic+note.Note(offset))
		}
		chords = append(chords, chord)
	}
	return part.FromChords(chords...)
}

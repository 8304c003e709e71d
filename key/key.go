package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/eartrainer/interval"
	"github.com/jsphweid/eartrainer/util"
)

var ErrInvalidKey = errors.New("invalid key")

// Key is a pitch class acting as the tonic. C is 0.
type Key int

const (
	C Key = iota
	Db
	D
	Eb
	E
	F
	FSharp
	G
	Ab
	A
	Bb
	B
)

var names = [12]string{"C", "Db", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

var letters = map[byte]Key{'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B}

// All returns the twelve keys starting from C
func All() []Key {
	res := make([]Key, 0, len(names))
	for k := C; k <= B; k++ {
		res = append(res, k)
	}
	return res
}

func (k Key) String() string {
	return names[util.Mod(int(k), 12)]
}

// Parse accepts a letter optionally followed by any number of '#' or 'b'
func Parse(s string) (Key, error) {
	if s == "" {
		return C, fmt.Errorf("%w: empty string", ErrInvalidKey)
	}
	k, ok := letters[strings.ToUpper(s[:1])[0]]
	if !ok {
		return C, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	for _, r := range s[1:] {
		switch r {
		case '#':
			k++
		case 'b':
			k--
		default:
			return C, fmt.Errorf("%w: %q", ErrInvalidKey, s)
		}
	}
	return k.normalized(), nil
}

func (k Key) normalized() Key {
	return Key(util.Mod(int(k), 12))
}

// Transpose moves the key up (or down, when negative) by the given interval
func Transpose(k Key, i interval.Interval) Key {
	return Key(int(k) + int(i)).normalized()
}

// Distance is the signed semitone distance from 'from' to 'to', in (-12, 12)
func Distance(from, to Key) int {
	return int(to.normalized()) - int(from.normalized())
}

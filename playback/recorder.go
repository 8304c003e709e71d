package playback

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/part"
)

// Recorder is a Player that appends everything it is asked to play onto a
// single timeline instead of sounding it
type Recorder struct {
	mu     sync.Mutex
	Gap    time.Duration
	parts  []part.SteadyPart
	events part.SteadyPart
	end    time.Duration
}

func NewRecorder(gap time.Duration) *Recorder {
	return &Recorder{Gap: gap}
}

func (r *Recorder) PlayPart(ctx context.Context, p part.SteadyPart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.end
	if len(r.parts) > 0 {
		start += r.Gap
	}
	for _, evt := range p {
		evt.Time += start
		r.events = append(r.events, evt)
	}
	r.end = start + p.Duration()
	r.parts = append(r.parts, p)
	return nil
}

// Parts returns every part in the order it was played
func (r *Recorder) Parts() []part.SteadyPart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]part.SteadyPart(nil), r.parts...)
}

func (r *Recorder) Timeline() part.SteadyPart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(part.SteadyPart(nil), r.events...)
}

func (r *Recorder) WriteTo(w io.Writer, bpm float64) error {
	return midi.WriteSteadyPart(w, r.Timeline(), bpm)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parts = nil
	r.events = nil
	r.end = 0
}

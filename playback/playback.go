package playback

import (
	"context"
	"time"

	"github.com/jsphweid/eartrainer/part"
)

// Player returns once the part has fully played. An error means playback failed.
type Player interface {
	PlayPart(ctx context.Context, p part.SteadyPart) error
}

type PlayerFunc func(ctx context.Context, p part.SteadyPart) error

func (f PlayerFunc) PlayPart(ctx context.Context, p part.SteadyPart) error {
	return f(ctx, p)
}

// PlaySequence plays parts one at a time. onStart is called right before each
// part starts. It stops at the first failure and returns it untouched.
func PlaySequence(ctx context.Context, player Player, parts []part.SteadyPart, onStart func(i int)) error {
	for i, p := range parts {
		if onStart != nil {
			onStart(i)
		}
		if err := player.PlayPart(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Delay waits for d or until ctx is done
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Silent waits for as long as the part would have sounded
type Silent struct{}

func (Silent) PlayPart(ctx context.Context, p part.SteadyPart) error {
	return Delay(ctx, p.Duration())
}

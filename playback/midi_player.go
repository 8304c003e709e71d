package playback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jsphweid/eartrainer/part"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var ErrPortNotFound = errors.New("midi output port not found")

// Out is the part of drivers.Out the player needs
type Out interface {
	Send(data []byte) error
}

type scheduled struct {
	at  time.Duration
	msg midi.Message
}

// MIDIPlayer sends parts to a MIDI output in real time
type MIDIPlayer struct {
	mu      sync.Mutex
	out     Out
	channel uint8
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewMIDIPlayer(out Out, channel uint8) *MIDIPlayer {
	return &MIDIPlayer{out: out, channel: channel, sleep: Delay}
}

// FindOutPort opens the first output whose name contains name, or the first
// output at all when name is empty
func FindOutPort(outs []drivers.Out, name string) (drivers.Out, error) {
	for _, out := range outs {
		if name == "" || strings.Contains(strings.ToLower(out.String()), strings.ToLower(name)) {
			if err := out.Open(); err != nil {
				return nil, fmt.Errorf("could not open midi port %q: %w", out.String(), err)
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
}

func (m *MIDIPlayer) schedule(p part.SteadyPart) []scheduled {
	var res []scheduled
	for _, evt := range p {
		for _, n := range evt.Notes {
			if !n.Valid() {
				continue
			}
			res = append(res,
				scheduled{at: evt.Time, msg: midi.NoteOn(m.channel, uint8(n), evt.Velocity)},
				scheduled{at: evt.Time + evt.Duration, msg: midi.NoteOff(m.channel, uint8(n))},
			)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].at != res[j].at {
			return res[i].at < res[j].at
		}
		return res[i].msg.Is(midi.NoteOffMsg) && !res[j].msg.Is(midi.NoteOffMsg)
	})
	return res
}

// PlayPart blocks until the part is over. Parts never overlap on one player.
func (m *MIDIPlayer) PlayPart(ctx context.Context, p part.SteadyPart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var elapsed time.Duration
	pending := m.schedule(p)
	for i, s := range pending {
		if err := m.sleep(ctx, s.at-elapsed); err != nil {
			if serr := m.silence(pending[i:]); serr != nil {
				return errors.Join(err, serr)
			}
			return err
		}
		elapsed = s.at
		if err := m.out.Send(s.msg); err != nil {
			return fmt.Errorf("could not send midi message: %w", err)
		}
	}
	return nil
}

// silence releases every note that still has a note off coming. All note
// offs are attempted; the first send error is returned.
func (m *MIDIPlayer) silence(rest []scheduled) error {
	var first error
	for _, s := range rest {
		if !s.msg.Is(midi.NoteOffMsg) {
			continue
		}
		if err := m.out.Send(s.msg); err != nil && first == nil {
			first = fmt.Errorf("could not release note: %w", err)
		}
	}
	return first
}

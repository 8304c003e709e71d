package playback

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/note"
	"github.com/jsphweid/eartrainer/part"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func steady(notes ...note.Note) part.SteadyPart {
	return part.ToSteady(part.FromNotes(notes...), part.DefaultBPM)
}

func TestPlaySequenceIsSequential(t *testing.T) {
	var log []string
	playing := false
	player := PlayerFunc(func(ctx context.Context, p part.SteadyPart) error {
		assert.False(t, playing, "parts overlapped")
		playing = true
		log = append(log, p[0].Notes[0].String())
		playing = false
		return nil
	})

	var started []int
	parts := []part.SteadyPart{steady(60), steady(62), steady(64)}
	err := PlaySequence(context.Background(), player, parts, func(i int) { started = append(started, i) })

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, started)
	assert.Equal(t, []string{"C4", "D4", "E4"}, log)
}

func TestPlaySequenceStopsAtFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	player := PlayerFunc(func(ctx context.Context, p part.SteadyPart) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	var started []int
	parts := []part.SteadyPart{steady(60), steady(62), steady(64)}
	err := PlaySequence(context.Background(), player, parts, func(i int) { started = append(started, i) })

	assert.Equal(t, boom, err)
	assert.Equal(t, []int{0, 1}, started)
}

func TestDelay(t *testing.T) {
	assert.NoError(t, Delay(context.Background(), 0))
	assert.NoError(t, Delay(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, Delay(ctx, time.Hour))
}

func TestRecorderAppendsWithGap(t *testing.T) {
	r := NewRecorder(100 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, r.PlayPart(ctx, steady(60, 62)))
	require.NoError(t, r.PlayPart(ctx, steady(64)))

	timeline := r.Timeline()
	require.Len(t, timeline, 3)
	assert.Equal(t, 1100*time.Millisecond, timeline[2].Time)
	assert.Len(t, r.Parts(), 2)

	buf := new(bytes.Buffer)
	require.NoError(t, r.WriteTo(buf, part.DefaultBPM))
	s, err := midi.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []note.Note{60, 62, 64}, midi.ToSteadyPart(s).Notes())

	r.Reset()
	assert.Empty(t, r.Timeline())
}

type fakeOut struct {
	sent [][]byte
	err  error
}

func (f *fakeOut) Send(data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

func TestMIDIPlayerSendsNotesInOrder(t *testing.T) {
	out := &fakeOut{}
	player := NewMIDIPlayer(out, 0)
	var slept time.Duration
	player.sleep = func(ctx context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	require.NoError(t, player.PlayPart(context.Background(), steady(60, 60)))

	require.Len(t, out.sent, 4)
	assert.True(t, gomidi.Message(out.sent[0]).Is(gomidi.NoteOnMsg))
	assert.True(t, gomidi.Message(out.sent[1]).Is(gomidi.NoteOffMsg))
	assert.True(t, gomidi.Message(out.sent[2]).Is(gomidi.NoteOnMsg))
	assert.True(t, gomidi.Message(out.sent[3]).Is(gomidi.NoteOffMsg))
	assert.Equal(t, time.Second, slept)
}

func TestMIDIPlayerReleasesNotesWhenCancelled(t *testing.T) {
	out := &fakeOut{}
	player := NewMIDIPlayer(out, 0)
	player.sleep = func(ctx context.Context, d time.Duration) error {
		if d > 0 {
			return context.Canceled
		}
		return nil
	}

	err := player.PlayPart(context.Background(), steady(60))
	assert.Equal(t, context.Canceled, err)
	require.Len(t, out.sent, 2)
	assert.True(t, gomidi.Message(out.sent[1]).Is(gomidi.NoteOffMsg))
}

func TestMIDIPlayerPropagatesSendFailure(t *testing.T) {
	boom := errors.New("unplugged")
	player := NewMIDIPlayer(&fakeOut{err: boom}, 0)
	player.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	err := player.PlayPart(context.Background(), steady(60))
	assert.True(t, errors.Is(err, boom))
}

func TestMIDIPlayerReportsFailedRelease(t *testing.T) {
	unplugged := errors.New("unplugged")
	out := &fakeOut{}
	player := NewMIDIPlayer(out, 0)
	player.sleep = func(ctx context.Context, d time.Duration) error {
		if d > 0 {
			// the port goes away while the note is sounding
			out.err = unplugged
			return context.Canceled
		}
		return nil
	}

	err := player.PlayPart(context.Background(), steady(60))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, unplugged)
	assert.Len(t, out.sent, 1)
}

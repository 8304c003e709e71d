package cmd

import (
	"fmt"

	"github.com/jsphweid/eartrainer/config"
	"github.com/jsphweid/eartrainer/playback"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// openPlayer connects to a MIDI output, or returns a silent player when
// silent is set
func openPlayer(c *config.Config, log *logrus.Logger, silent bool) (playback.Player, func(), error) {
	if silent {
		log.Info("playing silently")
		return playback.Silent{}, func() {}, nil
	}

	drv, err := rtmididrv.New()
	if err != nil {
		return nil, nil, fmt.Errorf("could not start midi driver: %w", err)
	}
	outs, err := drv.Outs()
	if err != nil {
		drv.Close()
		return nil, nil, fmt.Errorf("could not list midi outputs: %w", err)
	}
	out, err := playback.FindOutPort(outs, c.Playback.MidiPort)
	if err != nil {
		drv.Close()
		return nil, nil, err
	}
	log.WithField("port", out.String()).Info("connected to midi output")

	closer := func() {
		out.Close()
		drv.Close()
	}
	return playback.NewMIDIPlayer(out, c.Playback.Channel), closer, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jsphweid/eartrainer/model"
	"github.com/spf13/viper"
)

const envPrefix = "EARTRAINER"

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=trace debug info warn error fatal panic"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	CorsOrigins    []string      `mapstructure:"cors_origins"`
	ReplayDebounce time.Duration `mapstructure:"replay_debounce" validate:"gte=0"`
}

type ExerciseConfig struct {
	PlayCadence  string        `mapstructure:"play_cadence" validate:"required"`
	CadencePause time.Duration `mapstructure:"cadence_pause" validate:"gte=0"`
}

type PlaybackConfig struct {
	Tempo    float64 `mapstructure:"tempo" validate:"gt=0,lte=400"`
	MidiPort string  `mapstructure:"midi_port"`
	Channel  uint8   `mapstructure:"channel" validate:"lte=15"`
}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	Exercise ExerciseConfig `mapstructure:"exercise"`
	Playback PlaybackConfig `mapstructure:"playback"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.replay_debounce", 250*time.Millisecond)
	v.SetDefault("exercise.play_cadence", "true")
	v.SetDefault("exercise.cadence_pause", 100*time.Millisecond)
	v.SetDefault("playback.tempo", 120.0)
	v.SetDefault("playback.midi_port", "")
	v.SetDefault("playback.channel", 0)
}

// NewViper reads eartrainer.yaml from the working directory when present.
// EARTRAINER_* environment variables take precedence, e.g. EARTRAINER_LOG_LEVEL.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("eartrainer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}
	return v, nil
}

func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := model.ParseCadencePolicy(c.Exercise.PlayCadence); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

func Load(configFile string) (*Config, error) {
	v, err := NewViper(configFile)
	if err != nil {
		return nil, err
	}
	return Unmarshal(v)
}

func (c *Config) ExerciseSettings() model.ExerciseSettings {
	policy, err := model.ParseCadencePolicy(c.Exercise.PlayCadence)
	if err != nil {
		// NOTE: Unmarshal already rejected this
		return model.DefaultExerciseSettings()
	}
	return model.ExerciseSettings{PlayCadence: policy}
}

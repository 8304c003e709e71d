package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CadencePolicy int

const (
	CadenceAlways CadencePolicy = iota
	CadenceNever
	CadenceOnlyOnRepeat
)

const onlyOnRepeat = "ONLY_ON_REPEAT"

func ParseCadencePolicy(s string) (CadencePolicy, error) {
	if strings.EqualFold(s, onlyOnRepeat) {
		return CadenceOnlyOnRepeat, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return CadenceAlways, fmt.Errorf("invalid cadence policy %q, expected true, false or %v", s, onlyOnRepeat)
	}
	if b {
		return CadenceAlways, nil
	}
	return CadenceNever, nil
}

func (c CadencePolicy) String() string {
	switch c {
	case CadenceNever:
		return "false"
	case CadenceOnlyOnRepeat:
		return onlyOnRepeat
	default:
		return "true"
	}
}

// MarshalJSON writes true, false or "ONLY_ON_REPEAT"
func (c CadencePolicy) MarshalJSON() ([]byte, error) {
	if c == CadenceOnlyOnRepeat {
		return json.Marshal(onlyOnRepeat)
	}
	return json.Marshal(c == CadenceAlways)
}

func (c *CadencePolicy) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var s string
	switch v := raw.(type) {
	case bool:
		s = strconv.FormatBool(v)
	case string:
		s = v
	default:
		return fmt.Errorf("invalid cadence policy %s", string(data))
	}
	parsed, err := ParseCadencePolicy(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type ExerciseSettings struct {
	PlayCadence CadencePolicy `json:"play_cadence"`
}

func DefaultExerciseSettings() ExerciseSettings {
	return ExerciseSettings{PlayCadence: CadenceAlways}
}

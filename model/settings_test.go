package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCadencePolicy(t *testing.T) {
	cases := map[string]CadencePolicy{
		"true":           CadenceAlways,
		"false":          CadenceNever,
		"ONLY_ON_REPEAT": CadenceOnlyOnRepeat,
		"only_on_repeat": CadenceOnlyOnRepeat,
	}
	for input, expected := range cases {
		p, err := ParseCadencePolicy(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, p, input)
	}

	_, err := ParseCadencePolicy("sometimes")
	assert.Error(t, err)
}

func TestCadencePolicyJSON(t *testing.T) {
	var s ExerciseSettings
	require.NoError(t, json.Unmarshal([]byte(`{"play_cadence": false}`), &s))
	assert.Equal(t, CadenceNever, s.PlayCadence)

	require.NoError(t, json.Unmarshal([]byte(`{"play_cadence": "ONLY_ON_REPEAT"}`), &s))
	assert.Equal(t, CadenceOnlyOnRepeat, s.PlayCadence)

	out, err := json.Marshal(DefaultExerciseSettings())
	require.NoError(t, err)
	assert.JSONEq(t, `{"play_cadence": true}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"play_cadence": 3}`), &s))
}

func TestAnswerList(t *testing.T) {
	l := AnswerList{{"1", "2"}, {"3"}}
	assert.Equal(t, []Answer{"1", "2", "3"}, l.Flat())
	assert.True(t, l.Contains("3"))
	assert.False(t, l.Contains("4"))
}

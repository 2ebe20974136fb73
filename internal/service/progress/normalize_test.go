package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradepath/internal/model"
)

func TestParseScore_PlainNumbers(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"0":     0,
		"12":    12,
		"20":    20,
		"11.99": 11.99,
		"15.5":  15.5,
		" 17 ":  17,
		".5":    0.5,
		"1.5e1": 15,
		"۱۵":    15,
	}
	for raw, want := range cases {
		got, err := ParseScore(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, want, got, "raw=%q", raw)
	}
}

func TestParseScore_SeparatorIsTextualDecimalPoint(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"15/5":  15.5,
		"15/50": 15.50,
		"0/0":   0,
		"12/25": 12.25,
		"9/05":  9.05,
		"۱۵/۵":  15.5,
	}
	for raw, want := range cases {
		got, err := ParseScore(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, want, got, "raw=%q", raw)
	}
}

func TestParseScore_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]error{
		"abc":    ErrNotNumeric,
		"15/5/1": ErrMultipleSeparators,
		"//":     ErrMultipleSeparators,
		"15/":    ErrNotNumeric,
		"/5":     ErrNotNumeric,
		"15/x":   ErrNotNumeric,
		"NaN":    ErrNotNumeric,
		"Inf":    ErrNotNumeric,
		"0x1p4":  ErrNotNumeric,
		"1_000":  ErrNotNumeric,
	}
	for raw, want := range cases {
		_, err := ParseScore(raw)
		require.Error(t, err, "raw=%q", raw)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), "raw=%q err=%v", raw, err)
		assert.Equal(t, raw, pe.Raw)
		assert.ErrorIs(t, err, want, "raw=%q", raw)
	}
}

func TestNormalize_Kinds(t *testing.T) {
	t.Parallel()

	s := Normalize("15/5")
	assert.Equal(t, model.ScoreScored, s.Kind)
	assert.Equal(t, 15.5, s.Value)
	assert.Equal(t, "15.5", s.String())

	s = Normalize("")
	assert.Equal(t, model.ScoreUnscored, s.Kind)
	assert.NoError(t, s.Err)
	assert.Equal(t, model.UnscoredMark, s.String())

	s = Normalize("abc")
	assert.Equal(t, model.ScoreInvalid, s.Kind)
	assert.Error(t, s.Err)
	assert.Equal(t, model.UnscoredMark, s.String())

	s = Missing()
	assert.Equal(t, model.ScoreUnscored, s.Kind)
	assert.Equal(t, model.UnscoredMark, s.String())
}

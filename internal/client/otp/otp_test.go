package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, s State, events ...Event) (State, Outcome) {
	t.Helper()
	var out Outcome
	for _, e := range events {
		s, out = Reduce(s, e)
	}
	return s, out
}

func TestTypingAdvancesFocusAndStopsAtLastBox(t *testing.T) {
	var s State
	for i, d := range []string{"1", "2", "3", "4", "5", "6"} {
		var out Outcome
		s, out = Reduce(s, Input{Index: i, Value: d})
		require.True(t, out.Accepted)
		assert.Equal(t, i == Length-1, out.Completed, "box %d", i)
	}

	assert.Equal(t, "123456", s.Code())
	assert.True(t, s.Complete())
	assert.Equal(t, 5, s.Focus)
}

func TestBackspaceOnEmptiedLastBoxMovesBack(t *testing.T) {
	s, _ := apply(t, State{}, Input{Index: 5, Value: "7"})
	assert.Equal(t, 5, s.Focus)

	s, out := Reduce(s, Backspace{Index: 5})
	require.True(t, out.Accepted)
	assert.False(t, s.Filled(5))
	assert.Equal(t, 5, s.Focus)

	s, _ = Reduce(s, Backspace{Index: 5})
	assert.Equal(t, 4, s.Focus)
}

func TestBackspaceOnEmptyBoxDoesNotDeletePrevious(t *testing.T) {
	s, _ := apply(t, State{}, Input{Index: 0, Value: "1"}, Input{Index: 1, Value: "2"})
	s, _ = Reduce(s, Backspace{Index: 2})

	assert.Equal(t, 1, s.Focus)
	assert.Equal(t, "12", s.Code())
}

func TestBackspaceOnFirstEmptyBoxStays(t *testing.T) {
	s, out := Reduce(State{}, Backspace{Index: 0})
	assert.True(t, out.Accepted)
	assert.Equal(t, 0, s.Focus)
}

func TestInputClearViaEmptyValue(t *testing.T) {
	s, _ := apply(t, State{}, Input{Index: 0, Value: "9"}, Input{Index: 0, Value: ""})
	assert.Equal(t, "", s.Code())
	assert.Equal(t, 0, s.Focus)
}

func TestInputRejected(t *testing.T) {
	start, _ := apply(t, State{}, Input{Index: 0, Value: "1"})

	for name, e := range map[string]Input{
		"letter":       {Index: 1, Value: "a"},
		"two chars":    {Index: 1, Value: "12"},
		"out of range": {Index: 6, Value: "1"},
		"negative":     {Index: -1, Value: "1"},
		"space":        {Index: 1, Value: " "},
	} {
		t.Run(name, func(t *testing.T) {
			s, out := Reduce(start, e)
			assert.False(t, out.Accepted)
			assert.Equal(t, start, s, "state and focus unchanged")
		})
	}
}

func TestPasteRejectsNonDigits(t *testing.T) {
	start, _ := apply(t, State{}, Input{Index: 0, Value: "9"})

	s, out := Reduce(start, Paste{Text: "12a456"})
	assert.False(t, out.Accepted)
	assert.Equal(t, start, s)

	s, out = Reduce(start, Paste{Text: ""})
	assert.False(t, out.Accepted)
	assert.Equal(t, start, s)
}

func TestPasteFullCodeCompletes(t *testing.T) {
	s, out := Reduce(State{}, Paste{Text: "123456"})
	require.True(t, out.Accepted)
	assert.True(t, out.Completed)
	assert.Equal(t, "123456", s.Code())
}

func TestPasteShortCodePadsWithEmpties(t *testing.T) {
	start, _ := Reduce(State{}, Paste{Text: "999999"})

	s, out := Reduce(start, Paste{Text: "12"})
	require.True(t, out.Accepted)
	assert.False(t, out.Completed)
	assert.Equal(t, "12", s.Code())
	assert.False(t, s.Filled(2))
	assert.Equal(t, 2, s.Focus)
}

func TestPasteTruncatesToLength(t *testing.T) {
	s, out := Reduce(State{}, Paste{Text: "1234567x"})
	require.True(t, out.Accepted)
	assert.True(t, out.Completed)
	assert.Equal(t, "123456", s.Code())
}

func TestFocusAndReset(t *testing.T) {
	s, out := Reduce(State{}, Focus{Index: 3})
	assert.True(t, out.Accepted)
	assert.Equal(t, 3, s.Focus)

	_, out = Reduce(s, Focus{Index: 9})
	assert.False(t, out.Accepted)

	s, _ = Reduce(s, Paste{Text: "123456"})
	s, _ = Reduce(s, Reset{})
	assert.Equal(t, State{}, s)
}

func TestFilledDigitInLastBoxWithGapDoesNotComplete(t *testing.T) {
	s, out := apply(t, State{}, Input{Index: 0, Value: "1"}, Input{Index: 5, Value: "6"})
	assert.True(t, out.Accepted)
	assert.False(t, out.Completed)
	assert.Equal(t, "16", s.Code())
}

func TestFromCode(t *testing.T) {
	s, ok := FromCode("000000")
	require.True(t, ok)
	assert.Equal(t, "000000", s.Code())

	_, ok = FromCode("00 000")
	assert.False(t, ok)
}

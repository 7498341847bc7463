// Package otp models the six-box one-time-code entry as a pure reducer.
//
// Each box holds nothing or exactly one decimal digit. Events are applied
// with Reduce, which never mutates its input and reports whether the event
// was accepted and whether it just completed the code.
package otp

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

const Length = common.OTPLength

// State is the content of the six boxes and which one has focus.
// A zero Digits entry is an empty box.
type State struct {
	Digits [Length]byte
	Focus  int
}

// Code concatenates the filled boxes. It has Length characters only when
// every box is filled.
func (s State) Code() string {
	var b strings.Builder
	for _, d := range s.Digits {
		if d != 0 {
			b.WriteByte(d)
		}
	}
	return b.String()
}

// Complete reports whether all boxes hold a digit.
func (s State) Complete() bool {
	for _, d := range s.Digits {
		if d == 0 {
			return false
		}
	}
	return true
}

// Filled reports whether box i holds a digit.
func (s State) Filled(i int) bool {
	return inRange(i) && s.Digits[i] != 0
}

// Event is one user action on the boxes.
type Event interface {
	event()
}

// Input sets box Index to Value, which is either empty (clears the box) or a
// single digit.
type Input struct {
	Index int
	Value string
}

// Backspace on a filled box clears it; on an empty box it moves focus to the
// previous box without touching it.
type Backspace struct {
	Index int
}

// Paste distributes up to Length digits from box 0, emptying the rest.
// Anything after the first Length characters is ignored.
type Paste struct {
	Text string
}

// Focus moves focus to box Index; an index outside the boxes is rejected.
type Focus struct {
	Index int
}

// Reset empties every box and focuses the first one.
type Reset struct{}

func (Input) event()     {}
func (Backspace) event() {}
func (Paste) event()     {}
func (Focus) event()     {}
func (Reset) event()     {}

// Outcome describes what Reduce did with an event.
type Outcome struct {
	// Accepted is false when the event was rejected and the state returned
	// unchanged.
	Accepted bool
	// Completed is true when the event filled the last box of a complete
	// code, or pasted a full code. Flows that auto-submit react to it.
	Completed bool
}

// Reduce applies e to s.
func Reduce(s State, e Event) (State, Outcome) {
	switch e := e.(type) {
	case Input:
		return input(s, e)
	case Backspace:
		return backspace(s, e)
	case Paste:
		return paste(s, e)
	case Focus:
		if !inRange(e.Index) {
			return s, Outcome{}
		}
		s.Focus = e.Index
		return s, Outcome{Accepted: true}
	case Reset:
		return State{}, Outcome{Accepted: true}
	default:
		return s, Outcome{}
	}
}

// FromCode builds a state as if code had been pasted. ok is false when code
// is rejected.
func FromCode(code string) (State, bool) {
	s, out := Reduce(State{}, Paste{Text: code})
	return s, out.Accepted
}

func input(s State, e Input) (State, Outcome) {
	if !inRange(e.Index) || len(e.Value) > 1 {
		return s, Outcome{}
	}
	if e.Value == "" {
		s.Digits[e.Index] = 0
		s.Focus = e.Index
		return s, Outcome{Accepted: true}
	}
	if !isDigit(e.Value[0]) {
		return s, Outcome{}
	}

	s.Digits[e.Index] = e.Value[0]
	s.Focus = e.Index
	if e.Index < Length-1 {
		s.Focus = e.Index + 1
	}
	return s, Outcome{Accepted: true, Completed: e.Index == Length-1 && s.Complete()}
}

func backspace(s State, e Backspace) (State, Outcome) {
	if !inRange(e.Index) {
		return s, Outcome{}
	}
	if s.Digits[e.Index] != 0 {
		s.Digits[e.Index] = 0
		s.Focus = e.Index
		return s, Outcome{Accepted: true}
	}
	if e.Index == 0 {
		s.Focus = 0
		return s, Outcome{Accepted: true}
	}
	s.Focus = e.Index - 1
	return s, Outcome{Accepted: true}
}

func paste(s State, e Paste) (State, Outcome) {
	text := e.Text
	if len(text) > Length {
		text = text[:Length]
	}
	if text == "" {
		return s, Outcome{}
	}
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return s, Outcome{}
		}
	}

	var next State
	copy(next.Digits[:], text)
	next.Focus = min(len(text), Length-1)
	return next, Outcome{Accepted: true, Completed: len(text) == Length}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func inRange(i int) bool {
	return i >= 0 && i < Length
}

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m OTPModel, msgs ...tea.Msg) (OTPModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(OTPModel)
		require.True(t, ok)
	}
	return m, cmd
}

func TestOTPModel_TypingFillsBoxes(t *testing.T) {
	m, cmd := press(t, NewOTPModel("Verify", false),
		runes("1"), runes("2"), runes("3"), runes("4"), runes("5"), runes("6"))

	assert.Equal(t, "123456", m.Code())
	assert.Equal(t, 5, m.state.Focus)
	assert.Nil(t, cmd, "no auto submit when disabled")
	assert.False(t, m.Submitted())
}

func TestOTPModel_AutoSubmitOnLastDigit(t *testing.T) {
	m, cmd := press(t, NewOTPModel("Verify", true),
		runes("1"), runes("2"), runes("3"), runes("4"), runes("5"), runes("6"))

	assert.True(t, m.Submitted())
	require.NotNil(t, cmd)
}

func TestOTPModel_PasteAutoSubmits(t *testing.T) {
	m, cmd := press(t, NewOTPModel("Verify", true),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("654321"), Paste: true})

	assert.Equal(t, "654321", m.Code())
	assert.True(t, m.Submitted())
	require.NotNil(t, cmd)
}

func TestOTPModel_RejectsNonDigits(t *testing.T) {
	m, _ := press(t, NewOTPModel("Verify", true), runes("1"), runes("x"))
	assert.Equal(t, "1", m.Code())
	assert.Equal(t, 1, m.state.Focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12a456"), Paste: true})
	assert.Equal(t, "1", m.Code())
}

func TestOTPModel_BackspaceMovesBackFromEmptyBox(t *testing.T) {
	m, _ := press(t, NewOTPModel("Verify", false), runes("1"), runes("2"))
	require.Equal(t, 2, m.state.Focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, 1, m.state.Focus)
	assert.Equal(t, "12", m.Code())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "1", m.Code())
}

func TestOTPModel_EnterRequiresCompleteCode(t *testing.T) {
	m, cmd := press(t, NewOTPModel("Reset", false), runes("1"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.Submitted())
	assert.Contains(t, m.View(), "Please enter all 6 digits")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("123456"), Paste: true})
	assert.False(t, m.Submitted())
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Submitted())
	assert.NotNil(t, cmd)
}

func TestOTPModel_Cancel(t *testing.T) {
	m, cmd := press(t, NewOTPModel("Verify", false), tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.cancelled)
	assert.False(t, m.Submitted())
	assert.NotNil(t, cmd)
}

func TestOTPModel_ArrowsMoveFocus(t *testing.T) {
	m, _ := press(t, NewOTPModel("Verify", false),
		tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.state.Focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.state.Focus)
}

func TestOTPModel_View(t *testing.T) {
	m, _ := press(t, NewOTPModel("Enter the code", false), runes("4"), runes("2"))
	v := m.View()
	assert.True(t, strings.Contains(v, "Enter the code"))
	assert.Contains(t, v, "4")
	assert.Contains(t, v, "2")
}

func TestOTPModel_ResendKeyEndsWidget(t *testing.T) {
	m, cmd := press(t, NewOTPModel("Reset", false),
		runes("1"), runes("2"), tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.True(t, m.ResendRequested())
	assert.False(t, m.Submitted())
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "ctrl+r new code")
}

func TestOTPModel_ResendWordIsNotACode(t *testing.T) {
	m, _ := press(t, NewOTPModel("Reset", false),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("resend"), Paste: true},
		tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Submitted())
	assert.False(t, m.ResendRequested())
	assert.Empty(t, m.Code())
}

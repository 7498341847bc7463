// Package tui holds the interactive terminal widgets of the client: the
// six-box OTP entry and the signup and reset forms.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/gophauth/internal/client/otp"
)

var (
	// ErrCancelled is returned when the user leaves a widget without submitting.
	ErrCancelled = errors.New("cancelled")
	// ErrResend is returned by ReadOTP when the user asks for a new code.
	ErrResend = errors.New("resend requested")
)

type keyMap struct {
	Submit key.Binding
	Quit   key.Binding
	Left   key.Binding
	Right  key.Binding
	Erase  key.Binding
	Resend key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel")),
	Left:   key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "previous")),
	Right:  key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next")),
	Erase:  key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "erase")),
	Resend: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "new code")),
}

type otpStyles struct {
	Title   lipgloss.Style
	Box     lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
}

func defaultOTPStyles() otpStyles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Width(3).
		Align(lipgloss.Center)
	return otpStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1),
		Box:     box,
		Focused: box.BorderForeground(lipgloss.Color("63")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}

const msgIncomplete = "Please enter all 6 digits"

// OTPModel is a bubbletea model rendering otp.State as six boxes. Keys are
// translated into otp events; the reducer decides what they do.
type OTPModel struct {
	title      string
	autoSubmit bool
	state      otp.State
	message    string
	submitted  bool
	cancelled  bool
	resend     bool
	styles     otpStyles
}

// NewOTPModel returns an empty widget. With autoSubmit the widget finishes
// as soon as the code is completed by typing the last digit or by a paste.
func NewOTPModel(title string, autoSubmit bool) OTPModel {
	return OTPModel{title: title, autoSubmit: autoSubmit, styles: defaultOTPStyles()}
}

func (m OTPModel) Init() tea.Cmd {
	return nil
}

func (m OTPModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var ev otp.Event
	switch {
	case key.Matches(km, keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(km, keys.Resend):
		m.resend = true
		return m, tea.Quit
	case key.Matches(km, keys.Submit):
		if !m.state.Complete() {
			m.message = msgIncomplete
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit
	case key.Matches(km, keys.Erase):
		ev = otp.Backspace{Index: m.state.Focus}
	case key.Matches(km, keys.Left):
		ev = otp.Focus{Index: m.state.Focus - 1}
	case key.Matches(km, keys.Right):
		ev = otp.Focus{Index: m.state.Focus + 1}
	case km.Type == tea.KeyRunes && (km.Paste || len(km.Runes) > 1):
		ev = otp.Paste{Text: string(km.Runes)}
	case km.Type == tea.KeyRunes && len(km.Runes) == 1:
		ev = otp.Input{Index: m.state.Focus, Value: string(km.Runes)}
	default:
		return m, nil
	}

	next, out := otp.Reduce(m.state, ev)
	if !out.Accepted {
		return m, nil
	}
	m.state = next
	m.message = ""
	if out.Completed && m.autoSubmit {
		m.submitted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OTPModel) View() string {
	boxes := make([]string, otp.Length)
	for i, d := range m.state.Digits {
		content := " "
		if d != 0 {
			content = string(d)
		}
		style := m.styles.Box
		if i == m.state.Focus {
			style = m.styles.Focused
		}
		boxes[i] = style.Render(content)
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.styles.Error.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("enter submit • ctrl+r new code • esc cancel • paste accepted"))
	return b.String()
}

// Code returns the composed code.
func (m OTPModel) Code() string {
	return m.state.Code()
}

func (m OTPModel) Submitted() bool {
	return m.submitted
}

// ResendRequested reports whether the widget was left with the resend key.
func (m OTPModel) ResendRequested() bool {
	return m.resend
}

// ReadOTP runs the widget on in/out and returns the entered code. It returns
// ErrResend when the user pressed the resend key and ErrCancelled when the
// widget was left without a code.
func ReadOTP(ctx context.Context, in io.Reader, out io.Writer, title string, autoSubmit bool) (string, error) {
	p := tea.NewProgram(NewOTPModel(title, autoSubmit),
		tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("otp widget: %w", err)
	}
	m, ok := final.(OTPModel)
	if ok && m.resend {
		return "", ErrResend
	}
	if !ok || !m.submitted {
		return "", ErrCancelled
	}
	return m.Code(), nil
}

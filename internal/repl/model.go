package repl

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/assistant/internal/contact"
)

// maxTranscript bounds the number of exchanges kept on screen.
const maxTranscript = 100

// exchange is one input line and its answer.
type exchange struct {
	Input  string
	Output string
	Failed bool
}

// Model is the Bubble Tea model for the conversation.
type Model struct {
	input      textinput.Model
	help       help.Model
	keys       keyMap
	book       *contact.AddressBook
	dispatcher Dispatcher
	prompt     string
	greeting   string
	transcript []exchange
	width      int
	done       bool
}

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// WithPrompt sets the text shown before the input field.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) {
		m.prompt = prompt
	}
}

// WithGreeting sets the line shown above the transcript.
func WithGreeting(greeting string) ModelOption {
	return func(m *Model) {
		m.greeting = greeting
	}
}

// NewModel creates a Model with a focused input line.
func NewModel(book *contact.AddressBook, d Dispatcher, opts ...ModelOption) Model {
	m := Model{
		help:       help.New(),
		keys:       defaultKeyMap(),
		book:       book,
		dispatcher: d,
		prompt:     "Enter a command: ",
	}
	for _, o := range opts {
		o(&m)
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render(m.prompt)
	ti.Placeholder = "help"
	ti.Focus()
	m.input = ti
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input line and records the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res := m.dispatcher.Dispatch(m.book, line)
	m.transcript = append(m.transcript, exchange{Input: line, Output: res.Output, Failed: res.Failed})
	if len(m.transcript) > maxTranscript {
		m.transcript = m.transcript[len(m.transcript)-maxTranscript:]
	}

	if res.Quit {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the greeting, past exchanges, and the input line.
func (m Model) View() string {
	var b strings.Builder

	if m.greeting != "" {
		b.WriteString(greetingStyle.Render(m.greeting))
		b.WriteString("\n")
	}

	for _, ex := range m.transcript {
		b.WriteString(promptStyle.Render(m.prompt))
		b.WriteString(ex.Input)
		b.WriteString("\n")
		b.WriteString(renderOutput(ex.Output, ex.Failed))
		b.WriteString("\n")
	}

	if m.done {
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

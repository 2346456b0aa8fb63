package repl

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/assistant/internal/contact"
)

func newTestModel() Model {
	return NewModel(contact.NewAddressBook(), newRegistry(),
		WithPrompt("> "),
		WithGreeting("Welcome to the assistant bot!"),
	)
}

// enter types line into the model and presses enter.
func enter(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(contact.NewAddressBook(), newRegistry())

	if m.prompt != "Enter a command: " {
		t.Errorf("prompt = %q, want default", m.prompt)
	}
	if !m.input.Focused() {
		t.Error("input should be focused")
	}
	if len(m.transcript) != 0 {
		t.Errorf("transcript len = %d, want 0", len(m.transcript))
	}
}

func TestModel_Init_ReturnsBlinkCmd(t *testing.T) {
	if newTestModel().Init() == nil {
		t.Fatal("Init() should return a non-nil Cmd for the cursor blink")
	}
}

func TestModel_Submit_RecordsExchange(t *testing.T) {
	m := enter(t, newTestModel(), "add Alice 1234567890")

	if len(m.transcript) != 1 {
		t.Fatalf("transcript len = %d, want 1", len(m.transcript))
	}
	ex := m.transcript[0]
	if ex.Input != "add Alice 1234567890" || ex.Output != "Contact added." || ex.Failed {
		t.Errorf("exchange = %+v", ex)
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
	if _, ok := m.book.Find("Alice"); !ok {
		t.Error("book should contain Alice")
	}
}

func TestModel_Submit_FailureIsMarked(t *testing.T) {
	m := enter(t, newTestModel(), "add Alice 12")

	if !m.transcript[0].Failed {
		t.Error("Failed = false, want true for an invalid phone")
	}
	if m.transcript[0].Output != "Phone number must consist of 10 digits" {
		t.Errorf("Output = %q", m.transcript[0].Output)
	}
}

func TestModel_Submit_ExitQuits(t *testing.T) {
	m := newTestModel()
	m.input.SetValue("exit")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := next.(Model)

	if !updated.done {
		t.Error("model should be done after exit")
	}
	if cmd == nil {
		t.Fatal("exit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit cmd should produce tea.QuitMsg")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(k.String(), func(t *testing.T) {
			next, cmd := newTestModel().Update(k)
			if !next.(Model).done {
				t.Error("model should be done")
			}
			if cmd == nil {
				t.Error("expected tea.Quit cmd")
			}
		})
	}
}

func TestModel_TypingQDoesNotQuit(t *testing.T) {
	next, _ := newTestModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	updated := next.(Model)

	if updated.done {
		t.Error("typing q should not quit")
	}
	if updated.input.Value() != "q" {
		t.Errorf("input = %q, want %q", updated.input.Value(), "q")
	}
}

func TestModel_TranscriptIsBounded(t *testing.T) {
	m := newTestModel()
	for i := 0; i < maxTranscript+5; i++ {
		m = enter(t, m, "hello")
	}
	if len(m.transcript) != maxTranscript {
		t.Errorf("transcript len = %d, want %d", len(m.transcript), maxTranscript)
	}
}

func TestModel_Update_WindowSizeMsg(t *testing.T) {
	next, _ := newTestModel().Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if w := next.(Model).width; w != 120 {
		t.Errorf("width = %d, want 120", w)
	}
}

func TestModel_View(t *testing.T) {
	m := enter(t, newTestModel(), "hello")

	view := m.View()

	for _, want := range []string{"Welcome to the assistant bot!", "hello", "How can I help you?", "run command"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_View_DoneHidesInput(t *testing.T) {
	m := enter(t, newTestModel(), "exit")

	view := m.View()

	if strings.Contains(view, "run command") {
		t.Errorf("finished View() should not show the help bar:\n%s", view)
	}
	if !strings.Contains(view, "Goodbye!") {
		t.Errorf("finished View() should keep the transcript:\n%s", view)
	}
}

// TestModel_Teatest_Session drives a full conversation through teatest.
func TestModel_Teatest_Session(t *testing.T) {
	m := newTestModel()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	for _, line := range []string{"add Alice 1234567890", "add-birthday Alice 03.06.1990", "birthdays", "exit"} {
		tm.Type(line)
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	}

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.done {
		t.Error("final model should be done")
	}
	if len(final.transcript) != 4 {
		t.Fatalf("transcript len = %d, want 4", len(final.transcript))
	}
	if got := final.transcript[2].Output; got != "Alice: in 2 days" {
		t.Errorf("birthdays output = %q, want %q", got, "Alice: in 2 days")
	}
}

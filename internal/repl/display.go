// Package repl runs the assistant conversation: read a line, dispatch it,
// print the result, repeat. It renders as a Bubble Tea TUI on a terminal
// and as plain prompt/answer lines otherwise.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/contact"
)

// Dispatcher runs one input line against the book.
type Dispatcher interface {
	Dispatch(book *contact.AddressBook, line string) command.Result
}

// Verify at compile time that the command registry is a Dispatcher.
var _ Dispatcher = (*command.Registry)(nil)

// Display runs a conversation until the user quits or input ends.
type Display interface {
	Run(ctx context.Context) error
}

// Options configures display creation.
type Options struct {
	In         io.Reader    // Input source (default: os.Stdin).
	Out        io.Writer    // Output destination (default: os.Stdout).
	ForcePlain bool         // Force plain lines even on a TTY.
	Prompt     string       // Printed before each input line.
	Greeting   string       // Printed once at start.
	Book       *contact.AddressBook
	Dispatcher Dispatcher
	Logger     *slog.Logger // Optional.
}

// NewDisplay returns a TUI display when both input and output are
// terminals, or a plain line display otherwise. ForcePlain overrides
// TTY detection.
func NewDisplay(opts Options) Display {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Book == nil {
		opts.Book = contact.NewAddressBook()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	plain := &PlainDisplay{opts: opts}
	if opts.ForcePlain || !isTTY(opts.In) || !isTTY(opts.Out) {
		return plain
	}
	return &TUIDisplay{opts: opts}
}

// isTTY reports whether v is an *os.File connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay prints a prompt, reads a line, and prints the answer.
type PlainDisplay struct {
	opts Options
}

// Run loops until a quitting command, end of input, or ctx cancellation.
// End of input ends the conversation without error.
func (d *PlainDisplay) Run(ctx context.Context) error {
	w := d.opts.Out
	if d.opts.Greeting != "" {
		_, _ = fmt.Fprintln(w, d.opts.Greeting)
	}

	sc := bufio.NewScanner(d.opts.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, _ = fmt.Fprint(w, d.opts.Prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("repl: reading input: %w", err)
			}
			_, _ = fmt.Fprintln(w)
			d.opts.Logger.Debug("input closed")
			return nil
		}

		res := d.opts.Dispatcher.Dispatch(d.opts.Book, sc.Text())
		_, _ = fmt.Fprintln(w, res.Output)
		if res.Quit {
			return nil
		}
	}
}

// TUIDisplay runs the conversation as a Bubble Tea program.
// Falls back to PlainDisplay if the program fails to start.
type TUIDisplay struct {
	opts Options
}

// Run starts the Bubble Tea program and blocks until it exits.
func (d *TUIDisplay) Run(ctx context.Context) error {
	model := NewModel(d.opts.Book, d.opts.Dispatcher,
		WithPrompt(d.opts.Prompt),
		WithGreeting(d.opts.Greeting),
	)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(d.opts.In),
		tea.WithOutput(d.opts.Out),
	)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.opts.Logger.Warn("tui failed, falling back to plain output", "error", err)
		plain := &PlainDisplay{opts: d.opts}
		return plain.Run(ctx)
	}
	return nil
}

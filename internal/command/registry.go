// Package command maps assistant input lines to handlers operating on an
// address book. Handler errors never escape: they become the printed output.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/smileynet/assistant/internal/contact"
)

// InvalidCommand is printed for empty or unrecognised input.
const InvalidCommand = "Invalid command."

// AnyArgs disables the upper arity bound.
const AnyArgs = -1

// Handler runs one command against the book and returns the text to print.
type Handler func(args []string, book *contact.AddressBook) (string, error)

// Command is one entry of the dispatch table.
type Command struct {
	Name    string
	Aliases []string
	Usage   string // e.g. "add <name> [phone]"
	Help    string
	MinArgs int
	MaxArgs int  // AnyArgs for no upper bound
	Quit    bool // ends the session after running
	Run     Handler
}

// Result is the outcome of dispatching one input line.
type Result struct {
	Command string
	Output  string
	Failed  bool // unknown command, arity mistake, or handler error
	Quit    bool
}

// Registry maps command names and aliases to commands.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	commands map[string]*Command
	primary  []string
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock overrides time.Now for date-dependent commands.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Now returns the registry clock's current time.
func (r *Registry) Now() time.Time { return r.now() }

// Register adds cmd under its name and aliases, overwriting existing entries.
// Panics if the name is empty or Run is nil (programmer error).
func (r *Registry) Register(cmd Command) {
	if cmd.Name == "" {
		panic("command: Register called with empty name")
	}
	if cmd.Run == nil {
		panic(fmt.Sprintf("command: Register %q called with nil handler", cmd.Name))
	}
	name := strings.ToLower(cmd.Name)
	if _, exists := r.commands[name]; !exists {
		r.primary = append(r.primary, name)
	}
	c := cmd
	r.commands[name] = &c
	for _, alias := range cmd.Aliases {
		r.commands[strings.ToLower(alias)] = &c
	}
}

// Lookup finds a command by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (*Command, error) {
	c, ok := r.commands[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownCommandError{Name: name, Available: r.Names()}
	}
	return c, nil
}

// Names returns all registered names and aliases in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Commands returns the registered commands in registration order,
// without alias duplicates.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.primary))
	for _, name := range r.primary {
		out = append(out, r.commands[name])
	}
	return out
}

// ParseInput splits a line on whitespace into a lower-cased command token
// and its positional arguments. Arguments keep their case.
func ParseInput(line string) (string, []string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}

// Dispatch parses line, runs the matching command against book, and
// returns its printable result. It never returns an error: unknown
// commands, arity mistakes, handler errors, and handler panics all
// become output text.
func (r *Registry) Dispatch(book *contact.AddressBook, line string) Result {
	name, args := ParseInput(line)
	if name == "" {
		return Result{Output: InvalidCommand, Failed: true}
	}

	cmd, err := r.Lookup(name)
	if err != nil {
		r.logger.Debug("unknown command", "command", name)
		return Result{Command: name, Output: InvalidCommand, Failed: true}
	}

	r.logger.Debug("dispatch", "command", cmd.Name, "args", len(args))

	if err := checkArity(cmd, args); err != nil {
		r.logger.Info("command failed", "command", cmd.Name, "error", err)
		return Result{Command: cmd.Name, Output: err.Error(), Failed: true}
	}

	out, failed := r.safe(cmd.Name, cmd.Run)(args, book)
	return Result{Command: cmd.Name, Output: out, Failed: failed, Quit: cmd.Quit}
}

// safe wraps h so that errors and panics are translated into output text.
func (r *Registry) safe(name string, h Handler) func([]string, *contact.AddressBook) (string, bool) {
	return func(args []string, book *contact.AddressBook) (out string, failed bool) {
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("command panicked", "command", name, "panic", p)
				out, failed = fmt.Sprintf("Error: %v", p), true
			}
		}()
		res, err := h(args, book)
		if err != nil {
			r.logger.Info("command failed", "command", name, "error", err)
			return err.Error(), true
		}
		return res, false
	}
}

func checkArity(cmd *Command, args []string) error {
	if len(args) < cmd.MinArgs || (cmd.MaxArgs != AnyArgs && len(args) > cmd.MaxArgs) {
		return &ArityError{Command: cmd.Name, Usage: cmd.Usage, Got: len(args)}
	}
	return nil
}

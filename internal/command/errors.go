package command

import (
	"fmt"
	"strings"
)

// ArityError reports a command called with the wrong number of arguments.
type ArityError struct {
	Command string
	Usage   string
	Got     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("Wrong number of arguments for %s. Usage: %s", e.Command, e.Usage)
}

// UnknownCommandError indicates a command name is not registered.
type UnknownCommandError struct {
	Name      string
	Available []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

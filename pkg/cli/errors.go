package cli

import (
	"fmt"

	synoperrors "synack/pkg/synop/errors"
)

// CommandError wraps a failure from a subcommand with its name, so the
// root command can print one consistent line.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

// WarningsError is returned in strict mode when a report decoded
// successfully but accumulated warnings. The output was already
// printed; the error only drives the exit status.
type WarningsError struct {
	Warnings *synoperrors.WarningList
}

func (e *WarningsError) Error() string {
	return fmt.Sprintf("decode produced %d warning(s):\n%s", e.Warnings.Count(), e.Warnings)
}

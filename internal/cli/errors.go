package cli

import (
	"fmt"

	"github.com/fatih/color"

	apperrors "github.com/example/tourney/internal/errors"
)

// FormatError renders a command error for the terminal. Conflicts and store
// failures get a hint that the command is safe to run again.
func FormatError(err error) string {
	msg := fmt.Sprintf("%s %v", color.New(color.FgRed).Sprint("✗"), err)
	if apperrors.IsRetryable(err) {
		msg += "\n  " + color.New(color.FgYellow).Sprint("nothing was saved; retry the command")
	}
	return msg
}

package utils

import (
	"errors"
	"fmt"
	"os"

	"mrview/internal/errcodes"
	"mrview/internal/systemcodes"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// PromptConfirm asks a yes/no question on the terminal.
var PromptConfirm = func(message string, d bool) (bool, error) {
	answer := d
	err := survey.AskOne(&survey.Confirm{
		Message: message,
		Default: d,
	}, &answer)
	if err != nil {
		return false, err
	}

	return answer, nil
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errcodes.ErrMissingServer),
		errors.Is(err, errcodes.ErrServerURLMustBeHTTP):
		return systemcodes.ErrorCodeConfig
	case errors.Is(err, errcodes.ErrTransport):
		return systemcodes.ErrorCodeTransport
	case errors.Is(err, errcodes.ErrMergeRejected):
		return systemcodes.ErrorCodeRejected
	default:
		return systemcodes.ErrorCodeGeneric
	}
}

var exit = os.Exit

type runCommandError func(*cobra.Command, []string) error
type runCommandNoError func(*cobra.Command, []string)

func RunCommandWrapper(fn runCommandError) runCommandNoError {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			exit(ExitCode(err))
		}
	}
}

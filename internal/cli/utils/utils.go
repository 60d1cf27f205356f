package utils

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"prreport/internal/errcodes"
	"prreport/internal/systemcodes"
)

type runCommandError func(*cobra.Command, []string) error
type runCommandNoError func(*cobra.Command, []string)

// RunCommandWrapper adapts an error-returning command runner to
// cobra's Run signature, mapping known errors to exit codes.
func RunCommandWrapper(fn runCommandError) runCommandNoError {
	return func(cmd *cobra.Command, args []string) {
		err := fn(cmd, args)
		if err != nil {
			fmt.Println(err)

			switch {
			case errors.Is(err, errcodes.ErrFetchFailed):
				os.Exit(systemcodes.ErrorCodeFetchFailed)
			case errors.Is(err, errcodes.ErrMissingApiToken),
				errors.Is(err, errcodes.ErrMissingOwner),
				errors.Is(err, errcodes.ErrMissingRepository):
				os.Exit(systemcodes.ErrorCodeConfiguration)
			default:
				os.Exit(systemcodes.ErrorCodeGeneric)
			}
		}
	}
}

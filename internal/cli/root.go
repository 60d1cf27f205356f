package cli

import (
	"fmt"
	"os"

	reportcmd "prreport/internal/cli/report"
	"prreport/internal/systemcodes"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Execute runs the report command as the program root. The tool is
// single-purpose, so the report command doubles as the root command.
func Execute() {
	cmd := reportcmd.New()
	cmd.Use = "prreport [owner] [repo]"
	cmd.Version = fmt.Sprintf("%v, commit %v, built at %v", version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(systemcodes.ErrorCodeGeneric)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"prreport/internal/cli"
	"prreport/internal/configutils"
	"prreport/internal/systemcodes"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	err := configutils.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(systemcodes.ErrorCodeConfiguration)
	}

	cli.Execute()
}

package report

import (
	"fmt"
	"os"

	"github.com/gosuri/uilive"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"prreport/internal/cli/utils"
	"prreport/internal/email"
	"prreport/internal/pkg/api"
	"prreport/internal/pkg/github"
	reportbuilder "prreport/internal/report"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [owner] [repo]",
		Short: "Report the state of pull requests",
		Long: `Fetches the pull requests of a GitHub repository and prints a
status report grouped by lifecycle state (open/merged/closed).`,
		Args: cobra.MaximumNArgs(2),
		Run:  utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().String("api-token", "", "GitHub API access token")
	cmd.Flags().String("start-date", defaultStartDate, "oldest update to accept, as a relative offset (e.g. 'weeks=-1')")
	cmd.Flags().String("end-date", "", "newest update to accept, as a relative offset")
	cmd.Flags().Int("per-page", github.DefaultPerPage, "pull requests fetched per page")
	cmd.Flags().Bool("debug", false, "enable debug output")
	cmd.Flags().String("email-from", "", "report sender address")
	cmd.Flags().String("email-to", "", "report recipient address")
	cmd.Flags().String("email-subject", "", "report subject line")

	return cmd
}

func runCmd(cmd *cobra.Command, args []string) error {
	params := &cmdParams{}
	fillDefaultParams(params)
	if err := fillFlagParams(cmd, args, params); err != nil {
		return err
	}
	if err := params.validate(); err != nil {
		return err
	}

	if params.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	apiClient, err := api.New(&api.Options{
		Credentials: api.Credentials{Token: params.Token},
		Debug:       params.Debug,
	})
	if err != nil {
		return err
	}

	prs, err := fetch(github.New(apiClient), params)
	if err != nil {
		return err
	}

	sender := &email.ConsoleSender{Out: cmd.OutOrStdout()}

	return sender.Send(&email.Message{
		From:    params.EmailFrom,
		To:      params.EmailTo,
		Subject: params.EmailSubject,
		Body:    reportbuilder.Build(prs),
	})
}

func fetch(c *github.Client, params *cmdParams) ([]*github.PullRequest, error) {
	writer := uilive.New()
	writer.Out = os.Stderr
	writer.Start()
	defer writer.Stop()

	prs, err := c.GetPullRequests(&github.GetPullRequestsOptions{
		Owner:      params.Owner,
		Repo:       params.Repo,
		OldestDate: params.StartDate,
		LatestDate: params.EndDate,
		PerPage:    params.PerPage,
		Progress: func(page int) {
			fmt.Fprintf(writer, "Fetching pull requests... page %d\n", page)
		},
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(writer, "Fetched %d pull requests\n", len(prs))

	return prs, nil
}

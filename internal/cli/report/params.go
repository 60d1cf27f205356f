package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prreport/internal/configutils"
	"prreport/internal/errcodes"
	"prreport/internal/gitutils"
	"prreport/internal/pkg/github"
)

const (
	defaultStartDate    = "weeks=-1"
	defaultEmailFrom    = "weekly-reports@company.com"
	defaultEmailTo      = "weekly-reports@company.com"
	defaultEmailSubject = "Weekly GitHub PullRequest Report"
)

type cmdParams struct {
	Owner        string
	Repo         string
	Token        string
	StartDate    *time.Time
	EndDate      *time.Time
	PerPage      int
	Debug        bool
	EmailFrom    string
	EmailTo      string
	EmailSubject string
}

type paramsFiller interface {
	Fill(params *cmdParams)
}

// gitParamsFiller defaults owner/repo from the github.com remote of
// the repository the command runs inside of.
type gitParamsFiller struct{}

func (pf *gitParamsFiller) Fill(params *cmdParams) {
	remote, err := gitutils.GetRemoteInfo()
	if err != nil {
		return
	}

	params.Owner = remote.Owner
	params.Repo = remote.Name
}

// viperParamsFiller pulls values merged from config files, .env and
// the process environment.
type viperParamsFiller struct{}

func (pf *viperParamsFiller) Fill(params *cmdParams) {
	if o := viper.GetString("owner"); o != "" {
		params.Owner = o
	}
	if r := viper.GetString("repo"); r != "" {
		params.Repo = r
	}
	if t := viper.GetString("api_token"); t != "" {
		params.Token = t
	}
	if f := viper.GetString("email_from"); f != "" {
		params.EmailFrom = f
	}
	if t := viper.GetString("email_to"); t != "" {
		params.EmailTo = t
	}
	if s := viper.GetString("email_subject"); s != "" {
		params.EmailSubject = s
	}
}

func fillDefaultParams(params *cmdParams) {
	params.EmailFrom = defaultEmailFrom
	params.EmailTo = defaultEmailTo
	params.EmailSubject = defaultEmailSubject
	params.PerPage = github.DefaultPerPage

	paramsFillers := []paramsFiller{
		&gitParamsFiller{},
		&viperParamsFiller{},
	}

	for _, pf := range paramsFillers {
		pf.Fill(params)
	}
}

func fillFlagParams(cmd *cobra.Command, args []string, params *cmdParams) error {
	flags := cmd.Flags()

	if len(args) > 0 {
		params.Owner = args[0]
	}
	if len(args) > 1 {
		params.Repo = args[1]
	}

	params.Token = configutils.GetStringFlagOrDefault(flags, "api-token", params.Token)
	params.EmailFrom = configutils.GetStringFlagOrDefault(flags, "email-from", params.EmailFrom)
	params.EmailTo = configutils.GetStringFlagOrDefault(flags, "email-to", params.EmailTo)
	params.EmailSubject = configutils.GetStringFlagOrDefault(flags, "email-subject", params.EmailSubject)
	params.PerPage = configutils.GetIntFlagOrDefault(flags, "per-page", params.PerPage)
	params.Debug = configutils.GetBoolFlagOrDefault(flags, "debug", false)

	now := time.Now()

	start, err := parseRelativeDate(
		configutils.GetStringFlagOrDefault(flags, "start-date", ""),
		now,
	)
	if err != nil {
		return errors.Wrap(err, "invalid --start-date")
	}
	params.StartDate = start

	end, err := parseRelativeDate(
		configutils.GetStringFlagOrDefault(flags, "end-date", ""),
		now,
	)
	if err != nil {
		return errors.Wrap(err, "invalid --end-date")
	}
	params.EndDate = end

	return nil
}

func (p *cmdParams) validate() error {
	if p.Owner == "" {
		return errcodes.ErrMissingOwner
	}
	if p.Repo == "" {
		return errcodes.ErrMissingRepository
	}
	if p.Token == "" {
		return errcodes.ErrMissingApiToken
	}

	return nil
}

var deltaUnits = map[string]time.Duration{
	"microseconds": time.Microsecond,
	"milliseconds": time.Millisecond,
	"seconds":      time.Second,
	"minutes":      time.Minute,
	"hours":        time.Hour,
	"days":         24 * time.Hour,
	"weeks":        7 * 24 * time.Hour,
}

func validDeltaUnits() []string {
	units := make([]string, 0, len(deltaUnits))
	for u := range deltaUnits {
		units = append(units, u)
	}
	sort.Strings(units)

	return units
}

// parseRelativeDate evaluates an offset expression such as
// "weeks=-1" or "days=-3, hours=12" against now. An empty expression
// means no bound.
func parseRelativeDate(expr string, now time.Time) (*time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	result := now
	for _, pair := range strings.Split(expr, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("%q is not a unit=value pair", pair)
		}

		unit, ok := deltaUnits[strings.TrimSpace(kv[0])]
		if !ok {
			return nil, fmt.Errorf(
				"%q is not a valid modifier; valid options %v",
				kv[0], validDeltaUnits(),
			)
		}

		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", kv[1])
		}

		result = result.Add(time.Duration(n) * unit)
	}

	return &result, nil
}

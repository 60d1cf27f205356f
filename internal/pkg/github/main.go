package github

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"prreport/internal/errcodes"
	"prreport/internal/pkg/api"
)

// DefaultPerPage is the page size used when the caller does not set one.
const DefaultPerPage = 30

// Client drives paginated pull request queries over an api.Client.
type Client struct {
	api *api.Client
}

func New(api *api.Client) *Client {
	return &Client{api: api}
}

type GetPullRequestsOptions struct {
	Owner string
	Repo  string
	// OldestDate and LatestDate bound the accepted update timestamps;
	// nil means unbounded on that side.
	OldestDate *time.Time
	LatestDate *time.Time
	// PerPage is the page size, DefaultPerPage when zero.
	PerPage int
	// Progress, when set, is called before each page request.
	Progress func(page int)
}

// GetPullRequests returns every pull request of owner/repo whose
// update time falls inside the requested date range.
//
// Pages arrive server-sorted by descending update time, so the walk
// stops as soon as a page comes back short or its last record falls
// behind the oldest bound: no later page can carry anything newer.
// Any non-success page aborts the whole fetch; partial results are
// never returned.
func (c *Client) GetPullRequests(o *GetPullRequestsOptions) ([]*PullRequest, error) {
	if o.Owner == "" {
		return nil, errcodes.ErrMissingOwner
	}
	if o.Repo == "" {
		return nil, errcodes.ErrMissingRepository
	}

	perPage := o.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	path := strings.Join([]string{"repos", o.Owner, o.Repo, "pulls"}, "/")
	dateRange := NewDateRange(o.OldestDate, o.LatestDate)

	var prs []*PullRequest
	page := 0
	for {
		page++
		log.Debug().
			Int("page", page).
			Int("per_page", perPage).
			Msg("fetching pull request page")

		if o.Progress != nil {
			o.Progress(page)
		}

		r, err := c.api.Get(&api.RequestOptions{
			Path: path,
			Params: map[string]string{
				"page":      strconv.Itoa(page),
				"per_page":  strconv.Itoa(perPage),
				"state":     "all",
				"sort":      "updated",
				"direction": "desc",
			},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pull request page %d", page)
		}
		if !c.api.Success(r, http.StatusOK) {
			return nil, errors.Wrapf(errcodes.ErrFetchFailed,
				"unexpected status %q on page %d", r.Status(), page)
		}

		batch := decodePage(r.Body())
		prs = append(prs, dateRange.Filter(batch)...)

		// Termination looks at the unfiltered page.
		if len(batch) < perPage {
			break
		}
		if dateRange.Oldest != "" &&
			batch[len(batch)-1].Updated() < dateRange.Oldest {
			break
		}
	}

	return prs, nil
}

func decodePage(body []byte) []*PullRequest {
	var prs []*PullRequest
	gjson.ParseBytes(body).ForEach(func(_, value gjson.Result) bool {
		prs = append(prs, NewPullRequest(value))
		return true
	})

	return prs
}

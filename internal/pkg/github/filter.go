package github

import "time"

// DateRange bounds pull requests by their update timestamp. Bounds
// are ISO-8601 strings in UTC so that lexical comparison matches
// chronological order; an empty bound is open-ended.
type DateRange struct {
	Oldest string
	Latest string
}

func NewDateRange(oldest, latest *time.Time) DateRange {
	return DateRange{
		Oldest: isoBound(oldest),
		Latest: isoBound(latest),
	}
}

func isoBound(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

// Contains reports whether the pull request's update time falls inside
// the range. With both bounds unset every record passes.
func (d DateRange) Contains(pr *PullRequest) bool {
	if d.Oldest == "" && d.Latest == "" {
		return true
	}

	if d.Oldest != "" && pr.Updated() < d.Oldest {
		return false
	}

	if d.Latest != "" && pr.Updated() > d.Latest {
		return false
	}

	return true
}

// Filter returns the pull requests inside the range, order preserved.
func (d DateRange) Filter(prs []*PullRequest) []*PullRequest {
	var out []*PullRequest
	for _, pr := range prs {
		if d.Contains(pr) {
			out = append(out, pr)
		}
	}

	return out
}

package github

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// ShortTitleMaxLen is the truncation point for ShortTitle.
const ShortTitleMaxLen = 40

const shortTitleMarker = ">"

// PullRequest is a read-only view over one raw API item. Fields are
// read from the raw payload on access; nothing is mutated after
// construction.
type PullRequest struct {
	raw gjson.Result
}

func NewPullRequest(raw gjson.Result) *PullRequest {
	return &PullRequest{raw: raw}
}

// Raw returns the underlying payload.
func (pr *PullRequest) Raw() gjson.Result { return pr.raw }

func (pr *PullRequest) Number() string { return pr.raw.Get("number").String() }
func (pr *PullRequest) State() string  { return pr.raw.Get("state").String() }
func (pr *PullRequest) Title() string  { return pr.raw.Get("title").String() }

// Created returns the creation timestamp as an ISO-8601 string.
func (pr *PullRequest) Created() string { return pr.raw.Get("created_at").String() }

// Updated returns the last-update timestamp as an ISO-8601 string.
func (pr *PullRequest) Updated() string { return pr.raw.Get("updated_at").String() }

// Merged returns the merge timestamp, or "" when not merged.
func (pr *PullRequest) Merged() string { return pr.raw.Get("merged_at").String() }

// Closed returns the close timestamp, or "" when still open.
func (pr *PullRequest) Closed() string { return pr.raw.Get("closed_at").String() }

func (pr *PullRequest) IsMerged() bool { return pr.Merged() != "" }
func (pr *PullRequest) IsClosed() bool { return pr.Closed() != "" }

// Age reports the elapsed time from creation to the merge time if
// merged, the close time if closed, or now. The hours component
// covers only the sub-day remainder, not the total elapsed hours.
func (pr *PullRequest) Age() string {
	return pr.ageAt(time.Now())
}

func (pr *PullRequest) ageAt(now time.Time) string {
	created, err := parseTimestamp(pr.Created())
	if err != nil {
		return ""
	}

	end := now
	if pr.IsMerged() {
		if t, err := parseTimestamp(pr.Merged()); err == nil {
			end = t
		}
	} else if pr.IsClosed() {
		if t, err := parseTimestamp(pr.Closed()); err == nil {
			end = t
		}
	}

	diff := end.Sub(created)
	days := int(diff / (24 * time.Hour))
	remainder := diff - time.Duration(days)*24*time.Hour
	hours := remainder.Seconds() / 3600.0

	if days < 0 {
		days = -days
	}

	return fmt.Sprintf("%4dd %4.1fh", days, hours)
}

// ShortTitle returns the title truncated to ShortTitleMaxLen runes
// with a trailing marker; shorter titles come back unchanged.
func (pr *PullRequest) ShortTitle() string {
	title := pr.Title()
	if utf8.RuneCountInString(title) <= ShortTitleMaxLen {
		return title
	}

	return string([]rune(title)[:ShortTitleMaxLen]) + shortTitleMarker
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}

	// Zone-less timestamps show up in hand-written fixtures.
	return time.Parse("2006-01-02T15:04:05", s)
}

// FilterState returns the pull requests whose lifecycle state matches.
func FilterState(prs []*PullRequest, state string) []*PullRequest {
	var out []*PullRequest
	for _, pr := range prs {
		if pr.State() == state {
			out = append(out, pr)
		}
	}

	return out
}

package report

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"prreport/internal/pkg/github"
)

const (
	sectionIndent = 3
	noResultsLine = "<<< No Pull Requests found >>>"
)

// Accessor resolves one report column from a pull request.
type Accessor func(*github.PullRequest) string

// accessors enumerates the selectable field names. Sections resolve
// their columns against this map once, at construction.
var accessors = map[string]Accessor{
	"number":      (*github.PullRequest).Number,
	"state":       (*github.PullRequest).State,
	"title":       (*github.PullRequest).Title,
	"short_title": (*github.PullRequest).ShortTitle,
	"created":     (*github.PullRequest).Created,
	"updated":     (*github.PullRequest).Updated,
	"merged":      (*github.PullRequest).Merged,
	"closed":      (*github.PullRequest).Closed,
	"age":         (*github.PullRequest).Age,
}

// Section is one titled table of the report, fed by the pull requests
// its Match predicate accepts.
type Section struct {
	Title   string
	Headers []string
	Match   func(*github.PullRequest) bool

	columns []Accessor
}

func NewSection(
	title string,
	headers []string,
	fields []string,
	match func(*github.PullRequest) bool,
) (*Section, error) {
	columns := make([]Accessor, 0, len(fields))
	for _, f := range fields {
		a, ok := accessors[f]
		if !ok {
			return nil, fmt.Errorf("unknown report field %q", f)
		}
		columns = append(columns, a)
	}

	return &Section{
		Title:   title,
		Headers: headers,
		Match:   match,
		columns: columns,
	}, nil
}

func (s *Section) Render(prs []*github.PullRequest) string {
	table := uitable.New()
	table.Separator = "  "

	headers := make([]interface{}, len(s.Headers))
	dashes := make([]interface{}, len(s.Headers))
	for i, h := range s.Headers {
		headers[i] = h
		dashes[i] = strings.Repeat("-", len(h))
	}
	table.AddRow(headers...)
	table.AddRow(dashes...)

	rows := 0
	for _, pr := range prs {
		if !s.Match(pr) {
			continue
		}

		cells := make([]interface{}, len(s.columns))
		for i, column := range s.columns {
			cells[i] = column(pr)
		}
		table.AddRow(cells...)
		rows++
	}

	section := s.Title + "\n" + strings.Repeat("-", len(s.Title)) + "\n"
	section += indent(table.String(), sectionIndent)
	if rows == 0 {
		section += indent(noResultsLine, sectionIndent)
	}

	return section + "\n"
}

func indent(text string, width int) string {
	pad := strings.Repeat(" ", width)

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func mustSection(
	title string,
	headers []string,
	fields []string,
	match func(*github.PullRequest) bool,
) *Section {
	s, err := NewSection(title, headers, fields, match)
	if err != nil {
		panic(err)
	}

	return s
}

// DefaultSections partitions the report into open, merged and closed
// pull requests.
func DefaultSections() []*Section {
	return []*Section{
		mustSection(
			"Open Pull Requests",
			[]string{"PR", "Title", "Created", "Updated", "Age"},
			[]string{"number", "short_title", "created", "updated", "age"},
			func(pr *github.PullRequest) bool { return !pr.IsClosed() },
		),
		mustSection(
			"Merged Pull Requests",
			[]string{"PR", "Title", "Created", "Merged", "Age"},
			[]string{"number", "short_title", "created", "merged", "age"},
			(*github.PullRequest).IsMerged,
		),
		mustSection(
			"Closed Pull Requests",
			[]string{"PR", "Title", "Created", "Closed", "Age"},
			[]string{"number", "short_title", "created", "closed", "age"},
			(*github.PullRequest).IsClosed,
		),
	}
}

// Build renders the full status report over the fetched set.
func Build(prs []*github.PullRequest) string {
	var b strings.Builder
	for _, s := range DefaultSections() {
		b.WriteString(s.Render(prs))
	}

	return b.String()
}

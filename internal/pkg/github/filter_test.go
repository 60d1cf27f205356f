package github

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func prUpdatedAt(number string, updated string) *PullRequest {
	return prFromJSON(`{"number": ` + number + `, "updated_at": "` + updated + `"}`)
}

func TestDateRangeContains(t *testing.T) {
	oldest := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		r       DateRange
		updated string
		want    bool
	}{
		{"unbounded passes everything", NewDateRange(nil, nil), "1999-01-01T00:00:00Z", true},
		{"inside both bounds", NewDateRange(&oldest, &latest), "2024-01-15T00:00:00Z", true},
		{"before the oldest bound", NewDateRange(&oldest, &latest), "2024-01-09T23:59:59Z", false},
		{"after the latest bound", NewDateRange(&oldest, &latest), "2024-01-20T00:00:01Z", false},
		{"exactly on the oldest bound", NewDateRange(&oldest, &latest), "2024-01-10T00:00:00Z", true},
		{"exactly on the latest bound", NewDateRange(&oldest, &latest), "2024-01-20T00:00:00Z", true},
		{"only oldest bound set", NewDateRange(&oldest, nil), "2030-01-01T00:00:00Z", true},
		{"only latest bound set", NewDateRange(nil, &latest), "1999-01-01T00:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := prUpdatedAt("1", tt.updated)
			assert.Equal(t, tt.want, tt.r.Contains(pr))
		})
	}
}

func TestUnboundedFilterIsIdentity(t *testing.T) {
	prs := []*PullRequest{
		prUpdatedAt("3", "2024-01-03T00:00:00Z"),
		prUpdatedAt("2", "2024-01-02T00:00:00Z"),
		prUpdatedAt("1", "2024-01-01T00:00:00Z"),
	}

	out := NewDateRange(nil, nil).Filter(prs)

	assert.Len(t, out, len(prs))
	for i := range prs {
		// Element-for-element identity, order preserved.
		assert.Same(t, prs[i], out[i])
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	oldest := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	prs := []*PullRequest{
		prUpdatedAt("4", "2024-01-04T00:00:00Z"),
		prUpdatedAt("3", "2024-01-03T00:00:00Z"),
		prUpdatedAt("1", "2024-01-01T00:00:00Z"),
	}

	out := NewDateRange(&oldest, nil).Filter(prs)
	assert.Equal(t, []string{"4", "3"}, numbers(out))
}

func TestBoundFormatting(t *testing.T) {
	// Bounds are rendered in UTC so lexical comparison lines up with
	// the API's zone representation.
	est := time.FixedZone("EST", -5*60*60)
	bound := time.Date(2024, 1, 10, 19, 0, 0, 0, est)

	r := NewDateRange(&bound, nil)
	assert.Equal(t, "2024-01-11T00:00:00Z", r.Oldest)
}

package gitutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    *Remote
		wantErr bool
	}{
		{
			"ssh remote",
			"git@github.com:octo/spoon.git",
			&Remote{Host: "github.com", Owner: "octo", Name: "spoon"},
			false,
		},
		{
			"ssh remote without suffix",
			"git@github.com:octo/spoon",
			&Remote{Host: "github.com", Owner: "octo", Name: "spoon"},
			false,
		},
		{
			"https remote",
			"https://github.com/octo/spoon.git",
			&Remote{Host: "github.com", Owner: "octo", Name: "spoon"},
			false,
		},
		{
			"https remote without suffix",
			"https://github.com/octo/spoon",
			&Remote{Host: "github.com", Owner: "octo", Name: "spoon"},
			false,
		},
		{
			"other host still parses",
			"git@gitlab.example.com:group/project.git",
			&Remote{Host: "gitlab.example.com", Owner: "group", Name: "project"},
			false,
		},
		{
			"garbage is rejected",
			"not-a-remote",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRemoteURL(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnableToParseRemoteRepositoryURI)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package email

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleSender(t *testing.T) {
	var buf bytes.Buffer
	s := &ConsoleSender{Out: &buf}

	err := s.Send(&Message{
		From:    "reports@example.com",
		To:      "team@example.com",
		Subject: "Weekly Report",
		Body:    "report body\n",
	})

	assert.NoError(t, err)
	assert.Equal(t,
		"From: reports@example.com\n"+
			"To: team@example.com\n"+
			"Subject: Weekly Report\n"+
			"\n"+
			"report body\n",
		buf.String(),
	)
}

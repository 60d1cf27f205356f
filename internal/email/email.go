package email

import (
	"fmt"
	"io"
)

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(m *Message) error
}

// ConsoleSender writes the message to Out instead of delivering it.
// Stands in for a real mail submission backend.
type ConsoleSender struct {
	Out io.Writer
}

func (s *ConsoleSender) Send(m *Message) error {
	_, err := fmt.Fprintf(
		s.Out,
		"From: %s\nTo: %s\nSubject: %s\n\n%s",
		m.From, m.To, m.Subject, m.Body,
	)

	return err
}

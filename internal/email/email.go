// Package email parses inbound MIME messages: header decoding, plain-text
// body extraction, and derivation of the destination channel from the
// recipient address.
package email

import (
	"bytes"
	"fmt"
	"io"
	"net/mail"
)

// Message is a parsed inbound email. Header values are kept raw; RFC 2047
// decoding happens at the point of use.
type Message struct {
	header mail.Header
	body   []byte
}

// Parse reads a raw RFC 5322 message. Parsing is as lenient as the standard
// library allows; only messages whose header block cannot be read at all
// produce an error.
func Parse(raw []byte) (*Message, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	body, err := io.ReadAll(msg.Body)
	if err != nil {
		return nil, fmt.Errorf("read message body: %w", err)
	}
	return &Message{header: msg.Header, body: body}, nil
}

// From returns the raw From header value.
func (m *Message) From() string { return m.header.Get("From") }

// To returns the raw To header value.
func (m *Message) To() string { return m.header.Get("To") }

// Subject returns the raw, possibly RFC 2047 encoded, Subject header value.
func (m *Message) Subject() string { return m.header.Get("Subject") }

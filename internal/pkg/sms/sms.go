// Package sms defines the contracts for sending text messages.
//
// Like the mail package, the point is to keep use cases independent from the
// gateway vendor. Callers depend on the Sender interface; the concrete HTTP
// gateway implementation lives alongside it.
package sms

import (
	"context"
	"io"
)

// Message represents a text message payload.
type Message struct {
	// From is an optional explicit sender number; fallback depends on
	// implementation.
	From string
	// To is the required recipient number in E.164 format.
	To string
	// Body is the message text.
	Body string
}

// Sender abstracts an SMS gateway.
type Sender interface {
	io.Closer
	// Send dispatches the given message using the underlying gateway.
	Send(ctx context.Context, msg Message) error
}

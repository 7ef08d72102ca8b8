// Package message defines the message model and the gateway contract against the external messaging provider.
package message

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrProviderRejected is returned when the provider actively rejects a request (e.g. an invalid phone number)
	ErrProviderRejected = errors.New("the messaging provider rejected the request")
	// ErrUnavailable is returned when the provider cannot be reached or refuses this process's credentials
	ErrUnavailable = errors.New("the messaging provider is unavailable")
)

// Message represents a single communication record as reported by the provider.
// Messages are read-only from this system's perspective; they are only ever created (sent) or read (listed).
type Message struct {
	From     string
	To       string
	DateSent time.Time
	Body     string
	NumMedia int
}

// Gateway wraps the message operations of the external provider.
// Implementations perform blocking network I/O and hold no message state of
// their own; every call is a direct pass-through round trip without caching,
// retries or queuing.
type Gateway interface {
	// List retrieves all messages in exactly the order the provider reports them.
	// An empty slice is a valid result, not an error.
	List(ctx context.Context) ([]Message, error)

	// Send submits a new message and returns the provider-assigned message ID.
	// The given values are passed through verbatim; format validation is the provider's call.
	Send(ctx context.Context, from, to, body string) (string, error)
}

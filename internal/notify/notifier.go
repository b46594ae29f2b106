package notify

import "context"

// Message is a single outbound alert.
type Message struct {
	To   string
	Body string
}

// Receipt is what the provider reports for an accepted message.
type Receipt struct {
	MessageID string
	Status    string
}

// Sender is the interface a messaging provider client must satisfy.
type Sender interface {
	// Type returns the channel identifier (e.g., "whatsapp").
	Type() string

	// Send submits one message. It returns an error if the provider rejects
	// the request or cannot be reached.
	Send(ctx context.Context, msg Message) (Receipt, error)

	// Validate checks whether the sender configuration is valid.
	Validate() error
}

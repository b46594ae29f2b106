package notify

import (
	"context"
	"log/slog"
)

// Result is the outcome of one dispatch attempt. Provider failures are
// reported here rather than as errors so callers can inspect OK.
type Result struct {
	OK                bool   `json:"ok"`
	ProviderMessageID string `json:"provider_message_id,omitempty"`
	Status            string `json:"status,omitempty"`
	Error             string `json:"error,omitempty"`
}

// Dispatcher hands composed alerts to a Sender.
type Dispatcher struct {
	sender Sender
}

// NewDispatcher creates a dispatcher around the given sender.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Dispatch makes a single send attempt. It never returns an error; any
// failure ends up in Result.Error with OK=false.
func (d *Dispatcher) Dispatch(ctx context.Context, to, body string) Result {
	receipt, err := d.sender.Send(ctx, Message{To: to, Body: body})
	if err != nil {
		slog.Error("notification send failed",
			"type", d.sender.Type(),
			"to", to,
			"error", err,
		)
		return Result{OK: false, Error: err.Error()}
	}

	slog.Info("notification sent",
		"type", d.sender.Type(),
		"to", to,
		"message_id", receipt.MessageID,
		"status", receipt.Status,
	)
	return Result{
		OK:                true,
		ProviderMessageID: receipt.MessageID,
		Status:            receipt.Status,
	}
}

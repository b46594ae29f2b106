package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/makt28/rowalert/internal/maintenance"
	"github.com/makt28/rowalert/internal/notify"
)

const maxPayloadBytes = 1 << 20

var errMissingSheet = errors.New("sheet is required")

// Dispatcher sends a composed alert and reports the outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, to, body string) notify.Result
}

// RowPayload is the body posted by the sheet automation. Sheet is required;
// Sheet and TS play no part in classification.
type RowPayload struct {
	Sheet *string         `json:"sheet"`
	Row   maintenance.Row `json:"row"`
	TS    *string         `json:"ts,omitempty"`
}

// WebhookHandler turns row notifications into WhatsApp alerts.
type WebhookHandler struct {
	dispatcher       Dispatcher
	defaultRecipient string
}

// NewWebhookHandler creates the row webhook handler.
func NewWebhookHandler(dispatcher Dispatcher, defaultRecipient string) *WebhookHandler {
	return &WebhookHandler{
		dispatcher:       dispatcher,
		defaultRecipient: defaultRecipient,
	}
}

type webhookResponse struct {
	Status string               `json:"status"`
	Reason string               `json:"reason,omitempty"`
	Result *notify.Result       `json:"result,omitempty"`
	Type   maintenance.Category `json:"type,omitempty"`
}

// ReceiveRow handles POST /webhook/rows.
func (h *WebhookHandler) ReceiveRow(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if errors.Is(err, errMissingSheet) {
		slog.Warn("webhook rejected: missing sheet", "request_id", RequestID(r.Context()))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Warn("webhook rejected: bad payload", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	ts := ""
	if payload.TS != nil {
		ts = *payload.TS
	}
	slog.Debug("row received", "sheet", *payload.Sheet, "ts", ts, "request_id", RequestID(r.Context()))

	decision := maintenance.Evaluate(payload.Row)
	if !decision.Category.Actionable() {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "ignored", Reason: "no action required"})
		return
	}

	to, err := maintenance.ResolveRecipient(payload.Row, h.defaultRecipient)
	if err != nil {
		slog.Warn("webhook rejected: no recipient",
			"type", decision.Category,
			"sheet", *payload.Sheet,
			"request_id", RequestID(r.Context()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.dispatcher.Dispatch(r.Context(), to, decision.Body)
	status := "sent"
	if !result.OK {
		status = "error"
	}
	writeJSON(w, http.StatusOK, webhookResponse{
		Status: status,
		Result: &result,
		Type:   decision.Category,
	})
}

func decodePayload(w http.ResponseWriter, r *http.Request) (RowPayload, error) {
	var p RowPayload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return p, errors.New("empty body")
		}
		return p, err
	}
	if p.Sheet == nil {
		return p, errMissingSheet
	}
	if p.Row == nil {
		p.Row = maintenance.Row{}
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package notify

import (
	"context"
	"errors"
	"testing"
)

type stubSender struct {
	receipt Receipt
	err     error
	sent    []Message
}

func (s *stubSender) Type() string    { return "stub" }
func (s *stubSender) Validate() error { return nil }
func (s *stubSender) Send(_ context.Context, msg Message) (Receipt, error) {
	s.sent = append(s.sent, msg)
	return s.receipt, s.err
}

func TestDispatchSuccess(t *testing.T) {
	s := &stubSender{receipt: Receipt{MessageID: "SM1", Status: "queued"}}
	res := NewDispatcher(s).Dispatch(context.Background(), "+1555", "body")

	want := Result{OK: true, ProviderMessageID: "SM1", Status: "queued"}
	if res != want {
		t.Fatalf("result = %+v, want %+v", res, want)
	}
	if len(s.sent) != 1 || s.sent[0].To != "+1555" || s.sent[0].Body != "body" {
		t.Fatalf("unexpected sends: %+v", s.sent)
	}
}

func TestDispatchFailureIsData(t *testing.T) {
	s := &stubSender{err: errors.New("boom")}
	res := NewDispatcher(s).Dispatch(context.Background(), "+1555", "body")

	if res.OK || res.Error != "boom" || res.ProviderMessageID != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(s.sent) != 1 {
		t.Fatalf("expected exactly one attempt, got %d", len(s.sent))
	}
}

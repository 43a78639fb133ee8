package workflow

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/models"
)

// NOTE: These tests are intentionally DB-free. They validate retry scheduling
// and the outbox-to-message mapping; claim/lock behavior needs MySQL and
// belongs in an environment that can run the full stack.

func TestPublishBackoff_DoublesAndCaps(t *testing.T) {
	d := NewOutboxDispatcher(nil, nil)
	d.InitialBackoff = 5 * time.Second

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 5 * time.Second},
		{attempt: 2, want: 10 * time.Second},
		{attempt: 3, want: 20 * time.Second},
		{attempt: 5, want: 80 * time.Second},
		{attempt: 20, want: 10 * time.Minute},
	}
	for _, tc := range cases {
		if got := d.publishBackoff(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: expected backoff %s, got %s", tc.attempt, tc.want, got)
		}
	}
}

func TestNewOutboxDispatcher_Defaults(t *testing.T) {
	d := NewOutboxDispatcher(nil, nil)
	if d.DispatcherID == "" {
		t.Fatal("expected a dispatcher id")
	}
	if d.BatchSize <= 0 || d.MaxAttempts <= 0 {
		t.Fatalf("expected positive batch size and max attempts, got %d and %d", d.BatchSize, d.MaxAttempts)
	}
	if d.PollInterval <= 0 || d.LockTimeout <= 0 {
		t.Fatal("expected positive poll interval and lock timeout")
	}
}

func TestConvertToPubSubMessage(t *testing.T) {
	occurred := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	record := models.EventRecord{
		ID:            11,
		CompanyId:     "company-1",
		OccurredAt:    occurred,
		ReferenceId:   42,
		ReferenceType: models.EventReferenceTypePayment,
		Action:        models.EventActionCreate,
		Payload:       []byte(`{"id":42}`),
		CorrelationId: "corr-1",
	}

	msg := models.ConvertToPubSubMessage(record)

	want := config.PubSubMessage{
		ID:            11,
		CompanyId:     "company-1",
		OccurredAt:    occurred,
		ReferenceId:   42,
		ReferenceType: string(models.EventReferenceTypePayment),
		Action:        string(models.EventActionCreate),
		Payload:       []byte(`{"id":42}`),
		CorrelationId: "corr-1",
	}
	if msg.ID != want.ID || msg.CompanyId != want.CompanyId || !msg.OccurredAt.Equal(want.OccurredAt) {
		t.Fatalf("unexpected header fields: %+v", msg)
	}
	if msg.ReferenceId != want.ReferenceId || msg.ReferenceType != want.ReferenceType || msg.Action != want.Action {
		t.Fatalf("unexpected reference fields: %+v", msg)
	}
	if string(msg.Payload) != string(want.Payload) || msg.CorrelationId != want.CorrelationId {
		t.Fatalf("unexpected payload or correlation id: %+v", msg)
	}
}

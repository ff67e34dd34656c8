package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

type captureAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newCaptureAuditRepo(want int) *captureAuditRepo {
	return &captureAuditRepo{done: make(chan struct{}), want: want}
}

func (r *captureAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func (r *captureAuditRepo) wait(t *testing.T) []domain.AuditEvent {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit events")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

func TestDispatcher_PersistsEvents(t *testing.T) {
	repo := newCaptureAuditRepo(1)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{Email: "ana@example.com", Action: domain.AuditLogin, Success: true})

	events := repo.wait(t)
	if events[0].Email != "ana@example.com" {
		t.Fatalf("email = %q, want ana@example.com", events[0].Email)
	}
	if events[0].Action != domain.AuditLogin {
		t.Fatalf("action = %q, want %q", events[0].Action, domain.AuditLogin)
	}
}

func TestDispatcher_SameEmailKeepsOrder(t *testing.T) {
	const n = 20
	repo := newCaptureAuditRepo(n)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		success := i%2 == 0
		d.Record(domain.AuditEvent{Email: "same@example.com", Action: domain.AuditLogin, Success: success})
	}

	events := repo.wait(t)
	for i, ev := range events {
		if ev.Success != (i%2 == 0) {
			t.Fatalf("event %d out of order: %+v", i, ev)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newCaptureAuditRepo(0), zerolog.Nop())

	first := d.shardIndex("ana@example.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("ana@example.com"); got != first {
			t.Fatalf("shard index unstable: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

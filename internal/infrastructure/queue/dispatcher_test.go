package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/api/metrics"
	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

type recordingService struct {
	mu   sync.Mutex
	seen map[string][]time.Time
	done chan struct{}
	want int
	n    int
	fail bool
}

func (s *recordingService) Process(_ context.Context, e ports.CompletionEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[e.BookingID] = append(s.seen[e.BookingID], e.CompletedAt)
	s.n++
	if s.n == s.want {
		close(s.done)
	}
	if s.fail {
		return domain.ErrInvalidTransition
	}
	return nil
}

func TestDispatcher_PreservesPerBookingOrder(t *testing.T) {
	const perBooking = 20
	bookings := []string{"b1", "b2", "b3", "b4", "b5"}

	svc := &recordingService{
		seen: make(map[string][]time.Time),
		done: make(chan struct{}),
		want: perBooking * len(bookings),
	}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	base := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	var batch []ports.CompletionEventInput
	for i := 0; i < perBooking; i++ {
		for _, id := range bookings {
			batch = append(batch, ports.CompletionEventInput{BookingID: id, CompletedAt: base.Add(time.Duration(i) * time.Second)})
		}
	}
	d.EnqueueBatch(batch)

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for events")
	}
	cancel()
	d.Wait()

	for _, id := range bookings {
		got := svc.seen[id]
		if len(got) != perBooking {
			t.Fatalf("%s: want %d events, got %d", id, perBooking, len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Before(got[i-1]) {
				t.Fatalf("%s: events out of order at %d", id, i)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingService{}, zerolog.Nop())
	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("booking-%d", i)
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("index out of range: %d", first)
		}
		if d.shardIndex(id) != first {
			t.Fatalf("shard for %s changed", id)
		}
	}
}

func TestDispatcher_FailuresDoNotStopWorker(t *testing.T) {
	svc := &recordingService{seen: make(map[string][]time.Time), done: make(chan struct{}), want: 3, fail: true}
	d := NewDispatcher(1, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 3; i++ {
		d.Enqueue(ports.CompletionEventInput{BookingID: "b1", CompletedAt: time.Now()})
	}

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker stopped after a failure")
	}
}

func TestDispatcher_ProcessedMetricIgnoresSource(t *testing.T) {
	d := NewDispatcher(1, &recordingService{seen: make(map[string][]time.Time), done: make(chan struct{}), want: -1}, zerolog.Nop())
	counter := metrics.EventsProcessedTotal.WithLabelValues(string(domain.StatusCompleted))
	before := testutil.ToFloat64(counter)

	for i, source := range []string{"field-app", "partner-x", "anything at all"} {
		d.process(context.Background(), 0, ports.CompletionEventInput{
			BookingID:   fmt.Sprintf("b%d", i),
			CompletedAt: time.Now(),
			Source:      source,
		})
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Fatalf("want 3 processed, got %v", got)
	}
	if n := testutil.CollectAndCount(metrics.EventsProcessedTotal); n != 1 {
		t.Fatalf("source must not create series, got %d", n)
	}
}

func TestErrorReason(t *testing.T) {
	cases := map[error]string{
		domain.ErrInvalidTransition: "invalid_transition",
		domain.ErrBookingNotFound:   "booking_not_found",
		domain.ErrStoreUnavailable:  "store_unavailable",
		fmt.Errorf("boom"):          "update_failed",
	}
	for err, want := range cases {
		if got := errorReason(err); got != want {
			t.Errorf("%v: want %s, got %s", err, want, got)
		}
	}
}

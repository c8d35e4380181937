package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
	"github.com/RayanBabar/validator-ai/internal/events"
)

func record(threadID string, tier report.Tier) report.Record {
	return report.Record{
		ThreadID:    threadID,
		Tier:        tier,
		Body:        report.Body{Tier: report.TierFree, Free: &report.FreeReport{}},
		GeneratedAt: time.Now(),
	}
}

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := events.NewBus()

	ch, cancel := bus.Subscribe("t1")
	defer cancel()

	bus.Publish(record("t1", report.TierFree))

	select {
	case rec := <-ch:
		require.Equal(t, "t1", rec.ThreadID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestBus_ScopedByThread(t *testing.T) {
	bus := events.NewBus()

	ch, cancel := bus.Subscribe("t1")
	defer cancel()

	bus.Publish(record("other", report.TierFree))

	select {
	case <-ch:
		t.Fatal("received another thread's event")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := events.NewBus()

	ch1, cancel1 := bus.Subscribe("t1")
	defer cancel1()
	ch2, cancel2 := bus.Subscribe("t1")
	defer cancel2()

	bus.Publish(record("t1", report.TierBasic))

	for i, ch := range []<-chan report.Record{ch1, ch2} {
		select {
		case rec := <-ch:
			require.Equal(t, report.TierBasic, rec.Tier)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d missed the event", i+1)
		}
	}
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	bus := events.NewBus()

	ch, cancel := bus.Subscribe("t1")
	cancel()
	cancel() // safe to repeat

	bus.Publish(record("t1", report.TierFree))

	select {
	case <-ch:
		t.Fatal("received after cancel")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := events.NewBus()

	// Subscriber that never drains; the buffer absorbs one event and the
	// rest are dropped.
	_, cancel := bus.Subscribe("t1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(record("t1", report.TierFree))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked")
	}
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := events.NewBus()
	bus.Publish(record("t1", report.TierFree)) // no-op
}

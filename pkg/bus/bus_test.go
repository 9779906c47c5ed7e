package bus_test

import (
	"sync"
	"testing"

	"github.com/shashiranjanraj/freshko/pkg/bus"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := bus.New()

	var got []bus.Event
	b.Subscribe(bus.OrderCreated, func(e bus.Event) { got = append(got, e) })
	b.Subscribe(bus.OrderCreated, func(e bus.Event) { got = append(got, e) })

	b.Publish(bus.OrderCreated)

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0] != bus.OrderCreated {
		t.Errorf("unexpected event: %s", got[0])
	}
}

func TestPublishOnlyMatchingEvent(t *testing.T) {
	b := bus.New()

	calls := 0
	b.Subscribe(bus.ArticleDeleted, func(bus.Event) { calls++ })

	b.Publish(bus.ArticleCreated)
	b.Publish(bus.OrderUpdated)

	if calls != 0 {
		t.Errorf("handler fired for foreign events: %d calls", calls)
	}

	b.Publish(bus.ArticleDeleted)
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestPublishAsync(t *testing.T) {
	b := bus.New()

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		b.Subscribe(bus.StorageMigrated, func(bus.Event) { wg.Done() })
	}

	b.PublishAsync(bus.StorageMigrated)
	wg.Wait()
}

func TestReset(t *testing.T) {
	b := bus.New()

	calls := 0
	b.Subscribe(bus.OrderCreated, func(bus.Event) { calls++ })
	b.Reset()
	b.Publish(bus.OrderCreated)

	if calls != 0 {
		t.Errorf("expected no calls after Reset, got %d", calls)
	}
}

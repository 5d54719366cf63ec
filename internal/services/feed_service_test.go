package services

import (
	"testing"
	"time"
)

func TestFeedDeliversToSubscriber(t *testing.T) {
	feed := NewFeedService()
	events, cancel := feed.Subscribe("owner-a")
	defer cancel()

	feed.Publish("owner-a", FeedEvent{Type: "created", JobID: "j1"})

	select {
	case ev := <-events:
		if ev.Type != "created" || ev.JobID != "j1" {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestFeedScopesByOwner(t *testing.T) {
	feed := NewFeedService()
	events, cancel := feed.Subscribe("owner-a")
	defer cancel()

	feed.Publish("owner-b", FeedEvent{Type: "created", JobID: "j1"})

	select {
	case ev := <-events:
		t.Fatalf("received another owner's event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeedCancelClosesChannel(t *testing.T) {
	feed := NewFeedService()
	events, cancel := feed.Subscribe("owner-a")

	if n := feed.SubscriberCount("owner-a"); n != 1 {
		t.Fatalf("subscriber count = %d", n)
	}
	cancel()
	if n := feed.SubscriberCount("owner-a"); n != 0 {
		t.Fatalf("subscriber count after cancel = %d", n)
	}

	if _, ok := <-events; ok {
		t.Error("channel still open after cancel")
	}

	// Double cancel must not panic.
	cancel()

	// Publishing after cancel is a quiet no-op.
	feed.Publish("owner-a", FeedEvent{Type: "created", JobID: "j1"})
}

func TestFeedNeverBlocksPublisher(t *testing.T) {
	feed := NewFeedService()
	_, cancel := feed.Subscribe("owner-a")
	defer cancel()

	// Nobody is draining; the buffer fills and further events drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			feed.Publish("owner-a", FeedEvent{Type: "updated", JobID: "j1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

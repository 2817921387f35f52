package events

import "testing"

func TestBus_PublishDeliversToSubscriber(t *testing.T) {
	bus := New()
	sub := bus.Subscribe(TopicFrame, 1)

	bus.Publish(TopicFrame, []byte{1, 2, 3})

	select {
	case msg := <-sub.Channel:
		if b, ok := msg.([]byte); !ok || len(b) != 3 {
			t.Errorf("unexpected message: %v", msg)
		}
	default:
		t.Fatal("expected a buffered message")
	}
}

func TestBus_PublishNonBlockingOnFullBuffer(t *testing.T) {
	bus := New()
	sub := bus.Subscribe(TopicFrame, 1)

	bus.Publish(TopicFrame, "first")
	bus.Publish(TopicFrame, "second") // must not block even though buffer is full

	if bus.SubscriberCount(TopicFrame) != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", bus.SubscriberCount(TopicFrame))
	}
	<-sub.Channel
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	sub := bus.Subscribe(TopicModelChanged, 1)
	bus.Unsubscribe(sub)

	if bus.SubscriberCount(TopicModelChanged) != 0 {
		t.Errorf("expected 0 subscribers after unsubscribe, got %d", bus.SubscriberCount(TopicModelChanged))
	}

	_, open := <-sub.Channel
	if open {
		t.Error("expected subscriber channel to be closed")
	}
}

func TestBus_DistinctIDsPerSubscriber(t *testing.T) {
	bus := New()
	a := bus.Subscribe(TopicFrame, 1)
	b := bus.Subscribe(TopicFrame, 1)
	if a.ID == b.ID {
		t.Error("expected distinct subscriber IDs")
	}
}

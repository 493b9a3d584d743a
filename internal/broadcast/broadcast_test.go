package broadcast

import (
	"fmt"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	b := New()
	if b == nil {
		t.Fatal("New() returned nil")
	}
	if b.Subscribers() != 0 {
		t.Errorf("new broadcaster has %d subscribers, want 0", b.Subscribers())
	}
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := New()

	ch := b.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe() returned nil")
	}
	if b.Subscribers() != 1 {
		t.Errorf("subscriber count = %d, want 1", b.Subscribers())
	}

	b.Unsubscribe(ch)

	if b.Subscribers() != 0 {
		t.Errorf("subscriber count after unsubscribe = %d, want 0", b.Subscribers())
	}

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
}

func TestBroadcaster_UnsubscribeTwice(t *testing.T) {
	b := New()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	// Second call should not panic on the already-closed channel
	b.Unsubscribe(ch)
}

func TestBroadcaster_PublishToAllSubscribers(t *testing.T) {
	b := New()

	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Publish([]byte("hello"))

	for i, ch := range []chan []byte{ch1, ch2} {
		select {
		case frame := <-ch:
			if string(frame) != "hello" {
				t.Errorf("ch%d got %q, want %q", i+1, frame, "hello")
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("ch%d timed out", i+1)
		}
	}

	b.Unsubscribe(ch1)
	b.Unsubscribe(ch2)
}

func TestBroadcaster_DeliveryOrder(t *testing.T) {
	b := New()
	ch := b.Subscribe()

	for i := 0; i < 10; i++ {
		b.Publish([]byte(fmt.Sprintf("msg-%d", i)))
	}

	for i := 0; i < 10; i++ {
		select {
		case frame := <-ch:
			want := fmt.Sprintf("msg-%d", i)
			if string(frame) != want {
				t.Fatalf("frame %d = %q, want %q", i, frame, want)
			}
		case <-time.After(1 * time.Second):
			t.Fatalf("timed out waiting for frame %d", i)
		}
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_SkipsFullChannels(t *testing.T) {
	b := New()
	ch := b.Subscribe()

	// Fill the subscriber buffer
	for i := 0; i < subscriberBuffer; i++ {
		b.Publish([]byte("fill"))
	}

	// This should not block even though the channel is full
	done := make(chan bool)
	go func() {
		b.Publish([]byte("overflow"))
		done <- true
	}()

	select {
	case <-done:
		// Success - didn't block
	case <-time.After(1 * time.Second):
		t.Fatal("Publish blocked on full channel")
	}

	b.Unsubscribe(ch)
}

func TestBroadcaster_LateSubscriberMissesEarlierFrames(t *testing.T) {
	b := New()

	b.Publish([]byte("before"))
	ch := b.Subscribe()
	b.Publish([]byte("after"))

	select {
	case frame := <-ch:
		if string(frame) != "after" {
			t.Errorf("got %q, want %q", frame, "after")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out")
	}

	b.Unsubscribe(ch)
}

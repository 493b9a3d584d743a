package broadcast

import (
	"sync"

	"github.com/wernert71/fnaf-browser-game/internal/metrics"
)

// subscriberBuffer bounds how far a slow subscriber may lag before frames
// are dropped for it.
const subscriberBuffer = 32

// Broadcaster fans marshaled frames out to every current subscriber of one
// room. Publishing never blocks: a subscriber whose buffer is full misses
// the frame.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[chan []byte]bool
}

func New() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan []byte]bool),
	}
}

// Subscribe registers a new subscriber and returns its frame channel.
func (b *Broadcaster) Subscribe() chan []byte {
	ch := make(chan []byte, subscriberBuffer)
	b.mu.Lock()
	b.clients[ch] = true
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan []byte) {
	b.mu.Lock()
	if b.clients[ch] {
		delete(b.clients, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers frame to every subscriber present at call time.
func (b *Broadcaster) Publish(frame []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- frame:
		default:
			// skip subscribers with full channels
			metrics.DroppedFrames.Inc()
		}
	}
}

// Subscribers reports the current subscriber count.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OpenRooms tracks rooms with at least one live connection.
	OpenRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "multiplayer_rooms_open",
		Help: "Number of rooms with at least one live connection.",
	})

	// LiveConnections tracks attached websocket connections across all rooms.
	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "multiplayer_connections_live",
		Help: "Number of attached websocket connections.",
	})

	FramesIn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multiplayer_frames_received_total",
		Help: "Text frames read from clients.",
	})

	FramesOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multiplayer_frames_sent_total",
		Help: "Frames written to clients.",
	})

	Broadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multiplayer_broadcasts_total",
		Help: "Messages published to room broadcasters.",
	})

	// DroppedFrames counts frames discarded because a subscriber's buffer was full.
	DroppedFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multiplayer_frames_dropped_total",
		Help: "Frames dropped on slow subscribers.",
	})
)

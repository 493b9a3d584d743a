package wshub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/wernert71/fnaf-browser-game/internal/broadcast"
	"github.com/wernert71/fnaf-browser-game/internal/metrics"
)

// Player is one live connection's membership in a room hub. Fields other
// than ConnID are mutated only by messages from that same connection, under
// the hub lock.
type Player struct {
	ConnID  string
	Name    string
	Role    string
	IsReady bool
}

// RoomHub holds the live state for one room: its broadcaster, the ordered
// list of connected players, and the last relayed game state. A hub exists
// from first attach until last detach.
type RoomHub struct {
	Code        string
	Broadcaster *broadcast.Broadcaster

	mu        sync.Mutex
	players   []*Player
	started   bool
	gameState json.RawMessage
}

// Registry owns every live room hub, keyed by room code. It is constructed
// once and passed into connection handlers.
type Registry struct {
	mu   sync.RWMutex
	hubs map[string]*RoomHub
}

func NewRegistry() *Registry {
	return &Registry{
		hubs: make(map[string]*RoomHub),
	}
}

// Attach joins the hub for code, creating it if absent. It returns the hub,
// the new player record and a subscription to the hub's broadcaster. The
// new subscriber then receives a PlayerJoined event and a RoomState
// snapshot along with everyone else.
func (r *Registry) Attach(code, name string) (*RoomHub, *Player, chan []byte) {
	player := &Player{
		ConnID: uuid.New().String(),
		Name:   name,
	}

	r.mu.Lock()
	hub, ok := r.hubs[code]
	if !ok {
		hub = &RoomHub{
			Code:        code,
			Broadcaster: broadcast.New(),
		}
		r.hubs[code] = hub
		metrics.OpenRooms.Inc()
	}
	hub.mu.Lock()
	hub.players = append(hub.players, player)
	hub.mu.Unlock()
	sub := hub.Broadcaster.Subscribe()
	r.mu.Unlock()

	metrics.LiveConnections.Inc()

	hub.publish(ServerMessage{
		Type:        TypePlayerJoined,
		Participant: &PlayerInfo{ID: player.ConnID, Name: player.Name},
	})
	snapshot := hub.Snapshot()
	hub.publish(ServerMessage{Type: TypeRoomState, Room: &snapshot})

	return hub, player, sub
}

// Detach removes the player from the hub for code, publishes PlayerLeft and
// deletes the hub once empty. The removal, the event and the deletion happen
// under the registry lock so no empty hub is ever observable.
func (r *Registry) Detach(code, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hub, ok := r.hubs[code]
	if !ok {
		return
	}

	hub.mu.Lock()
	removed := false
	for i, p := range hub.players {
		if p.ConnID == connID {
			hub.players = append(hub.players[:i], hub.players[i+1:]...)
			removed = true
			break
		}
	}
	remaining := len(hub.players)
	started := hub.started
	hub.mu.Unlock()

	if !removed {
		return
	}
	metrics.LiveConnections.Dec()

	hub.publish(ServerMessage{Type: TypePlayerLeft, ParticipantID: connID})
	if started && remaining > 0 {
		hub.publish(ServerMessage{
			Type:   TypeGameEnd,
			Result: &GameResult{Reason: "player_left"},
		})
	}

	if remaining == 0 {
		delete(r.hubs, code)
		metrics.OpenRooms.Dec()
	}
}

// Lookup returns the live hub for code, if any.
func (r *Registry) Lookup(code string) (*RoomHub, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hub, ok := r.hubs[code]
	return hub, ok
}

// Count reports the number of live hubs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hubs)
}

// PlayerCount reports the number of connected players.
func (h *RoomHub) PlayerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.players)
}

// Snapshot captures the current players and game state for a RoomState message.
func (h *RoomHub) Snapshot() RoomSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	players := make([]PlayerInfo, 0, len(h.players))
	for _, p := range h.players {
		players = append(players, PlayerInfo{
			ID:      p.ConnID,
			Name:    p.Name,
			Role:    p.Role,
			IsReady: p.IsReady,
		})
	}
	return RoomSnapshot{
		RoomCode: h.Code,
		Players:  players,
		Started:  h.started,
		State:    h.gameState,
	}
}

func (h *RoomHub) publish(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}
	h.Broadcaster.Publish(data)
	metrics.Broadcasts.Inc()
}

// find returns the player for connID. Callers must hold h.mu.
func (h *RoomHub) find(connID string) *Player {
	for _, p := range h.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

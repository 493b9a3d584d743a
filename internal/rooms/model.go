package rooms

import (
	"encoding/json"
	"time"
)

// Room status values stored in the rooms table.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusEnded      = "ended"
)

// Room is the durable room record as returned by the API.
type Room struct {
	ID             string          `json:"id"`
	RoomCode       string          `json:"room_code"`
	HostName       string          `json:"host_name,omitempty"`
	GameMode       string          `json:"game_mode"`
	MaxPlayers     int             `json:"max_players"`
	CurrentPlayers int             `json:"current_players"`
	Status         string          `json:"status"`
	Settings       json.RawMessage `json:"settings,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	EndedAt        *time.Time      `json:"ended_at,omitempty"`
}

// ParticipantInfo describes one durable participant of a room.
type ParticipantInfo struct {
	ID        string `json:"id"`
	GuestName string `json:"guest_name,omitempty"`
	Role      string `json:"role,omitempty"`
	IsReady   bool   `json:"is_ready"`
}

type CreateRoomRequest struct {
	HostName   string          `json:"host_name,omitempty"`
	GameMode   string          `json:"game_mode"`
	MaxPlayers int             `json:"max_players,omitempty"`
	Settings   json.RawMessage `json:"settings,omitempty"`
}

type JoinRoomRequest struct {
	GuestName string `json:"guest_name,omitempty"`
}

type RoomResponse struct {
	Room         Room              `json:"room"`
	Participants []ParticipantInfo `json:"participants"`
}

package wshub

import "encoding/json"

// Client→server message types.
const (
	TypeReady      = "Ready"
	TypeRoleSelect = "RoleSelect"
	TypeGameAction = "GameAction"
	TypeChat       = "Chat"
	TypePing       = "Ping"
)

// Server→client message types. Chat is shared with the client side.
const (
	TypeRoomState    = "RoomState"
	TypeGameState    = "GameState"
	TypePlayerJoined = "PlayerJoined"
	TypePlayerLeft   = "PlayerLeft"
	TypeGameStart    = "GameStart"
	TypeGameEnd      = "GameEnd"
	TypeError        = "Error"
	TypePong         = "Pong"
)

// GameAction is an opaque client action; the server relays it without
// validating legality.
type GameAction struct {
	ActionType string          `json:"action_type"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// ClientMessage is the JSON structure received from clients, tagged by Type.
type ClientMessage struct {
	Type    string      `json:"type"`
	Role    string      `json:"role,omitempty"`
	Action  *GameAction `json:"action,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PlayerInfo describes one connected player in hub snapshots and join events.
type PlayerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Role    string `json:"role,omitempty"`
	IsReady bool   `json:"is_ready"`
}

// RoomSnapshot is the live hub state sent with RoomState messages.
type RoomSnapshot struct {
	RoomCode string          `json:"room_code"`
	Players  []PlayerInfo    `json:"players"`
	Started  bool            `json:"started"`
	State    json.RawMessage `json:"state,omitempty"`
}

// GameResult carries the advisory reason a game ended.
type GameResult struct {
	Reason string `json:"reason"`
}

// ServerMessage is the JSON structure sent to clients, tagged by Type.
type ServerMessage struct {
	Type          string          `json:"type"`
	Room          *RoomSnapshot   `json:"room,omitempty"`
	State         json.RawMessage `json:"state,omitempty"`
	Participant   *PlayerInfo     `json:"participant,omitempty"`
	ParticipantID string          `json:"participant_id,omitempty"`
	Result        *GameResult     `json:"result,omitempty"`
	From          string          `json:"from,omitempty"`
	Message       string          `json:"message,omitempty"`
}

// ParseClientMessage decodes an inbound frame. It reports false for frames
// that are not valid JSON or carry an unknown type; such frames are dropped
// without closing the connection.
func ParseClientMessage(frame []byte) (ClientMessage, bool) {
	var msg ClientMessage
	if err := json.Unmarshal(frame, &msg); err != nil {
		return ClientMessage{}, false
	}
	switch msg.Type {
	case TypeGameAction:
		// A GameAction without its payload is malformed, not an empty action.
		if msg.Action == nil {
			return ClientMessage{}, false
		}
		return msg, true
	case TypeReady, TypeRoleSelect, TypeChat, TypePing:
		return msg, true
	}
	return ClientMessage{}, false
}

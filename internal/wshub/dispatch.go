package wshub

import "encoding/json"

// Apply mutates hub state for a parsed client message from connID and
// publishes whatever the message calls for. The server validates nothing
// about game legality; actions and chat are relayed as-is.
func (h *RoomHub) Apply(connID string, msg ClientMessage) {
	switch msg.Type {
	case TypeReady:
		h.mu.Lock()
		if p := h.find(connID); p != nil {
			p.IsReady = true
		}
		start := !h.started && len(h.players) >= 2 && h.allReady()
		if start {
			h.started = true
		}
		h.mu.Unlock()

		if start {
			h.publish(ServerMessage{Type: TypeGameStart})
		}

	case TypeRoleSelect:
		// No cross-player uniqueness check; identical picks are not arbitrated.
		h.mu.Lock()
		if p := h.find(connID); p != nil {
			p.Role = msg.Role
		}
		h.mu.Unlock()

	case TypeGameAction:
		state, err := json.Marshal(struct {
			Action *GameAction `json:"action"`
			From   string      `json:"from"`
		}{msg.Action, connID})
		if err != nil {
			return
		}
		h.mu.Lock()
		h.gameState = state
		h.mu.Unlock()

		h.publish(ServerMessage{Type: TypeGameState, State: state})

	case TypeChat:
		from := connID
		h.mu.Lock()
		if p := h.find(connID); p != nil && p.Name != "" {
			from = p.Name
		}
		h.mu.Unlock()

		h.publish(ServerMessage{Type: TypeChat, From: from, Message: msg.Message})

	case TypePing:
		h.publish(ServerMessage{Type: TypePong})
	}
}

// allReady reports whether every connected player has sent Ready.
// Callers must hold h.mu.
func (h *RoomHub) allReady() bool {
	for _, p := range h.players {
		if !p.IsReady {
			return false
		}
	}
	return true
}

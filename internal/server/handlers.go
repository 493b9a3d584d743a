package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/lib/pq"
	"github.com/wernert71/fnaf-browser-game/internal/config"
	"github.com/wernert71/fnaf-browser-game/internal/db"
	"github.com/wernert71/fnaf-browser-game/internal/rooms"
	"github.com/wernert71/fnaf-browser-game/internal/wshub"
)

type Server struct {
	Cfg  config.Config
	Hubs *wshub.Registry
	DB   *db.DB // nil if no database configured
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Encode error: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	log.Println("[Handle:CreateRoom] Request Received")
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	var req rooms.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GameMode == "" {
		req.GameMode = "classic"
	}
	if req.MaxPlayers <= 0 {
		req.MaxPlayers = s.Cfg.DefaultMaxPlayers
	}

	// Regenerate on the rare code collision, caught by the unique constraint.
	var row *db.RoomRow
	for range 10 {
		code, err := rooms.GenerateCode()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create room")
			return
		}
		row, err = s.DB.CreateRoom(code, req.HostName, req.GameMode, req.MaxPlayers, req.Settings)
		if err == nil {
			break
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			row = nil
			continue
		}
		log.Printf("[DB] CreateRoom error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}
	if row == nil {
		writeError(w, http.StatusInternalServerError, "failed to generate unique room code")
		return
	}

	log.Printf("[Handle:CreateRoom] Created room %s\n", row.RoomCode)
	s.writeRoomResponse(w, http.StatusCreated, row)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	code := strings.ToUpper(r.PathValue("code"))
	row, err := s.DB.GetRoomByCode(code)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		log.Printf("[DB] GetRoomByCode error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load room")
		return
	}

	s.writeRoomResponse(w, http.StatusOK, row)
}

func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	log.Println("[Handle:JoinRoom] Request Received")
	if s.DB == nil {
		writeError(w, http.StatusServiceUnavailable, "database not configured")
		return
	}

	code := strings.ToUpper(r.PathValue("code"))
	row, err := s.DB.GetRoomByCode(code)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		log.Printf("[DB] GetRoomByCode error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load room")
		return
	}

	var req rooms.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if row.Status != rooms.StatusWaiting {
		writeError(w, http.StatusBadRequest, "game already started")
		return
	}
	if row.CurrentPlayers >= row.MaxPlayers {
		writeError(w, http.StatusBadRequest, "room is full")
		return
	}

	if _, err := s.DB.AddParticipant(row.ID, req.GuestName); err != nil {
		log.Printf("[DB] AddParticipant error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to join room")
		return
	}

	// Re-read for the updated player count.
	row, err = s.DB.GetRoomByCode(code)
	if err != nil {
		log.Printf("[DB] GetRoomByCode error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load room")
		return
	}
	s.writeRoomResponse(w, http.StatusOK, row)
}

// handleGameSocket upgrades the connection and attaches it to the room's
// hub. No authentication: guests connect with an optional ?name= label, and
// a hub is created on demand even when no durable room row exists.
func (s *Server) handleGameSocket(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))
	name := r.URL.Query().Get("name")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}

	hub, player, sub := s.Hubs.Attach(code, name)
	client := &wshub.Client{
		Registry: s.Hubs,
		Hub:      hub,
		Player:   player,
		Conn:     conn,
		Send:     sub,
	}
	client.Serve(r.Context())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}

func (s *Server) writeRoomResponse(w http.ResponseWriter, status int, row *db.RoomRow) {
	parts, err := s.DB.Participants(row.ID)
	if err != nil {
		log.Printf("[DB] Participants error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load participants")
		return
	}

	resp := rooms.RoomResponse{
		Room: rooms.Room{
			ID:             row.ID,
			RoomCode:       row.RoomCode,
			HostName:       row.HostName.String,
			GameMode:       row.GameMode,
			MaxPlayers:     row.MaxPlayers,
			CurrentPlayers: row.CurrentPlayers,
			Status:         row.Status,
			Settings:       row.Settings,
			CreatedAt:      row.CreatedAt,
			StartedAt:      row.StartedAt,
			EndedAt:        row.EndedAt,
		},
		Participants: make([]rooms.ParticipantInfo, 0, len(parts)),
	}
	for _, p := range parts {
		resp.Participants = append(resp.Participants, rooms.ParticipantInfo{
			ID:        p.ID,
			GuestName: p.GuestName.String,
			Role:      p.Role.String,
			IsReady:   p.IsReady,
		})
	}
	writeJSON(w, status, resp)
}

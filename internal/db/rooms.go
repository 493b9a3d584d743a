package db

import (
	"database/sql"
	"fmt"
	"time"
)

type RoomRow struct {
	ID             string
	RoomCode       string
	HostName       sql.NullString
	GameMode       string
	MaxPlayers     int
	CurrentPlayers int
	Status         string
	Settings       []byte
	CreatedAt      time.Time
	StartedAt      *time.Time
	EndedAt        *time.Time
}

type ParticipantRow struct {
	ID        string
	RoomID    string
	GuestName sql.NullString
	Role      sql.NullString
	IsReady   bool
	JoinedAt  time.Time
}

// CreateRoom inserts a room row and its host as the first participant in one
// transaction. The caller supplies a freshly generated code; a unique
// violation on room_code surfaces as an error for the caller to retry.
func (d *DB) CreateRoom(code, hostName, gameMode string, maxPlayers int, settings []byte) (*RoomRow, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning create room tx: %w", err)
	}
	defer tx.Rollback()

	room := RoomRow{
		RoomCode:       code,
		HostName:       sql.NullString{String: hostName, Valid: hostName != ""},
		GameMode:       gameMode,
		MaxPlayers:     maxPlayers,
		CurrentPlayers: 1,
		Status:         "waiting",
		Settings:       settings,
	}
	var set any
	if len(settings) > 0 {
		set = settings
	}
	err = tx.QueryRow(`
		INSERT INTO rooms (room_code, host_name, game_mode, max_players, settings)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, code, room.HostName, gameMode, maxPlayers, set).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO participants (room_id, guest_name)
		VALUES ($1, $2)
	`, room.ID, room.HostName)
	if err != nil {
		return nil, fmt.Errorf("adding host participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing create room tx: %w", err)
	}
	return &room, nil
}

// GetRoomByCode returns the room row for code, or sql.ErrNoRows.
func (d *DB) GetRoomByCode(code string) (*RoomRow, error) {
	var room RoomRow
	err := d.conn.QueryRow(`
		SELECT id, room_code, host_name, game_mode, max_players, current_players,
		       status, settings, created_at, started_at, ended_at
		FROM rooms WHERE room_code = $1
	`, code).Scan(
		&room.ID, &room.RoomCode, &room.HostName, &room.GameMode,
		&room.MaxPlayers, &room.CurrentPlayers, &room.Status, &room.Settings,
		&room.CreatedAt, &room.StartedAt, &room.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Participants lists the durable participants of a room in join order.
func (d *DB) Participants(roomID string) ([]ParticipantRow, error) {
	rows, err := d.conn.Query(`
		SELECT id, room_id, guest_name, role, is_ready, joined_at
		FROM participants WHERE room_id = $1
		ORDER BY joined_at
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	var out []ParticipantRow
	for rows.Next() {
		var p ParticipantRow
		if err := rows.Scan(&p.ID, &p.RoomID, &p.GuestName, &p.Role, &p.IsReady, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateRoomStatus moves a room through its advisory lifecycle, stamping
// started_at or ended_at for the matching transitions.
func (d *DB) UpdateRoomStatus(roomID, status string) error {
	var err error
	switch status {
	case "in_progress":
		_, err = d.conn.Exec(`
			UPDATE rooms SET status = $2, started_at = now() WHERE id = $1
		`, roomID, status)
	case "ended":
		_, err = d.conn.Exec(`
			UPDATE rooms SET status = $2, ended_at = now() WHERE id = $1
		`, roomID, status)
	default:
		_, err = d.conn.Exec(`
			UPDATE rooms SET status = $2 WHERE id = $1
		`, roomID, status)
	}
	if err != nil {
		return fmt.Errorf("updating room status: %w", err)
	}
	return nil
}

// AddParticipant records a joining player and bumps the room's persisted
// player count. The count is advisory only; live membership is the hub's.
func (d *DB) AddParticipant(roomID, guestName string) (*ParticipantRow, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning join tx: %w", err)
	}
	defer tx.Rollback()

	p := ParticipantRow{
		RoomID:    roomID,
		GuestName: sql.NullString{String: guestName, Valid: guestName != ""},
	}
	err = tx.QueryRow(`
		INSERT INTO participants (room_id, guest_name)
		VALUES ($1, $2)
		RETURNING id, joined_at
	`, roomID, p.GuestName).Scan(&p.ID, &p.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("adding participant: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE rooms SET current_players = current_players + 1 WHERE id = $1
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("updating player count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing join tx: %w", err)
	}
	return &p, nil
}

package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DEFAULT_MAX_PLAYERS", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "")
	}
	if cfg.DefaultMaxPlayers != 2 {
		t.Errorf("DefaultMaxPlayers = %d, want %d", cfg.DefaultMaxPlayers, 2)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/gamerooms")
	t.Setenv("DEFAULT_MAX_PLAYERS", "4")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/gamerooms" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://localhost/gamerooms")
	}
	if cfg.DefaultMaxPlayers != 4 {
		t.Errorf("DefaultMaxPlayers = %d, want %d", cfg.DefaultMaxPlayers, 4)
	}
}

func TestLoad_InvalidMaxPlayers(t *testing.T) {
	t.Setenv("DEFAULT_MAX_PLAYERS", "abc")

	cfg := Load()

	if cfg.DefaultMaxPlayers != 2 {
		t.Errorf("DefaultMaxPlayers = %d, want %d (fallback)", cfg.DefaultMaxPlayers, 2)
	}
}

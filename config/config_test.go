package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.HandSize != 5 {
		t.Errorf("expected hand size 5, got %d", cfg.HandSize)
	}
	if cfg.MinPlayers != 3 {
		t.Errorf("expected min players 3, got %d", cfg.MinPlayers)
	}
	if cfg.CommandPrefix != "!" {
		t.Errorf("expected prefix %q, got %q", "!", cfg.CommandPrefix)
	}
	if cfg.StandardDeckName != "standard" {
		t.Errorf("expected standard deck name %q, got %q", "standard", cfg.StandardDeckName)
	}
	if len(cfg.BotPlayerNames) == 0 {
		t.Error("expected default bot player names")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HAND_SIZE", "7")
	t.Setenv("MIN_PLAYERS", "2")
	t.Setenv("COMMAND_PREFIX", "?")
	t.Setenv("BOT_TOKEN", "token-123")

	cfg := Load()
	if cfg.HandSize != 7 {
		t.Errorf("expected hand size override 7, got %d", cfg.HandSize)
	}
	if cfg.MinPlayers != 2 {
		t.Errorf("expected min players override 2, got %d", cfg.MinPlayers)
	}
	if cfg.CommandPrefix != "?" {
		t.Errorf("expected prefix override %q, got %q", "?", cfg.CommandPrefix)
	}
	if cfg.BotToken != "token-123" {
		t.Errorf("expected bot token from env, got %q", cfg.BotToken)
	}
}

func TestInvalidIntOverrideKeepsDefault(t *testing.T) {
	t.Setenv("HAND_SIZE", "lots")
	cfg := Load()
	if cfg.HandSize != 5 {
		t.Errorf("invalid override must keep the default, got %d", cfg.HandSize)
	}
}

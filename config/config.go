package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable bot and game parameters.
type Config struct {
	HandSize          int    `json:"hand_size"`
	MinPlayers        int    `json:"min_players"`
	CommandPrefix     string `json:"command_prefix"`
	DeckDir           string `json:"deck_dir"`
	StandardDeckName  string `json:"standard_deck_name"`
	MaxDeckNameLength int    `json:"max_deck_name_length"`
	APIPort           int    `json:"api_port"`

	// BotPlayerNames are the persona names handed to automated players,
	// in order; exhausted names repeat with a numeric suffix.
	BotPlayerNames []string `json:"bot_player_names"`

	// BotToken is the Discord bot token. Env only; never in config.json.
	BotToken string `json:"-"`

	// DatabaseURL enables deck and history persistence when set.
	DatabaseURL string `json:"-"`

	// AuthBaseURL is the JWKS issuer base URL for the companion API.
	AuthBaseURL string `json:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		HandSize:          5,
		MinPlayers:        3,
		CommandPrefix:     "!",
		DeckDir:           "decks",
		StandardDeckName:  "standard",
		MaxDeckNameLength: 32,
		APIPort:           8080,
		BotPlayerNames:    []string{"Rando", "Cardtrick", "Blanche", "Punchline"},
	}
}

// Load reads configuration from an optional config.json file, then
// applies environment variable overrides. Fields not set in either source
// retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	overrideInt(&cfg.HandSize, "HAND_SIZE")
	overrideInt(&cfg.MinPlayers, "MIN_PLAYERS")
	overrideString(&cfg.CommandPrefix, "COMMAND_PREFIX")
	overrideString(&cfg.DeckDir, "DECK_DIR")
	overrideString(&cfg.StandardDeckName, "STANDARD_DECK_NAME")
	overrideInt(&cfg.MaxDeckNameLength, "MAX_DECK_NAME_LENGTH")
	overrideInt(&cfg.APIPort, "API_PORT")
	overrideString(&cfg.BotToken, "BOT_TOKEN")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardczar-bot/card"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS decks (
	name      TEXT PRIMARY KEY,
	author_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS deck_cards (
	deck_name TEXT NOT NULL REFERENCES decks(name) ON DELETE CASCADE,
	kind      TEXT NOT NULL CHECK (kind IN ('response', 'prompt')),
	text      TEXT NOT NULL,
	blanks    SMALLINT NOT NULL DEFAULT 1,
	PRIMARY KEY (deck_name, kind, text)
);
CREATE TABLE IF NOT EXISTS game_history (
	id          UUID PRIMARY KEY,
	played_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	channel_id  TEXT NOT NULL,
	host_id     TEXT NOT NULL,
	rounds      INT NOT NULL,
	player_count INT NOT NULL,
	winner_ids  TEXT[] NOT NULL,
	winner_names TEXT[] NOT NULL,
	top_score   INT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_history_channel ON game_history(channel_id);
CREATE INDEX IF NOT EXISTS idx_game_history_host ON game_history(host_id);
`

// Store persists authored decks and finished-game history. Live session
// state is never written; a restart loses running games on purpose.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the schema exists. If
// databaseURL is empty, NewStore returns (nil, nil) and every Store
// method becomes a no-op.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// SaveDeck upserts the deck row.
func (s *Store) SaveDeck(ctx context.Context, name, authorID string) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO decks (name, author_id) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`, name, authorID)
	return err
}

// SaveResponseCard records an authored response card. Duplicate texts are
// ignored, matching the in-memory deck's idempotent add.
func (s *Store) SaveResponseCard(ctx context.Context, deckName, text string) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO deck_cards (deck_name, kind, text, blanks) VALUES ($1, 'response', $2, 1)
		ON CONFLICT DO NOTHING`, deckName, text)
	return err
}

// SavePromptCard records an authored prompt card.
func (s *Store) SavePromptCard(ctx context.Context, deckName, text string, blanks int) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO deck_cards (deck_name, kind, text, blanks) VALUES ($1, 'prompt', $2, $3)
		ON CONFLICT DO NOTHING`, deckName, text, blanks)
	return err
}

// LoadDecks rebuilds every persisted deck into the library at startup.
func (s *Store) LoadDecks(ctx context.Context, library *card.Library) error {
	if s == nil || s.pool == nil {
		return nil
	}
	rows, err := s.pool.Query(ctx, `SELECT name, author_id FROM decks ORDER BY created_at`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type deckRow struct{ name, author string }
	var deckRows []deckRow
	for rows.Next() {
		var r deckRow
		if err := rows.Scan(&r.name, &r.author); err != nil {
			return err
		}
		deckRows = append(deckRows, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	loaded := 0
	for _, r := range deckRows {
		d := card.NewDeck(r.name, r.author)
		cardRows, err := s.pool.Query(ctx,
			`SELECT kind, text, blanks FROM deck_cards WHERE deck_name = $1`, r.name)
		if err != nil {
			return err
		}
		for cardRows.Next() {
			var kind, text string
			var blanks int
			if err := cardRows.Scan(&kind, &text, &blanks); err != nil {
				cardRows.Close()
				return err
			}
			if kind == "prompt" {
				if p, err := card.NewPrompt(text, blanks); err == nil {
					d.AddPrompt(p)
				}
			} else {
				d.AddResponse(card.Response{Text: text})
			}
		}
		cardRows.Close()
		if err := cardRows.Err(); err != nil {
			return err
		}
		library.Put(d)
		loaded++
	}
	if loaded > 0 {
		slog.Info("decks loaded from storage", "tag", "storage", "count", loaded)
	}
	return nil
}

// InsertGameResult records a finished game.
func (s *Store) InsertGameResult(ctx context.Context, channelID, hostID string, rounds, playerCount int, winnerIDs, winnerNames []string, topScore int) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_history (id, channel_id, host_id, rounds, player_count, winner_ids, winner_names, top_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), channelID, hostID, rounds, playerCount, winnerIDs, winnerNames, topScore)
	return err
}

// GameRecord is a single history row returned by the API.
type GameRecord struct {
	ID          string   `json:"id"`
	PlayedAt    string   `json:"played_at"`
	ChannelID   string   `json:"channel_id"`
	Rounds      int      `json:"rounds"`
	PlayerCount int      `json:"player_count"`
	WinnerNames []string `json:"winner_names"`
	TopScore    int      `json:"top_score"`
}

// ListByUserID returns the most recent games hosted or won by userID.
func (s *Store) ListByUserID(ctx context.Context, userID string) ([]GameRecord, error) {
	if s == nil || s.pool == nil {
		return []GameRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, to_char(played_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), channel_id, rounds, player_count, winner_names, top_score
		FROM game_history
		WHERE host_id = $1 OR $1 = ANY(winner_ids)
		ORDER BY played_at DESC
		LIMIT 50`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []GameRecord{}
	for rows.Next() {
		var r GameRecord
		if err := rows.Scan(&r.ID, &r.PlayedAt, &r.ChannelID, &r.Rounds, &r.PlayerCount, &r.WinnerNames, &r.TopScore); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

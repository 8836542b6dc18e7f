// Package sessions owns the registry of live game sessions, keyed by
// channel id. Creation and teardown are explicit; a channel has at most
// one session at a time.
package sessions

import (
	"fmt"
	"log/slog"
	"sync"

	"cardczar-bot/card"
	"cardczar-bot/carderrors"
	"cardczar-bot/config"
	"cardczar-bot/game"
)

// Manager maps channel ids to their running sessions and builds the deck
// in play when a session is set up.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session

	library *card.Library
	cfg     *config.Config
	bots    game.BotStrategy
}

// NewManager creates a session manager over the given deck library.
func NewManager(cfg *config.Config, library *card.Library, bots game.BotStrategy) *Manager {
	return &Manager{
		sessions: make(map[string]*game.Session),
		library:  library,
		cfg:      cfg,
		bots:     bots,
	}
}

// Create sets up a session in channelID hosted by actor. deckNames picks
// the decks to merge into the play set; an empty list means the standard
// deck. Every chosen deck must be usable by the actor.
func (m *Manager) Create(channelID string, actor card.Actor, deckNames []string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[channelID]; exists {
		return nil, carderrors.ErrSessionExists
	}

	if len(deckNames) == 0 {
		deckNames = []string{m.cfg.StandardDeckName}
	}
	decks := make([]*card.Deck, 0, len(deckNames))
	for _, name := range deckNames {
		d, err := m.library.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", carderrors.ErrDeckNotFound, name)
		}
		if !d.IsUsableBy(actor) {
			return nil, fmt.Errorf("%w: %s", carderrors.ErrNotPermitted, name)
		}
		decks = append(decks, d)
	}

	playSet := decks[0].Merge("play set", decks[1:]...)
	s := game.NewSession(channelID, actor.ID, playSet, m.cfg.HandSize, m.cfg.MinPlayers, m.bots)
	m.sessions[channelID] = s

	responses, prompts := playSet.Counts()
	slog.Info("session created", "tag", "sessions", "channel", channelID,
		"host", actor.ID, "decks", len(decks), "responses", responses, "prompts", prompts)
	return s, nil
}

// Get returns the session for channelID.
func (m *Manager) Get(channelID string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[channelID]
	if !ok {
		return nil, carderrors.ErrNoSession
	}
	return s, nil
}

// End finishes the channel's game and removes the session from the
// registry, returning the final summary.
func (m *Manager) End(channelID string) (*game.Summary, error) {
	m.mu.Lock()
	s, ok := m.sessions[channelID]
	if ok {
		delete(m.sessions, channelID)
	}
	m.mu.Unlock()
	if !ok {
		return nil, carderrors.ErrNoSession
	}

	sum := s.End()
	slog.Info("session ended", "tag", "sessions", "channel", channelID,
		"rounds", sum.Rounds, "winners", len(sum.Winners))
	return sum, nil
}

// EndAll tears down every session, as on shutdown.
func (m *Manager) EndAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.End()
		delete(m.sessions, id)
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

package card

import (
	"sort"
	"strings"
	"sync"

	"cardczar-bot/carderrors"
)

// Library is the process-wide registry of authored decks, keyed by folded
// name. Decks live here across game sessions; sessions only hold merged
// copies of library decks.
type Library struct {
	mu    sync.RWMutex
	decks map[string]*Deck
}

// NewLibrary creates an empty deck library.
func NewLibrary() *Library {
	return &Library{decks: make(map[string]*Deck)}
}

// Create validates the name and registers a new empty deck for authorID.
func (l *Library) Create(name, authorID string) (*Deck, error) {
	if err := ValidateDeckName(name); err != nil {
		return nil, err
	}
	key := strings.ToLower(strings.TrimSpace(name))
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.decks[key]; exists {
		return nil, carderrors.ErrDeckExists
	}
	d := NewDeck(strings.TrimSpace(name), authorID)
	l.decks[key] = d
	return d, nil
}

// Put registers an already-built deck (used when loading the standard deck
// from disk). Overwrites any deck with the same folded name.
func (l *Library) Put(d *Deck) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decks[strings.ToLower(d.Name)] = d
}

// Get looks a deck up by name, case-insensitively.
func (l *Library) Get(name string) (*Deck, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	d, ok := l.decks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, carderrors.ErrDeckNotFound
	}
	return d, nil
}

// All returns every registered deck, sorted by name for stable listings.
func (l *Library) All() []*Deck {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Deck, 0, len(l.decks))
	for _, d := range l.decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

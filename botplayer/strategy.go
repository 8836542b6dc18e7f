// Package botplayer provides the automated players the host can add with
// the addbot command: a persona name pool and the strategy that decides
// which hand slots a bot commits each round.
package botplayer

import (
	"fmt"
	"math/rand"
	"sync"
)

// RandomStrategy picks distinct hand slots uniformly at random. Bots have
// no model of card quality; a random legal play is all the game needs.
type RandomStrategy struct{}

// PickIndices returns count distinct indices in [0, handSize).
func (RandomStrategy) PickIndices(handSize, count int) []int {
	if count > handSize {
		count = handSize
	}
	return rand.Perm(handSize)[:count]
}

// Roster hands out persona names for bot players, cycling through the
// configured pool and suffixing a counter once the pool is exhausted.
type Roster struct {
	mu    sync.Mutex
	names []string
	next  int
}

// NewRoster creates a roster over the given persona names. An empty pool
// falls back to a single generic name.
func NewRoster(names []string) *Roster {
	if len(names) == 0 {
		names = []string{"Botty"}
	}
	return &Roster{names: names}
}

// Next returns a bot id and display name. Ids are stable and unique for
// the life of the process.
func (r *Roster) Next() (id, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name = r.names[r.next%len(r.names)]
	if r.next >= len(r.names) {
		name = fmt.Sprintf("%s %d", name, r.next/len(r.names)+1)
	}
	id = fmt.Sprintf("bot:%d", r.next)
	r.next++
	return id, name
}

package game

import "cardczar-bot/card"

// Player binds one participant to a fixed-size hand of response cards, the
// cards committed for the current round, and the prompt cards won so far.
type Player struct {
	UserID string
	Name   string

	// Bot marks an automated player; bots auto-play and are skipped by
	// judge rotation.
	Bot bool

	// Hand always has exactly handSize slots; a nil slot is empty and is
	// refilled at the next deal.
	Hand []*card.Response

	// Played is nil until the player commits cards this round.
	Played []card.Response

	// Won holds one prompt card per round won; the score is its length.
	Won []card.Prompt
}

// NewPlayer creates a player with an empty hand of handSize slots.
func NewPlayer(userID, name string, handSize int) *Player {
	return &Player{
		UserID: userID,
		Name:   name,
		Hand:   make([]*card.Response, handSize),
	}
}

// Score is the number of rounds this player has won.
func (p *Player) Score() int {
	return len(p.Won)
}

// HasPlayed reports whether the player has committed cards this round.
func (p *Player) HasPlayed() bool {
	return p.Played != nil
}

// emptySlots returns the indices of unfilled hand slots.
func (p *Player) emptySlots() []int {
	var idx []int
	for i, c := range p.Hand {
		if c == nil {
			idx = append(idx, i)
		}
	}
	return idx
}

package card

import (
	"math/rand"
	"strings"
	"sync"

	"cardczar-bot/carderrors"
)

// reservedNames are the deck-authoring action keywords; a deck may not take
// one of these as its name or the command grammar becomes ambiguous.
var reservedNames = map[string]struct{}{
	"make": {}, "write": {}, "add": {}, "insert": {}, "edit": {},
	"delete": {}, "remove": {}, "clear": {}, "toss": {}, "trash": {},
	"bin": {}, "lockto": {}, "lockout": {},
}

// ValidateDeckName rejects reserved action keywords and purely numeric names.
func ValidateDeckName(name string) error {
	folded := strings.ToLower(strings.TrimSpace(name))
	if folded == "" {
		return carderrors.ErrInvalidDeckName
	}
	if _, ok := reservedNames[folded]; ok {
		return carderrors.ErrInvalidDeckName
	}
	numeric := true
	for _, r := range folded {
		if r < '0' || r > '9' {
			numeric = false
			break
		}
	}
	if numeric {
		return carderrors.ErrInvalidDeckName
	}
	return nil
}

// Actor is a resolved participant identity as seen by the deck access
// check. The dispatcher fills it in from the chat platform's member data;
// the card package never performs role lookups itself.
type Actor struct {
	ID       string
	GroupIDs []string
	Admin    bool
}

// Deck is a named bundle of response and prompt cards. Cards are unique by
// text and keep insertion order. A deck outlives any single game session
// and may be authored concurrently from several channels, so it carries
// its own lock, independent of any session lock.
type Deck struct {
	mu sync.RWMutex

	Name     string
	AuthorID string

	responses   []Response
	responseSet map[string]struct{}
	prompts     []Prompt
	promptSet   map[string]struct{}

	// permittedGroups restricts use to members of these groups (plus the
	// author and admins). Empty means usable by anyone.
	permittedGroups map[string]struct{}
}

// NewDeck creates an empty deck owned by authorID.
func NewDeck(name, authorID string) *Deck {
	return &Deck{
		Name:            name,
		AuthorID:        authorID,
		responseSet:     make(map[string]struct{}),
		promptSet:       make(map[string]struct{}),
		permittedGroups: make(map[string]struct{}),
	}
}

// AddResponse inserts a response card. Returns false without modifying the
// deck when a card with equal text is already present.
func (d *Deck) AddResponse(c Response) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.responseSet[c.Text]; dup {
		return false
	}
	d.responseSet[c.Text] = struct{}{}
	d.responses = append(d.responses, c)
	return true
}

// AddPrompt inserts a prompt card. Returns false on duplicate text.
func (d *Deck) AddPrompt(c Prompt) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.promptSet[c.Text]; dup {
		return false
	}
	d.promptSet[c.Text] = struct{}{}
	d.prompts = append(d.prompts, c)
	return true
}

// Responses returns a copy of the response cards in insertion order.
func (d *Deck) Responses() []Response {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Response, len(d.responses))
	copy(out, d.responses)
	return out
}

// Prompts returns a copy of the prompt cards in insertion order.
func (d *Deck) Prompts() []Prompt {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Prompt, len(d.prompts))
	copy(out, d.prompts)
	return out
}

// Counts returns the number of response and prompt cards.
func (d *Deck) Counts() (responses, prompts int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.responses), len(d.prompts)
}

// PermitGroup adds a group to the deck's access list.
func (d *Deck) PermitGroup(groupID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permittedGroups[groupID] = struct{}{}
}

// RevokeGroup removes a group from the deck's access list.
func (d *Deck) RevokeGroup(groupID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.permittedGroups, groupID)
}

// IsUsableBy reports whether actor may use or view this deck: access list
// empty, actor is the author, actor is an admin, or actor belongs to a
// permitted group.
func (d *Deck) IsUsableBy(actor Actor) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.permittedGroups) == 0 {
		return true
	}
	if actor.Admin || actor.ID == d.AuthorID {
		return true
	}
	for _, g := range actor.GroupIDs {
		if _, ok := d.permittedGroups[g]; ok {
			return true
		}
	}
	return false
}

// Merge builds a new deck from the union of d and the given decks,
// collapsing duplicates by text. The result has no access list: a merged
// play set is always unrestricted.
func (d *Deck) Merge(name string, others ...*Deck) *Deck {
	merged := NewDeck(name, d.AuthorID)
	for _, src := range append([]*Deck{d}, others...) {
		for _, c := range src.Responses() {
			merged.AddResponse(c)
		}
		for _, c := range src.Prompts() {
			merged.AddPrompt(c)
		}
	}
	return merged
}

// RandomResponse draws a response card uniformly at random. The card is
// not removed from the deck: draws are with replacement, so the same card
// may be dealt to two hands (or twice into one hand) at the same time.
func (d *Deck) RandomResponse() (Response, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.responses) == 0 {
		return Response{}, false
	}
	return d.responses[rand.Intn(len(d.responses))], true
}

// RandomPrompt draws a prompt card uniformly at random, also with
// replacement. When avoidText is non-empty the draw retries until it finds
// a prompt with different text, unless the deck has no other prompt.
func (d *Deck) RandomPrompt(avoidText string) (Prompt, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.prompts) == 0 {
		return Prompt{}, false
	}
	p := d.prompts[rand.Intn(len(d.prompts))]
	if avoidText == "" || len(d.prompts) == 1 {
		return p, true
	}
	for p.Text == avoidText {
		p = d.prompts[rand.Intn(len(d.prompts))]
	}
	return p, true
}

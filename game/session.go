package game

import (
	"math/rand"
	"sync"

	"cardczar-bot/card"
	"cardczar-bot/carderrors"
)

// Phase is the per-round phase of a running session.
type Phase int

const (
	// Choosing: non-judge players are committing response cards.
	Choosing Phase = iota
	// Reading: all plays are in and the judge is picking a winner.
	Reading
)

// String returns the protocol string for a Phase.
func (p Phase) String() string {
	switch p {
	case Choosing:
		return "choosing"
	case Reading:
		return "reading"
	default:
		return "unknown"
	}
}

// BotStrategy picks which hand slots an automated player commits.
// Abstracted as an interface so the game package does not import the
// botplayer package directly.
type BotStrategy interface {
	PickIndices(handSize, count int) []int
}

// Session is one running game bound to a single channel. Every operation
// takes the session lock, validates, and only then mutates, so a rejected
// call leaves the session exactly as it was. Rendering happens outside
// the lock, on the views the operations return.
type Session struct {
	mu sync.Mutex

	ChannelID string
	HostID    string

	deck       *card.Deck
	handSize   int
	minPlayers int

	// players keeps join order; judge rotation walks this slice by index
	// rather than iterating a live map.
	players  []*Player
	byID     map[string]*Player
	judgeIdx int

	prompt  card.Prompt
	round   int
	phase   Phase
	running bool
	winners []*Player

	bots BotStrategy
}

// NewSession creates a session for channelID playing deck. handSize and
// minPlayers are fixed for the session's lifetime. bots may be nil when no
// automated players will join.
func NewSession(channelID, hostID string, deck *card.Deck, handSize, minPlayers int, bots BotStrategy) *Session {
	return &Session{
		ChannelID:  channelID,
		HostID:     hostID,
		deck:       deck,
		handSize:   handSize,
		minPlayers: minPlayers,
		byID:       make(map[string]*Player),
		judgeIdx:   -1,
		bots:       bots,
	}
}

// AddPlayer registers a participant. While the game is running the new
// player is dealt a full hand immediately; before the start they simply
// join the roster.
func (s *Session) AddPlayer(userID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(userID, name, false)
}

// AddBot registers an automated player under a synthetic id. Bots commit
// a random legal play each choosing phase and never judge.
func (s *Session) AddBot(botID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.addLocked(botID, name, true); err != nil {
		return err
	}
	if s.running && s.phase == Choosing {
		s.autoplayLocked()
	}
	return nil
}

func (s *Session) addLocked(userID, name string, bot bool) error {
	if _, exists := s.byID[userID]; exists {
		return carderrors.ErrAlreadyRegistered
	}
	p := NewPlayer(userID, name, s.handSize)
	p.Bot = bot
	s.players = append(s.players, p)
	s.byID[userID] = p
	if s.running {
		s.dealLocked(p)
	}
	return nil
}

// Remove takes a participant out of the game. If the judge leaves while a
// round is in progress, the round restarts with the next judge and the
// same prompt: every play is cleared and every hand is refilled, so
// players who had already committed cards can play again. A running game
// with fewer than two players left ends immediately.
func (s *Session) Remove(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.players {
		if p.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return carderrors.ErrUnknownPlayer
	}
	wasJudge := s.running && idx == s.judgeIdx

	delete(s.byID, userID)
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	if idx < s.judgeIdx {
		s.judgeIdx--
	}

	if !s.running {
		return nil
	}
	if len(s.players) < 2 {
		s.endLocked()
		return nil
	}
	if wasJudge {
		// The departed judge's seat now belongs to the next player.
		s.judgeIdx = s.judgeIdx % len(s.players)
		s.skipBotJudgeLocked()
		for _, p := range s.players {
			p.Played = nil
			s.dealLocked(p)
		}
		s.phase = Choosing
		s.autoplayLocked()
	}
	return nil
}

// Start begins the game: every registered player is dealt a full hand, an
// initial judge is chosen at random among non-bot players, the first
// prompt is drawn, and round 1 enters the choosing phase. Fails without
// state change when fewer than the minimum number of players registered.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return carderrors.ErrWrongPhase
	}
	if len(s.players) < s.minPlayers {
		return carderrors.ErrNotEnoughPlayers
	}
	if responses, prompts := s.deck.Counts(); responses == 0 || prompts == 0 {
		return carderrors.ErrDeckEmpty
	}

	prompt, ok := s.deck.RandomPrompt("")
	if !ok {
		return carderrors.ErrDeckEmpty
	}

	// A game with no human player has no one to judge; reject before any
	// hand is touched.
	var eligible []int
	for i, p := range s.players {
		if !p.Bot {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return carderrors.ErrNotEnoughPlayers
	}

	for _, p := range s.players {
		s.dealLocked(p)
	}
	s.judgeIdx = eligible[rand.Intn(len(eligible))]

	s.prompt = prompt
	s.round = 1
	s.phase = Choosing
	s.running = true
	s.winners = nil
	s.autoplayLocked()
	return nil
}

// Play commits the referenced hand slots, in the order given, as userID's
// play for the round. Valid only in the choosing phase, only once per
// round, and never for the judge. The number of indices must equal the
// prompt's blank count; the dispatcher enforces this through argument
// count, but the engine rejects mismatches anyway.
func (s *Session) Play(userID string, indices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return carderrors.ErrGameNotRunning
	}
	if s.phase != Choosing {
		return carderrors.ErrWrongPhase
	}
	p, ok := s.byID[userID]
	if !ok {
		return carderrors.ErrUnknownPlayer
	}
	if p == s.players[s.judgeIdx] {
		return carderrors.ErrIsJudge
	}
	if p.HasPlayed() {
		return carderrors.ErrAlreadyPlayed
	}
	return s.commitLocked(p, indices)
}

// commitLocked validates indices fully before moving any card.
func (s *Session) commitLocked(p *Player, indices []int) error {
	if len(indices) != s.prompt.Blanks {
		return carderrors.ErrWrongCardCount
	}
	seen := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= s.handSize || p.Hand[idx] == nil {
			return carderrors.ErrIndexOutOfRange
		}
		if _, dup := seen[idx]; dup {
			return carderrors.ErrIndexOutOfRange
		}
		seen[idx] = struct{}{}
	}
	played := make([]card.Response, 0, len(indices))
	for _, idx := range indices {
		played = append(played, *p.Hand[idx])
		p.Hand[idx] = nil
	}
	p.Played = played
	return nil
}

// AllPlayed reports whether every non-judge player has committed a play.
// When it becomes true in the choosing phase the session moves to the
// reading phase; this predicate is the only trigger for that transition.
func (s *Session) AllPlayed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}
	for i, p := range s.players {
		if i == s.judgeIdx {
			continue
		}
		if !p.HasPlayed() {
			return false
		}
	}
	if s.phase == Choosing {
		s.phase = Reading
	}
	return true
}

// PickWinner resolves the round. Only the judge may call it, only in the
// reading phase, and the judge cannot pick themselves. The prompt card is
// attached to the winner with the winning responses recorded, and the next
// round is set up before returning.
func (s *Session) PickWinner(actorID, winnerID string) (*RoundOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil, carderrors.ErrGameNotRunning
	}
	if s.phase != Reading {
		return nil, carderrors.ErrWrongPhase
	}
	judge := s.players[s.judgeIdx]
	if actorID != judge.UserID {
		return nil, carderrors.ErrNotJudge
	}
	winner, ok := s.byID[winnerID]
	if !ok {
		return nil, carderrors.ErrUnknownPlayer
	}
	if winner == judge {
		return nil, carderrors.ErrIsJudge
	}

	won := s.prompt
	won.Winning = make([]card.Response, len(winner.Played))
	copy(won.Winning, winner.Played)
	winner.Won = append(winner.Won, won)

	outcome := &RoundOutcome{
		Round:        s.round,
		WinnerID:     winner.UserID,
		WinnerName:   winner.Name,
		PromptText:   won.Text,
		WinningCards: responseTexts(won.Winning),
		WinnerScore:  winner.Score(),
	}

	s.setupNextRoundLocked()
	outcome.Next = s.roundStateLocked()
	return outcome, nil
}

// setupNextRoundLocked clears every play, refills every hand, draws a new
// prompt with different text, rotates the judge, and increments the round.
func (s *Session) setupNextRoundLocked() {
	for _, p := range s.players {
		p.Played = nil
		s.dealLocked(p)
	}
	if next, ok := s.deck.RandomPrompt(s.prompt.Text); ok {
		s.prompt = next
	}
	s.judgeIdx = (s.judgeIdx + 1) % len(s.players)
	s.skipBotJudgeLocked()
	s.phase = Choosing
	s.round++
	s.autoplayLocked()
}

// skipBotJudgeLocked advances judgeIdx past automated players, as long as
// a non-bot player exists to take the seat.
func (s *Session) skipBotJudgeLocked() {
	hasHuman := false
	for _, p := range s.players {
		if !p.Bot {
			hasHuman = true
			break
		}
	}
	if !hasHuman {
		return
	}
	for s.players[s.judgeIdx].Bot {
		s.judgeIdx = (s.judgeIdx + 1) % len(s.players)
	}
}

// End finishes the game, whatever the phase. Every player tied at the
// maximum score is a winner; ties are preserved, never broken.
func (s *Session) End() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endLocked()
}

func (s *Session) endLocked() *Summary {
	maxScore := 0
	for _, p := range s.players {
		if p.Score() > maxScore {
			maxScore = p.Score()
		}
	}
	s.winners = nil
	for _, p := range s.players {
		if p.Score() == maxScore {
			s.winners = append(s.winners, p)
		}
	}
	s.running = false

	sum := &Summary{Rounds: s.round}
	for _, p := range s.winners {
		sum.Winners = append(sum.Winners, PlayerScore{UserID: p.UserID, Name: p.Name, Score: p.Score()})
	}
	for _, p := range s.players {
		sum.Scores = append(sum.Scores, PlayerScore{UserID: p.UserID, Name: p.Name, Score: p.Score()})
	}
	return sum
}

// dealLocked fills every empty hand slot with a card drawn at random from
// the deck in play. Draws are with replacement: a card is never removed
// from the pool, so duplicate deals are possible. Returns true if any
// card was dealt.
func (s *Session) dealLocked(p *Player) bool {
	dealt := false
	for _, idx := range p.emptySlots() {
		c, ok := s.deck.RandomResponse()
		if !ok {
			break
		}
		p.Hand[idx] = &c
		dealt = true
	}
	return dealt
}

// autoplayLocked commits a random legal play for every bot that still owes
// one. The phase transition itself stays with AllPlayed.
func (s *Session) autoplayLocked() {
	for i, p := range s.players {
		if !p.Bot || i == s.judgeIdx || p.HasPlayed() {
			continue
		}
		var indices []int
		if s.bots != nil {
			indices = s.bots.PickIndices(s.handSize, s.prompt.Blanks)
		} else {
			indices = rand.Perm(s.handSize)[:s.prompt.Blanks]
		}
		// A bot play failing validation means the hand could not be
		// refilled (empty deck); leave the play uncommitted.
		_ = s.commitLocked(p, indices)
	}
}

func responseTexts(cards []card.Response) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Text
	}
	return out
}

package game

import "cardczar-bot/carderrors"

// PlayerView is the rendering-facing representation of a player.
type PlayerView struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Bot       bool   `json:"bot,omitempty"`
	HasPlayed bool   `json:"hasPlayed"`
}

// RoundState describes the current round for rendering: the prompt being
// filled, how many cards it needs, and who is judging.
type RoundState struct {
	Round      int    `json:"round"`
	Phase      string `json:"phase"`
	PromptText string `json:"promptText"`
	Blanks     int    `json:"blanks"`
	JudgeID    string `json:"judgeId"`
	JudgeName  string `json:"judgeName"`
}

// Submission is one player's committed play, exposed for the judge to
// read. The dispatcher numbers submissions for the pick command.
type Submission struct {
	PlayerID   string   `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Cards      []string `json:"cards"`
}

// RoundOutcome is returned by PickWinner: who won the round with what,
// plus the state of the next round that was just set up.
type RoundOutcome struct {
	Round        int        `json:"round"`
	WinnerID     string     `json:"winnerId"`
	WinnerName   string     `json:"winnerName"`
	PromptText   string     `json:"promptText"`
	WinningCards []string   `json:"winningCards"`
	WinnerScore  int        `json:"winnerScore"`
	Next         RoundState `json:"next"`
}

// PlayerScore pairs a player with their final score.
type PlayerScore struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Summary is the result of ending a game. Winners holds every player tied
// at the maximum score.
type Summary struct {
	Winners []PlayerScore `json:"winners"`
	Scores  []PlayerScore `json:"scores"`
	Rounds  int           `json:"rounds"`
}

// Snapshot is the full public state of a session, broadcast to spectator
// clients after each transition. It never includes hand contents.
type Snapshot struct {
	ChannelID  string       `json:"channelId"`
	Running    bool         `json:"running"`
	Round      int          `json:"round"`
	Phase      string       `json:"phase"`
	PromptText string       `json:"promptText,omitempty"`
	Blanks     int          `json:"blanks,omitempty"`
	JudgeName  string       `json:"judgeName,omitempty"`
	Players    []PlayerView `json:"players"`
}

// Running reports whether the game has started and not yet ended.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Round returns the current round number; 0 before the game starts.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// CurrentPhase returns the session phase. Meaningful only while running.
func (s *Session) CurrentPhase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// RoundInfo returns the rendering view of the current round.
func (s *Session) RoundInfo() RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roundStateLocked()
}

func (s *Session) roundStateLocked() RoundState {
	rs := RoundState{
		Round:      s.round,
		Phase:      s.phase.String(),
		PromptText: s.prompt.Text,
		Blanks:     s.prompt.Blanks,
	}
	if s.judgeIdx >= 0 && s.judgeIdx < len(s.players) {
		rs.JudgeID = s.players[s.judgeIdx].UserID
		rs.JudgeName = s.players[s.judgeIdx].Name
	}
	return rs
}

// HandOf returns the texts of userID's hand slots, in slot order. Empty
// slots render as empty strings; while a game is running every slot is
// normally filled.
func (s *Session) HandOf(userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[userID]
	if !ok {
		return nil, carderrors.ErrUnknownPlayer
	}
	out := make([]string, len(p.Hand))
	for i, c := range p.Hand {
		if c != nil {
			out[i] = c.Text
		}
	}
	return out, nil
}

// Submissions lists the committed plays in join order, skipping the judge.
// The list is only meaningful in the reading phase.
func (s *Session) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	var subs []Submission
	for i, p := range s.players {
		if i == s.judgeIdx || !p.HasPlayed() {
			continue
		}
		subs = append(subs, Submission{
			PlayerID:   p.UserID,
			PlayerName: p.Name,
			Cards:      responseTexts(p.Played),
		})
	}
	return subs
}

// Players returns a view of every registered player in join order.
func (s *Session) Players() []PlayerView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerViewsLocked()
}

func (s *Session) playerViewsLocked() []PlayerView {
	views := make([]PlayerView, len(s.players))
	for i, p := range s.players {
		views[i] = PlayerView{
			UserID:    p.UserID,
			Name:      p.Name,
			Score:     p.Score(),
			Bot:       p.Bot,
			HasPlayed: p.HasPlayed(),
		}
	}
	return views
}

// Snapshot captures the public session state under the lock so it can be
// serialized and broadcast after the lock is released.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ChannelID: s.ChannelID,
		Running:   s.running,
		Round:     s.round,
		Phase:     s.phase.String(),
		Players:   s.playerViewsLocked(),
	}
	if s.running {
		snap.PromptText = s.prompt.Text
		snap.Blanks = s.prompt.Blanks
		if s.judgeIdx >= 0 && s.judgeIdx < len(s.players) {
			snap.JudgeName = s.players[s.judgeIdx].Name
		}
	}
	return snap
}

package bot

import (
	"errors"
	"strconv"
	"strings"

	"cardczar-bot/carderrors"
	"cardczar-bot/game"
)

// errorText maps engine error kinds to user-facing text. The engine never
// formats chat output itself; this is the one place rejections become
// words.
func errorText(err error) string {
	switch {
	case errors.Is(err, carderrors.ErrNoSession):
		return "No game is set up here. Start one with setup."
	case errors.Is(err, carderrors.ErrSessionExists):
		return "A game is already set up in this channel."
	case errors.Is(err, carderrors.ErrGameNotRunning):
		return "The game hasn't started yet."
	case errors.Is(err, carderrors.ErrAlreadyRegistered):
		return "You're already in this game."
	case errors.Is(err, carderrors.ErrUnknownPlayer):
		return "You're not in this game."
	case errors.Is(err, carderrors.ErrNotEnoughPlayers):
		return "Not enough players yet."
	case errors.Is(err, carderrors.ErrWrongPhase):
		return "You can't do that right now."
	case errors.Is(err, carderrors.ErrNotJudge):
		return "Only the judge can pick a winner."
	case errors.Is(err, carderrors.ErrIsJudge):
		return "The judge sits this one out."
	case errors.Is(err, carderrors.ErrAlreadyPlayed):
		return "You already played your cards this round."
	case errors.Is(err, carderrors.ErrWrongCardCount):
		return "That's not the right number of cards for this prompt."
	case errors.Is(err, carderrors.ErrIndexOutOfRange):
		return "That card number isn't in your hand."
	case errors.Is(err, carderrors.ErrInvalidBlankCount):
		return "Prompt cards take between 1 and 5 blanks."
	case errors.Is(err, carderrors.ErrInvalidDeckName):
		return "That deck name isn't allowed."
	case errors.Is(err, carderrors.ErrDuplicateCard):
		return "That exact card is already in the deck."
	case errors.Is(err, carderrors.ErrDeckExists):
		return "A deck with that name already exists."
	case errors.Is(err, carderrors.ErrDeckNotFound):
		return "I don't know that deck."
	case errors.Is(err, carderrors.ErrNotPermitted):
		return "You're not allowed to use that deck."
	case errors.Is(err, carderrors.ErrDeckEmpty):
		return "The deck in play needs both response and prompt cards."
	default:
		return "Something went wrong: " + err.Error()
	}
}

// roundAnnouncement opens a choosing phase: round number, judge, prompt.
func roundAnnouncement(rs game.RoundState) string {
	var sb strings.Builder
	sb.WriteString("Round ")
	sb.WriteString(strconv.Itoa(rs.Round))
	sb.WriteString("! ")
	sb.WriteString(rs.JudgeName)
	sb.WriteString(" is judging.\n> ")
	sb.WriteString(rs.PromptText)
	if rs.Blanks > 1 {
		sb.WriteString("\nPlay ")
		sb.WriteString(strconv.Itoa(rs.Blanks))
		sb.WriteString(" cards.")
	}
	return sb.String()
}

// outcomeText announces a resolved round.
func outcomeText(o *game.RoundOutcome) string {
	var sb strings.Builder
	sb.WriteString(o.WinnerName)
	sb.WriteString(" wins round ")
	sb.WriteString(strconv.Itoa(o.Round))
	sb.WriteString(" with \"")
	sb.WriteString(strings.Join(o.WinningCards, " / "))
	sb.WriteString("\" (")
	sb.WriteString(strconv.Itoa(o.WinnerScore))
	sb.WriteString(" total).")
	return sb.String()
}

// summaryText announces the end of a game, preserving ties.
func summaryText(sum *game.Summary) string {
	if len(sum.Winners) == 0 {
		return "Game over."
	}
	names := make([]string, len(sum.Winners))
	for i, w := range sum.Winners {
		names[i] = w.Name
	}
	score := strconv.Itoa(sum.Winners[0].Score)
	if len(names) == 1 {
		return "Game over! " + names[0] + " wins with " + score + " rounds won."
	}
	return "Game over! Tied at " + score + ": " + strings.Join(names, ", ") + "."
}

// handText renders a hand for a DM, numbered from 1 the way play expects.
func handText(hand []string) string {
	var sb strings.Builder
	sb.WriteString("Your hand:\n")
	for i, text := range hand {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		if text == "" {
			sb.WriteString("(empty)")
		} else {
			sb.WriteString(text)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

package carderrors

import "errors"

// Engine and registry sentinel errors. Shared by the card, game, sessions
// and bot packages to avoid circular imports; the bot package maps these
// to user-facing text.
var (
	// Card and deck authoring.
	ErrInvalidBlankCount = errors.New("prompt card must have between 1 and 5 blanks")
	ErrInvalidDeckName   = errors.New("invalid deck name")
	ErrDuplicateCard     = errors.New("an identical card already exists in this deck")
	ErrDeckExists        = errors.New("a deck with this name already exists")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrNotPermitted      = errors.New("you are not allowed to use this deck")

	// Session lifecycle.
	ErrSessionExists  = errors.New("a game is already set up in this channel")
	ErrNoSession      = errors.New("no game is set up in this channel")
	ErrGameNotRunning = errors.New("the game has not started yet")

	// In-game rejections.
	ErrAlreadyRegistered = errors.New("player is already in this game")
	ErrUnknownPlayer     = errors.New("player is not in this game")
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrWrongPhase        = errors.New("that action is not valid in the current phase")
	ErrNotJudge          = errors.New("only the judge may do that")
	ErrIsJudge           = errors.New("the judge does not play cards this round")
	ErrAlreadyPlayed     = errors.New("cards were already played this round")
	ErrWrongCardCount    = errors.New("wrong number of cards for this prompt")
	ErrIndexOutOfRange   = errors.New("card index out of range")
	ErrDeckEmpty         = errors.New("the deck in play has no cards of the required kind")
)

package card

import (
	"cardczar-bot/carderrors"
)

const (
	// MinBlanks and MaxBlanks bound how many response cards a prompt can ask for.
	MinBlanks = 1
	MaxBlanks = 5
)

// Response is a single response card. Two responses are equal when their
// texts are equal.
type Response struct {
	Text string
}

// Prompt is a fill-in-the-blank prompt card. Blanks is how many responses
// a player must commit to complete it. Winning is only populated after a
// round resolves, on the copy handed to the round winner.
type Prompt struct {
	Text    string
	Blanks  int
	Winning []Response
}

// NewPrompt creates a prompt card, rejecting blank counts outside [1,5].
func NewPrompt(text string, blanks int) (Prompt, error) {
	if blanks < MinBlanks || blanks > MaxBlanks {
		return Prompt{}, carderrors.ErrInvalidBlankCount
	}
	return Prompt{Text: text, Blanks: blanks}, nil
}

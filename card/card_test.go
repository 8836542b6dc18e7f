package card

import (
	"errors"
	"testing"

	"cardczar-bot/carderrors"
)

func TestNewPromptBlankBounds(t *testing.T) {
	for _, blanks := range []int{1, 2, 3, 4, 5} {
		p, err := NewPrompt("prompt", blanks)
		if err != nil {
			t.Errorf("NewPrompt with %d blanks: unexpected error %v", blanks, err)
		}
		if p.Blanks != blanks {
			t.Errorf("expected Blanks=%d, got %d", blanks, p.Blanks)
		}
	}
	for _, blanks := range []int{0, -1, 6, 100} {
		_, err := NewPrompt("prompt", blanks)
		if !errors.Is(err, carderrors.ErrInvalidBlankCount) {
			t.Errorf("NewPrompt with %d blanks: expected ErrInvalidBlankCount, got %v", blanks, err)
		}
	}
}

func TestNewPromptHasNoWinningResponses(t *testing.T) {
	p, err := NewPrompt("prompt", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Winning) != 0 {
		t.Errorf("fresh prompt should have no winning responses, got %d", len(p.Winning))
	}
}

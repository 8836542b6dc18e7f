package bot

import "testing"

func TestParseVerbRoundTrip(t *testing.T) {
	verbs := []Verb{
		VerbSetup, VerbJoin, VerbAddBot, VerbLeave, VerbStart,
		VerbPlay, VerbPick, VerbMyHand, VerbEnd,
		VerbMakeDeck, VerbMakeResponseCard, VerbMakePromptCard,
		VerbViewDeck, VerbAllDecks, VerbDeckFile,
	}
	for _, v := range verbs {
		if got := ParseVerb(v.String()); got != v {
			t.Errorf("ParseVerb(%q) = %v, want %v", v.String(), got, v)
		}
	}
}

func TestParseVerbUnknown(t *testing.T) {
	for _, word := range []string{"", "frobnicate", "PLAY", "Join"} {
		if got := ParseVerb(word); got != VerbUnknown {
			t.Errorf("ParseVerb(%q) = %v, want VerbUnknown", word, got)
		}
	}
}

package card

import (
	"errors"
	"testing"

	"cardczar-bot/carderrors"
)

func seededDeck(t *testing.T, responses, prompts int) *Deck {
	t.Helper()
	d := NewDeck("test", "author-1")
	for i := 0; i < responses; i++ {
		if !d.AddResponse(Response{Text: "response " + string(rune('a'+i))}) {
			t.Fatalf("seeding response %d failed", i)
		}
	}
	for i := 0; i < prompts; i++ {
		p, err := NewPrompt("prompt "+string(rune('a'+i)), 1)
		if err != nil {
			t.Fatalf("seeding prompt %d: %v", i, err)
		}
		if !d.AddPrompt(p) {
			t.Fatalf("seeding prompt %d failed", i)
		}
	}
	return d
}

func TestAddResponseIdempotent(t *testing.T) {
	d := NewDeck("test", "author-1")
	if !d.AddResponse(Response{Text: "same text"}) {
		t.Fatal("first add should return true")
	}
	if d.AddResponse(Response{Text: "same text"}) {
		t.Error("second add of equal text should return false")
	}
	if responses, _ := d.Counts(); responses != 1 {
		t.Errorf("expected 1 response after duplicate add, got %d", responses)
	}
}

func TestAddPromptIdempotent(t *testing.T) {
	d := NewDeck("test", "author-1")
	p, _ := NewPrompt("same prompt", 2)
	if !d.AddPrompt(p) {
		t.Fatal("first add should return true")
	}
	if d.AddPrompt(p) {
		t.Error("second add of equal text should return false")
	}
	if _, prompts := d.Counts(); prompts != 1 {
		t.Errorf("expected 1 prompt after duplicate add, got %d", prompts)
	}
}

func TestMergeCollapsesDuplicates(t *testing.T) {
	a := seededDeck(t, 3, 2)
	b := seededDeck(t, 3, 2) // identical cards
	c := NewDeck("extra", "author-2")
	c.AddResponse(Response{Text: "only in c"})

	merged := a.Merge("play set", b, c)
	responses, prompts := merged.Counts()
	if responses != 4 {
		t.Errorf("expected 4 unique responses, got %d", responses)
	}
	if prompts != 2 {
		t.Errorf("expected 2 unique prompts, got %d", prompts)
	}
}

func TestMergedDeckIsUnrestricted(t *testing.T) {
	a := seededDeck(t, 1, 1)
	a.PermitGroup("group-1")
	merged := a.Merge("play set")
	stranger := Actor{ID: "someone-else"}
	if !merged.IsUsableBy(stranger) {
		t.Error("merged deck should be usable by anyone")
	}
}

func TestIsUsableBy(t *testing.T) {
	d := seededDeck(t, 1, 1)

	if !d.IsUsableBy(Actor{ID: "anyone"}) {
		t.Error("deck with empty access list should be usable by anyone")
	}

	d.PermitGroup("group-1")
	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"author", Actor{ID: "author-1"}, true},
		{"admin", Actor{ID: "someone", Admin: true}, true},
		{"group member", Actor{ID: "someone", GroupIDs: []string{"group-1"}}, true},
		{"other group", Actor{ID: "someone", GroupIDs: []string{"group-2"}}, false},
		{"stranger", Actor{ID: "someone"}, false},
	}
	for _, tc := range cases {
		if got := d.IsUsableBy(tc.actor); got != tc.want {
			t.Errorf("%s: expected IsUsableBy=%v, got %v", tc.name, tc.want, got)
		}
	}

	d.RevokeGroup("group-1")
	if !d.IsUsableBy(Actor{ID: "anyone"}) {
		t.Error("deck should be unrestricted again after revoking the only group")
	}
}

func TestValidateDeckName(t *testing.T) {
	for _, name := range []string{"make", "DELETE", "lockout", "12345", "", "  "} {
		if err := ValidateDeckName(name); !errors.Is(err, carderrors.ErrInvalidDeckName) {
			t.Errorf("name %q: expected ErrInvalidDeckName, got %v", name, err)
		}
	}
	for _, name := range []string{"animals", "deck2", "2cool", "Make Believe"} {
		if err := ValidateDeckName(name); err != nil {
			t.Errorf("name %q: unexpected error %v", name, err)
		}
	}
}

func TestRandomPromptAvoidsPreviousText(t *testing.T) {
	d := seededDeck(t, 1, 3)
	prev, ok := d.RandomPrompt("")
	if !ok {
		t.Fatal("expected a prompt")
	}
	for i := 0; i < 50; i++ {
		p, ok := d.RandomPrompt(prev.Text)
		if !ok {
			t.Fatal("expected a prompt")
		}
		if p.Text == prev.Text {
			t.Fatalf("draw %d returned the avoided prompt %q", i, prev.Text)
		}
	}
}

func TestRandomPromptSinglePromptDeck(t *testing.T) {
	d := seededDeck(t, 1, 1)
	p, ok := d.RandomPrompt("prompt a")
	if !ok {
		t.Fatal("expected a prompt")
	}
	if p.Text != "prompt a" {
		t.Errorf("single-prompt deck must return its only prompt, got %q", p.Text)
	}
}

func TestLibrary(t *testing.T) {
	l := NewLibrary()
	if _, err := l.Create("animals", "author-1"); err != nil {
		t.Fatalf("creating deck: %v", err)
	}
	if _, err := l.Create("Animals", "author-2"); !errors.Is(err, carderrors.ErrDeckExists) {
		t.Errorf("expected ErrDeckExists for case-insensitive duplicate, got %v", err)
	}
	if _, err := l.Create("remove", "author-1"); !errors.Is(err, carderrors.ErrInvalidDeckName) {
		t.Errorf("expected ErrInvalidDeckName for reserved word, got %v", err)
	}
	if _, err := l.Get("ANIMALS"); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}
	if _, err := l.Get("missing"); !errors.Is(err, carderrors.ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound, got %v", err)
	}
	if got := len(l.All()); got != 1 {
		t.Errorf("expected 1 deck in library, got %d", got)
	}
}

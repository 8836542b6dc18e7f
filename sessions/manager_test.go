package sessions

import (
	"errors"
	"fmt"
	"testing"

	"cardczar-bot/card"
	"cardczar-bot/carderrors"
	"cardczar-bot/config"
)

func testLibrary(t *testing.T) *card.Library {
	t.Helper()
	lib := card.NewLibrary()
	d := card.NewDeck("standard", "system")
	for i := 0; i < 20; i++ {
		d.AddResponse(card.Response{Text: fmt.Sprintf("response %d", i)})
	}
	for i := 0; i < 4; i++ {
		p, err := card.NewPrompt(fmt.Sprintf("prompt %d", i), 1)
		if err != nil {
			t.Fatalf("building prompt: %v", err)
		}
		d.AddPrompt(p)
	}
	lib.Put(d)
	return lib
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(config.Defaults(), testLibrary(t), nil)
}

func TestCreateAndGet(t *testing.T) {
	m := testManager(t)
	host := card.Actor{ID: "u0"}

	s, err := m.Create("chan-1", host, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := m.Get("chan-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Error("Get must return the created session")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 session, got %d", m.Count())
	}
}

func TestCreateRejectsSecondSession(t *testing.T) {
	m := testManager(t)
	host := card.Actor{ID: "u0"}
	if _, err := m.Create("chan-1", host, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.Create("chan-1", host, nil); !errors.Is(err, carderrors.ErrSessionExists) {
		t.Errorf("expected ErrSessionExists, got %v", err)
	}
}

func TestCreateUnknownDeck(t *testing.T) {
	m := testManager(t)
	_, err := m.Create("chan-1", card.Actor{ID: "u0"}, []string{"nope"})
	if !errors.Is(err, carderrors.ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound, got %v", err)
	}
	if m.Count() != 0 {
		t.Error("failed create must not register a session")
	}
}

func TestCreateRestrictedDeck(t *testing.T) {
	m := testManager(t)
	private := card.NewDeck("private", "owner")
	private.AddResponse(card.Response{Text: "secret"})
	private.PermitGroup("vip")
	m.library.Put(private)

	_, err := m.Create("chan-1", card.Actor{ID: "stranger"}, []string{"standard", "private"})
	if !errors.Is(err, carderrors.ErrNotPermitted) {
		t.Errorf("expected ErrNotPermitted, got %v", err)
	}

	if _, err := m.Create("chan-2", card.Actor{ID: "u1", GroupIDs: []string{"vip"}}, []string{"standard", "private"}); err != nil {
		t.Errorf("group member should be permitted, got %v", err)
	}
}

func TestCreateMergesDecks(t *testing.T) {
	m := testManager(t)
	extra := card.NewDeck("extra", "owner")
	extra.AddResponse(card.Response{Text: "bonus card"})
	p, _ := card.NewPrompt("bonus prompt", 1)
	extra.AddPrompt(p)
	m.library.Put(extra)

	s, err := m.Create("chan-1", card.Actor{ID: "u0"}, []string{"standard", "extra"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s == nil {
		t.Fatal("expected a session over the merged play set")
	}
}

func TestEndRemovesSession(t *testing.T) {
	m := testManager(t)
	if _, err := m.Create("chan-1", card.Actor{ID: "u0"}, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	sum, err := m.End("chan-1")
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if sum == nil {
		t.Fatal("expected a summary from End")
	}
	if _, err := m.Get("chan-1"); !errors.Is(err, carderrors.ErrNoSession) {
		t.Errorf("expected ErrNoSession after end, got %v", err)
	}
}

func TestEndUnknownChannel(t *testing.T) {
	m := testManager(t)
	if _, err := m.End("chan-1"); !errors.Is(err, carderrors.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestEndAll(t *testing.T) {
	m := testManager(t)
	for i := 0; i < 3; i++ {
		if _, err := m.Create(fmt.Sprintf("chan-%d", i), card.Actor{ID: "u0"}, nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	m.EndAll()
	if m.Count() != 0 {
		t.Errorf("expected 0 sessions after EndAll, got %d", m.Count())
	}
}

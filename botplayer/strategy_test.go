package botplayer

import "testing"

func TestPickIndicesDistinctAndInRange(t *testing.T) {
	s := RandomStrategy{}
	for run := 0; run < 50; run++ {
		indices := s.PickIndices(5, 3)
		if len(indices) != 3 {
			t.Fatalf("expected 3 indices, got %d", len(indices))
		}
		seen := map[int]bool{}
		for _, i := range indices {
			if i < 0 || i >= 5 {
				t.Fatalf("index %d out of range", i)
			}
			if seen[i] {
				t.Fatalf("duplicate index %d in %v", i, indices)
			}
			seen[i] = true
		}
	}
}

func TestPickIndicesClampsCount(t *testing.T) {
	indices := RandomStrategy{}.PickIndices(2, 5)
	if len(indices) != 2 {
		t.Errorf("expected count clamped to hand size, got %d indices", len(indices))
	}
}

func TestRosterCyclesNames(t *testing.T) {
	r := NewRoster([]string{"Rando", "Blanche"})

	id, name := r.Next()
	if id != "bot:0" || name != "Rando" {
		t.Errorf("first bot: got %q %q", id, name)
	}
	id, name = r.Next()
	if id != "bot:1" || name != "Blanche" {
		t.Errorf("second bot: got %q %q", id, name)
	}
	id, name = r.Next()
	if id != "bot:2" || name != "Rando 2" {
		t.Errorf("third bot should reuse the pool with a suffix: got %q %q", id, name)
	}
}

func TestRosterEmptyPool(t *testing.T) {
	r := NewRoster(nil)
	if _, name := r.Next(); name == "" {
		t.Error("empty pool must still produce a name")
	}
}

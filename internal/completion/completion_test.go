package completion

import "testing"

func TestCompleteOrdersByFrequencyDescending(t *testing.T) {
	c := New()
	c.AddWord("apple", 10)
	c.AddWord("application", 50)
	c.AddWord("apply", 30)
	c.AddWord("banana", 5)

	got := c.Complete("app", 10)
	want := []string{"application", "apply", "apple"}
	if len(got) != len(want) {
		t.Fatalf("Complete(app) = %+v, want %d entries", got, len(want))
	}
	for i, w := range want {
		if got[i].Word != w {
			t.Errorf("Complete(app)[%d].Word = %q, want %q", i, got[i].Word, w)
		}
	}
}

func TestCompleteRespectsLimit(t *testing.T) {
	c := New()
	for i, w := range []string{"cat", "car", "card", "care", "cart"} {
		c.AddWord(w, int64(i+1))
	}
	got := c.Complete("car", 2)
	if len(got) != 2 {
		t.Fatalf("Complete(car, limit=2) returned %d results, want 2", len(got))
	}
}

func TestCompleteNoMatches(t *testing.T) {
	c := New()
	c.AddWord("apple", 1)
	got := c.Complete("zzz", 10)
	if len(got) != 0 {
		t.Errorf("Complete(zzz) = %+v, want empty", got)
	}
}

func TestLenCountsInsertedWords(t *testing.T) {
	c := New()
	c.AddWord("a", 1)
	c.AddWord("b", 1)
	c.AddWord("a", 2) // overwrite, not a new entry
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

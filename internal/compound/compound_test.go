package compound

import (
	"testing"

	"github.com/bastiangx/symspell/internal/engine"
)

func newTestDictionary(t *testing.T) *engine.Dictionary {
	t.Helper()
	d, err := engine.New(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	return d
}

func seed(t *testing.T, d *engine.Dictionary) {
	t.Helper()
	words := map[string]int64{
		"where": 4000000,
		"is":    10000000,
		"the":   23135851162,
		"love":  3000000,
	}
	for w, c := range words {
		d.CreateDictionaryEntry(w, c, nil)
	}
	d.AddBigram("where is", 500000)
	d.AddBigram("is the", 500000)
	d.AddBigram("the love", 100000)
}

func TestLookupCompoundAllCorrectWords(t *testing.T) {
	d := newTestDictionary(t)
	seed(t, d)

	result, err := LookupCompound(d, "where is the", 2)
	if err != nil {
		t.Fatalf("LookupCompound() error = %v", err)
	}
	if result.Term != "where is the" {
		t.Errorf("LookupCompound(where is the).Term = %q, want unchanged", result.Term)
	}
	if result.Distance != 0 {
		t.Errorf("LookupCompound(where is the).Distance = %d, want 0", result.Distance)
	}
}

func TestLookupCompoundEndToEnd(t *testing.T) {
	d := newTestDictionary(t)
	seed(t, d)

	result, err := LookupCompound(d, "whereis th elove", 2)
	if err != nil {
		t.Fatalf("LookupCompound() error = %v", err)
	}
	if result.Term != "where is the love" {
		t.Errorf("LookupCompound(whereis th elove).Term = %q, want %q", result.Term, "where is the love")
	}
	if result.Distance > 4 {
		t.Errorf("LookupCompound(whereis th elove).Distance = %d, want <= 4", result.Distance)
	}
}

func TestLookupCompoundEmptyInput(t *testing.T) {
	d := newTestDictionary(t)
	seed(t, d)

	result, err := LookupCompound(d, "   ", 2)
	if err != nil {
		t.Fatalf("LookupCompound() error = %v", err)
	}
	if result.Term != "" {
		t.Errorf("LookupCompound(whitespace) = %+v, want zero value", result)
	}
}

func TestLookupCompoundRejectsOutOfRangeMaxEditDistance(t *testing.T) {
	d := newTestDictionary(t)
	seed(t, d)

	if _, err := LookupCompound(d, "where is the", d.Config().MaxDictionaryEditDistance+1); err == nil {
		t.Fatalf("LookupCompound() with out-of-range maxEditDistance should error")
	}
}

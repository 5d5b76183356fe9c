package engine

import (
	"testing"

	"github.com/bastiangx/symspell/internal/stage"
)

func newTestDictionary(t *testing.T) *Dictionary {
	t.Helper()
	cfg := DefaultConfig()
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New(DefaultConfig()) error = %v", err)
	}
	return d
}

func mustAdd(t *testing.T, d *Dictionary, word string, count int64) {
	t.Helper()
	d.CreateDictionaryEntry(word, count, nil)
}

func seedEnglishSample(t *testing.T, d *Dictionary) {
	t.Helper()
	words := map[string]int64{
		"the":          23135851162,
		"of":           13151942776,
		"abolition":    100000,
		"abolish":      50000,
		"intermediate": 200000,
		"intermediary": 30000,
		"where":        4000000,
		"is":           10000000,
		"love":         3000000,
		"the quick brown fox jumps over the lazy dog": 1,
	}
	for w, c := range words {
		mustAdd(t, d, w, c)
	}
}

func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults ok", DefaultConfig(), false},
		{"negative max edit distance", Config{MaxDictionaryEditDistance: -1, PrefixLength: 5}, true},
		{"prefix shorter than max edit distance", Config{MaxDictionaryEditDistance: 3, PrefixLength: 2}, true},
		{"compact level too high", Config{MaxDictionaryEditDistance: 2, PrefixLength: 7, CompactLevel: 17}, true},
		{"negative count threshold", Config{MaxDictionaryEditDistance: 2, PrefixLength: 7, CountThreshold: -1}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestCreateDictionaryEntryPromotion(t *testing.T) {
	d := newTestDictionary(t)

	promoted := d.CreateDictionaryEntry("hello", 5, nil)
	if !promoted {
		t.Fatalf("first insert of a word above threshold should promote")
	}
	if c, ok := d.Frequency("hello"); !ok || c != 5 {
		t.Fatalf("Frequency(hello) = (%d, %v), want (5, true)", c, ok)
	}

	promoted = d.CreateDictionaryEntry("hello", 5, nil)
	if promoted {
		t.Fatalf("re-insert of an already-promoted word should not promote again")
	}
	if c, _ := d.Frequency("hello"); c != 10 {
		t.Fatalf("Frequency(hello) after re-insert = %d, want 10", c)
	}
}

func TestBelowThresholdPromotion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountThreshold = 3
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.CreateDictionaryEntry("rare", 1, nil) {
		t.Fatalf("insert below threshold should not promote")
	}
	if _, ok := d.Frequency("rare"); ok {
		t.Fatalf("word below threshold must not appear in words")
	}
	if d.CreateDictionaryEntry("rare", 1, nil) {
		t.Fatalf("still-below-threshold accumulation should not promote")
	}
	if !d.CreateDictionaryEntry("rare", 1, nil) {
		t.Fatalf("crossing threshold should promote")
	}
	if c, ok := d.Frequency("rare"); !ok || c != 3 {
		t.Fatalf("Frequency(rare) = (%d, %v), want (3, true)", c, ok)
	}
}

func TestInvariantWordsExclusiveOfBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CountThreshold = 2
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d.CreateDictionaryEntry("x", 1, nil)
	if _, ok := d.words["x"]; ok {
		t.Errorf("x should not be in words yet")
	}
	if _, ok := d.belowThreshold["x"]; !ok {
		t.Errorf("x should be in belowThreshold")
	}
	d.CreateDictionaryEntry("x", 5, nil)
	if _, ok := d.belowThreshold["x"]; ok {
		t.Errorf("x should have been removed from belowThreshold after promotion")
	}
	if _, ok := d.words["x"]; !ok {
		t.Errorf("x should now be in words")
	}
}

func TestLookupExactMatch(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("the", Closest, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) == 0 || results[0].Term != "the" || results[0].Distance != 0 {
		t.Fatalf("Lookup(the) = %+v, want first result {the, 0, ...}", results)
	}
}

func TestLookupSingleCharacterTypo(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("tke", Closest, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatalf("Lookup(tke) returned no results")
	}
	if results[0].Term != "the" || results[0].Distance != 1 {
		t.Errorf("Lookup(tke) first = %+v, want {the, 1, ...}", results[0])
	}
}

func TestLookupTransposition(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("abolution", Closest, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) == 0 || results[0].Term != "abolition" || results[0].Distance != 1 {
		t.Fatalf("Lookup(abolution) = %+v, want first {abolition, 1, ...}", results)
	}
}

func TestLookupIntermediate(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("intermedaite", Closest, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) == 0 || results[0].Term != "intermediate" || results[0].Distance != 1 {
		t.Fatalf("Lookup(intermedaite) = %+v, want first {intermediate, 1, ...}", results)
	}
}

func TestLookupTopReturnsAtMostOne(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("th", Top, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) > 1 {
		t.Fatalf("Top verbosity returned %d results, want <= 1", len(results))
	}
}

func TestLookupClosestAllSameDistance(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("aboli", Closest, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Distance != results[0].Distance {
			t.Errorf("Closest results have mixed distances: %+v", results)
			break
		}
	}
}

func TestLookupAllNonDecreasingDistance(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("aboli", All, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Distance < results[i-1].Distance {
			t.Errorf("All results not non-decreasing by distance: %+v", results)
			break
		}
	}
}

func TestLookupUnknownWord(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("xyzzyx", Top, 2, true)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) != 1 || results[0].Term != "xyzzyx" || results[0].Distance != 3 || results[0].Count != 0 {
		t.Fatalf("Lookup(xyzzyx, includeUnknown=true) = %+v, want [{xyzzyx, 3, 0}]", results)
	}

	results, err = d.Lookup("xyzzyx", Top, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Lookup(xyzzyx, includeUnknown=false) = %+v, want empty", results)
	}
}

func TestLookupRejectsOutOfRangeMaxEditDistance(t *testing.T) {
	d := newTestDictionary(t)
	if _, err := d.Lookup("hi", Top, d.cfg.MaxDictionaryEditDistance+1, false); err == nil {
		t.Fatalf("Lookup() with out-of-range maxEditDistance should error")
	}
}

func TestLookupResultsAreDictionaryMembers(t *testing.T) {
	d := newTestDictionary(t)
	seedEnglishSample(t, d)

	results, err := d.Lookup("intr", All, 2, false)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	for _, r := range results {
		if _, ok := d.Frequency(r.Term); !ok {
			t.Errorf("result term %q is not a dictionary member", r.Term)
		}
	}
}

func TestSaturatingAdd(t *testing.T) {
	d := newTestDictionary(t)
	d.CreateDictionaryEntry("big", 1<<62, nil)
	d.CreateDictionaryEntry("big", 1<<62, nil)
	d.CreateDictionaryEntry("big", 1<<62, nil)
	c, _ := d.Frequency("big")
	if c <= 0 {
		t.Errorf("Frequency(big) overflowed to %d, want saturated positive value", c)
	}
}

func TestCommitStagedMatchesDirectInsert(t *testing.T) {
	direct := newTestDictionary(t)
	staged := newTestDictionary(t)

	stg := stage.New(16)
	words := []string{"apple", "apply", "apples", "application"}
	for _, w := range words {
		direct.CreateDictionaryEntry(w, 10, nil)
		staged.CreateDictionaryEntry(w, 10, stg)
	}
	staged.CommitStaged(stg)

	for hash, list := range direct.deletes {
		stagedList, ok := staged.deletes[hash]
		if !ok {
			t.Fatalf("staged.deletes missing hash %d present in direct build", hash)
		}
		if len(stagedList) != len(list) {
			t.Errorf("hash %d: staged has %d suggestions, direct has %d", hash, len(stagedList), len(list))
		}
	}
}

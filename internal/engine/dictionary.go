// Package engine implements the SymSpell dictionary index: the
// symmetric-delete precomputation (§4.D/E) and the single-word lookup
// algorithm built on it (§4.F). It is the hard part of the module —
// everything else (compound correction, segmentation, file loading)
// is a client of Dictionary.
package engine

import (
	"math"
	"sync"

	"github.com/bastiangx/symspell/internal/stage"
)

// Dictionary is a SymSpell index: correctly-spelled words with their
// frequency counts, words that haven't yet crossed CountThreshold, and
// the delete-hash -> suggestion-list map that makes symmetric-delete
// lookup possible.
//
// Build-phase mutation (CreateDictionaryEntry, CommitStaged,
// PurgeBelowThresholdWords) must be externally serialized with respect
// to itself; query methods (Lookup) take a read lock and are safe to
// call concurrently with each other once the build phase is complete.
type Dictionary struct {
	cfg Config

	mu             sync.RWMutex
	words          map[string]int64
	belowThreshold map[string]int64
	deletes        map[int32][]string
	maxWordLength  int

	bigrams        map[string]int64
	bigramCountMin int64
}

// New constructs an empty Dictionary. It returns ErrConfiguration if
// cfg fails validation.
func New(cfg Config) (*Dictionary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dictionary{
		cfg:            cfg,
		words:          make(map[string]int64, cfg.InitialCapacity),
		belowThreshold: make(map[string]int64),
		deletes:        make(map[int32][]string, cfg.InitialCapacity),
		bigrams:        make(map[string]int64),
	}, nil
}

// Config returns the Dictionary's construction-time configuration.
func (d *Dictionary) Config() Config { return d.cfg }

// MaxLength returns the rune length of the longest word promoted into
// the dictionary so far.
func (d *Dictionary) MaxLength() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.maxWordLength
}

// WordCount returns the number of correctly-spelled words held.
func (d *Dictionary) WordCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// EntryCount returns the number of distinct delete hashes in the
// index (|deletes|).
func (d *Dictionary) EntryCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.deletes)
}

// Frequency returns the count of word if it is a member of the
// dictionary's correctly-spelled words.
func (d *Dictionary) Frequency(word string) (int64, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.words[word]
	return c, ok
}

// Words returns a snapshot copy of word -> count, safe to retain after
// further mutation of the Dictionary. Used to build companion indexes
// (see internal/completion) over the same data without re-parsing the
// source dictionary.
func (d *Dictionary) Words() map[string]int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]int64, len(d.words))
	for w, c := range d.words {
		out[w] = c
	}
	return out
}

// CreateDictionaryEntry updates the count for word, promoting it into
// the correctly-spelled set and generating its delete variants the
// first time its accumulated count reaches CountThreshold. It returns
// true iff this call newly promoted word into the dictionary.
//
// If staging is non-nil, generated deletes are recorded there instead
// of directly into the permanent deletes map, for cheap bulk loading;
// call CommitStaged once the load is finished.
func (d *Dictionary) CreateDictionaryEntry(word string, count int64, staging *stage.Stage) bool {
	if word == "" {
		return false
	}
	if count <= 0 {
		count = 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.words[word]; ok {
		d.words[word] = saturatingAdd(existing, count)
		return false
	}

	if below, ok := d.belowThreshold[word]; ok {
		total := saturatingAdd(below, count)
		if total < d.cfg.CountThreshold {
			d.belowThreshold[word] = total
			return false
		}
		delete(d.belowThreshold, word)
		count = total
	} else if count < d.cfg.CountThreshold {
		d.belowThreshold[word] = count
		return false
	}

	d.words[word] = count
	runes := []rune(word)
	if len(runes) > d.maxWordLength {
		d.maxWordLength = len(runes)
	}

	mask := d.cfg.compactMask()
	stagedHashes := make(map[int32]struct{})
	for del := range editsPrefix(runes, d.cfg.MaxDictionaryEditDistance, d.cfg.PrefixLength) {
		hash := getStringHash([]rune(del), mask)
		if staging != nil {
			// distinct deletes of one word can share a hash; stage the
			// word once per hash, as the direct path below does
			if _, dup := stagedHashes[hash]; dup {
				continue
			}
			stagedHashes[hash] = struct{}{}
			staging.Add(hash, word)
			continue
		}
		bucket := d.deletes[hash]
		if !containsString(bucket, word) {
			d.deletes[hash] = append(bucket, word)
		}
	}
	return true
}

// PurgeBelowThresholdWords discards every word that has not yet
// crossed CountThreshold, freeing the memory it occupied.
func (d *Dictionary) PurgeBelowThresholdWords() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.belowThreshold = make(map[string]int64)
}

// CommitStaged merges a staging buffer's accumulated deletes into the
// permanent index in one pass.
func (d *Dictionary) CommitStaged(staging *stage.Stage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	staging.CommitTo(d.deletes)
}

// AddBigram records an observation of the two-word sequence term (its
// two words already joined by a single space) with the given count,
// used by the compound corrector's merge heuristic.
func (d *Dictionary) AddBigram(term string, count int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if count <= 0 {
		return
	}
	d.bigrams[term] = saturatingAdd(d.bigrams[term], count)
	if d.bigramCountMin == 0 || count < d.bigramCountMin {
		d.bigramCountMin = count
	}
}

// BigramCount returns the observed count of a "w1 w2" bigram, or
// bigramCountMin (the floor used for unseen bigrams) if it was never
// observed.
func (d *Dictionary) BigramCount(term string) int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if c, ok := d.bigrams[term]; ok {
		return c
	}
	if d.bigramCountMin > 0 {
		return d.bigramCountMin
	}
	return 1
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

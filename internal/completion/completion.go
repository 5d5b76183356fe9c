// Package completion provides a fast prefix-completion companion index
// over the same word/frequency data a Dictionary holds, independent of
// symmetric-delete lookup. It answers "what words start with this
// prefix" rather than "what did you mean", and is built on a Patricia
// trie for memory-compact prefix traversal, the same structure the
// module's teacher lineage used for its own completion engine.
package completion

import (
	"sort"

	"github.com/bastiangx/symspell/internal/engine"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Suggestion is one prefix-completion candidate.
type Suggestion struct {
	Word      string
	Frequency int64
}

// Completer answers prefix queries over a fixed snapshot of
// word -> frequency. It is built once (NewFromEngine or AddWord calls)
// and is safe for concurrent read-only Complete calls thereafter; it
// is not safe to call AddWord concurrently with Complete.
type Completer struct {
	trie *patricia.Trie
}

// New returns an empty Completer.
func New() *Completer {
	return &Completer{trie: patricia.NewTrie()}
}

// NewFromEngine builds a Completer from a snapshot of d's
// correctly-spelled words, so the prefix-completion view and the
// symmetric-delete index stay consistent without re-parsing the
// source dictionary.
func NewFromEngine(d *engine.Dictionary) *Completer {
	c := New()
	for word, freq := range d.Words() {
		c.AddWord(word, freq)
	}
	return c
}

// AddWord inserts or overwrites word's frequency in the trie.
func (c *Completer) AddWord(word string, frequency int64) {
	c.trie.Set(patricia.Prefix(word), frequency)
}

// Complete returns up to limit suggestions whose word begins with
// prefix, ordered by frequency descending then lexicographically.
// Unlike engine.Dictionary.Lookup, Complete never considers edit
// distance: a prefix with zero matches returns an empty slice, not a
// near-miss correction.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	var suggestions []Suggestion

	_ = c.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		freq, ok := item.(int64)
		if !ok {
			return nil
		}
		suggestions = append(suggestions, Suggestion{
			Word:      string(p),
			Frequency: freq,
		})
		return nil
	})

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Frequency != suggestions[j].Frequency {
			return suggestions[i].Frequency > suggestions[j].Frequency
		}
		return suggestions[i].Word < suggestions[j].Word
	})

	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Len reports how many words have been inserted (patricia.Trie has no
// direct count, so this is tracked by walking the full trie).
func (c *Completer) Len() int {
	count := 0
	_ = c.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		count++
		return nil
	})
	return count
}

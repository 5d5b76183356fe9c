// Package stage implements a write-optimized staging buffer for bulk
// dictionary construction. Adding many words to a SymSpell index means
// generating a large multiset of (deleteHash -> suggestion) pairs;
// staging them as per-hash linked lists whose nodes live in one shared
// chunkarray, and committing once afterward, avoids the repeated slice
// growth/copy that appending directly to the permanent index would cost.
package stage

import "github.com/bastiangx/symspell/internal/chunkarray"

// node is one entry in a delete hash's suggestion list, linked by
// index into nodes rather than by pointer.
type node struct {
	suggestion string
	next       int
}

// entry tracks how many suggestions a given delete hash has staged and
// the index of the most recently added one.
type entry struct {
	count int
	first int
}

// Stage is an intentionally opaque scratch structure used while
// bulk-loading a dictionary. It is not safe for concurrent use.
type Stage struct {
	deletes map[int32]entry
	nodes   chunkarray.Array[node]
}

// New returns a Stage sized for an expected number of words.
// initialCapacity need not be exact; it only avoids map/chunk growth.
func New(initialCapacity int) *Stage {
	s := &Stage{
		deletes: make(map[int32]entry, initialCapacity),
	}
	s.nodes.Reserve(initialCapacity * 2)
	return s
}

// DeleteCount returns the number of distinct delete hashes staged.
func (s *Stage) DeleteCount() int {
	return len(s.deletes)
}

// NodeCount returns the total number of staged suggestions across all
// delete hashes.
func (s *Stage) NodeCount() int {
	return s.nodes.Len()
}

// Clear discards all staged data, retaining allocated backing storage
// for reuse by a subsequent build.
func (s *Stage) Clear() {
	s.deletes = make(map[int32]entry, len(s.deletes))
	s.nodes.Clear()
}

// Add records that suggestion is reachable from deleteHash.
//
// Staged suggestions for a hash are linked in reverse insertion order
// (each Add prepends): CommitTo therefore appends a hash's staged
// suggestions to the permanent index in the reverse of the order they
// were staged in. This is intentional and mirrors the original
// reference implementation's behavior exactly — it is never "fixed" to
// preserve forward order, since nothing in the index semantics depends
// on suggestion order within a delete hash's bucket.
func (s *Stage) Add(deleteHash int32, suggestion string) {
	e, ok := s.deletes[deleteHash]
	if !ok {
		e = entry{first: -1}
	}
	prevHead := e.first
	e.count++
	e.first = s.nodes.Len()
	s.deletes[deleteHash] = e
	s.nodes.Add(node{suggestion: suggestion, next: prevHead})
}

// CommitTo merges every staged delete hash's suggestions into
// permanent, appending to any existing entries under the same hash.
func (s *Stage) CommitTo(permanent map[int32][]string) {
	for hash, e := range s.deletes {
		existing := permanent[hash]
		merged := make([]string, len(existing), len(existing)+e.count)
		copy(merged, existing)

		next := e.first
		for next >= 0 {
			n := s.nodes.At(next)
			merged = append(merged, n.suggestion)
			next = n.next
		}
		permanent[hash] = merged
	}
}

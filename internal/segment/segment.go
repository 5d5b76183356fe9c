// Package segment implements WordSegmentation: inserting word
// boundaries into an unspaced or sparsely-spaced input string while
// simultaneously correcting misspellings, via a triangular-matrix DP
// over all suffix starts scored by summed log-probability.
//
// The DP is intentionally iterative over a ring buffer of size
// maxSegmentationWordLength rather than recursive, to guarantee O(n)
// time and O(L) memory regardless of input length.
package segment

import (
	"fmt"
	"math"
	"strings"

	"github.com/bastiangx/symspell/internal/engine"
)

// Composition is one candidate segmentation/correction of a prefix of
// the input.
type Composition struct {
	// Segmented is the original input with word boundaries inserted,
	// uncorrected.
	Segmented string
	// Corrected is the best-guess corrected sentence.
	Corrected string
	// Distance is the total edit distance summed across every word in
	// Corrected, plus one per stray separator character trimmed away.
	Distance int
	// LogProb is the summed log10 probability of Corrected's words.
	LogProb float64
}

// WordSegmentation partitions input into a sequence of corrected
// words maximizing aggregate log-probability. maxEditDistance <= 0
// defaults to the dictionary's configured ceiling; maxSegmentationWordLength
// <= 0 defaults to the dictionary's longest known word.
func WordSegmentation(d *engine.Dictionary, input string, maxEditDistance, maxSegmentationWordLength int) (Composition, error) {
	cfg := d.Config()
	if maxEditDistance <= 0 {
		maxEditDistance = cfg.MaxDictionaryEditDistance
	}
	if maxEditDistance > cfg.MaxDictionaryEditDistance {
		return Composition{}, fmt.Errorf("wordSegmentation maxEditDistance %d exceeds dictionary ceiling %d: %w", maxEditDistance, cfg.MaxDictionaryEditDistance, engine.ErrArgument)
	}

	runes := []rune(input)
	n := len(runes)
	if n == 0 {
		return Composition{}, nil
	}

	bufferLen := maxSegmentationWordLength
	if bufferLen <= 0 {
		bufferLen = d.MaxLength()
	}
	if bufferLen <= 0 || bufferLen > n {
		bufferLen = n
	}

	compositions := make([]Composition, bufferLen)
	initialized := make([]bool, bufferLen)

	for i := 0; i < n; i++ {
		maxK := bufferLen
		if n-i < maxK {
			maxK = n - i
		}
		for k := 1; k <= maxK; k++ {
			part := string(runes[i : i+k])
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			separatorLen := len([]rune(part)) - len([]rune(trimmed))

			wordEditDistance := maxEditDistance
			if wordEditDistance > cfg.MaxDictionaryEditDistance {
				wordEditDistance = cfg.MaxDictionaryEditDistance
			}

			var term string
			var distance int
			var logProb float64

			suggestions, _ := d.Lookup(trimmed, engine.Top, wordEditDistance, false)
			if len(suggestions) > 0 {
				s := suggestions[0]
				term = s.Term
				distance = s.Distance
				logProb = math.Log10(float64(s.Count) / float64(engine.CorpusSize))
			} else {
				term = trimmed
				distance = len([]rune(trimmed))
				logProb = math.Log10(10.0 / (float64(engine.CorpusSize) * math.Pow(10, float64(len([]rune(trimmed))))))
			}
			distance += separatorLen

			var prev Composition
			if i > 0 {
				prev = compositions[(i-1)%bufferLen]
			}
			candidate := Composition{
				Segmented: joinNonEmpty(prev.Segmented, part),
				Corrected: joinNonEmpty(prev.Corrected, term),
				Distance:  prev.Distance + distance,
				LogProb:   prev.LogProb + logProb,
			}

			// at k == bufferLen the slot still holds the composition for
			// end position i-1, so it is always replaced
			slot := (i + k - 1) % bufferLen
			if !initialized[slot] || k == bufferLen ||
				candidate.Distance < compositions[slot].Distance ||
				(candidate.Distance == compositions[slot].Distance && candidate.LogProb > compositions[slot].LogProb) {
				compositions[slot] = candidate
				initialized[slot] = true
			}
		}
	}

	return compositions[(n-1)%bufferLen], nil
}

func joinNonEmpty(prefix, next string) string {
	if prefix == "" {
		return next
	}
	return prefix + " " + next
}

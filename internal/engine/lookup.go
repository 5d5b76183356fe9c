package engine

import (
	"fmt"

	"github.com/bastiangx/symspell/internal/editdistance"
)

// Lookup returns spelling-correction candidates for input, following
// the SymSpell symmetric-delete algorithm: generate delete variants of
// input's prefix, intersect them against the precomputed deletes
// index, then verify every surviving candidate with the OSA
// edit-distance kernel before it is allowed into the result.
//
// maxEditDistance must be within [0, cfg.MaxDictionaryEditDistance].
// If includeUnknown is true and no suggestion is found, Lookup returns
// a single synthetic Suggestion{input, maxEditDistance+1, 0} instead of
// an empty slice.
func (d *Dictionary) Lookup(input string, verbosity Verbosity, maxEditDistance int, includeUnknown bool) ([]Suggestion, error) {
	if maxEditDistance < 0 || maxEditDistance > d.cfg.MaxDictionaryEditDistance {
		return nil, fmt.Errorf("lookup maxEditDistance %d out of [0,%d]: %w", maxEditDistance, d.cfg.MaxDictionaryEditDistance, ErrArgument)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	inputRunes := []rune(input)
	inputLen := len(inputRunes)

	finish := func(results []Suggestion) []Suggestion {
		if len(results) == 0 && includeUnknown {
			results = []Suggestion{{Term: input, Distance: maxEditDistance + 1, Count: 0}}
		}
		sortSuggestions(results)
		return results
	}

	if inputLen-maxEditDistance > d.maxWordLength {
		return finish(nil), nil
	}

	var results []Suggestion
	maxEditDistance2 := maxEditDistance

	if count, ok := d.words[input]; ok {
		results = append(results, Suggestion{Term: input, Distance: 0, Count: count})
		if verbosity != All {
			return finish(results), nil
		}
	}

	consideredSuggestions := map[string]struct{}{input: {}}
	consideredDeletes := map[string]struct{}{}

	inputPrefixLen := inputLen
	inputPrefixRunes := inputRunes
	if inputPrefixLen > d.cfg.PrefixLength {
		inputPrefixLen = d.cfg.PrefixLength
		inputPrefixRunes = inputRunes[:inputPrefixLen]
	}
	inputPrefix := string(inputPrefixRunes)

	queue := []string{inputPrefix}
	consideredDeletes[inputPrefix] = struct{}{}

	cmp := editdistance.New(editdistance.DamerauOSA)

	for qi := 0; qi < len(queue); qi++ {
		candidate := queue[qi]
		candidateRunes := []rune(candidate)
		candidateLen := len(candidateRunes)
		lengthDiff := inputPrefixLen - candidateLen

		if lengthDiff > maxEditDistance2 {
			if verbosity == All {
				continue
			}
			break
		}

		if bucket, ok := d.deletes[getStringHash(candidateRunes, d.cfg.compactMask())]; ok {
			for _, suggestion := range bucket {
				if _, seen := consideredSuggestions[suggestion]; seen {
					continue
				}

				suggestionRunes := []rune(suggestion)
				suggestionLen := len(suggestionRunes)

				if abs(suggestionLen-inputLen) > maxEditDistance2 ||
					suggestionLen < candidateLen ||
					(suggestionLen == candidateLen && suggestion != candidate) {
					continue
				}

				consideredSuggestions[suggestion] = struct{}{}

				distance := cmp.DistanceMax(input, suggestion, maxEditDistance2)
				if distance < 0 {
					continue
				}

				count := d.words[suggestion]
				si := Suggestion{Term: suggestion, Distance: distance, Count: count}

				switch verbosity {
				case Top:
					if len(results) == 0 || distance < maxEditDistance2 || (distance == results[0].Distance && count > results[0].Count) {
						results = []Suggestion{si}
						maxEditDistance2 = distance
					}
				case Closest:
					if distance < maxEditDistance2 {
						results = results[:0]
					}
					results = append(results, si)
					maxEditDistance2 = distance
				case All:
					results = append(results, si)
				}
			}
		}

		if candidateLen > 1 && lengthDiff < maxEditDistance {
			// save some time: do not create edits with edit distance
			// bigger than suggestions already found
			if verbosity != All && lengthDiff >= maxEditDistance2 {
				continue
			}

			for i := 0; i < candidateLen; i++ {
				deleted := make([]rune, 0, candidateLen-1)
				deleted = append(deleted, candidateRunes[:i]...)
				deleted = append(deleted, candidateRunes[i+1:]...)
				del := string(deleted)
				if _, ok := consideredDeletes[del]; ok {
					continue
				}
				consideredDeletes[del] = struct{}{}
				queue = append(queue, del)
			}
		}
	}

	return finish(results), nil
}

// LookupDefault is Lookup with maxEditDistance defaulted to the
// dictionary's configured ceiling and includeUnknown false.
func (d *Dictionary) LookupDefault(input string, verbosity Verbosity) ([]Suggestion, error) {
	return d.Lookup(input, verbosity, d.cfg.MaxDictionaryEditDistance, false)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

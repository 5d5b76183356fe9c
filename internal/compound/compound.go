// Package compound implements LookupCompound: token-by-token
// correction of a multi-word input string, handling both merge errors
// (two correct words typed as one) and split errors (one correct word
// typed as two), scored with bigram and unigram Naive Bayes
// probabilities against a shared engine.Dictionary.
package compound

import (
	"fmt"
	"math"
	"strings"

	"github.com/bastiangx/symspell/internal/editdistance"
	"github.com/bastiangx/symspell/internal/engine"
)

// Result is the outcome of correcting an entire input string.
type Result struct {
	// Term is the corrected sentence, tokens joined by a single space.
	Term string
	// Distance is the sum of each chosen token's edit distance from
	// its corresponding piece of the original input.
	Distance int
	// Probability is the aggregate Naive Bayes probability of the
	// chosen token sequence (the product of each token's P(word) =
	// count(word) / engine.CorpusSize, or a length-penalized floor
	// for tokens treated as unknown; a token produced by merging two
	// input tokens contributes their bigram probability instead).
	Probability float64
}

type corrected struct {
	term     string
	distance int
	logProb  float64
}

// wordLogProb returns log10(P(word)). Known words use their observed
// frequency; unknown words fall back to a length-penalized floor
// (shorter unknown tokens are considered more probable than longer
// ones, mirroring the segmenter's unknown-word scoring).
func wordLogProb(d *engine.Dictionary, word string) float64 {
	if count, ok := d.Frequency(word); ok {
		return math.Log10(float64(count) / float64(engine.CorpusSize))
	}
	length := float64(len([]rune(word)))
	return math.Log10(10.0 / (float64(engine.CorpusSize) * math.Pow(10, length)))
}

// LookupCompound corrects input as a whole sentence, allowing the
// corrector to merge two input tokens into one dictionary word or
// split one input token into two, whenever doing so scores better
// under the bigram/unigram probability model than leaving tokens as
// independently best-corrected.
func LookupCompound(d *engine.Dictionary, input string, maxEditDistance int) (Result, error) {
	cfg := d.Config()
	if maxEditDistance < 0 || maxEditDistance > cfg.MaxDictionaryEditDistance {
		return Result{}, fmt.Errorf("lookupCompound maxEditDistance %d out of [0,%d]: %w", maxEditDistance, cfg.MaxDictionaryEditDistance, engine.ErrArgument)
	}

	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return Result{}, nil
	}

	results := make([]corrected, 0, len(tokens))
	cmp := editdistance.New(editdistance.DamerauOSA)

	for i, token := range tokens {
		best := bestSingleCorrection(d, token, maxEditDistance)

		// merging is only tried when neither token is an exact match
		if i > 0 && results[len(results)-1].distance > 0 && best.distance > 0 {
			prevToken := tokens[i-1]
			if merged, ok := tryMerge(d, prevToken, token, maxEditDistance, results[len(results)-1], best); ok {
				results[len(results)-1] = merged
				continue
			}
		}

		if best.distance > 0 && len([]rune(token)) > 1 {
			if left, right, ok := trySplit(cmp, d, token, maxEditDistance, best); ok {
				results = append(results, left, right)
				continue
			}
		}

		results = append(results, best)
	}

	var terms []string
	totalDistance := 0
	totalLogProb := 0.0
	for _, r := range results {
		terms = append(terms, r.term)
		totalDistance += r.distance
		totalLogProb += r.logProb
	}

	return Result{
		Term:        strings.Join(terms, " "),
		Distance:    totalDistance,
		Probability: math.Pow(10, totalLogProb),
	}, nil
}

func bestSingleCorrection(d *engine.Dictionary, token string, maxEditDistance int) corrected {
	suggestions, _ := d.Lookup(token, engine.Top, maxEditDistance, false)
	if len(suggestions) > 0 {
		s := suggestions[0]
		return corrected{term: s.Term, distance: s.Distance, logProb: wordLogProb(d, s.Term)}
	}
	return corrected{term: token, distance: maxEditDistance + 1, logProb: wordLogProb(d, token)}
}

// tryMerge checks whether joining prevToken and token into a single
// dictionary word, scored by observed bigram frequency, beats treating
// them as two independently corrected words.
func tryMerge(d *engine.Dictionary, prevToken, token string, maxEditDistance int, prevBest, currBest corrected) (corrected, bool) {
	mergedSuggestions, _ := d.Lookup(prevToken+token, engine.Top, maxEditDistance, false)
	if len(mergedSuggestions) == 0 {
		return corrected{}, false
	}
	m := mergedSuggestions[0]
	bigramLogProb := math.Log10(float64(d.BigramCount(prevToken+" "+token)) / float64(engine.CorpusSize))
	if bigramLogProb <= prevBest.logProb+currBest.logProb {
		return corrected{}, false
	}
	return corrected{
		term:     m.Term,
		distance: m.Distance + 1,
		logProb:  bigramLogProb,
	}, true
}

// trySplit checks whether splitting token at some position into two
// dictionary words reconstructs token more faithfully than leaving it
// as the unsplit best correction. Candidates are ranked primarily by
// how close the rejoined "left right" string is to the original
// token (the reconstruction distance), not by raw word probability:
// summing two word probabilities always loses to one, regardless of
// which split is actually correct, so probability only breaks ties
// between splits whose reconstruction distance is equal.
func trySplit(cmp *editdistance.Comparer, d *engine.Dictionary, token string, maxEditDistance int, unsplit corrected) (left, right corrected, ok bool) {
	runes := []rune(token)
	bestDistance := maxEditDistance + 1
	bestLogProb := math.Inf(-1)
	for j := 1; j < len(runes); j++ {
		leftPart, rightPart := string(runes[:j]), string(runes[j:])
		leftSuggestions, _ := d.Lookup(leftPart, engine.Top, maxEditDistance, false)
		if len(leftSuggestions) == 0 {
			continue
		}
		rightSuggestions, _ := d.Lookup(rightPart, engine.Top, maxEditDistance, false)
		if len(rightSuggestions) == 0 {
			continue
		}
		ls, rs := leftSuggestions[0], rightSuggestions[0]

		reconDistance := cmp.DistanceMax(token, ls.Term+" "+rs.Term, maxEditDistance+1)
		if reconDistance < 0 {
			reconDistance = maxEditDistance + 1
		}
		lp := wordLogProb(d, ls.Term) + wordLogProb(d, rs.Term)

		if !ok || reconDistance < bestDistance || (reconDistance == bestDistance && lp > bestLogProb) {
			bestDistance = reconDistance
			bestLogProb = lp
			left = corrected{term: ls.Term, distance: ls.Distance, logProb: wordLogProb(d, ls.Term)}
			right = corrected{term: rs.Term, distance: rs.Distance, logProb: wordLogProb(d, rs.Term)}
			ok = true
		}
	}
	if !ok {
		return corrected{}, corrected{}, false
	}
	if bestDistance > unsplit.distance || (bestDistance == unsplit.distance && bestLogProb <= unsplit.logProb) {
		return corrected{}, corrected{}, false
	}
	return left, right, true
}

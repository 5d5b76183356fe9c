package engine

import "errors"

// ErrConfiguration marks a Dictionary constructed with an inconsistent
// or out-of-range Config. Fatal at construction; the caller should not
// retry without changing the configuration.
var ErrConfiguration = errors.New("symspell: invalid configuration")

// ErrArgument marks an otherwise-valid call given an argument outside
// its documented domain (e.g. a Lookup maxEditDistance greater than the
// dictionary's configured ceiling).
var ErrArgument = errors.New("symspell: invalid argument")

// CorpusSize is the word count of the Google Web Trillion Word Corpus,
// used as the denominator N in P(word) = count(word) / N throughout
// the compound corrector and segmenter's probability scoring. Kept as
// a plain compile-time constant, matching the reference implementation.
const CorpusSize int64 = 1_024_908_267_229

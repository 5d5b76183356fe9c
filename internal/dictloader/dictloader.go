// Package dictloader parses the three external file shapes a SymSpell
// dictionary can be built from: a term/count dictionary file, a bigram
// file, and a free-text corpus. Malformed records are skipped with a
// warning rather than aborting the whole load, since real-world
// dictionary files are frequently noisy.
package dictloader

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/bastiangx/symspell/internal/logger"
)

var log = logger.New(logger.ComponentDictLoader)

// Entry is one parsed (term, count) record from a dictionary file.
type Entry struct {
	Term  string
	Count int64
}

// BigramEntry is one parsed (term, count) record from a bigram file;
// Term already has its two words joined by a single space.
type BigramEntry struct {
	Term  string
	Count int64
}

var tokenPattern = regexp.MustCompile(`\w+`)

// LoadDictionary parses r as a term/count dictionary: one record per
// line, fields separated by sep, with termIndex and countIndex giving
// the zero-based column of the term and its count. Lines whose
// countIndex field doesn't parse as a positive integer are skipped.
func LoadDictionary(r io.Reader, termIndex, countIndex int, sep rune) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == sep })
		if termIndex >= len(fields) || countIndex >= len(fields) {
			log.Warnf("line %d: not enough fields, skipping: %q", lineNo, line)
			continue
		}
		count, err := strconv.ParseInt(fields[countIndex], 10, 64)
		if err != nil || count <= 0 {
			log.Warnf("line %d: invalid count %q, skipping", lineNo, fields[countIndex])
			continue
		}
		entries = append(entries, Entry{Term: strings.TrimSpace(fields[termIndex]), Count: count})
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}

// LoadBigramDictionary parses r as a bigram file: the term occupies
// two consecutive columns starting at termIndex, joined with a single
// space; countIndex gives the count column.
func LoadBigramDictionary(r io.Reader, termIndex, countIndex int, sep rune) ([]BigramEntry, error) {
	var entries []BigramEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == sep })
		if termIndex+1 >= len(fields) || countIndex >= len(fields) {
			log.Warnf("line %d: not enough fields for bigram, skipping: %q", lineNo, line)
			continue
		}
		count, err := strconv.ParseInt(fields[countIndex], 10, 64)
		if err != nil || count <= 0 {
			log.Warnf("line %d: invalid bigram count %q, skipping", lineNo, fields[countIndex])
			continue
		}
		term := fields[termIndex] + " " + fields[termIndex+1]
		entries = append(entries, BigramEntry{Term: strings.TrimSpace(term), Count: count})
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}

// CreateDictionaryFromText treats r as free text, extracting words
// with the \w+ pattern and counting one occurrence per extraction.
func CreateDictionaryFromText(r io.Reader) (map[string]int64, error) {
	counts := make(map[string]int64)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, word := range tokenPattern.FindAllString(scanner.Text(), -1) {
			counts[strings.ToLower(word)]++
		}
	}
	if err := scanner.Err(); err != nil {
		return counts, err
	}
	return counts, nil
}

// LoadDictionaryFile opens path and calls LoadDictionary. It returns
// (false, nil) when the file does not exist, matching the reference
// LoadDictionary contract of signalling a missing source file as a
// non-error false return rather than an IoError.
func LoadDictionaryFile(path string, termIndex, countIndex int, sep rune) ([]Entry, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()
	entries, err := LoadDictionary(f, termIndex, countIndex, sep)
	if err != nil {
		return entries, false, err
	}
	return entries, true, nil
}

// LoadBigramDictionaryFile opens path and calls LoadBigramDictionary,
// following the same missing-file contract as LoadDictionaryFile.
func LoadBigramDictionaryFile(path string, termIndex, countIndex int, sep rune) ([]BigramEntry, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()
	entries, err := LoadBigramDictionary(f, termIndex, countIndex, sep)
	if err != nil {
		return entries, false, err
	}
	return entries, true, nil
}

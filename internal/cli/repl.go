// Package cli provides an interactive REPL for exercising lookup,
// compound correction, and word segmentation while debugging or
// tuning a dictionary, without going through the IPC protocol.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/symspell/internal/completion"
	"github.com/bastiangx/symspell/internal/compound"
	"github.com/bastiangx/symspell/internal/engine"
	"github.com/bastiangx/symspell/internal/logger"
	"github.com/bastiangx/symspell/internal/segment"
)

var log = logger.New(logger.ComponentCLI)

// REPL reads lines from stdin and dispatches them to the lookup,
// compound, segmentation, or completion operations depending on a
// leading command word, printing human-readable results.
type REPL struct {
	dict         *engine.Dictionary
	completer    *completion.Completer
	verbosity    engine.Verbosity
	maxEdit      int
	color        bool
	requestCount int
}

// NewREPL builds a REPL bound to dict with the given verbosity; a
// maxEdit <= 0 defaults to the dictionary's MaxDictionaryEditDistance.
// ANSI highlighting of
// result terms is on by default; disable it with SetColorOutput(false)
// for redirected/non-terminal output.
func NewREPL(dict *engine.Dictionary, verbosity engine.Verbosity, maxEdit int) *REPL {
	if maxEdit <= 0 {
		maxEdit = dict.Config().MaxDictionaryEditDistance
	}
	return &REPL{dict: dict, verbosity: verbosity, maxEdit: maxEdit, color: true}
}

// SetColorOutput toggles ANSI highlighting of result terms.
func (r *REPL) SetColorOutput(enabled bool) {
	r.color = enabled
}

// highlight wraps s in an ANSI color escape when color output is enabled.
func (r *REPL) highlight(s string) string {
	if !r.color {
		return s
	}
	return fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
}

// Start begins the interface loop: prompt, read a line, dispatch,
// repeat. Returns when stdin closes or a read error occurs.
func (r *REPL) Start() error {
	log.Print("symspell CLI [BETA]")
	log.Print("commands: lookup <word> | compound <sentence> | segment <text> | complete <prefix> | set maxedit <n> | quit")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		r.handleLine(line)
	}
}

func (r *REPL) handleLine(line string) {
	r.requestCount++
	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var rest string
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}

	switch cmd {
	case "lookup":
		r.handleLookup(rest)
	case "compound":
		r.handleCompound(rest)
	case "segment":
		r.handleSegment(rest)
	case "complete":
		r.handleComplete(rest)
	case "set":
		r.handleSet(rest)
	default:
		// bare input with no command word defaults to lookup, since
		// that's the overwhelmingly common debug action
		r.handleLookup(line)
	}
}

func (r *REPL) handleLookup(word string) {
	if word == "" {
		log.Error("lookup requires a word")
		return
	}

	start := time.Now()
	suggestions, err := r.dict.Lookup(word, r.verbosity, r.maxEdit, true)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("lookup %q: %v", word, err)
		return
	}

	log.Debugf("took %v for %q", elapsed, word)
	if len(suggestions) == 0 {
		log.Warnf("no suggestions for %q", word)
		return
	}

	log.Printf("found %d suggestions for %q:", len(suggestions), word)
	for i, s := range suggestions {
		colored := r.highlight(s.Term)
		log.Printf("%2d. %-30s (dist: %d, count: %s)", i+1, colored, s.Distance, formatWithCommas(s.Count))
	}
}

func (r *REPL) handleCompound(sentence string) {
	if sentence == "" {
		log.Error("compound requires a sentence")
		return
	}
	start := time.Now()
	result, err := compound.LookupCompound(r.dict, sentence, r.maxEdit)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("compound %q: %v", sentence, err)
		return
	}
	log.Debugf("took %v for %q", elapsed, sentence)
	log.Printf("%s  (dist: %d, prob: %g)", result.Term, result.Distance, result.Probability)
}

func (r *REPL) handleSegment(text string) {
	if text == "" {
		log.Error("segment requires text")
		return
	}
	start := time.Now()
	result, err := segment.WordSegmentation(r.dict, text, r.maxEdit, 0)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("segment %q: %v", text, err)
		return
	}
	log.Debugf("took %v for %q", elapsed, text)
	log.Printf("%s  (dist: %d)", result.Corrected, result.Distance)
}

func (r *REPL) handleComplete(prefix string) {
	if prefix == "" {
		log.Error("complete requires a prefix")
		return
	}
	if r.completer == nil {
		log.Debug("building completion index from current dictionary")
		r.completer = completion.NewFromEngine(r.dict)
	}

	start := time.Now()
	suggestions := r.completer.Complete(prefix, 10)
	elapsed := time.Since(start)
	log.Debugf("took %v for prefix %q", elapsed, prefix)
	if len(suggestions) == 0 {
		log.Warnf("no completions for %q", prefix)
		return
	}

	log.Printf("found %d completions for %q:", len(suggestions), prefix)
	for i, s := range suggestions {
		colored := r.highlight(s.Word)
		log.Printf("%2d. %-30s (freq: %s)", i+1, colored, formatWithCommas(s.Frequency))
	}
}

func (r *REPL) handleSet(rest string) {
	parts := strings.Fields(rest)
	if len(parts) != 2 || parts[0] != "maxedit" {
		log.Error("usage: set maxedit <n>")
		return
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 || n > r.dict.Config().MaxDictionaryEditDistance {
		log.Errorf("maxedit must be an integer in [0,%d]", r.dict.Config().MaxDictionaryEditDistance)
		return
	}
	r.maxEdit = n
	log.Infof("maxedit set to %d", n)
}

// formatWithCommas formats an integer with comma separators.
func formatWithCommas(n int64) string {
	str := strconv.FormatInt(n, 10)
	if n < 1000 && n > -1000 {
		return str
	}
	result := ""
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(char)
	}
	return result
}

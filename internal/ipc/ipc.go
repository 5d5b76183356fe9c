/*
Package ipc implements a msgpack IPC protocol for symspell's correction
services, streamed over stdin/stdout.

The server operates on a request/response model: each request carries
an ID field echoed back on its response, and one of four operation
kinds - single-word lookup, compound correction, word segmentation, or
prefix completion. Because msgpack values are self-delimiting, requests
are streamed back to back with no length-prefix framing required.

A lookup request looks like:

	{"id": "req_001", "op": "lookup", "input": "hte", "verbosity": 0, "max_edit": 2}

And the server replies with suggestions ranked by distance then count:

	{"id": "req_001", "suggestions": [{"term": "the", "distance": 1, "count": 23135851162}], "count": 1, "time_us": 42}
*/
package ipc

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/symspell/internal/completion"
	"github.com/bastiangx/symspell/internal/compound"
	"github.com/bastiangx/symspell/internal/engine"
	"github.com/bastiangx/symspell/internal/logger"
	"github.com/bastiangx/symspell/internal/segment"
)

var log = logger.New(logger.ComponentIPC)

// Operation names accepted in the "op" field of an envelope.
const (
	OpLookup   = "lookup"
	OpCompound = "compound"
	OpSegment  = "segment"
	OpComplete = "complete"
)

// request is the union of every field any operation's payload may
// carry. Msgpack values are self-delimiting but not self-describing,
// so the whole envelope is decoded into this single struct in one
// pass; dispatch then reads only the fields its Op needs.
type request struct {
	ID                        string `msgpack:"id"`
	Op                        string `msgpack:"op"`
	Input                     string `msgpack:"input"`
	Verbosity                 int    `msgpack:"verbosity"`
	MaxEdit                   int    `msgpack:"max_edit"`
	IncludeUnknown            bool   `msgpack:"include_unknown,omitempty"`
	MaxSegmentationWordLength int    `msgpack:"max_segmentation_word_length,omitempty"`
	Limit                     int    `msgpack:"limit,omitempty"`
}

// LookupRequest corrects a single word.
type LookupRequest struct {
	ID             string `msgpack:"id"`
	Op             string `msgpack:"op"`
	Input          string `msgpack:"input"`
	Verbosity      int    `msgpack:"verbosity"`
	MaxEdit        int    `msgpack:"max_edit"`
	IncludeUnknown bool   `msgpack:"include_unknown,omitempty"`
}

// SuggestionWire is the wire representation of one engine.Suggestion.
type SuggestionWire struct {
	Term     string `msgpack:"term"`
	Distance int    `msgpack:"distance"`
	Count    int64  `msgpack:"count"`
}

// LookupResponse answers a LookupRequest.
type LookupResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []SuggestionWire `msgpack:"suggestions"`
	Count       int              `msgpack:"count"`
	TimeTakenUs int64            `msgpack:"time_us"`
}

// CompoundRequest corrects a whole sentence, handling split/merge errors.
type CompoundRequest struct {
	ID      string `msgpack:"id"`
	Op      string `msgpack:"op"`
	Input   string `msgpack:"input"`
	MaxEdit int    `msgpack:"max_edit"`
}

// CompoundResponse answers a CompoundRequest.
type CompoundResponse struct {
	ID          string  `msgpack:"id"`
	Term        string  `msgpack:"term"`
	Distance    int     `msgpack:"distance"`
	Probability float64 `msgpack:"probability"`
	TimeTakenUs int64   `msgpack:"time_us"`
}

// SegmentRequest inserts word boundaries into unspaced input.
type SegmentRequest struct {
	ID                        string `msgpack:"id"`
	Op                        string `msgpack:"op"`
	Input                     string `msgpack:"input"`
	MaxEdit                   int    `msgpack:"max_edit"`
	MaxSegmentationWordLength int    `msgpack:"max_segmentation_word_length,omitempty"`
}

// SegmentResponse answers a SegmentRequest.
type SegmentResponse struct {
	ID          string `msgpack:"id"`
	Corrected   string `msgpack:"corrected"`
	Segmented   string `msgpack:"segmented"`
	Distance    int    `msgpack:"distance"`
	TimeTakenUs int64  `msgpack:"time_us"`
}

// CompleteRequest asks for prefix-completion candidates, bypassing
// edit-distance correction entirely.
type CompleteRequest struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Input string `msgpack:"input"`
	Limit int    `msgpack:"limit,omitempty"`
}

// CompletionWire is the wire representation of one completion.Suggestion.
type CompletionWire struct {
	Word      string `msgpack:"word"`
	Frequency int64  `msgpack:"frequency"`
}

// CompleteResponse answers a CompleteRequest.
type CompleteResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []CompletionWire `msgpack:"suggestions"`
	Count       int              `msgpack:"count"`
	TimeTakenUs int64            `msgpack:"time_us"`
}

// ErrorResponse is sent when a request cannot be fulfilled.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"error"`
	Code  int    `msgpack:"code"`
}

// Server streams msgpack requests from a reader and msgpack responses
// to a writer, dispatching each request against a shared engine.Dictionary.
type Server struct {
	dict      *engine.Dictionary
	completer *completion.Completer
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
}

// NewServer builds a Server reading requests from os.Stdin and writing
// responses to os.Stdout.
func NewServer(dict *engine.Dictionary) *Server {
	return NewServerIO(dict, os.Stdin, os.Stdout)
}

// NewServerIO builds a Server over arbitrary reader/writer pair, useful
// for testing without real stdin/stdout.
func NewServerIO(dict *engine.Dictionary, r io.Reader, w io.Writer) *Server {
	return &Server{
		dict:    dict,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// SetCompleter attaches a prefix-completion index so OpComplete requests
// can be served; without one, OpComplete returns a 400 error response.
func (s *Server) SetCompleter(c *completion.Completer) {
	s.completer = c
}

// Serve reads requests until the stream is exhausted or a non-EOF
// decode error occurs.
func (s *Server) Serve() error {
	log.Debug("starting ipc server")
	for {
		var req request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("decoding request: %v", err)
			return err
		}
		if err := s.dispatch(req); err != nil {
			log.Errorf("dispatching op %q: %v", req.Op, err)
		}
	}
}

func (s *Server) dispatch(req request) error {
	switch req.Op {
	case OpLookup:
		return s.handleLookup(req)
	case OpCompound:
		return s.handleCompound(req)
	case OpSegment:
		return s.handleSegment(req)
	case OpComplete:
		return s.handleComplete(req)
	default:
		return s.encoder.Encode(ErrorResponse{ID: req.ID, Error: "unknown op: " + req.Op, Code: 400})
	}
}

func (s *Server) handleLookup(req request) error {
	maxEdit := req.MaxEdit
	if maxEdit <= 0 {
		maxEdit = s.dict.Config().MaxDictionaryEditDistance
	}

	start := time.Now()
	suggestions, err := s.dict.Lookup(req.Input, engine.Verbosity(req.Verbosity), maxEdit, req.IncludeUnknown)
	if err != nil {
		return s.encoder.Encode(ErrorResponse{ID: req.ID, Error: err.Error(), Code: 400})
	}
	elapsed := time.Since(start)

	wire := make([]SuggestionWire, len(suggestions))
	for i, sg := range suggestions {
		wire[i] = SuggestionWire{Term: sg.Term, Distance: sg.Distance, Count: sg.Count}
	}
	return s.encoder.Encode(LookupResponse{
		ID:          req.ID,
		Suggestions: wire,
		Count:       len(wire),
		TimeTakenUs: elapsed.Microseconds(),
	})
}

func (s *Server) handleCompound(req request) error {
	maxEdit := req.MaxEdit
	if maxEdit <= 0 {
		maxEdit = s.dict.Config().MaxDictionaryEditDistance
	}

	start := time.Now()
	result, err := compound.LookupCompound(s.dict, req.Input, maxEdit)
	if err != nil {
		return s.encoder.Encode(ErrorResponse{ID: req.ID, Error: err.Error(), Code: 400})
	}
	elapsed := time.Since(start)

	return s.encoder.Encode(CompoundResponse{
		ID:          req.ID,
		Term:        result.Term,
		Distance:    result.Distance,
		Probability: result.Probability,
		TimeTakenUs: elapsed.Microseconds(),
	})
}

func (s *Server) handleSegment(req request) error {
	maxEdit := req.MaxEdit
	if maxEdit <= 0 {
		maxEdit = s.dict.Config().MaxDictionaryEditDistance
	}

	start := time.Now()
	result, err := segment.WordSegmentation(s.dict, req.Input, maxEdit, req.MaxSegmentationWordLength)
	if err != nil {
		return s.encoder.Encode(ErrorResponse{ID: req.ID, Error: err.Error(), Code: 400})
	}
	elapsed := time.Since(start)

	return s.encoder.Encode(SegmentResponse{
		ID:          req.ID,
		Corrected:   result.Corrected,
		Segmented:   result.Segmented,
		Distance:    result.Distance,
		TimeTakenUs: elapsed.Microseconds(),
	})
}

func (s *Server) handleComplete(req request) error {
	if s.completer == nil {
		return s.encoder.Encode(ErrorResponse{ID: req.ID, Error: "completion index not built", Code: 400})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	start := time.Now()
	suggestions := s.completer.Complete(req.Input, limit)
	elapsed := time.Since(start)

	wire := make([]CompletionWire, len(suggestions))
	for i, sg := range suggestions {
		wire[i] = CompletionWire{Word: sg.Word, Frequency: sg.Frequency}
	}
	return s.encoder.Encode(CompleteResponse{
		ID:          req.ID,
		Suggestions: wire,
		Count:       len(wire),
		TimeTakenUs: elapsed.Microseconds(),
	})
}

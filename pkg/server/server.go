package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/graydel/classmatch/pkg/classes"
	"github.com/graydel/classmatch/pkg/config"
	"github.com/graydel/classmatch/pkg/lexicon"
	"github.com/graydel/classmatch/pkg/match"
)

// Server handles the IPC for pattern matching
type Server struct {
	engine  *match.Engine
	table   *classes.Table
	lex     *lexicon.Lexicon
	cfg     *config.Config
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a new matching server using stdin/stdout for IPC
func NewServer(engine *match.Engine, table *classes.Table, lex *lexicon.Lexicon, cfg *config.Config) *Server {
	return NewServerWithIO(engine, table, lex, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams, mainly for tests.
func NewServerWithIO(engine *match.Engine, table *classes.Table, lex *lexicon.Lexicon, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:  engine,
		table:   table,
		lex:     lex,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	s.sendResponse(StatusResponse{Status: "ready", Words: s.lex.Len()})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the request action
func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "match":
		s.handleMatch(request)
	case "pattern":
		s.handlePattern(request)
	case "parse":
		s.handleParse(request)
	case "prefix":
		s.handlePrefix(request)
	case "reload":
		s.handleReload(request)
	case "info":
		s.handleInfo(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

// handleMatch runs a pattern query and answers with the matching words.
// Results beyond the requested (or configured) limit are cut, with the
// truncation flagged so clients can ask again with a higher limit.
func (s *Server) handleMatch(request Request) {
	tokens := strings.Fields(request.Pattern)
	if len(tokens) == 0 {
		s.sendError(request.ID, "Missing 'q' pattern parameter", 400)
		log.Debug("Pattern is empty in request")
		return
	}
	if max := s.cfg.Server.MaxPattern; max > 0 && len(tokens) > max {
		s.sendError(request.ID, fmt.Sprintf("Pattern exceeds maximum of %d positions", max), 400)
		return
	}

	start := time.Now()
	words, err := s.engine.FindMatches(request.Pattern)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		log.Debugf("Match failed: %v", err)
		return
	}
	elapsed := time.Since(start)

	limit := s.effectiveLimit(request.Limit)
	truncated := false
	if limit > 0 && len(words) > limit {
		words = words[:limit]
		truncated = true
	}

	s.sendResponse(MatchResponse{
		ID:        request.ID,
		Words:     words,
		Count:     len(words),
		Truncated: truncated,
		TimeTaken: elapsed.Microseconds(),
	})
}

// handlePattern maps a concrete word back to its class-label pattern
func (s *Server) handlePattern(request Request) {
	if request.Word == "" {
		s.sendError(request.ID, "Missing 'w' word parameter", 400)
		return
	}

	pattern, err := s.engine.PatternOf(request.Word)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		log.Debugf("Pattern mapping failed for %q: %v", request.Word, err)
		return
	}

	s.sendResponse(PatternResponse{
		ID:      request.ID,
		Word:    strings.ToUpper(strings.TrimSpace(request.Word)),
		Pattern: pattern,
	})
}

// handleParse compiles a pattern without searching, so clients can validate
// or display what each position admits
func (s *Server) handleParse(request Request) {
	compiled, err := s.engine.ParsePattern(request.Pattern)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}

	labels := make([]string, 0, len(compiled))
	for _, token := range strings.Fields(request.Pattern) {
		labels = append(labels, strings.ToUpper(token))
	}
	letters := make([]string, len(compiled))
	for i, set := range compiled {
		letters[i] = set.Letters()
	}

	s.sendResponse(ParseResponse{
		ID:      request.ID,
		Labels:  labels,
		Letters: letters,
		Length:  len(compiled),
	})
}

// handlePrefix lists words under a confirmed exact prefix
func (s *Server) handlePrefix(request Request) {
	if strings.TrimSpace(request.Prefix) == "" {
		s.sendError(request.ID, "Missing 'p' prefix parameter", 400)
		return
	}

	start := time.Now()
	limit := s.effectiveLimit(request.Limit)
	words := s.lex.WordsWithPrefix(request.Prefix, limit)
	elapsed := time.Since(start)

	s.sendResponse(MatchResponse{
		ID:        request.ID,
		Words:     words,
		Count:     len(words),
		Truncated: limit > 0 && len(words) == limit,
		TimeTaken: elapsed.Microseconds(),
	})
}

// handleReload re-reads the configured word list. The lexicon keeps its
// previous content when the source cannot be read.
func (s *Server) handleReload(request Request) {
	minLength := s.cfg.Lexicon.MinLength
	if request.Min != nil {
		minLength = *request.Min
	}

	if err := s.lex.Load(s.cfg.Lexicon.Path, minLength); err != nil {
		s.sendError(request.ID, err.Error(), 503)
		log.Errorf("Reload failed: %v", err)
		return
	}

	log.Debugf("Reloaded lexicon: %d words, min length %d", s.lex.Len(), minLength)
	s.sendResponse(StatusResponse{ID: request.ID, Status: "reloaded", Words: s.lex.Len()})
}

// handleInfo reports lexicon stats and the active class labels
func (s *Server) handleInfo(request Request) {
	st := s.lex.Stats()
	s.sendResponse(InfoResponse{
		ID:      request.ID,
		Words:   st.TotalWords,
		Buckets: st.Buckets,
		MinLen:  st.MinLength,
		MaxLen:  st.MaxLength,
		Labels:  s.table.Labels(),
	})
}

// effectiveLimit clamps a requested limit to the configured server maximum.
// A request without a limit still gets capped: IPC replies should stay small.
func (s *Server) effectiveLimit(requested int) int {
	max := s.cfg.Server.MaxLimit
	if requested < 1 {
		return max
	}
	if max > 0 && requested > max {
		return max
	}
	return requested
}

// sendResponse encodes the given response as msgpack onto the output stream
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

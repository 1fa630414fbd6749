package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/chengyu/pkg/config"
	"github.com/bastiangx/chengyu/pkg/dictionary"
	"github.com/bastiangx/chengyu/pkg/guess"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server answers msgpack requests against a loaded dictionary
type Server struct {
	dict         *dictionary.Dictionary
	config       *config.Config
	configPath   string
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	requestCount int
}

// NewServer creates a server on stdin/stdout.
// configPath may be empty, which disables config reloading.
func NewServer(dict *dictionary.Dictionary, cfg *config.Config, configPath string) *Server {
	return newServer(dict, cfg, configPath, os.Stdin, os.Stdout)
}

func newServer(dict *dictionary.Dictionary, cfg *config.Config, configPath string, r io.Reader, w io.Writer) *Server {
	return &Server{
		dict:       dict,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(r)),
		writer:     bufio.NewWriter(w),
	}
}

// Start serves requests until the input is closed
func (s *Server) Start() error {
	log.Debug("Starting server")
	s.send(map[string]string{"status": "ready"})

	for {
		// a whole value is read first so a malformed request cannot desync the stream
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server")
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Debugf("Unmarshaling request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	s.requestCount++
	s.maybeReloadConfig()

	switch req.Action {
	case "", ActionMatch:
		s.handleMatch(req)
	case ActionLookup:
		s.handleLookup(req)
	case ActionInfo:
		stats := s.dict.Stats()
		s.send(InfoResponse{
			ID:        req.ID,
			Status:    "ok",
			Idioms:    stats["totalIdioms"],
			Malformed: stats["malformedIdioms"],
		})
	case ActionHealth:
		s.send(map[string]string{"id": req.ID, "status": "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleMatch(req Request) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if maxLen := s.config.Server.MaxQueryLen; maxLen > 0 && len(query) > maxLen {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d bytes", maxLen), 400)
		log.Debug("Query is too long in request")
		return
	}

	start := time.Now()
	var matches []guess.Match
	if req.Strict || s.config.Server.Strict {
		var err error
		matches, err = s.dict.MatchStrict(query)
		if errors.Is(err, guess.ErrInvalidPattern) {
			s.sendError(req.ID, err.Error(), 400)
			return
		}
	} else {
		matches = s.dict.Match(query)
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s', %d matches", elapsed, query, len(matches))

	limit := s.clampLimit(req.Limit)
	items := make([]MatchItem, 0, len(matches))
	for i, m := range matches {
		if limit > 0 && i >= limit {
			break
		}
		items = append(items, MatchItem{Word: m.Word, Pinyin: m.Pinyin, Syllables: m.SplitPinyin})
	}

	s.send(MatchResponse{
		ID:        req.ID,
		Matches:   items,
		Count:     len(matches),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleLookup(req Request) {
	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		s.sendError(req.ID, "missing 'x' parameter", 400)
		return
	}

	start := time.Now()
	idioms := s.dict.WithPrefix(prefix, 0)
	elapsed := time.Since(start)

	limit := s.clampLimit(req.Limit)
	items := make([]MatchItem, 0, len(idioms))
	for i, idiom := range idioms {
		if limit > 0 && i >= limit {
			break
		}
		items = append(items, MatchItem{Word: idiom.Text, Pinyin: idiom.Pinyin, Syllables: idiom.Syllables})
	}

	s.send(MatchResponse{
		ID:        req.ID,
		Matches:   items,
		Count:     len(idioms),
		TimeTaken: elapsed.Microseconds(),
	})
}

// clampLimit returns the effective limit, 0 meaning unlimited
func (s *Server) clampLimit(requested int) int {
	maxLimit := s.config.Server.MaxLimit
	if requested <= 0 || (maxLimit > 0 && requested > maxLimit) {
		return maxLimit
	}
	return requested
}

// maybeReloadConfig re-reads the config file every ReloadEvery requests
func (s *Server) maybeReloadConfig() {
	every := s.config.Server.ReloadEvery
	if s.configPath == "" || every <= 0 || s.requestCount%every != 0 {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		log.Warnf("Failed to reload config from %s: %v", s.configPath, err)
		return
	}
	s.config = cfg
	log.Debugf("Reloaded config from %s", s.configPath)
}

// send marshals a response and flushes it to the client
func (s *Server) send(response any) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		log.Errorf("Marshaling response: %v", err)
		s.sendError("", "internal server error", 500)
		return
	}
	if _, err := s.writer.Write(data); err != nil {
		log.Errorf("Writing response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(MatchError{ID: id, Error: message, Code: code})
}

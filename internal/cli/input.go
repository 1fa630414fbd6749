// Package cli reads pinyin patterns from stdin and prints the idioms they match.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/chengyu/internal/logger"
	"github.com/bastiangx/chengyu/internal/utils"
	"github.com/bastiangx/chengyu/pkg/guess"
	"github.com/charmbracelet/log"
)

// Matcher is what the CLI needs from a loaded dictionary.
type Matcher interface {
	Match(pattern string) []guess.Match
	MatchStrict(pattern string) ([]guess.Match, error)
	WithPrefix(prefix string, limit int) []guess.Idiom
}

// InputHandler processes queries line by line.
// A line of Han characters looks idioms up by their leading characters,
// anything else is matched as a pinyin pattern.
type InputHandler struct {
	matcher Matcher
	limit   int
	strict  bool
	reader  io.Reader
	writer  io.Writer
	out     *log.Logger
	styles  styles
}

// NewInputHandler creates a handler reading stdin and printing to stdout.
// A limit <= 0 prints every match.
func NewInputHandler(matcher Matcher, limit int, strict, noColor bool) *InputHandler {
	return newInputHandler(matcher, limit, strict, noColor, os.Stdin, os.Stdout)
}

func newInputHandler(matcher Matcher, limit int, strict, noColor bool, r io.Reader, w io.Writer) *InputHandler {
	return &InputHandler{
		matcher: matcher,
		limit:   limit,
		strict:  strict,
		reader:  r,
		writer:  w,
		out:     logger.NewWriter(w, ""),
		styles:  newStyles(noColor),
	}
}

// Start runs the prompt loop until stdin is closed.
func (h *InputHandler) Start() error {
	h.out.Print("chengyu CLI")
	h.out.Print("enter four comma separated syllables, e.g. l'X-4,X'X-X,X'X-X,X'X-2 (Ctrl+C to exit):")

	reader := bufio.NewReader(h.reader)
	for {
		fmt.Fprint(h.writer, "> ")
		line, err := reader.ReadString('\n')
		if line != "" {
			h.Query(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// Query handles a single input line and prints its results.
func (h *InputHandler) Query(line string) {
	query := utils.NormalizeQuery(line)
	if query == "" {
		return
	}

	if utils.IsHanText(query) {
		h.lookup(query)
		return
	}

	if !utils.IsValidQuery(query) {
		h.out.Warnf("No idioms found for '%s' (unsupported characters)", query)
		return
	}

	start := time.Now()
	var matches []guess.Match
	if h.strict {
		var err error
		matches, err = h.matcher.MatchStrict(query)
		if errors.Is(err, guess.ErrInvalidPattern) {
			h.out.Error(err.Error())
			return
		}
	} else {
		matches = h.matcher.Match(query)
	}
	log.Debugf("Took [ %v ] for query '%s'", time.Since(start), query)

	if len(matches) == 0 {
		h.out.Warnf("No idioms found for '%s'", query)
		return
	}

	h.out.Printf("Found %d idioms for '%s':", len(matches), query)
	for i, m := range matches {
		if h.limit > 0 && i >= h.limit {
			h.out.Printf("... %d more", len(matches)-h.limit)
			break
		}
		h.out.Print(h.styles.row(i+1, m.Word, m.Pinyin, m.SplitPinyin))
	}
}

func (h *InputHandler) lookup(prefix string) {
	idioms := h.matcher.WithPrefix(prefix, 0)
	if len(idioms) == 0 {
		h.out.Warnf("No idioms start with '%s'", prefix)
		return
	}

	h.out.Printf("Found %d idioms starting with '%s':", len(idioms), prefix)
	for i, idiom := range idioms {
		if h.limit > 0 && i >= h.limit {
			h.out.Printf("... %d more", len(idioms)-h.limit)
			break
		}
		h.out.Print(h.styles.row(i+1, idiom.Text, idiom.Pinyin, idiom.Syllables))
	}
}

// formatSyllables joins syllable specs back into pattern form.
func formatSyllables(syllables []string) string {
	return strings.Join(syllables, guess.TokenSep)
}

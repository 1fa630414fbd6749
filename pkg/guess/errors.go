package guess

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is wrapped by every error about a malformed query.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidRecord is wrapped by every error about a malformed dictionary record.
	ErrInvalidRecord = errors.New("invalid record")
)

// PatternError describes where a query went wrong.
// Index is -1 when the query as a whole has the wrong shape.
type PatternError struct {
	Pattern string
	Index   int
	Token   string
	Reason  string
}

func (e *PatternError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
	}
	return fmt.Sprintf("invalid pattern %q: token %d %q: %s", e.Pattern, e.Index+1, e.Token, e.Reason)
}

func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}

// RecordError reports an idiom skipped during a scan.
type RecordError struct {
	Index     int
	Text      string
	Syllables int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid record %d %q: %d syllables", e.Index, e.Text, e.Syllables)
}

func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

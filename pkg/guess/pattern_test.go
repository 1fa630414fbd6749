package guess

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	testCases := []struct {
		pattern string
		want    []string
	}{
		{"l'X-4,X'X-X,X'X-X,X'X-2", []string{"l'X-4", "X'X-X", "X'X-X", "X'X-2"}},
		{" l'X-4 , X-X,\tai-4 ,X'X-2 ", []string{"l'X-4", "X-X", "ai-4", "X'X-2"}},
		{"a-1,b-2", []string{"a-1", "b-2"}},
		{"", []string{""}},
		{",,,,", []string{"", "", "", "", ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePattern(tc.pattern))
		})
	}
}

func TestValidatePattern(t *testing.T) {
	tokens, err := ValidatePattern("l'X-4, X-X ,ai-X,X'X-X")
	require.NoError(t, err)
	assert.Equal(t, []string{"l'X-4", "X-X", "ai-X", "X'X-X"}, tokens)

	testCases := []struct {
		pattern string
		index   int
		reason  string
	}{
		{"X-X,X-X,X-X", -1, "expected 4 tokens"},
		{"X-X,X-X,X-X,X-X,X-X", -1, "expected 4 tokens"},
		{"", -1, "expected 4 tokens"},
		{"ai,X-X,X-X,X-X", 0, "missing tone separator"},
		{"X-X,'ing-2,X-X,X-X", 1, "empty initial"},
		{"X-X,X-X,m'-2,X-X", 2, "empty final"},
		{"X-X,X-X,X-X,ai-", 3, "empty tone"},
		{"a'b'c-1,X-X,X-X,X-X", 0, "misplaced initial separator"},
		{"X-X,a-1-2,X-X,X-X", 1, "repeated tone separator"},
	}

	for _, tc := range testCases {
		t.Run(tc.pattern, func(t *testing.T) {
			tokens, err := ValidatePattern(tc.pattern)
			require.Error(t, err)
			assert.Nil(t, tokens)
			assert.True(t, errors.Is(err, ErrInvalidPattern))

			var perr *PatternError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.index, perr.Index)
			assert.Equal(t, tc.reason, perr.Reason)
		})
	}
}

func TestPatternErrorMessage(t *testing.T) {
	_, err := ValidatePattern("X-X,ai,X-X,X-X")
	require.Error(t, err)
	assert.Equal(t, `invalid pattern "X-X,ai,X-X,X-X": token 2 "ai": missing tone separator`, err.Error())

	_, err = ValidatePattern("X-X")
	require.Error(t, err)
	assert.Equal(t, `invalid pattern "X-X": expected 4 tokens`, err.Error())
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/chengyu/pkg/dictionary"
	"github.com/bastiangx/chengyu/pkg/guess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictionary() *dictionary.Dictionary {
	return dictionary.New([]guess.Idiom{
		{Text: "立马不停", Pinyin: "lì mǎ bù tíng", Syllables: []string{"l'i-4", "m'a-3", "b'u-4", "t'ing-2"}},
		{Text: "马到成功", Pinyin: "mǎ dào chéng gōng", Syllables: []string{"m'a-3", "d'ao-4", "ch'eng-2", "g'ong-1"}},
		{Text: "马马虎虎", Pinyin: "mǎ mǎ hū hū", Syllables: []string{"m'a-3", "m'a-3", "h'u-1", "h'u-1"}},
		{Text: "爱不释手", Pinyin: "ài bù shì shǒu", Syllables: []string{"ai-4", "b'u-4", "sh'i-4", "sh'ou-3"}},
	})
}

func query(t *testing.T, limit int, strict bool, line string) string {
	t.Helper()
	var out bytes.Buffer
	h := newInputHandler(testDictionary(), limit, strict, true, strings.NewReader(""), &out)
	h.Query(line)
	return out.String()
}

func TestQueryPrintsNumberedMatches(t *testing.T) {
	out := query(t, 0, false, "X'X-X,m'a-3,X'X-X,X'X-2")

	assert.Contains(t, out, "Found 1 idioms")
	assert.Contains(t, out, " 1. 立马不停  lì mǎ bù tíng  [l'i-4,m'a-3,b'u-4,t'ing-2]")
	assert.NotContains(t, out, "马到成功")
}

func TestQueryFullWidthInput(t *testing.T) {
	out := query(t, 0, false, "  ｍ＇ａ－３，Ｘ－Ｘ，Ｘ－Ｘ，Ｘ－Ｘ  ")

	assert.Contains(t, out, "Found 2 idioms")
	assert.Contains(t, out, "马到成功")
	assert.Contains(t, out, "马马虎虎")
}

func TestQueryLimit(t *testing.T) {
	out := query(t, 1, false, "m'a-3,X-X,X-X,X-X")

	assert.Contains(t, out, "Found 2 idioms")
	assert.Contains(t, out, " 1. 马到成功")
	assert.NotContains(t, out, "马马虎虎")
	assert.Contains(t, out, "... 1 more")
}

func TestQueryHanPrefixLookup(t *testing.T) {
	out := query(t, 0, false, "马")

	assert.Contains(t, out, "starting with '马'")
	assert.Contains(t, out, " 1. 马到成功")
	assert.Contains(t, out, " 2. 马马虎虎")
	assert.NotContains(t, out, "立马不停")

	assert.Contains(t, query(t, 0, false, "龙"), "No idioms start with '龙'")
}

func TestQueryRejectsUnsupportedCharacters(t *testing.T) {
	out := query(t, 0, false, "l'i-4;m'a-3")
	assert.Contains(t, out, "unsupported characters")
}

func TestQueryMalformedPattern(t *testing.T) {
	lenient := query(t, 0, false, "l'i-4,m'a-3")
	assert.Contains(t, lenient, "No idioms found for 'l'i-4,m'a-3'")

	strict := query(t, 0, true, "l'i-4,m'a-3")
	assert.Contains(t, strict, "invalid pattern")
	assert.Contains(t, strict, "expected 4 tokens")
}

func TestQueryBlankLineIsIgnored(t *testing.T) {
	assert.Empty(t, query(t, 0, false, "   \t "))
}

func TestStartReadsUntilEOF(t *testing.T) {
	input := "X'X-X,m'a-3,X'X-X,X'X-2\n\n爱\nm'a-3,m'a-3,X-X,X-X"
	var out bytes.Buffer
	h := newInputHandler(testDictionary(), 0, false, true, strings.NewReader(input), &out)

	require.NoError(t, h.Start())

	got := out.String()
	assert.Contains(t, got, "立马不停")
	assert.Contains(t, got, "爱不释手")
	// last line has no trailing newline
	assert.Contains(t, got, "马马虎虎")

	// the prompt stays on the input line
	assert.Contains(t, got, "> Found 1 idioms")
	assert.NotContains(t, got, ">\n")
	assert.NotContains(t, got, "> \n")
}

func TestRowColorToggle(t *testing.T) {
	plain := newStyles(true).row(3, "马马虎虎", "mǎ mǎ hū hū", []string{"m'a-3", "m'a-3", "h'u-1", "h'u-1"})
	assert.Equal(t, " 3. 马马虎虎  mǎ mǎ hū hū  [m'a-3,m'a-3,h'u-1,h'u-1]", plain)

	styled := newStyles(false).row(3, "马马虎虎", "mǎ mǎ hū hū", []string{"m'a-3"})
	assert.Contains(t, styled, "马马虎虎")
}

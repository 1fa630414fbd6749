/*
Package guess matches four-syllable tonal pinyin patterns against a list of idioms.

A pattern is four comma separated tokens, one per syllable:

	l'X-4,X'X-X,X'X-X,X'X-2

Each token is an exact syllable spec, a full wildcard (X-X or X'X-X),
a simple final-tone token for syllables without an initial,
or a compound initial'final-tone token. Any component may be the wildcard X.

Matching is a linear scan over the idioms it is given.
The package does no I/O and holds no state, so every function is safe for concurrent use.
*/
package guess

const (
	// Wildcard matches any value in the component it replaces.
	Wildcard = "X"

	// InitialSep separates the initial consonant from the rest of a syllable spec.
	InitialSep = "'"

	// ToneSep separates the final from the tone.
	ToneSep = "-"

	// TokenSep separates the four syllable tokens of a pattern.
	TokenSep = ","

	// SyllableCount is the number of syllables in every idiom and pattern.
	SyllableCount = 4
)

// Full wildcards match any syllable regardless of its shape.
const (
	FullWildcard         = "X-X"
	FullWildcardCompound = "X'X-X"
)

// Idiom is a single dictionary record.
// Keys match the bundled idiom asset.
type Idiom struct {
	Text      string   `json:"w" msgpack:"w"`
	Pinyin    string   `json:"po" msgpack:"po"`
	Syllables []string `json:"p" msgpack:"p"`
}

// Match is an idiom accepted by a pattern.
type Match struct {
	Word        string   `json:"word" msgpack:"word"`
	Pinyin      string   `json:"pinyin" msgpack:"pinyin"`
	SplitPinyin []string `json:"split_pinyin" msgpack:"split_pinyin"`
}

// IsWellFormed reports whether the idiom has exactly four syllables.
func (i Idiom) IsWellFormed() bool {
	return len(i.Syllables) == SyllableCount
}

func newMatch(i Idiom) Match {
	return Match{
		Word:        i.Text,
		Pinyin:      i.Pinyin,
		SplitPinyin: i.Syllables,
	}
}

package guess

import "errors"

// FindMatchingIdioms returns every idiom whose four syllables satisfy the pattern, in input order.
//
// Malformed input never fails: a pattern without exactly four tokens yields no matches
// and idioms without exactly four syllables are skipped.
// Duplicates in idioms are kept.
func FindMatchingIdioms(pattern string, idioms []Idiom) []Match {
	tokens := ParsePattern(pattern)
	if len(tokens) != SyllableCount {
		return []Match{}
	}

	matches := []Match{}
	for _, idiom := range idioms {
		if !idiom.IsWellFormed() {
			continue
		}
		if matchTokens(tokens, idiom.Syllables) {
			matches = append(matches, newMatch(idiom))
		}
	}
	return matches
}

// FindMatchingIdiomsStrict is FindMatchingIdioms with malformed input reported.
//
// An invalid pattern returns a nil slice and an error wrapping ErrInvalidPattern.
// Malformed idioms are still skipped, but each one adds a *RecordError to the
// joined error returned alongside the matches found.
func FindMatchingIdiomsStrict(pattern string, idioms []Idiom) ([]Match, error) {
	tokens, err := ValidatePattern(pattern)
	if err != nil {
		return nil, err
	}

	var errs []error
	matches := []Match{}
	for i, idiom := range idioms {
		if !idiom.IsWellFormed() {
			errs = append(errs, &RecordError{
				Index:     i,
				Text:      idiom.Text,
				Syllables: len(idiom.Syllables),
			})
			continue
		}
		if matchTokens(tokens, idiom.Syllables) {
			matches = append(matches, newMatch(idiom))
		}
	}
	return matches, errors.Join(errs...)
}

// MatchIdiom reports whether a single idiom satisfies the pattern.
func MatchIdiom(pattern string, idiom Idiom) bool {
	tokens := ParsePattern(pattern)
	if len(tokens) != SyllableCount || !idiom.IsWellFormed() {
		return false
	}
	return matchTokens(tokens, idiom.Syllables)
}

func matchTokens(tokens, syllables []string) bool {
	for i, token := range tokens {
		if !MatchSyllable(token, syllables[i]) {
			return false
		}
	}
	return true
}

package dictionary

import (
	"sort"

	"github.com/bastiangx/chengyu/pkg/guess"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is an immutable idiom list in asset order,
// indexed by idiom text for prefix lookups.
// It is safe for concurrent readers.
type Dictionary struct {
	idioms    []guess.Idiom
	trie      *patricia.Trie
	malformed int
	maxSyl    int
}

// New builds a Dictionary over idioms. The slice is not copied and must not be modified afterwards.
func New(idioms []guess.Idiom) *Dictionary {
	d := &Dictionary{
		idioms: idioms,
		trie:   patricia.NewTrie(),
	}

	for i, idiom := range idioms {
		if !idiom.IsWellFormed() {
			d.malformed++
		}
		if n := len(idiom.Syllables); n > d.maxSyl {
			d.maxSyl = n
		}

		// duplicates share a key
		key := patricia.Prefix(idiom.Text)
		if item := d.trie.Get(key); item != nil {
			d.trie.Set(key, append(item.([]int), i))
			continue
		}
		d.trie.Insert(key, []int{i})
	}

	if d.malformed > 0 {
		log.Warnf("Dictionary holds %d idioms without exactly %d syllables, they will never match",
			d.malformed, guess.SyllableCount)
	}
	return d
}

// Idioms returns the records in asset order.
func (d *Dictionary) Idioms() []guess.Idiom {
	return d.idioms
}

// Len returns the number of records, malformed ones included.
func (d *Dictionary) Len() int {
	return len(d.idioms)
}

// Match runs the lenient matcher over the whole dictionary.
func (d *Dictionary) Match(pattern string) []guess.Match {
	return guess.FindMatchingIdioms(pattern, d.idioms)
}

// MatchStrict runs the strict matcher over the whole dictionary.
func (d *Dictionary) MatchStrict(pattern string) ([]guess.Match, error) {
	return guess.FindMatchingIdiomsStrict(pattern, d.idioms)
}

// WithPrefix returns idioms whose text starts with prefix, in asset order.
// A limit <= 0 returns all of them.
func (d *Dictionary) WithPrefix(prefix string, limit int) []guess.Idiom {
	if prefix == "" {
		return nil
	}

	var indices []int
	err := d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		indices = append(indices, item.([]int)...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting idiom trie: %v", err)
		return nil
	}

	sort.Ints(indices)
	if limit > 0 && len(indices) > limit {
		indices = indices[:limit]
	}

	result := make([]guess.Idiom, 0, len(indices))
	for _, i := range indices {
		result = append(result, d.idioms[i])
	}
	return result
}

// Stats returns basic counters about the loaded records.
func (d *Dictionary) Stats() map[string]int {
	return map[string]int{
		"totalIdioms":     len(d.idioms),
		"malformedIdioms": d.malformed,
		"maxSyllables":    d.maxSyl,
	}
}

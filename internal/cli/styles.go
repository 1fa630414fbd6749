package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	plain  bool
	word   lipgloss.Style
	pinyin lipgloss.Style
	split  lipgloss.Style
}

func newStyles(noColor bool) styles {
	return styles{
		plain: noColor,
		word: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		pinyin: lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		split: lipgloss.NewStyle().Faint(true),
	}
}

// row renders one numbered result line.
func (s styles) row(n int, word, pinyin string, syllables []string) string {
	split := "[" + formatSyllables(syllables) + "]"
	if s.plain {
		return fmt.Sprintf("%2d. %s  %s  %s", n, word, pinyin, split)
	}
	return fmt.Sprintf("%2d. %s  %s  %s", n, s.word.Render(word), s.pinyin.Render(pinyin), s.split.Render(split))
}

package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize text to aid in the filtering process. In particular, we remove
// diacritics, "ö" becomes "o". Note that Mn is the unicode key for nonspacing
// marks.
func Normalize(in string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, in)
	return out, err
}

// Fold trims, normalizes and lowercases a string so two folded strings can be
// compared without regard to case or accents. If normalization fails the
// lowercased input is returned.
func Fold(in string) string {
	in = strings.TrimSpace(in)
	out, err := Normalize(in)
	if err != nil {
		return strings.ToLower(in)
	}
	return strings.ToLower(out)
}

// StyleFilteredText renders haystack with every rune matched by needle in
// matchStyle and the rest in defaultStyle.
func StyleFilteredText(haystack, needle string, defaultStyle, matchStyle lipgloss.Style) string {
	if needle == "" {
		return defaultStyle.Render(haystack)
	}

	raw := []rune(strings.TrimSpace(haystack))
	matched := matchedRunes(raw, needle)
	if len(matched) == 0 {
		return defaultStyle.Render(haystack)
	}

	b := strings.Builder{}
	for i, r := range raw {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(defaultStyle.Render(string(r)))
		}
	}
	return b.String()
}

// matchedRunes fuzzy matches needle against the folded form of raw and
// returns the indexes of the runes of raw that matched. Each rune is folded
// on its own so folded positions map back to the rune they came from;
// combining marks fold away and follow the rune they modify.
func matchedRunes(raw []rune, needle string) map[int]bool {
	folded := strings.Builder{}
	var owner []int
	for i, r := range raw {
		piece, err := Normalize(string(r))
		if err != nil {
			piece = string(r)
		}
		for _, fr := range strings.ToLower(piece) {
			folded.WriteRune(fr)
			owner = append(owner, i)
		}
	}

	hay := folded.String()
	matches := fuzzy.Find(Fold(needle), []string{hay})
	if len(matches) == 0 {
		return nil
	}

	// fuzzy reports byte offsets into the folded string
	matched := map[int]bool{}
	for _, mi := range matches[0].MatchedIndexes {
		matched[owner[utf8.RuneCountInString(hay[:mi])]] = true
	}
	for i, r := range raw {
		if i > 0 && unicode.Is(unicode.Mn, r) && matched[i-1] {
			matched[i] = true
		}
	}
	return matched
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}

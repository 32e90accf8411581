package analytics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

// tokenizer splits message bodies into case-folded words. A cases.Caser is
// stateful, so each query builds its own tokenizer.
type tokenizer struct {
	fold cases.Caser
}

func newTokenizer() *tokenizer {
	return &tokenizer{fold: cases.Fold()}
}

// quotes maps typographic apostrophes to ASCII so "don’t" meets the stopword list.
var quotes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

// words splits on whitespace, folds case and trims punctuation around each
// token. Tokens with no letters or digits (pure punctuation, emoji) are dropped.
func (t *tokenizer) words(body string) []string {
	fields := strings.Fields(quotes.Replace(body))
	out := fields[:0]
	for _, f := range fields {
		w := strings.TrimFunc(t.fold.String(f), notWordRune)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsNumber(r)
}

// emojis returns every emoji grapheme cluster in s. Multi-rune sequences
// (skin tones, ZWJ families, flags, keycaps) count as one emoji.
func emojis(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if cluster := g.Str(); isEmoji(cluster) {
			out = append(out, cluster)
		}
	}
	return out
}

// isEmoji looks the cluster up in the Unicode emoji data. Symbols typed
// without a presentation selector (✔, ☺) are also tried with VS16.
func isEmoji(cluster string) bool {
	if isASCII(cluster) {
		return false
	}
	if _, err := gomoji.GetInfo(cluster); err == nil {
		return true
	}
	if strings.HasSuffix(cluster, vs16) {
		_, err := gomoji.GetInfo(strings.TrimSuffix(cluster, vs16))
		return err == nil
	}
	_, err := gomoji.GetInfo(cluster + vs16)
	return err == nil
}

const vs16 = "\ufe0f"

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

package analytics

import (
	"math"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

const (
	cloudMinFont = 10
	cloudMaxFont = 100
)

// CloudTag is one word of the word cloud. Weight is the count relative to the
// most frequent word; FontSize scales linearly between 10 and 100.
type CloudTag struct {
	Word     string  `json:"word"`
	Count    int     `json:"count"`
	Weight   float64 `json:"weight"`
	FontSize int     `json:"font_size"`
}

// WordInsights is the result of the combined words/emojis/profanity pass.
// Emojis and Profanity are nil when nothing was found, which is not an error.
type WordInsights struct {
	Words     []LabelCount `json:"words"`
	Emojis    []LabelCount `json:"emojis"`
	Profanity []LabelCount `json:"profanity"`
}

// textual reports whether a record carries words someone typed.
func textual(r chatlog.Record) bool {
	return !r.IsNotification() && !r.IsMedia()
}

// WordCloud returns the most frequent words, excluding notifications,
// omitted-media bodies and stopwords.
func (e *Engine) WordCloud(f Filter, rs chatlog.RecordSet) []CloudTag {
	tok := newTokenizer()
	c := newCounter()
	f.narrow(rs).Each(func(r chatlog.Record) {
		if !textual(r) {
			return
		}
		for _, w := range tok.words(r.Body) {
			if !e.lex.IsStopword(w) {
				c.add(w, 1)
			}
		}
	})

	ranked := c.ranked(e.opts.CloudWords)
	tags := make([]CloudTag, len(ranked))
	if len(ranked) == 0 {
		return tags
	}

	top := float64(ranked[0].Count)
	for i, lc := range ranked {
		weight := float64(lc.Count) / top
		tags[i] = CloudTag{
			Word:     lc.Label,
			Count:    lc.Count,
			Weight:   round2(weight),
			FontSize: cloudMinFont + int(math.Round(weight*(cloudMaxFont-cloudMinFont))),
		}
	}
	return tags
}

// CommonWordsEmojisProfanity makes one pass over the filtered, non-notification,
// non-media records and returns the top words (stopwords excluded), every emoji
// and every profane word, each ordered by descending count with ties in
// first-seen order.
func (e *Engine) CommonWordsEmojisProfanity(f Filter, rs chatlog.RecordSet) WordInsights {
	tok := newTokenizer()
	words, emoji, profane := newCounter(), newCounter(), newCounter()

	f.narrow(rs).Each(func(r chatlog.Record) {
		if !textual(r) {
			return
		}
		for _, w := range tok.words(r.Body) {
			if !e.lex.IsStopword(w) {
				words.add(w, 1)
			}
			if e.lex.IsProfane(w) {
				profane.add(w, 1)
			}
		}
		for _, em := range emojis(r.Body) {
			emoji.add(em, 1)
		}
	})

	out := WordInsights{Words: words.ranked(e.opts.TopWords)}
	if emoji.len() > 0 {
		out.Emojis = emoji.ranked(0)
	}
	if profane.len() > 0 {
		out.Profanity = profane.ranked(0)
	}
	return out
}

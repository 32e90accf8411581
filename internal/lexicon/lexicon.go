// Package lexicon holds the word lists used by the analytics: stopwords,
// profanity and sensitive-topic patterns. A Lexicon is built once at startup
// and only read afterwards.
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

//go:embed defaults.json
var defaultsJSON []byte

// regexPrefix marks a sensitive pattern as a raw regular expression instead of a phrase.
const regexPrefix = "re:"

// Source is the uncompiled, serialisable form of a lexicon.
type Source struct {
	Stopwords []string         `json:"stopwords"`
	Profanity []string         `json:"profanity"`
	Sensitive []CategorySource `json:"sensitive"`
}

// CategorySource lists the phrases (or "re:" regexes) for one sensitive category.
type CategorySource struct {
	Category string   `json:"category"`
	Patterns []string `json:"patterns"`
}

// Category is a compiled sensitive-topic category.
type Category struct {
	Name     string
	patterns []*regexp.Regexp
}

// Lexicon is the compiled, read-only word data.
type Lexicon struct {
	stopwords map[string]bool
	profanity map[string]bool
	sensitive []Category
}

// DefaultSource returns the embedded lexicon.
func DefaultSource() (Source, error) {
	var src Source
	if err := json.Unmarshal(defaultsJSON, &src); err != nil {
		return Source{}, fmt.Errorf("parse embedded lexicon: %w", err)
	}
	return src, nil
}

// Default compiles the embedded lexicon.
func Default() (*Lexicon, error) {
	src, err := DefaultSource()
	if err != nil {
		return nil, err
	}
	return Compile(src)
}

// LoadFile reads a Source from a JSON file.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read lexicon: %w", err)
	}
	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		return Source{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return src, nil
}

// Merge overlays sources on base. A non-empty section in a later source
// replaces that section entirely.
func Merge(base Source, overrides ...Source) Source {
	out := base
	for _, o := range overrides {
		if len(o.Stopwords) > 0 {
			out.Stopwords = o.Stopwords
		}
		if len(o.Profanity) > 0 {
			out.Profanity = o.Profanity
		}
		if len(o.Sensitive) > 0 {
			out.Sensitive = o.Sensitive
		}
	}
	return out
}

// Compile builds a Lexicon. Plain patterns match whole words case-insensitively.
func Compile(src Source) (*Lexicon, error) {
	lx := &Lexicon{
		stopwords: toSet(src.Stopwords),
		profanity: toSet(src.Profanity),
	}

	for _, cs := range src.Sensitive {
		name := strings.TrimSpace(cs.Category)
		if name == "" {
			return nil, fmt.Errorf("sensitive category without a name")
		}
		cat := Category{Name: name}
		for _, p := range cs.Patterns {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("category %s: %w", name, err)
			}
			if re != nil {
				cat.patterns = append(cat.patterns, re)
			}
		}
		lx.sensitive = append(lx.sensitive, cat)
	}

	return lx, nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil, nil
	}
	expr := `\b` + regexp.QuoteMeta(p) + `\b`
	if raw, ok := strings.CutPrefix(p, regexPrefix); ok {
		expr = raw
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", p, err)
	}
	return re, nil
}

func toSet(words []string) map[string]bool {
	fold := cases.Fold()
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			set[fold.String(w)] = true
		}
	}
	return set
}

// IsStopword reports whether a case-folded token is a stopword.
func (l *Lexicon) IsStopword(token string) bool {
	return l.stopwords[token]
}

// IsProfane reports whether a case-folded token is in the profanity list.
func (l *Lexicon) IsProfane(token string) bool {
	return l.profanity[token]
}

// MatchSensitive returns the first category, in lexicon order, with a pattern matching text.
func (l *Lexicon) MatchSensitive(text string) (string, bool) {
	for _, cat := range l.sensitive {
		for _, re := range cat.patterns {
			if re.MatchString(text) {
				return cat.Name, true
			}
		}
	}
	return "", false
}

// Categories returns the sensitive category names in lexicon order.
func (l *Lexicon) Categories() []string {
	names := make([]string, len(l.sensitive))
	for i, c := range l.sensitive {
		names[i] = c.Name
	}
	return names
}

// Sizes returns the number of stopwords, profane words and sensitive categories.
func (l *Lexicon) Sizes() (stopwords, profanity, categories int) {
	return len(l.stopwords), len(l.profanity), len(l.sensitive)
}

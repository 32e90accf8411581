package store

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/chatlens/internal/lexicon"
)

// Term kinds stored in lexicon_terms.kind.
const (
	KindStopword  = "stopword"
	KindProfanity = "profanity"
	KindSensitive = "sensitive"
)

const lexiconSchema = `
CREATE TABLE IF NOT EXISTS lexicon_terms (
	id       BIGSERIAL PRIMARY KEY,
	kind     TEXT NOT NULL CHECK (kind IN ('stopword', 'profanity', 'sensitive')),
	category TEXT NOT NULL DEFAULT '',
	term     TEXT NOT NULL,
	UNIQUE (kind, category, term)
)`

// EnsureLexiconSchema creates the lexicon_terms table if it does not exist.
func (s *Store) EnsureLexiconSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, lexiconSchema); err != nil {
		return fmt.Errorf("create lexicon_terms: %w", err)
	}
	return nil
}

// LoadLexicon reads every term into a lexicon.Source. Sensitive categories keep
// the order in which their first term was inserted.
func (s *Store) LoadLexicon(ctx context.Context) (lexicon.Source, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT kind, category, term
		FROM lexicon_terms
		ORDER BY id`)
	if err != nil {
		return lexicon.Source{}, fmt.Errorf("query lexicon terms: %w", err)
	}
	defer rows.Close()

	var src lexicon.Source
	catIdx := make(map[string]int)
	for rows.Next() {
		var kind, category, term string
		if err := rows.Scan(&kind, &category, &term); err != nil {
			return lexicon.Source{}, fmt.Errorf("scan lexicon term: %w", err)
		}
		switch kind {
		case KindStopword:
			src.Stopwords = append(src.Stopwords, term)
		case KindProfanity:
			src.Profanity = append(src.Profanity, term)
		case KindSensitive:
			i, ok := catIdx[category]
			if !ok {
				i = len(src.Sensitive)
				catIdx[category] = i
				src.Sensitive = append(src.Sensitive, lexicon.CategorySource{Category: category})
			}
			src.Sensitive[i].Patterns = append(src.Sensitive[i].Patterns, term)
		}
	}
	if err := rows.Err(); err != nil {
		return lexicon.Source{}, fmt.Errorf("iterate lexicon terms: %w", err)
	}
	return src, nil
}

// AddLexiconTerm inserts a term, ignoring duplicates.
func (s *Store) AddLexiconTerm(ctx context.Context, kind, category, term string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO lexicon_terms (kind, category, term)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, category, term) DO NOTHING`,
		kind, category, term,
	)
	if err != nil {
		return fmt.Errorf("insert lexicon term: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz-bot/internal/infra/postgres"
)

// VocabularySource reads the vocabulary table from PostgreSQL.
// The tables are only read; quiz state is never written back.
type VocabularySource struct {
	db postgres.DBTX
}

// NewVocabularySource creates a new VocabularySource with the provided database pool.
func NewVocabularySource(db postgres.DBTX) *VocabularySource {
	return &VocabularySource{db: db}
}

type vocabularyRow struct {
	Group   string
	Word    *string
	Meaning *string
}

// Load returns all groups with their entries, both in position order.
func (s *VocabularySource) Load(ctx context.Context) ([]entities.Group, error) {
	query := `
		SELECT g.name, e.word, e.meaning
		FROM vocabulary_groups g
		LEFT JOIN vocabulary_entries e ON e.group_id = g.id
		ORDER BY g.position, g.id, e.position, e.id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}

	scanned, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (vocabularyRow, error) {
		var r vocabularyRow
		err := row.Scan(&r.Group, &r.Word, &r.Meaning)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan vocabulary: %w", err)
	}

	return collectGroups(scanned), nil
}

// collectGroups folds ordered rows into groups. A group without entries
// arrives as a single row with NULL word and meaning.
func collectGroups(rows []vocabularyRow) []entities.Group {
	var groups []entities.Group

	for _, r := range rows {
		if len(groups) == 0 || groups[len(groups)-1].Name != r.Group {
			groups = append(groups, entities.Group{Name: r.Group})
		}
		if r.Word == nil || r.Meaning == nil {
			continue
		}

		last := &groups[len(groups)-1]
		last.Entries = append(last.Entries, entities.VocabularyEntry{Word: *r.Word, Meaning: *r.Meaning})
	}

	return groups
}

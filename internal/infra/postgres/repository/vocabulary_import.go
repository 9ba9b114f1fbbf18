package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

var entryColumns = []string{"group_id", "position", "word", "meaning"}

// VocabularyImporter replaces the stored vocabulary table.
type VocabularyImporter struct {
	transactor Transactor
}

func NewVocabularyImporter(transactor Transactor) *VocabularyImporter {
	return &VocabularyImporter{transactor: transactor}
}

// Import swaps the whole table for groups in one transaction, keeping group and entry order.
// It returns the number of imported entries.
func (i *VocabularyImporter) Import(ctx context.Context, groups []entities.Group) (int, error) {
	var imported int

	err := i.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		imported = 0

		// Entries go with their groups through ON DELETE CASCADE.
		if _, err := tx.Exec(ctx, `DELETE FROM vocabulary_groups`); err != nil {
			return fmt.Errorf("clear vocabulary: %w", err)
		}

		for pos, g := range groups {
			var groupID int64
			err := tx.QueryRow(ctx,
				`INSERT INTO vocabulary_groups (name, position) VALUES ($1, $2) RETURNING id`,
				g.Name, pos,
			).Scan(&groupID)
			if err != nil {
				return fmt.Errorf("insert group %q: %w", g.Name, err)
			}

			if len(g.Entries) == 0 {
				continue
			}

			rows := make([][]any, 0, len(g.Entries))
			for j, e := range g.Entries {
				rows = append(rows, []any{groupID, j, e.Word, e.Meaning})
			}

			n, err := tx.CopyFrom(ctx, pgx.Identifier{"vocabulary_entries"}, entryColumns, pgx.CopyFromRows(rows))
			if err != nil {
				return fmt.Errorf("copy entries of %q: %w", g.Name, err)
			}
			imported += int(n)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return imported, nil
}

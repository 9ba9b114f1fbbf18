package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

type idRow struct {
	id  int64
	err error
}

func (r idRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.id
	return nil
}

type copyCall struct {
	table   pgx.Identifier
	columns []string
	rows    [][]any
}

// recordingTx implements the parts of pgx.Tx the importer uses.
type recordingTx struct {
	pgx.Tx

	execs     []string
	inserts   [][]any
	copies    []copyCall
	nextID    int64
	insertErr error
	copyErr   error
}

func (tx *recordingTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	tx.execs = append(tx.execs, sql)
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (tx *recordingTx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if tx.insertErr != nil {
		return idRow{err: tx.insertErr}
	}
	tx.inserts = append(tx.inserts, args)
	tx.nextID++
	return idRow{id: tx.nextID}
}

func (tx *recordingTx) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if tx.copyErr != nil {
		return 0, tx.copyErr
	}

	call := copyCall{table: table, columns: columns}
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		call.rows = append(call.rows, values)
	}
	tx.copies = append(tx.copies, call)
	return int64(len(call.rows)), nil
}

type inlineTransactor struct {
	tx *recordingTx
}

func (t inlineTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, t.tx)
}

func TestVocabularyImporter_Import(t *testing.T) {
	tx := &recordingTx{}
	importer := NewVocabularyImporter(inlineTransactor{tx: tx})

	groups := []entities.Group{
		{Name: "day1", Entries: []entities.VocabularyEntry{{Word: "dog", Meaning: "개"}, {Word: "cat", Meaning: "고양이"}}},
		{Name: "empty"},
		{Name: "day2", Entries: []entities.VocabularyEntry{{Word: "book", Meaning: "책"}}},
	}

	n, err := importer.Import(context.Background(), groups)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, tx.execs, 1)
	assert.Contains(t, tx.execs[0], "DELETE FROM vocabulary_groups")

	assert.Equal(t, [][]any{{"day1", 0}, {"empty", 1}, {"day2", 2}}, tx.inserts)

	require.Len(t, tx.copies, 2)
	assert.Equal(t, pgx.Identifier{"vocabulary_entries"}, tx.copies[0].table)
	assert.Equal(t, entryColumns, tx.copies[0].columns)
	assert.Equal(t, [][]any{{int64(1), 0, "dog", "개"}, {int64(1), 1, "cat", "고양이"}}, tx.copies[0].rows)
	assert.Equal(t, [][]any{{int64(3), 0, "book", "책"}}, tx.copies[1].rows)
}

func TestVocabularyImporter_InsertError(t *testing.T) {
	boom := errors.New("unique violation")
	importer := NewVocabularyImporter(inlineTransactor{tx: &recordingTx{insertErr: boom}})

	n, err := importer.Import(context.Background(), []entities.Group{{Name: "day1"}})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `insert group "day1"`)
	assert.Zero(t, n)
}

func TestVocabularyImporter_CopyError(t *testing.T) {
	boom := errors.New("copy failed")
	importer := NewVocabularyImporter(inlineTransactor{tx: &recordingTx{copyErr: boom}})

	_, err := importer.Import(context.Background(), []entities.Group{
		{Name: "day1", Entries: []entities.VocabularyEntry{{Word: "dog", Meaning: "개"}}},
	})
	require.ErrorIs(t, err, boom)
}

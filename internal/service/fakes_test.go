package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz-bot/internal/repository"
)

type fakeVocabulary struct {
	groups map[string][]entities.VocabularyEntry
	order  []string
	err    error
}

func newFakeVocabulary(groups map[string][]entities.VocabularyEntry, order ...string) *fakeVocabulary {
	return &fakeVocabulary{groups: groups, order: order}
}

func (f *fakeVocabulary) GetGroup(_ context.Context, name string) ([]entities.VocabularyEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	entries, ok := f.groups[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, repository.ErrGroupNotFound)
	}
	return append([]entities.VocabularyEntry(nil), entries...), nil
}

func (f *fakeVocabulary) GetAll(_ context.Context) ([]entities.VocabularyEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.VocabularyEntry
	for _, name := range f.order {
		out = append(out, f.groups[name]...)
	}
	return out, nil
}

func (f *fakeVocabulary) ListGroups(_ context.Context) ([]entities.GroupSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entities.GroupSummary, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, entities.GroupSummary{Name: name, Words: len(f.groups[name])})
	}
	return out, nil
}

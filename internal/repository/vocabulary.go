package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

var (
	ErrGroupNotFound     = errors.New("vocabulary group not found")
	ErrInvalidVocabulary = errors.New("invalid vocabulary")
)

// Group names travel inside Telegram callback data, which is limited to 64 bytes.
const (
	maxGroupNameLength    = 32
	groupNameForbiddenSep = ":"
)

// VocabularySource loads the full vocabulary table.
type VocabularySource interface {
	Load(ctx context.Context) ([]entities.Group, error)
}

// VocabularyRepository provides read access to the vocabulary table.
// The table is kept in memory and can be swapped by Reload.
type VocabularyRepository struct {
	mu     sync.RWMutex
	groups []entities.Group
	index  map[string]int
}

// NewVocabularyRepository creates a repository over the given groups.
func NewVocabularyRepository(groups []entities.Group) (*VocabularyRepository, error) {
	r := &VocabularyRepository{}
	if err := r.Replace(groups); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadVocabularyRepository creates a repository filled from the source.
func LoadVocabularyRepository(ctx context.Context, src VocabularySource) (*VocabularyRepository, error) {
	groups, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return NewVocabularyRepository(groups)
}

// Reload replaces the table with a fresh copy from the source.
// On failure the previous table is kept.
func (r *VocabularyRepository) Reload(ctx context.Context, src VocabularySource) error {
	groups, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	return r.Replace(groups)
}

// Replace validates and installs a new table.
func (r *VocabularyRepository) Replace(groups []entities.Group) error {
	if err := ValidateGroups(groups); err != nil {
		return err
	}

	copied := make([]entities.Group, len(groups))
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		copied[i] = entities.Group{
			Name:    g.Name,
			Entries: append([]entities.VocabularyEntry(nil), g.Entries...),
		}
		index[g.Name] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = copied
	r.index = index

	return nil
}

// GetGroup returns a copy of the entries of the named group.
func (r *VocabularyRepository) GetGroup(_ context.Context, name string) ([]entities.VocabularyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrGroupNotFound)
	}

	return append([]entities.VocabularyEntry(nil), r.groups[i].Entries...), nil
}

// GetAll returns a copy of all entries across all groups in source order.
func (r *VocabularyRepository) GetAll(_ context.Context) ([]entities.VocabularyEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, g := range r.groups {
		total += len(g.Entries)
	}

	out := make([]entities.VocabularyEntry, 0, total)
	for _, g := range r.groups {
		out = append(out, g.Entries...)
	}

	return out, nil
}

// ListGroups returns group names with their word counts in source order.
func (r *VocabularyRepository) ListGroups(_ context.Context) ([]entities.GroupSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.GroupSummary, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, entities.GroupSummary{Name: g.Name, Words: len(g.Entries)})
	}

	return out, nil
}

// ValidateGroups checks group names and entries of a vocabulary table.
func ValidateGroups(groups []entities.Group) error {
	seen := make(map[string]struct{}, len(groups))

	for _, g := range groups {
		switch {
		case strings.TrimSpace(g.Name) == "":
			return fmt.Errorf("%w: empty group name", ErrInvalidVocabulary)
		case len(g.Name) > maxGroupNameLength:
			return fmt.Errorf("%w: group name %q is longer than %d bytes", ErrInvalidVocabulary, g.Name, maxGroupNameLength)
		case strings.Contains(g.Name, groupNameForbiddenSep):
			return fmt.Errorf("%w: group name %q contains %q", ErrInvalidVocabulary, g.Name, groupNameForbiddenSep)
		}

		if _, ok := seen[g.Name]; ok {
			return fmt.Errorf("%w: duplicate group %q", ErrInvalidVocabulary, g.Name)
		}
		seen[g.Name] = struct{}{}

		for i, e := range g.Entries {
			if strings.TrimSpace(e.Word) == "" || strings.TrimSpace(e.Meaning) == "" {
				return fmt.Errorf("%w: group %q entry %d has empty word or meaning", ErrInvalidVocabulary, g.Name, i)
			}
		}
	}

	return nil
}

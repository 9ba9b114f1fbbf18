package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// GroupSuggestionError reports an unknown group together with the closest known one.
type GroupSuggestionError struct {
	Input      string
	Suggestion string // empty when nothing is close enough
}

func (e *GroupSuggestionError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("%q: %v", e.Input, ErrGroupNotFound)
	}
	return fmt.Sprintf("%q: %v (did you mean %q?)", e.Input, ErrGroupNotFound, e.Suggestion)
}

func (e *GroupSuggestionError) Unwrap() error {
	return ErrGroupNotFound
}

// GroupResolver maps typed group names onto known groups with fuzzy matching support.
type GroupResolver struct {
	vocabulary VocabularyRepository
	threshold  float64 // Similarity threshold (0.0 - 1.0)
}

// NewGroupResolver creates a new GroupResolver.
func NewGroupResolver(vocabulary VocabularyRepository) *GroupResolver {
	return &GroupResolver{
		vocabulary: vocabulary,
		threshold:  0.5,
	}
}

// Resolve returns the group name matching the input, e.g. "Day 1" for "day1".
// When no group matches, the error is a *GroupSuggestionError wrapping ErrGroupNotFound.
func (r *GroupResolver) Resolve(ctx context.Context, input string) (string, error) {
	groups, err := r.vocabulary.ListGroups(ctx)
	if err != nil {
		return "", err
	}

	want := normalizeGroupName(input)
	for _, g := range groups {
		if g.Name == input {
			return g.Name, nil
		}
	}
	for _, g := range groups {
		if normalizeGroupName(g.Name) == want {
			return g.Name, nil
		}
	}

	best, bestScore := "", 0.0
	for _, g := range groups {
		score := similarity(want, normalizeGroupName(g.Name))
		if score > bestScore {
			best, bestScore = g.Name, score
		}
	}
	if bestScore < r.threshold {
		best = ""
	}

	return "", &GroupSuggestionError{Input: input, Suggestion: best}
}

// normalizeGroupName lowercases and drops spaces and punctuation.
func normalizeGroupName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// similarity calculates the similarity between two strings using Levenshtein distance.
func similarity(s1, s2 string) float64 {
	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshteinDistance(s1, s2))/float64(maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	rows := len(r1) + 1
	cols := len(r2) + 1

	// Two rows instead of the full matrix.
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // Insertion
				prev[j]+1,      // Deletion
				prev[j-1]+cost, // Substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}

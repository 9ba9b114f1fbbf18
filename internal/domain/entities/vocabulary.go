// Package entities contains domain entities used across the application.
package entities

// VocabularyEntry is a single word of the vocabulary table together with its meaning.
// Several entries may share the same meaning.
type VocabularyEntry struct {
	Word    string `json:"word"`    // English word shown to the user
	Meaning string `json:"meaning"` // meaning offered as the correct option
}

// Group is a named list of vocabulary entries, e.g. the words of one study day.
type Group struct {
	Name    string            `json:"name"`  // group identifier, e.g. "day1"
	Entries []VocabularyEntry `json:"words"` // entries in source order
}

// GroupSummary describes a group on the start screen.
type GroupSummary struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

// Meanings returns the meanings of the entries in order.
func Meanings(entries []VocabularyEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Meaning)
	}
	return out
}

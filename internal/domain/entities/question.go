package entities

// Question is a single multiple choice card generated for a vocabulary entry.
type Question struct {
	Word           string
	CorrectMeaning string
	Options        []string // multiple choice, correct meaning included once
	CorrectIndex   int
}

// IsCorrect reports whether the option is the correct meaning.
func (q Question) IsCorrect(option string) bool {
	return option == q.CorrectMeaning
}

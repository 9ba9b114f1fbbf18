package service

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

const (
	// OptionsPerQuestion is the number of choices shown for every word.
	OptionsPerQuestion     = 4
	distractorsPerQuestion = OptionsPerQuestion - 1
)

// QuestionGenerator builds multiple choice questions with randomized distractors.
// All shuffles are Fisher-Yates permutations drawn from one shared source.
type QuestionGenerator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *zap.Logger
}

// NewQuestionGenerator creates a generator. A nil rng means a time-seeded source.
func NewQuestionGenerator(rng *rand.Rand, logger *zap.Logger) *QuestionGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &QuestionGenerator{
		rng:    rng,
		logger: logger,
	}
}

// Generate creates one question per target entry, drawing distractors from the
// meanings of the whole pool, and returns the questions in random order.
// Neither targets nor pool are modified.
func (g *QuestionGenerator) Generate(targets, pool []entities.VocabularyEntry) []entities.Question {
	meanings := uniqueMeanings(pool)

	questions := make([]entities.Question, 0, len(targets))
	for _, target := range targets {
		distractors := g.pickDistractors(meanings, target.Meaning, distractorsPerQuestion)
		if len(distractors) < distractorsPerQuestion {
			g.logger.Warn("not enough distractors for question",
				zap.String("word", target.Word),
				zap.Int("distractors", len(distractors)),
			)
		}

		options, correctIndex := g.buildOptions(target.Meaning, distractors)

		questions = append(questions, entities.Question{
			Word:           target.Word,
			CorrectMeaning: target.Meaning,
			Options:        options,
			CorrectIndex:   correctIndex,
		})
	}

	g.shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions
}

// pickDistractors drops every meaning equal to the correct one, shuffles the rest
// and takes the first count. Fewer are returned when the pool is too small.
func (g *QuestionGenerator) pickDistractors(meanings []string, correct string, count int) []string {
	candidates := make([]string, 0, len(meanings))
	for _, m := range meanings {
		if m != correct {
			candidates = append(candidates, m)
		}
	}

	g.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	return candidates
}

// buildOptions shuffles the correct answer into the distractors.
// Returns: options slice and the index of the correct answer.
func (g *QuestionGenerator) buildOptions(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	g.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}

func (g *QuestionGenerator) shuffle(n int, swap func(i, j int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(n, swap)
}

// uniqueMeanings returns the distinct meanings of the pool in first-seen order.
func uniqueMeanings(pool []entities.VocabularyEntry) []string {
	seen := make(map[string]struct{}, len(pool))
	out := make([]string, 0, len(pool))
	for _, e := range pool {
		if _, ok := seen[e.Meaning]; ok {
			continue
		}
		seen[e.Meaning] = struct{}{}
		out = append(out, e.Meaning)
	}
	return out
}

package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

var ErrInvalidScore = errors.New("invalid score")

// Feedback messages per result tier.
const (
	msgPerfect = "Perfect! You are a genius! 🌟"
	msgGreat   = "Great Job! Keep it up! 👏"
	msgGood    = "Good try! Let's practice more! 💪"
	msgRetry   = "Don't give up! Try again! 🔥"
)

// Result maps a final score to its percentage and feedback tier.
// The percentage is rounded half up; only the top tier celebrates.
func Result(score, total int) (entities.QuizResult, error) {
	if total <= 0 || score < 0 || score > total {
		return entities.QuizResult{}, fmt.Errorf("%w: %d of %d", ErrInvalidScore, score, total)
	}

	percentage := int(math.Round(float64(score) / float64(total) * 100))

	result := entities.QuizResult{
		Score:      score,
		Total:      total,
		Percentage: percentage,
	}

	switch {
	case percentage == 100:
		result.Tier = entities.TierPerfect
		result.Message = msgPerfect
		result.Celebrate = true
	case percentage >= 80:
		result.Tier = entities.TierGreat
		result.Message = msgGreat
	case percentage >= 50:
		result.Tier = entities.TierGood
		result.Message = msgGood
	default:
		result.Tier = entities.TierRetry
		result.Message = msgRetry
	}

	return result, nil
}

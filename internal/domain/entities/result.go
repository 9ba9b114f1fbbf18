package entities

// ResultTier is the feedback band a finished quiz falls into.
type ResultTier string

const (
	TierPerfect ResultTier = "perfect" // 100%
	TierGreat   ResultTier = "great"   // 80% and above
	TierGood    ResultTier = "good"    // 50% and above
	TierRetry   ResultTier = "retry"   // below 50%
)

// QuizResult is the final score of a quiz run.
type QuizResult struct {
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Percentage int        `json:"percentage"`
	Tier       ResultTier `json:"tier"`
	Message    string     `json:"message"`
	Celebrate  bool       `json:"celebrate"`
}

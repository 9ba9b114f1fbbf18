package telegram

import (
	"fmt"
	"strings"
)

const progressBarLength = 10

// buildProgressBar creates a text progress bar for current out of total.
func buildProgressBar(current, total, length int) string {
	if total <= 0 || current < 0 {
		current, total = 0, 1
	}

	filled := current * length / total
	if filled > length {
		filled = length
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("[%s]", bar)
}

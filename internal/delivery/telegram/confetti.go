package telegram

import (
	"math/rand"
	"strings"
)

const (
	confettiPieces  = 50
	confettiPerLine = 10
)

var confettiPalette = []rune("🟥🟧🟨🟩🟦🟪🎉🎊✨⭐")

// buildConfetti returns confettiPieces randomly coloured pieces laid out in lines.
func buildConfetti() string {
	var sb strings.Builder
	for i := 0; i < confettiPieces; i++ {
		if i > 0 && i%confettiPerLine == 0 {
			sb.WriteByte('\n')
		}
		sb.WriteRune(confettiPalette[rand.Intn(len(confettiPalette))])
	}
	return sb.String()
}

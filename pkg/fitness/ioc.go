// Package fitness scores candidate plaintexts for how closely their
// letter statistics resemble English: Index of Coincidence for the
// wheel/position and ring search phases, and n-gram log-probability
// for the plugboard hill-climb.
package fitness

import "github.com/coredds/m3crack/internal/letter"

// IndexOfCoincidence computes the probability that two letters drawn
// at random from text are identical. English text scores around
// 0.067; random letters score around 0.038. text is treated
// case-insensitively and any non-letter character is ignored; a text
// with fewer than two letters scores zero.
func IndexOfCoincidence(text string) float64 {
	var counts [letter.Size]int
	n := 0
	for _, idx := range letter.Clean(text) {
		counts[idx]++
		n++
	}
	if n <= 1 {
		return 0
	}

	var sum float64
	for _, f := range counts {
		sum += float64(f * (f - 1))
	}
	return sum / float64(n*(n-1))
}

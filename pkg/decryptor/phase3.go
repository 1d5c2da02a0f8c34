package decryptor

import (
	"context"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/internal/plugboard"
	"github.com/coredds/m3crack/pkg/enigma"
	"github.com/coredds/m3crack/pkg/fitness"
)

// phase3 greedily grows a plugboard for each phase-2 survivor, hill-
// climbing on the configured fitness scorer.
func (d *Decryptor) phase3(ctx context.Context, refined []enigma.ScoredKey) []enigma.ScoredKey {
	scorer := d.scorer()
	out := make([]enigma.ScoredKey, len(refined))
	for i, sk := range refined {
		select {
		case <-ctx.Done():
			copy(out[i:], refined[i:])
			return out
		default:
		}
		out[i] = d.growPlugboard(sk.Key, scorer)
	}
	return out
}

// growPlugboard runs up to d.plugboardRounds outer iterations. Each
// round rebuilds a fresh Enigma from scratch for every candidate pair
// (rather than incrementally mutating one machine's plugboard), then
// commits only the single best-scoring addition, if any addition
// improved on the current best. It stops as soon as a round finds no
// improving pair.
func (d *Decryptor) growPlugboard(start enigma.Key, scorer fitness.Scorer) enigma.ScoredKey {
	current := scoreByFitness(start, d.cipherText, scorer)

	for round := 0; round < d.plugboardRounds; round++ {
		if len(current.Pairs) >= plugboard.MaxPairs {
			break
		}

		paired := pairedLetters(current.Pairs)
		candidate := current
		improved := false

		for a := 0; a < letter.Size; a++ {
			if paired[a] {
				continue
			}
			for b := a + 1; b < letter.Size; b++ {
				if paired[b] {
					continue
				}

				trial := current.Key
				trial.Pairs = append(append([]string(nil), current.Pairs...), pairString(a, b))

				scored := scoreByFitness(trial, d.cipherText, scorer)
				if scored.Score > candidate.Score {
					candidate = scored
					improved = true
				}
			}
		}

		if !improved {
			break
		}
		current = candidate
	}

	return current
}

// pairedLetters reports, for each of the 26 letters, whether it
// already appears in pairs.
func pairedLetters(pairs []string) [letter.Size]bool {
	var paired [letter.Size]bool
	for _, p := range pairs {
		runes := []rune(p)
		if len(runes) != 2 {
			continue
		}
		if a, ok := letter.RuneToIndex(runes[0]); ok {
			paired[a] = true
		}
		if b, ok := letter.RuneToIndex(runes[1]); ok {
			paired[b] = true
		}
	}
	return paired
}

// pairString renders a plugboard pair in the canonical two-letter
// form Plugboard.Pairs produces.
func pairString(a, b int) string {
	return string([]rune{letter.IndexToRune(a), letter.IndexToRune(b)})
}

package decryptor

import (
	"context"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/pkg/enigma"
)

// phase2 optimizes the ring setting of rotor 0 then rotor 1 for each
// phase-1 survivor, leaving rotor 2's ring at zero. The fast
// right-hand rotor completes several full revolutions per message, so
// its ring setting has almost no effect on the scored statistic at
// this stage; only the two slower rotors are worth the search cost.
func (d *Decryptor) phase2(ctx context.Context, survivors []enigma.ScoredKey) []enigma.ScoredKey {
	refined := make([]enigma.ScoredKey, len(survivors))
	for i, sk := range survivors {
		select {
		case <-ctx.Done():
			copy(refined[i:], survivors[i:])
			return refined
		default:
		}
		k := sk.Key
		best := scoreByIoC(k, d.cipherText)
		best = optimizeRing(best, 0, d.cipherText)
		best = optimizeRing(best, 1, d.cipherText)
		refined[i] = best
	}
	return refined
}

// optimizeRing searches ring settings 0..25 for rotors[idx], coupling
// each candidate ring to the position that preserves
// position-minus-ring (the offset Rotor.Forward actually uses), so
// the only thing that changes between candidates is where the rotor's
// notch falls relative to the displayed position. The best-scoring
// (ring, position) pair replaces the current one.
func optimizeRing(current enigma.ScoredKey, idx int, cipherText string) enigma.ScoredKey {
	offset := floorMod(current.Positions[idx]-current.Rings[idx], letter.Size)

	best := current
	for ring := 0; ring < letter.Size; ring++ {
		if ring == current.Rings[idx] {
			continue
		}
		trial := current.Key
		trial.Rings[idx] = ring
		trial.Positions[idx] = floorMod(offset+ring, letter.Size)

		scored := scoreByIoC(trial, cipherText)
		if scored.Score > best.Score {
			best = scored
		}
	}
	return best
}

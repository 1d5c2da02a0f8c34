// Package decryptor implements the Gillogly/Williams ciphertext-only
// hill-climbing attack on three-rotor M3 Naval Enigma: a wheel/
// position search by Index of Coincidence, ring optimization on the
// two fastest rotors, and a greedy n-gram plugboard hill-climb.
package decryptor

import (
	"context"
	"runtime"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/internal/rotor"
	"github.com/coredds/m3crack/pkg/enigma"
	"github.com/coredds/m3crack/pkg/fitness"
)

// defaultPhase1Survivors is the number of top-scoring phase-1
// candidates carried into phase 2. A hundred keeps ring
// optimization affordable while still carrying forward any wheel
// order/position combination whose IoC merely ties the true one.
const defaultPhase1Survivors = 100

// defaultPlugboardRounds is the phase-3 outer-loop cap. Each round
// commits at most one pair, so ten rounds grow at most ten of the 13
// pairs the plugboard can hold; see DESIGN.md for
// why this was raised from the smaller value used elsewhere.
const defaultPlugboardRounds = 10

// Decryptor searches for the highest-scoring Key that explains a
// piece of ciphertext. Constructed with the raw ciphertext, which it
// cleans immediately; each invocation of Decrypt runs the full
// three-phase search from scratch.
type Decryptor struct {
	cipherText      string
	phase1Survivors int
	plugboardRounds int
	plugboardScorer fitness.Scorer
	workers         int
}

// Option configures a Decryptor at construction time.
type Option func(*Decryptor)

// WithPhase1Survivors overrides how many top phase-1 candidates are
// carried into phase 2. Values from the low hundreds up to a few
// thousand trade ring-optimization cost against the risk of dropping
// the true wheel order/position off the survivor list.
func WithPhase1Survivors(n int) Option {
	return func(d *Decryptor) {
		if n > 0 {
			d.phase1Survivors = n
		}
	}
}

// WithPlugboardRounds overrides the phase-3 outer-loop cap.
func WithPlugboardRounds(n int) Option {
	return func(d *Decryptor) {
		if n >= 0 {
			d.plugboardRounds = n
		}
	}
}

// WithPlugboardScorer overrides the fitness function phase 3 uses to
// grow the plugboard. A bigram or trigram log-probability table
// converges more precisely than the zero-value fallback, Index of
// Coincidence, which still works but is a coarser statistic.
func WithPlugboardScorer(s fitness.Scorer) Option {
	return func(d *Decryptor) {
		d.plugboardScorer = s
	}
}

// WithWorkers overrides the number of concurrent phase-1 workers. The
// zero value (the default) uses runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(d *Decryptor) {
		if n > 0 {
			d.workers = n
		}
	}
}

// New builds a Decryptor for the given raw ciphertext, cleaning it to
// the core A-Z alphabet immediately.
func New(ciphertext string, opts ...Option) *Decryptor {
	d := &Decryptor{
		cipherText:      letter.ToString(letter.Clean(ciphertext)),
		phase1Survivors: defaultPhase1Survivors,
		plugboardRounds: defaultPlugboardRounds,
		workers:         runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// scorer returns the plugboard-phase fitness function, falling back
// to Index of Coincidence when the caller never configured one.
func (d *Decryptor) scorer() fitness.Scorer {
	if d.plugboardScorer != nil {
		return d.plugboardScorer
	}
	return iocScorer{}
}

// iocScorer adapts IndexOfCoincidence to the fitness.Scorer interface
// so phase 3 always has a usable default.
type iocScorer struct{}

func (iocScorer) Score(text string) float64 { return fitness.IndexOfCoincidence(text) }

// wheelCombo is one ordered triple of distinct wheels seated left,
// middle, right.
type wheelCombo [3]rotor.Wheel

// wheelCombinations enumerates all 5*4*3=60 ordered triples of
// distinct wheels drawn from I..V.
func wheelCombinations() []wheelCombo {
	combos := make([]wheelCombo, 0, 60)
	for _, a := range rotor.All {
		for _, b := range rotor.All {
			if b == a {
				continue
			}
			for _, c := range rotor.All {
				if c == a || c == b {
					continue
				}
				combos = append(combos, wheelCombo{a, b, c})
			}
		}
	}
	return combos
}

// Decrypt runs all three search phases to completion and returns the
// highest-scoring key found. It never fails: quality is communicated
// by the returned score, not by an error. ctx is checked between
// phase-1 wheel combinations and between phase-2/phase-3 outer
// iterations; on cancellation, Decrypt returns the best key observed
// so far.
func (d *Decryptor) Decrypt(ctx context.Context) enigma.ScoredKey {
	survivors := d.phase1(ctx)
	if len(survivors) == 0 {
		// Cancelled before a single phase-1 trial completed; there is
		// nothing yet worth refining.
		return enigma.ScoredKey{}
	}

	refined := d.phase2(ctx, survivors)
	best := d.phase3(ctx, refined)

	return bestOf(best)
}

// bestOf returns the highest-scoring key in keys.
func bestOf(keys []enigma.ScoredKey) enigma.ScoredKey {
	top := keys[0]
	for _, k := range keys[1:] {
		if k.Score > top.Score {
			top = k
		}
	}
	return top
}

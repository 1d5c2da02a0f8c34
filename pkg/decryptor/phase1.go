package decryptor

import (
	"context"
	"sync"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/pkg/enigma"
	"github.com/coredds/m3crack/pkg/fitness"
)

// phase1 searches all 60 wheel orders at all 17,576 rotor positions
// with rings held at zero and the plugboard empty, scoring each trial
// decryption by Index of Coincidence. Work is sharded across
// d.workers goroutines by wheel combination, each with its own
// private Enigma so no trial shares mutable state with another. The
// return value holds the d.phase1Survivors highest-scoring keys
// across the whole search.
func (d *Decryptor) phase1(ctx context.Context) []enigma.ScoredKey {
	combos := wheelCombinations()
	jobs := make(chan wheelCombo, len(combos))
	for _, c := range combos {
		jobs <- c
	}
	close(jobs)

	partials := make(chan []enigma.ScoredKey, d.workers)
	var wg sync.WaitGroup
	wg.Add(d.workers)
	for i := 0; i < d.workers; i++ {
		go func() {
			defer wg.Done()
			partials <- d.phase1Worker(ctx, jobs)
		}()
	}

	go func() {
		wg.Wait()
		close(partials)
	}()

	var all []enigma.ScoredKey
	for p := range partials {
		all = append(all, p...)
	}
	return topN(all, d.phase1Survivors)
}

// phase1Worker drains wheel combinations from jobs, searching every
// position for each, and returns its own local top survivors.
func (d *Decryptor) phase1Worker(ctx context.Context, jobs <-chan wheelCombo) []enigma.ScoredKey {
	var local []enigma.ScoredKey

	for combo := range jobs {
		select {
		case <-ctx.Done():
			return local
		default:
		}

		e, err := enigma.New(enigma.WithWheels(combo[0], combo[1], combo[2]))
		if err != nil {
			continue
		}

		for p0 := 0; p0 < letter.Size; p0++ {
			for p1 := 0; p1 < letter.Size; p1++ {
				for p2 := 0; p2 < letter.Size; p2++ {
					if err := e.SetPositions(p0, p1, p2); err != nil {
						continue
					}
					key := e.Key()
					plaintext := e.Decrypt(d.cipherText)
					score := fitness.IndexOfCoincidence(plaintext)
					local = append(local, enigma.ScoredKey{Key: key, Score: score})
				}
			}
		}

		local = topN(local, d.phase1Survivors)
	}

	return local
}

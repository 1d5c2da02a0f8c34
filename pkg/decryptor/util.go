package decryptor

import (
	"sort"

	"github.com/coredds/m3crack/pkg/enigma"
	"github.com/coredds/m3crack/pkg/fitness"
)

// topN returns the n highest-scoring keys in keys, descending, using
// the canonical Key ordering to break ties deterministically. If
// len(keys) <= n, all of keys is returned, sorted.
func topN(keys []enigma.ScoredKey, n int) []enigma.ScoredKey {
	sort.Sort(sort.Reverse(enigma.ScoredKeys(keys)))
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// floorMod returns a mod m in [0,m), matching the rotor package's own
// floored modulus so ring/position arithmetic here stays consistent
// with how Rotor.Forward interprets it.
func floorMod(a, m int) int {
	return ((a % m) + m) % m
}

// scoreByIoC builds a trial Enigma from k and scores its decryption
// of cipherText by Index of Coincidence. A malformed key (one that
// New rejects) scores zero rather than failing: it simply never wins
// a hill-climb comparison.
func scoreByIoC(k enigma.Key, cipherText string) enigma.ScoredKey {
	e, err := enigma.NewFromKey(k)
	if err != nil {
		return enigma.ScoredKey{Key: k, Score: 0}
	}
	key := e.Key()
	plaintext := e.Decrypt(cipherText)
	return enigma.ScoredKey{Key: key, Score: fitness.IndexOfCoincidence(plaintext)}
}

// scoreByFitness is scoreByIoC's counterpart for phase 3, which
// scores by the configured plugboard fitness function instead.
func scoreByFitness(k enigma.Key, cipherText string, scorer fitness.Scorer) enigma.ScoredKey {
	e, err := enigma.NewFromKey(k)
	if err != nil {
		return enigma.ScoredKey{Key: k, Score: 0}
	}
	key := e.Key()
	plaintext := e.Decrypt(cipherText)
	return enigma.ScoredKey{Key: key, Score: scorer.Score(plaintext)}
}

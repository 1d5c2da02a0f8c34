package enigma

import (
	"fmt"
	"strings"

	"github.com/coredds/m3crack/internal/reflector"
	"github.com/coredds/m3crack/internal/rotor"
)

// Key is an immutable snapshot of an Enigma configuration: wheel
// order, ring settings, initial positions and plugboard pairs. The
// reflector is always B unless explicitly set otherwise, though the
// search never varies it.
type Key struct {
	Wheels    [3]rotor.Wheel
	Rings     [3]int
	Positions [3]int
	Pairs     []string
	Reflector reflector.ID
}

// String renders the key in a form fit for logging or a report.
func (k Key) String() string {
	wheelNames := make([]string, 3)
	for i, w := range k.Wheels {
		wheelNames[i] = w.String()
	}
	return fmt.Sprintf("wheels=%s rings=%v positions=%v pairs=%v reflector=%s",
		strings.Join(wheelNames, ","), k.Rings, k.Positions, k.Pairs, k.Reflector)
}

// clone returns a deep copy, so later mutation of a search phase's
// working key never aliases a Key a caller has already captured.
func (k Key) clone() Key {
	out := k
	out.Pairs = append([]string(nil), k.Pairs...)
	return out
}

// ScoredKey pairs a Key with the fitness score of the plaintext it
// produces. Ordering is by score only.
type ScoredKey struct {
	Key
	Score float64
}

// ScoredKeys is a slice of ScoredKey implementing sort.Interface,
// ascending by score with a deterministic tie-break on the canonical
// key ordering (wheels, then rings, then positions, then sorted pair
// strings) so parallel phases produce reproducible survivor lists.
type ScoredKeys []ScoredKey

func (s ScoredKeys) Len() int      { return len(s) }
func (s ScoredKeys) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s ScoredKeys) Less(i, j int) bool {
	if s[i].Score != s[j].Score {
		return s[i].Score < s[j].Score
	}
	return lessKey(s[i].Key, s[j].Key)
}

func lessKey(a, b Key) bool {
	for i := 0; i < 3; i++ {
		if a.Wheels[i] != b.Wheels[i] {
			return a.Wheels[i] < b.Wheels[i]
		}
	}
	for i := 0; i < 3; i++ {
		if a.Rings[i] != b.Rings[i] {
			return a.Rings[i] < b.Rings[i]
		}
	}
	for i := 0; i < 3; i++ {
		if a.Positions[i] != b.Positions[i] {
			return a.Positions[i] < b.Positions[i]
		}
	}
	ap, bp := strings.Join(a.Pairs, ""), strings.Join(b.Pairs, "")
	return ap < bp
}

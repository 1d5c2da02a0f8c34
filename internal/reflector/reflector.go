// Package reflector implements the Enigma's fixed reflector wiring:
// an involution with no fixed points.
package reflector

import (
	"fmt"

	"github.com/coredds/m3crack/internal/letter"
)

// ID identifies one of the two reflectors this spec supports.
type ID int

const (
	B ID = iota
	C
)

// String returns the reflector's historical designator.
func (id ID) String() string {
	switch id {
	case B:
		return "B"
	case C:
		return "C"
	default:
		return fmt.Sprintf("Reflector(%d)", int(id))
	}
}

var mapping = map[ID]string{
	B: "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	C: "RDOBJNTKVEHMLFCWZAXGYIPSUQ",
}

// Reflector is a fixed 26-letter involution with no fixed points.
type Reflector struct {
	id    ID
	table [letter.Size]int
}

// New builds the reflector identified by id, validating that its
// wiring is an involution with no self-mapped letter.
func New(id ID) (*Reflector, error) {
	wiring, ok := mapping[id]
	if !ok {
		return nil, fmt.Errorf("reflector: invalid reflector %v", id)
	}

	runes := []rune(wiring)
	if len(runes) != letter.Size {
		return nil, fmt.Errorf("reflector: wiring for %v has length %d, want %d", id, len(runes), letter.Size)
	}

	r := &Reflector{id: id}
	used := make([]bool, letter.Size)
	for i, ch := range runes {
		out, ok := letter.RuneToIndex(ch)
		if !ok {
			return nil, fmt.Errorf("reflector: invalid character %c in wiring for %v", ch, id)
		}
		if out == i {
			return nil, fmt.Errorf("reflector: %v maps %c to itself", id, letter.IndexToRune(i))
		}
		if used[out] {
			return nil, fmt.Errorf("reflector: %v uses output %c more than once", id, letter.IndexToRune(out))
		}
		used[out] = true
		r.table[i] = out
	}

	for i := 0; i < letter.Size; i++ {
		if r.table[r.table[i]] != i {
			return nil, fmt.Errorf("reflector: %v is not an involution at %c", id, letter.IndexToRune(i))
		}
	}

	return r, nil
}

// ID returns the reflector's designator.
func (r *Reflector) ID() ID { return r.id }

// Reflect maps in through the fixed reflector wiring.
func (r *Reflector) Reflect(in int) int {
	return r.table[in]
}

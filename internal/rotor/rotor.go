// Package rotor models a single M3 Enigma rotor: its wiring
// permutation, ring offset, current and initial position, and
// turnover notch.
package rotor

import (
	"fmt"

	"github.com/coredds/m3crack/internal/letter"
)

// Wheel identifies one of the five historical M3 wheel wirings.
type Wheel int

const (
	I Wheel = iota
	II
	III
	IV
	V
)

// String returns the roman-numeral name of the wheel.
func (w Wheel) String() string {
	switch w {
	case I:
		return "I"
	case II:
		return "II"
	case III:
		return "III"
	case IV:
		return "IV"
	case V:
		return "V"
	default:
		return fmt.Sprintf("Wheel(%d)", int(w))
	}
}

// ParseWheel converts a roman-numeral wheel name to a Wheel.
func ParseWheel(s string) (Wheel, error) {
	switch s {
	case "I":
		return I, nil
	case "II":
		return II, nil
	case "III":
		return III, nil
	case "IV":
		return IV, nil
	case "V":
		return V, nil
	default:
		return 0, fmt.Errorf("rotor: invalid wheel name %q", s)
	}
}

// All lists every wheel, in catalog order, for search enumeration.
var All = []Wheel{I, II, III, IV, V}

// wiring holds the forward A-to-Z image and the single turnover
// letter for each historical wheel.
var wiring = map[Wheel]struct {
	forward  string
	turnover rune
}{
	I:   {"EKMFLGDQVZNTOWYHXUSPAIBRCJ", 'Q'},
	II:  {"AJDKSIRUXBLHWTMCQGZNPYFVOE", 'E'},
	III: {"BDFHJLCPRTXVZNYEIWGAKMUSQO", 'V'},
	IV:  {"ESOVPZJAYQUIRHXLNFTGKDCMWB", 'J'},
	V:   {"VZBRGITYUPSDNHLXAWMJQOFECK", 'Z'},
}

// Rotor is a single rotor instance seated in a slot, with its own
// ring setting and position.
type Rotor struct {
	wheel      Wheel
	forward    [letter.Size]int
	inverse    [letter.Size]int
	turnover   int
	ring       int
	position   int
	initialPos int
}

// New constructs a rotor of the given wheel, ring setting and initial
// position. ring and position must be in [0,26).
func New(wheel Wheel, ring, position int) (*Rotor, error) {
	spec, ok := wiring[wheel]
	if !ok {
		return nil, fmt.Errorf("rotor: invalid wheel %v", wheel)
	}
	if ring < 0 || ring >= letter.Size {
		return nil, fmt.Errorf("rotor: ring setting %d out of range [0,%d)", ring, letter.Size)
	}
	if position < 0 || position >= letter.Size {
		return nil, fmt.Errorf("rotor: position %d out of range [0,%d)", position, letter.Size)
	}

	r := &Rotor{wheel: wheel, ring: ring, position: position, initialPos: position}

	runes := []rune(spec.forward)
	if len(runes) != letter.Size {
		return nil, fmt.Errorf("rotor: wiring for wheel %v has length %d, want %d", wheel, len(runes), letter.Size)
	}
	for i, ch := range runes {
		out, ok := letter.RuneToIndex(ch)
		if !ok {
			return nil, fmt.Errorf("rotor: invalid character %c in wiring for wheel %v", ch, wheel)
		}
		r.forward[i] = out
		r.inverse[out] = i
	}

	turnIdx, ok := letter.RuneToIndex(spec.turnover)
	if !ok {
		return nil, fmt.Errorf("rotor: invalid turnover character %c for wheel %v", spec.turnover, wheel)
	}
	r.turnover = turnIdx

	return r, nil
}

// floorMod returns a mod m in [0,m), emulating floored modulus since
// Go's % can yield a negative residue for a negative dividend.
func floorMod(a, m int) int {
	return ((a % m) + m) % m
}

// Wheel returns the wheel identity of this rotor instance.
func (r *Rotor) Wheel() Wheel { return r.wheel }

// SetWheel re-wires the rotor to a different wheel, keeping its
// current ring and position.
func (r *Rotor) SetWheel(wheel Wheel) error {
	nr, err := New(wheel, r.ring, r.position)
	if err != nil {
		return err
	}
	*r = *nr
	return nil
}

// SetRing sets the ring setting. Does not disturb position.
func (r *Rotor) SetRing(ring int) error {
	if ring < 0 || ring >= letter.Size {
		return fmt.Errorf("rotor: ring setting %d out of range [0,%d)", ring, letter.Size)
	}
	r.ring = ring
	return nil
}

// SetPosition sets the current position and remembers it as the
// initial position restored by Reset.
func (r *Rotor) SetPosition(position int) error {
	if position < 0 || position >= letter.Size {
		return fmt.Errorf("rotor: position %d out of range [0,%d)", position, letter.Size)
	}
	r.position = position
	r.initialPos = position
	return nil
}

// GetRing returns the current ring setting.
func (r *Rotor) GetRing() int { return r.ring }

// GetPosition returns the current position.
func (r *Rotor) GetPosition() int { return r.position }

// Turn advances the rotor's position by one, wrapping mod 26.
func (r *Rotor) Turn() {
	r.position = floorMod(r.position+1, letter.Size)
}

// AtTurnover reports whether the rotor is currently at its notch.
func (r *Rotor) AtTurnover() bool {
	return r.position == r.turnover
}

// Reset restores the position to the last value set via SetPosition,
// without re-initializing the wiring.
func (r *Rotor) Reset() {
	r.position = r.initialPos
}

// Forward performs the forward substitution, including the ring and
// position offset.
func (r *Rotor) Forward(in int) int {
	offset := r.position - r.ring
	adjusted := floorMod(in+offset, letter.Size)
	out := r.forward[adjusted]
	return floorMod(out-offset, letter.Size)
}

// Inverse performs the backward substitution, including the ring and
// position offset.
func (r *Rotor) Inverse(in int) int {
	offset := r.position - r.ring
	adjusted := floorMod(in+offset, letter.Size)
	out := r.inverse[adjusted]
	return floorMod(out-offset, letter.Size)
}

// Clone returns an independent copy of the rotor, safe to step in a
// separate trial without disturbing r.
func (r *Rotor) Clone() *Rotor {
	clone := *r
	return &clone
}

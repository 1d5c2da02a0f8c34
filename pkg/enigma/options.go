package enigma

import (
	"fmt"

	"github.com/coredds/m3crack/internal/plugboard"
	"github.com/coredds/m3crack/internal/reflector"
	"github.com/coredds/m3crack/internal/rotor"
)

// Option is a functional option for Enigma configuration, following
// the same construction pattern as the rest of this repository's
// functional-options surface.
type Option func(*Enigma) error

// WithWheels sets the wheel order, left to right, preserving each
// slot's previously-set ring and position if the rotor already
// exists.
func WithWheels(left, middle, right rotor.Wheel) Option {
	return func(e *Enigma) error {
		wheels := [3]rotor.Wheel{left, middle, right}
		for i, w := range wheels {
			ring, pos := 0, 0
			if e.rotors[i] != nil {
				ring, pos = e.rotors[i].GetRing(), e.rotors[i].GetPosition()
			}
			r, err := rotor.New(w, ring, pos)
			if err != nil {
				return fmt.Errorf("failed to configure rotor %d: %v", i, err)
			}
			e.rotors[i] = r
		}
		return nil
	}
}

// WithRings sets the ring settings for all three rotors, without
// disturbing their positions.
func WithRings(r0, r1, r2 int) Option {
	return func(e *Enigma) error {
		rings := [3]int{r0, r1, r2}
		for i, r := range e.rotors {
			if r == nil {
				return fmt.Errorf("wheels must be configured before rings")
			}
			if err := r.SetRing(rings[i]); err != nil {
				return fmt.Errorf("failed to set ring %d: %v", i, err)
			}
		}
		return nil
	}
}

// WithPositions sets the initial positions for all three rotors.
func WithPositions(p0, p1, p2 int) Option {
	return func(e *Enigma) error {
		positions := [3]int{p0, p1, p2}
		for i, r := range e.rotors {
			if r == nil {
				return fmt.Errorf("wheels must be configured before positions")
			}
			if err := r.SetPosition(positions[i]); err != nil {
				return fmt.Errorf("failed to set position %d: %v", i, err)
			}
		}
		return nil
	}
}

// WithReflector selects reflector B or C.
func WithReflector(id reflector.ID) Option {
	return func(e *Enigma) error {
		refl, err := reflector.New(id)
		if err != nil {
			return fmt.Errorf("failed to configure reflector: %v", err)
		}
		e.reflector = refl
		return nil
	}
}

// WithPlugboardPairs installs the given plugboard pairs, clearing any
// existing ones first. A nil or empty slice leaves the plugboard
// empty.
func WithPlugboardPairs(pairs []string) Option {
	return func(e *Enigma) error {
		if e.plugboard == nil {
			e.plugboard = plugboard.New()
		}
		if len(pairs) == 0 {
			e.plugboard.Clear()
			return nil
		}
		if err := e.plugboard.SetPairs(pairs); err != nil {
			return fmt.Errorf("failed to set plugboard pairs: %v", err)
		}
		return nil
	}
}

// WithRandomPlugboard installs n cryptographically random plugboard
// pairs. Intended for building property-test fixtures, not for the
// search (which only ever adds pairs it has scored).
func WithRandomPlugboard(n int) Option {
	return func(e *Enigma) error {
		if e.plugboard == nil {
			e.plugboard = plugboard.New()
		}
		if err := e.plugboard.RandomPairs(n); err != nil {
			return fmt.Errorf("failed to generate random plugboard: %v", err)
		}
		return nil
	}
}

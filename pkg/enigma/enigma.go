// Package enigma implements the three-rotor M3 Naval Enigma: rotor
// stepping with the double-step anomaly, ring offset, a reflector,
// and a plugboard, composed into a reciprocal cipher.
package enigma

import (
	"fmt"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/internal/plugboard"
	"github.com/coredds/m3crack/internal/reflector"
	"github.com/coredds/m3crack/internal/rotor"
)

// Enigma is a configured, steppable M3 machine: three rotors indexed
// 0 (leftmost, slowest) through 2 (rightmost, fastest), a reflector,
// and a plugboard.
type Enigma struct {
	rotors    [3]*rotor.Rotor
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
}

// New builds an Enigma from the given options, applied over the
// canonical default: wheels I, II, III; rings and positions all
// zero; no plugboard; reflector B.
func New(opts ...Option) (*Enigma, error) {
	e := &Enigma{plugboard: plugboard.New()}

	defaults := []Option{
		WithWheels(rotor.I, rotor.II, rotor.III),
		WithReflector(reflector.B),
	}
	for _, opt := range append(defaults, opts...) {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("enigma: %w", err)
		}
	}

	if e.reflector == nil {
		return nil, fmt.Errorf("enigma: reflector must be set")
	}
	for i, r := range e.rotors {
		if r == nil {
			return nil, fmt.Errorf("enigma: rotor %d not configured", i)
		}
	}

	return e, nil
}

// NewFromKey builds an Enigma that reproduces the configuration
// captured by k.
func NewFromKey(k Key) (*Enigma, error) {
	return New(
		WithWheels(k.Wheels[0], k.Wheels[1], k.Wheels[2]),
		WithRings(k.Rings[0], k.Rings[1], k.Rings[2]),
		WithPositions(k.Positions[0], k.Positions[1], k.Positions[2]),
		WithReflector(k.Reflector),
		WithPlugboardPairs(k.Pairs),
	)
}

// Key captures the Enigma's current wheel order, ring settings,
// current rotor positions and plugboard pairs as an immutable
// snapshot. Taken after enciphering, the positions are the advanced
// ones, not those Reset restores.
func (e *Enigma) Key() Key {
	k := Key{Reflector: e.reflector.ID(), Pairs: e.plugboard.Pairs()}
	for i, r := range e.rotors {
		k.Wheels[i] = r.Wheel()
		k.Rings[i] = r.GetRing()
		k.Positions[i] = r.GetPosition()
	}
	return k.clone()
}

// Encrypt enciphers plaintext under the machine's current state,
// upper-casing and discarding any non-letter characters first.
func (e *Enigma) Encrypt(text string) string {
	return e.processText(text)
}

// Decrypt deciphers ciphertext. Enigma is reciprocal, so this is
// identical to Encrypt given the same configuration and positions.
func (e *Enigma) Decrypt(text string) string {
	return e.processText(text)
}

func (e *Enigma) processText(text string) string {
	indices := letter.Clean(text)
	out := make([]int, len(indices))
	for i, in := range indices {
		out[i] = e.processLetter(in)
	}
	return letter.ToString(out)
}

// processLetter steps the rotors, then passes one letter through the
// plugboard, the rotor stack forward, the reflector, the rotor stack
// backward, and the plugboard again.
func (e *Enigma) processLetter(in int) int {
	e.stepRotors()

	cur := e.plugboard.Process(in)
	cur = e.rotors[2].Forward(cur)
	cur = e.rotors[1].Forward(cur)
	cur = e.rotors[0].Forward(cur)
	cur = e.reflector.Reflect(cur)
	cur = e.rotors[0].Inverse(cur)
	cur = e.rotors[1].Inverse(cur)
	cur = e.rotors[2].Inverse(cur)
	cur = e.plugboard.Process(cur)
	return cur
}

// stepRotors implements the double-step anomaly. Both notch checks
// are evaluated against positions as they stand before any rotor in
// this call advances; the middle rotor never reads its own
// just-advanced state when deciding whether it steps again.
func (e *Enigma) stepRotors() {
	middleAtNotch := e.rotors[1].AtTurnover()
	rightAtNotch := e.rotors[2].AtTurnover()

	if middleAtNotch {
		e.rotors[0].Turn()
		e.rotors[1].Turn()
	} else if rightAtNotch {
		e.rotors[1].Turn()
	}
	e.rotors[2].Turn()
}

// Reset restores every rotor's position to the one most recently set
// via SetPositions (or the construction-time default).
func (e *Enigma) Reset() {
	for _, r := range e.rotors {
		r.Reset()
	}
}

// Positions returns the current rotor positions.
func (e *Enigma) Positions() [3]int {
	var p [3]int
	for i, r := range e.rotors {
		p[i] = r.GetPosition()
	}
	return p
}

// SetPositions sets every rotor's current position and remembers it
// as the position Reset restores.
func (e *Enigma) SetPositions(p0, p1, p2 int) error {
	positions := [3]int{p0, p1, p2}
	for i, p := range positions {
		if err := e.rotors[i].SetPosition(p); err != nil {
			return fmt.Errorf("enigma: rotor %d: %w", i, err)
		}
	}
	return nil
}

// SetRings sets every rotor's ring setting without disturbing
// position.
func (e *Enigma) SetRings(r0, r1, r2 int) error {
	rings := [3]int{r0, r1, r2}
	for i, r := range rings {
		if err := e.rotors[i].SetRing(r); err != nil {
			return fmt.Errorf("enigma: rotor %d: %w", i, err)
		}
	}
	return nil
}

// SetPlugboard clears the plugboard and installs the given pairs.
func (e *Enigma) SetPlugboard(pairs []string) error {
	return e.plugboard.SetPairs(pairs)
}

// AddPlugboardPair installs one additional plugboard pair without
// disturbing the existing ones.
func (e *Enigma) AddPlugboardPair(pair string) error {
	runes := []rune(pair)
	if len(runes) != 2 {
		return fmt.Errorf("enigma: malformed plugboard pair %q", pair)
	}
	a, ok1 := letter.RuneToIndex(runes[0])
	b, ok2 := letter.RuneToIndex(runes[1])
	if !ok1 || !ok2 {
		return fmt.Errorf("enigma: malformed plugboard pair %q", pair)
	}
	return e.plugboard.AddPair(a, b)
}

// Clone returns an independent copy, so a search worker can run
// trials without contending with any other worker's machine state.
func (e *Enigma) Clone() *Enigma {
	clone := &Enigma{
		reflector: e.reflector,
		plugboard: e.plugboard.Clone(),
	}
	for i, r := range e.rotors {
		clone.rotors[i] = r.Clone()
	}
	return clone
}

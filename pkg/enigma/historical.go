package enigma

import "github.com/coredds/m3crack/internal/rotor"

// NewM3 builds the historically canonical M3 Naval Enigma: wheels I,
// II, III in that order, rings and positions all zero, no plugboard,
// reflector B. This is the factory default New() already produces;
// it exists under its historical name for callers documenting a
// specific machine rather than a bare default.
func NewM3() (*Enigma, error) {
	return New(WithWheels(rotor.I, rotor.II, rotor.III))
}

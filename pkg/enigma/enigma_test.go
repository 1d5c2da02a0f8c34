package enigma

import (
	"testing"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/internal/reflector"
	"github.com/coredds/m3crack/internal/rotor"
)

func TestNewDefaults(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	k := e.Key()
	want := [3]rotor.Wheel{rotor.I, rotor.II, rotor.III}
	if k.Wheels != want {
		t.Errorf("default wheels = %v, want %v", k.Wheels, want)
	}
	if k.Rings != [3]int{0, 0, 0} || k.Positions != [3]int{0, 0, 0} {
		t.Errorf("default rings/positions not zero: %+v", k)
	}
	if k.Reflector != reflector.B {
		t.Errorf("default reflector = %v, want B", k.Reflector)
	}
	if len(k.Pairs) != 0 {
		t.Errorf("default plugboard not empty: %v", k.Pairs)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(WithRings(99, 0, 0))
	if err == nil {
		t.Errorf("expected error for out-of-range ring")
	}
}

// Concrete known-ciphertext scenarios.
func TestKnownCiphertextVectors(t *testing.T) {
	tests := []struct {
		name      string
		wheels    [3]rotor.Wheel
		rings     [3]int
		positions [3]int
		plaintext string
		want      string
	}{
		{
			name:      "all-A baseline",
			wheels:    [3]rotor.Wheel{rotor.I, rotor.II, rotor.III},
			rings:     [3]int{0, 0, 0},
			positions: [3]int{0, 0, 0},
			plaintext: "AAAA AAAA AAAA AAA",
			want:      "BDZGOWCXLTKSBTM",
		},
		{
			name:      "fox in socks",
			wheels:    [3]rotor.Wheel{rotor.I, rotor.II, rotor.III},
			rings:     [3]int{0, 0, 0},
			positions: [3]int{0, 0, 0},
			plaintext: "Fox, Socks, Box, Knox. Knox in box. Fox in socks. Knox on fox in socks in box. Socks on Knox and Knox in box. Fox in socks on box on Knox.",
			want:      "EIRNAMEFFSHCTCJIMRKCBLHFAVEVDIGPBHMPVGDANFOAKPIERXYMOIWGAJRGFQQXFKZYMQXEOFUYKELQMDWRNUXBNKDPLNCUMKD",
		},
		{
			name:      "ring and position offsets",
			wheels:    [3]rotor.Wheel{rotor.III, rotor.V, rotor.IV},
			rings:     [3]int{25, 1, 9},
			positions: [3]int{11, 14, 11},
			plaintext: stringsRepeat("A", 53),
			want:      "BTOZNTVXJRPEFOVFVGYZIGDQUJRONHFLQLILMCZZYLVHRPOEKQIGS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(
				WithWheels(tt.wheels[0], tt.wheels[1], tt.wheels[2]),
				WithRings(tt.rings[0], tt.rings[1], tt.rings[2]),
				WithPositions(tt.positions[0], tt.positions[1], tt.positions[2]),
			)
			if err != nil {
				t.Fatal(err)
			}
			got := e.Encrypt(tt.plaintext)
			if got != tt.want {
				t.Errorf("Encrypt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func stringsRepeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// TestReciprocity checks that decrypting a ciphertext with the same
// key and starting positions recovers the original plaintext.
func TestReciprocity(t *testing.T) {
	e, err := New(
		WithWheels(rotor.IV, rotor.I, rotor.V),
		WithRings(3, 17, 9),
		WithPositions(5, 11, 20),
		WithPlugboardPairs([]string{"AB", "CD", "EF"}),
	)
	if err != nil {
		t.Fatal(err)
	}

	plaintext := "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG"
	cipher := e.Encrypt(plaintext)

	e.Reset()
	decrypted := e.Decrypt(cipher)

	if decrypted != plaintext {
		t.Errorf("Decrypt(Encrypt(p)) = %q, want %q", decrypted, plaintext)
	}
}

// TestRoundTripRepeatable checks that two encryptions of the same
// plaintext under the same key, with positions reset between runs,
// are byte-identical.
func TestRoundTripRepeatable(t *testing.T) {
	e, err := New(WithPositions(4, 4, 4))
	if err != nil {
		t.Fatal(err)
	}

	first := e.Encrypt("HELLOWORLD")
	e.Reset()
	second := e.Encrypt("HELLOWORLD")

	if first != second {
		t.Errorf("repeated encryption diverged: %q vs %q", first, second)
	}
}

func TestStepRotorsDoubleStepAnomaly(t *testing.T) {
	// Wheel II notch is E (index 4); seat it in the middle slot at
	// its notch so the very next letter exercises the double-step.
	e, err := New(
		WithWheels(rotor.I, rotor.II, rotor.III),
		WithPositions(0, 4, 21), // middle at notch E, right at notch V
	)
	if err != nil {
		t.Fatal(err)
	}

	e.stepRotors()
	p := e.Positions()
	// Right always advances.
	if p[2] != 22 {
		t.Errorf("right rotor position = %d, want 22", p[2])
	}
	// Middle was at its own notch, so both middle and left advance.
	if p[1] != 5 {
		t.Errorf("middle rotor position = %d, want 5 (double-step)", p[1])
	}
	if p[0] != 1 {
		t.Errorf("left rotor position = %d, want 1 (double-step)", p[0])
	}
}

func TestStepRotorsMiddleAdvancesOnRightNotch(t *testing.T) {
	e, err := New(
		WithWheels(rotor.I, rotor.II, rotor.III),
		WithPositions(0, 2, 21), // right at notch V, middle not at notch
	)
	if err != nil {
		t.Fatal(err)
	}
	e.stepRotors()
	p := e.Positions()
	if p[2] != 22 {
		t.Errorf("right rotor position = %d, want 22", p[2])
	}
	if p[1] != 3 {
		t.Errorf("middle rotor position = %d, want 3 (single step)", p[1])
	}
	if p[0] != 0 {
		t.Errorf("left rotor position = %d, want 0 (no step)", p[0])
	}
}

// TestSteppingFrequency checks the expected number of stepping
// events over a long run of keystrokes.
func TestSteppingFrequency(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}

	const n = 200
	rightSteps, middleSteps, leftSteps := 0, 0, 0
	for i := 0; i < n; i++ {
		before := e.Positions()
		rightWasAtNotch := posAtTurnover(t, e, 2, before[2])
		middleWasAtNotch := posAtTurnover(t, e, 1, before[1])

		e.stepRotors()

		after := e.Positions()
		if after[2] != (before[2]+1)%letter.Size {
			t.Fatalf("right rotor did not advance by exactly one at step %d", i)
		}
		rightSteps++

		middleStepped := after[1] != before[1]
		if middleStepped != (rightWasAtNotch || middleWasAtNotch) {
			t.Errorf("step %d: middle stepped=%v, want %v", i, middleStepped, rightWasAtNotch || middleWasAtNotch)
		}
		if middleStepped {
			middleSteps++
		}

		leftStepped := after[0] != before[0]
		if leftStepped != middleWasAtNotch {
			t.Errorf("step %d: left stepped=%v, want %v (double-step only)", i, leftStepped, middleWasAtNotch)
		}
		if leftStepped {
			leftSteps++
		}
	}

	if rightSteps != n {
		t.Errorf("right rotor stepped %d times, want %d", rightSteps, n)
	}
}

func posAtTurnover(t *testing.T, e *Enigma, idx, pos int) bool {
	t.Helper()
	r, err := rotor.New(e.rotors[idx].Wheel(), 0, pos)
	if err != nil {
		t.Fatal(err)
	}
	return r.AtTurnover()
}

func TestSetPositionsResetsInitial(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetPositions(5, 6, 7); err != nil {
		t.Fatal(err)
	}
	e.Encrypt("AAAA")
	e.Reset()
	if e.Positions() != [3]int{5, 6, 7} {
		t.Errorf("Reset() after SetPositions did not restore (5,6,7): got %v", e.Positions())
	}
}

func TestSetRingsDoesNotDisturbPositions(t *testing.T) {
	e, err := New(WithPositions(3, 4, 5))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetRings(1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if e.Positions() != [3]int{3, 4, 5} {
		t.Errorf("SetRings disturbed positions: %v", e.Positions())
	}
}

func TestAddPlugboardPairRejectsConflict(t *testing.T) {
	e, err := New(WithPlugboardPairs([]string{"AB"}))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.AddPlugboardPair("AC"); err == nil {
		t.Errorf("expected error adding a pair for an already-plugged letter")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	clone := e.Clone()
	clone.Encrypt("AAAA")
	if e.Positions() == clone.Positions() {
		t.Errorf("Clone() did not produce independent rotor state")
	}
}

func TestNonLetterCharactersAreDiscarded(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatal(err)
	}
	withNoise := e.Encrypt("He,l-lo! WORLD 123")
	e.Reset()
	clean := e.Encrypt("HELLOWORLD")
	if withNoise != clean {
		t.Errorf("noisy input produced %q, want %q (digits/punct should be discarded)", withNoise, clean)
	}
}

func TestNewM3MatchesDefaultConstruction(t *testing.T) {
	historical, err := NewM3()
	if err != nil {
		t.Fatalf("NewM3() error: %v", err)
	}
	defaulted, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	hk, dk := historical.Key(), defaulted.Key()
	if hk.String() != dk.String() {
		t.Errorf("NewM3().Key() = %v, want %v", hk, dk)
	}
}

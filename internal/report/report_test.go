package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/coredds/m3crack/internal/rotor"
	"github.com/coredds/m3crack/pkg/enigma"
)

func sampleResult(t *testing.T) enigma.ScoredKey {
	t.Helper()
	e, err := enigma.New(
		enigma.WithWheels(rotor.V, rotor.IV, rotor.I),
		enigma.WithRings(1, 15, 23),
		enigma.WithPositions(22, 22, 1),
		enigma.WithPlugboardPairs([]string{"SX", "BP"}),
	)
	if err != nil {
		t.Fatalf("enigma.New() error: %v", err)
	}
	return enigma.ScoredKey{Key: e.Key(), Score: 0.067}
}

func TestBuildPopulatesAllFields(t *testing.T) {
	result := sampleResult(t)
	r := Build(result, "VQSFHVLXCAWCYZZ", 100, 10)

	wantWheels := [3]string{"V", "IV", "I"}
	if r.Wheels != wantWheels {
		t.Errorf("Wheels = %v, want %v", r.Wheels, wantWheels)
	}
	if r.Rings != [3]int{1, 15, 23} {
		t.Errorf("Rings = %v, want [1 15 23]", r.Rings)
	}
	if r.Positions != [3]int{22, 22, 1} {
		t.Errorf("Positions = %v, want [22 22 1]", r.Positions)
	}
	if len(r.Pairs) != 2 {
		t.Errorf("len(Pairs) = %d, want 2", len(r.Pairs))
	}
	if r.Reflector != "B" {
		t.Errorf("Reflector = %q, want B", r.Reflector)
	}
	if r.Score != 0.067 {
		t.Errorf("Score = %v, want 0.067", r.Score)
	}
	if r.CiphertextChars != len("VQSFHVLXCAWCYZZ") {
		t.Errorf("CiphertextChars = %d, want %d", r.CiphertextChars, len("VQSFHVLXCAWCYZZ"))
	}
	if r.Phase1Candidate != 60*26*26*26 {
		t.Errorf("Phase1Candidate = %d, want %d", r.Phase1Candidate, 60*26*26*26)
	}
	if r.Phase1Survivors != 100 {
		t.Errorf("Phase1Survivors = %d, want 100", r.Phase1Survivors)
	}
	if r.PlugboardRounds != 10 {
		t.Errorf("PlugboardRounds = %d, want 10", r.PlugboardRounds)
	}
	if r.Plaintext == "" {
		t.Error("Plaintext is empty, want a decrypted string")
	}
}

func TestBuildNeverReturnsNilPairs(t *testing.T) {
	e, err := enigma.New()
	if err != nil {
		t.Fatalf("enigma.New() error: %v", err)
	}
	r := Build(enigma.ScoredKey{Key: e.Key(), Score: 1.0}, "AAAA", 1, 0)
	if r.Pairs == nil {
		t.Error("Pairs is nil, want an empty slice so JSON encodes [] not null")
	}
}

func TestMarshalAndValidateProducesSchemaValidJSON(t *testing.T) {
	r := Build(sampleResult(t), "VQSFHVLXCAWCYZZ", 100, 10)

	data, err := r.MarshalAndValidate()
	if err != nil {
		t.Fatalf("MarshalAndValidate() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if _, ok := decoded["wheels"]; !ok {
		t.Error("encoded report missing \"wheels\" field")
	}
}

func TestValidateRejectsMissingField(t *testing.T) {
	bad := []byte(`{"wheels": ["I", "II", "III"]}`)
	if err := Validate(bad); err == nil {
		t.Error("Validate() on an incomplete document = nil error, want a validation failure")
	}
}

func TestValidateRejectsOutOfRangeRing(t *testing.T) {
	bad := strings.Replace(mustValidTemplate(t), `"rings":[1,15,23]`, `"rings":[1,15,99]`, 1)
	if err := Validate([]byte(bad)); err == nil {
		t.Error("Validate() with ring=99 = nil error, want a validation failure")
	}
}

// mustValidTemplate returns a schema-valid document as a string, used
// as a base for the mutation tests above.
func mustValidTemplate(t *testing.T) string {
	t.Helper()
	r := Build(sampleResult(t), "VQSFHVLXCAWCYZZ", 100, 10)
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	return string(data)
}

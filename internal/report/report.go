// Package report builds the JSON document cmd/m3crack emits for
// `crack --json`: the recovered key, its score, and enough search
// diagnostics to tell a reader how much of the space was actually
// searched. MarshalAndValidate checks every document it renders
// against an embedded JSON Schema before returning it; Build itself
// does not validate.
package report

import (
	"encoding/json"
	"fmt"

	"github.com/coredds/m3crack/internal/letter"
	"github.com/coredds/m3crack/pkg/enigma"
)

// Report is the search-report document. Field names match the
// embedded schema in schema.go exactly.
type Report struct {
	Wheels          [3]string `json:"wheels"`
	Rings           [3]int    `json:"rings"`
	Positions       [3]int    `json:"positions"`
	Pairs           []string  `json:"pairs"`
	Reflector       string    `json:"reflector"`
	Score           float64   `json:"score"`
	Plaintext       string    `json:"plaintext"`
	CiphertextChars int       `json:"ciphertext_chars"`
	Phase1Candidate int       `json:"phase1_candidate_count"`
	Phase1Survivors int       `json:"phase1_survivor_count"`
	PlugboardRounds int       `json:"plugboard_rounds"`
}

// phase1CandidateCount is the exhaustive wheel-order x position
// search space: 60 ordered wheel triples, each stepped through every
// one of 17,576 starting positions.
const phase1CandidateCount = 60 * letter.Size * letter.Size * letter.Size

// Build assembles a Report from a decrypted result and the search
// parameters that produced it.
func Build(result enigma.ScoredKey, cipherText string, phase1Survivors, plugboardRounds int) Report {
	wheels := [3]string{}
	for i, w := range result.Wheels {
		wheels[i] = w.String()
	}
	pairs := append([]string(nil), result.Pairs...)
	if pairs == nil {
		pairs = []string{}
	}

	plaintext := ""
	if e, err := enigma.NewFromKey(result.Key); err == nil {
		plaintext = e.Decrypt(cipherText)
	}

	return Report{
		Wheels:          wheels,
		Rings:           result.Rings,
		Positions:       result.Positions,
		Pairs:           pairs,
		Reflector:       result.Reflector.String(),
		Score:           result.Score,
		Plaintext:       plaintext,
		CiphertextChars: len(cipherText),
		Phase1Candidate: phase1CandidateCount,
		Phase1Survivors: phase1Survivors,
		PlugboardRounds: plugboardRounds,
	}
}

// MarshalAndValidate renders r as indented JSON and validates the
// result against the embedded schema before returning it, so a
// malformed report is caught here rather than handed to a consumer.
func (r Report) MarshalAndValidate() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: marshal: %w", err)
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return data, nil
}

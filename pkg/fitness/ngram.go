package fitness

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coredds/m3crack/internal/letter"
)

// MissPenalty is the score attributed to an n-gram absent from the
// table. It is deliberately a large negative number, not zero and
// not -Inf, so a single unseen gram penalizes a candidate without
// being able to dominate the whole sum.
const MissPenalty = -12.0

// Scorer is anything that rates how English-like a cleaned A-Z
// string is, higher meaning more English-like.
type Scorer interface {
	Score(text string) float64
}

// NGramTable is a table of precomputed log-probabilities for n-letter
// grams, loaded once at construction and safe for concurrent read-only
// use thereafter.
type NGramTable struct {
	n      int
	scores map[string]float64
}

// LoadNGramTable reads a GRAM,SCORE table from path. n must be 2, 3,
// or 4. A missing or malformed file is a fatal startup error — the
// caller should treat a non-nil error as unrecoverable.
func LoadNGramTable(path string, n int) (*NGramTable, error) {
	if n != 2 && n != 3 && n != 4 {
		return nil, fmt.Errorf("fitness: invalid n-gram size %d, want 2, 3 or 4", n)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fitness: failed to open n-gram table %s: %w", path, err)
	}
	defer f.Close()

	table := &NGramTable{n: n, scores: make(map[string]float64)}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("fitness: %s:%d: malformed line %q", path, lineNo, line)
		}

		gram := strings.ToUpper(strings.TrimSpace(parts[0]))
		if len(gram) != n {
			return nil, fmt.Errorf("fitness: %s:%d: gram %q has length %d, want %d", path, lineNo, gram, len(gram), n)
		}
		for _, r := range gram {
			if _, ok := letter.RuneToIndex(r); !ok {
				return nil, fmt.Errorf("fitness: %s:%d: gram %q has non-letter character", path, lineNo, gram)
			}
		}

		score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("fitness: %s:%d: malformed score %q: %w", path, lineNo, parts[1], err)
		}

		table.scores[gram] = score // last occurrence wins
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fitness: failed to read n-gram table %s: %w", path, err)
	}

	return table, nil
}

// N returns the gram size this table was built for.
func (t *NGramTable) N() int { return t.n }

// Score sums, in a fixed left-to-right order for reproducibility,
// table[gram] for every overlapping n-gram in text, substituting
// MissPenalty for any gram the table has never seen.
func (t *NGramTable) Score(text string) float64 {
	indices := letter.Clean(text)
	if len(indices) < t.n {
		return 0
	}

	var sum float64
	buf := make([]byte, t.n)
	for i := 0; i+t.n <= len(indices); i++ {
		for j := 0; j < t.n; j++ {
			buf[j] = byte('A' + indices[i+j])
		}
		gram := string(buf)
		if score, ok := t.scores[gram]; ok {
			sum += score
		} else {
			sum += MissPenalty
		}
	}
	return sum
}

// CompositeScorer sums several Scorers, each multiplied by a weight.
// Phase 3's greedy plugboard hill-climb recommends a bigram table but
// accepts a trigram/quadgram blend; CompositeScorer is how a caller
// builds that blend without the Decryptor hard-coding gram sizes.
type CompositeScorer struct {
	terms []weightedScorer
}

type weightedScorer struct {
	scorer Scorer
	weight float64
}

// NewCompositeScorer builds a scorer that sums weight*scorer.Score(text)
// across every given term.
func NewCompositeScorer() *CompositeScorer {
	return &CompositeScorer{}
}

// Add appends a weighted term to the composite.
func (c *CompositeScorer) Add(scorer Scorer, weight float64) *CompositeScorer {
	c.terms = append(c.terms, weightedScorer{scorer, weight})
	return c
}

// Score sums the weighted sub-scores in the order terms were added.
func (c *CompositeScorer) Score(text string) float64 {
	var sum float64
	for _, t := range c.terms {
		sum += t.weight * t.scorer.Score(text)
	}
	return sum
}

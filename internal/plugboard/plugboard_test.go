package plugboard

import "testing"

func TestAddPairIsReciprocal(t *testing.T) {
	pb := New()
	if err := pb.AddPair(0, 25); err != nil { // A <-> Z
		t.Fatal(err)
	}
	if pb.Process(0) != 25 || pb.Process(25) != 0 {
		t.Errorf("AddPair did not wire a reciprocal swap")
	}
}

func TestAddPairRejectsSelfAndConflicts(t *testing.T) {
	pb := New()
	if err := pb.AddPair(3, 3); err == nil {
		t.Errorf("expected error pairing a letter with itself")
	}
	if err := pb.AddPair(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := pb.AddPair(1, 5); err == nil {
		t.Errorf("expected error: letter already paired")
	}
	if err := pb.AddPair(5, 2); err == nil {
		t.Errorf("expected error: letter already paired")
	}
}

func TestAddPairCapsAtMaxPairs(t *testing.T) {
	pb := New()
	for i := 0; i < MaxPairs; i++ {
		if err := pb.AddPair(i, i+MaxPairs); err != nil {
			t.Fatalf("pair %d: unexpected error: %v", i, err)
		}
	}
	if err := pb.AddPair(25, 24); err == nil {
		t.Errorf("expected error exceeding MaxPairs")
	}
}

// TestInvolution checks that pb[pb[i]] == i for all i, including
// unpaired letters (identity is its own involution).
func TestInvolution(t *testing.T) {
	pb := New()
	if err := pb.SetPairs([]string{"AB", "CD", "XY"}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 26; i++ {
		out := pb.Process(i)
		if pb.Process(out) != i {
			t.Errorf("Process(Process(%d)) = %d, want %d", i, pb.Process(out), i)
		}
	}
}

func TestClearRemovesAllPairs(t *testing.T) {
	pb := New()
	pb.SetPairs([]string{"AB", "CD"})
	pb.Clear()
	if pb.PairCount() != 0 {
		t.Errorf("PairCount after Clear = %d, want 0", pb.PairCount())
	}
	for i := 0; i < 26; i++ {
		if pb.Process(i) != i {
			t.Errorf("Process(%d) after Clear = %d, want identity", i, pb.Process(i))
		}
	}
}

func TestPairsRoundTrip(t *testing.T) {
	pb := New()
	want := []string{"AB", "CD", "XY"}
	if err := pb.SetPairs(want); err != nil {
		t.Fatal(err)
	}
	got := pb.Pairs()
	if len(got) != len(want) {
		t.Fatalf("Pairs() = %v, want %d entries", got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pairs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetPairsRejectsMalformed(t *testing.T) {
	pb := New()
	if err := pb.SetPairs([]string{"A"}); err == nil {
		t.Errorf("expected error for malformed pair")
	}
	if err := pb.SetPairs([]string{"A1"}); err == nil {
		t.Errorf("expected error for non-letter pair")
	}
}

func TestRandomPairsProducesDisjointReciprocalPairs(t *testing.T) {
	pb := New()
	if err := pb.RandomPairs(10); err != nil {
		t.Fatal(err)
	}
	if pb.PairCount() != 10 {
		t.Errorf("PairCount = %d, want 10", pb.PairCount())
	}
	for i := 0; i < 26; i++ {
		if pb.Process(pb.Process(i)) != i {
			t.Errorf("random pairing not involutive at %d", i)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	pb := New()
	pb.SetPairs([]string{"AB"})
	clone := pb.Clone()
	clone.AddPair(2, 3)
	if pb.PairCount() == clone.PairCount() {
		t.Errorf("Clone() did not produce an independent plugboard")
	}
}

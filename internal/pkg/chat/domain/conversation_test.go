package chat

import "testing"

func TestPairKeyCanonicalOrder(t *testing.T) {
	lo, hi := PairKey("bob", "alice")
	if lo != "alice" || hi != "bob" {
		t.Fatalf("got (%q, %q), want (alice, bob)", lo, hi)
	}

	lo2, hi2 := PairKey("alice", "bob")
	if lo2 != lo || hi2 != hi {
		t.Fatalf("pair key is not symmetric: (%q, %q) vs (%q, %q)", lo, hi, lo2, hi2)
	}
}

func TestPairKeySelf(t *testing.T) {
	lo, hi := PairKey("alice", "alice")
	if lo != "alice" || hi != "alice" {
		t.Fatalf("got (%q, %q), want (alice, alice)", lo, hi)
	}
}

package model

import "testing"

func TestKeySeqStringAndParse(t *testing.T) {
	seq := NewKeySeq(0, 5, 0)
	if seq.String() != "0,5,0" {
		t.Fatalf("unexpected string: %q", seq.String())
	}
	parsed, err := ParseKeySeq(" 0, 5 ,0 ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != seq {
		t.Fatalf("expected %v, got %v", seq, parsed)
	}
	if parsed.Len() != 3 || parsed.At(1) != 5 {
		t.Fatalf("unexpected contents: %v", parsed.Keys())
	}
}

func TestKeySeqEqualityByValue(t *testing.T) {
	a := NewKeySeq(1, 2)
	b := NewKeySeq(1, 2)
	if a != b {
		t.Fatalf("expected equal sequences")
	}
	if NewKeySeq(1) == NewKeySeq(1, 0) {
		t.Fatalf("sequences of different length must differ")
	}
	set := map[KeySeq]struct{}{a: {}}
	if _, ok := set[b]; !ok {
		t.Fatalf("expected map lookup by value")
	}
}

func TestParseKeySeqErrors(t *testing.T) {
	for _, input := range []string{"", "1,x", "1,2,3,4", "1,,2"} {
		if _, err := ParseKeySeq(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestNewKeySeqPanicsForLongSequence(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for 4 keys")
		}
	}()
	NewKeySeq(1, 2, 3, 4)
}

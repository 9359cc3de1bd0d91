// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxKeySeqLen is the longest supported key sequence (trigram).
const MaxKeySeqLen = 3

// KeySeq is an immutable sequence of 1 to 3 key indices. The zero value is the
// empty sequence. KeySeq values are comparable and may be used as map keys.
type KeySeq struct {
	n    int
	keys [MaxKeySeqLen]int
}

// NewKeySeq builds a key sequence. It panics when given more than
// MaxKeySeqLen keys.
func NewKeySeq(keys ...int) KeySeq {
	if len(keys) > MaxKeySeqLen {
		panic(fmt.Sprintf("model: key sequence of length %d; only up to trigrams are supported", len(keys)))
	}
	var s KeySeq
	s.n = copy(s.keys[:], keys)
	return s
}

// ParseKeySeq parses the comma separated form, e.g. "0,5,0".
func ParseKeySeq(text string) (KeySeq, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return KeySeq{}, fmt.Errorf("empty key sequence")
	}
	parts := strings.Split(text, ",")
	if len(parts) > MaxKeySeqLen {
		return KeySeq{}, fmt.Errorf("key sequence %q has %d keys (max %d)", text, len(parts), MaxKeySeqLen)
	}
	keys := make([]int, 0, len(parts))
	for _, part := range parts {
		k, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return KeySeq{}, fmt.Errorf("invalid key index %q in %q", part, text)
		}
		keys = append(keys, k)
	}
	return NewKeySeq(keys...), nil
}

// Len returns the number of keys.
func (s KeySeq) Len() int {
	return s.n
}

// At returns the i-th key index.
func (s KeySeq) At(i int) int {
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("model: index %d out of range for key sequence of length %d", i, s.n))
	}
	return s.keys[i]
}

// Keys returns a copy of the key indices.
func (s KeySeq) Keys() []int {
	out := make([]int, s.n)
	copy(out, s.keys[:s.n])
	return out
}

// IsEmpty reports whether the sequence has no keys.
func (s KeySeq) IsEmpty() bool {
	return s.n == 0
}

// String returns the persisted form, e.g. "0,5,0".
func (s KeySeq) String() string {
	var b strings.Builder
	for i := 0; i < s.n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s.keys[i]))
	}
	return b.String()
}

// Seqs is a shorthand for building a list of sequences from key slices.
func Seqs(keys ...[]int) []KeySeq {
	out := make([]KeySeq, 0, len(keys))
	for _, k := range keys {
		out = append(out, NewKeySeq(k...))
	}
	return out
}

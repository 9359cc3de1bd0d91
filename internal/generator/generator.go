// Package generator enumerates the key sequences typable on a layout.
package generator

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

// DefaultLengths are the sequence lengths ranked by default.
var DefaultLengths = []int{1, 2, 3}

// UnionOfKeys returns the sorted union of both hands' key indices.
func UnionOfKeys(left, right *layout.Hand) []int {
	seen := make(map[int]struct{})
	for _, h := range []*layout.Hand{left, right} {
		if h == nil {
			continue
		}
		for key := range h.Symbols {
			seen[key] = struct{}{}
		}
	}
	keys := make([]int, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// IsTypable reports whether a single hand holds every key of the sequence.
func IsTypable(left, right *layout.Hand, seq model.KeySeq) bool {
	return holdsAll(left, seq) || holdsAll(right, seq)
}

func holdsAll(h *layout.Hand, seq model.KeySeq) bool {
	for _, key := range seq.Keys() {
		if !h.HasKey(key) {
			return false
		}
	}
	return true
}

// Permutations enumerates every typable sequence of the given lengths, in
// lexicographic order over the key union, one length after another. It panics
// on lengths outside 1..3.
func Permutations(left, right *layout.Hand, lengths ...int) []model.KeySeq {
	keys := UnionOfKeys(left, right)
	var out []model.KeySeq
	for _, n := range lengths {
		if n < 1 || n > model.MaxKeySeqLen {
			panic(fmt.Sprintf("generator: unsupported sequence length %d", n))
		}
		buf := make([]int, n)
		var walk func(pos int)
		walk = func(pos int) {
			if pos == n {
				seq := model.NewKeySeq(buf...)
				if IsTypable(left, right, seq) {
					out = append(out, seq)
				}
				return
			}
			for _, key := range keys {
				buf[pos] = key
				walk(pos + 1)
			}
		}
		walk(0)
	}
	return out
}

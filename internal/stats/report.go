// Package stats contains ranking statistics and reporting.
package stats

import (
	"github.com/verte-zerg/keyseq/internal/display"
	"github.com/verte-zerg/keyseq/internal/effort"
	"github.com/verte-zerg/keyseq/internal/layout"
	"github.com/verte-zerg/keyseq/internal/model"
)

// DefaultBuckets is the number of rank buckets used for distributions.
const DefaultBuckets = 20

// Group titles.
const (
	GroupLength    = "Length"
	GroupRepeats   = "Repeats"
	GroupRowDiff   = "Row difference"
	GroupDirection = "Direction"
)

// Category aggregates the sequences of one classification in a ranking.
type Category struct {
	Name  string
	Color string
	Count int

	// MeanRank is the mean position in percent: 0 is the easiest end of the
	// ranking, 100 the hardest.
	MeanRank float64

	// Histogram counts the sequences per rank bucket.
	Histogram []float64
}

// Group is a set of categories of one classification kind.
type Group struct {
	Title        string
	Categories   []Category
	Unclassified int
}

// Report contains precomputed data for ranking rendering.
type Report struct {
	Total   int
	Buckets int
	Groups  []Group
}

// Group returns the group with the given title.
func (r Report) Group(title string) (Group, bool) {
	for _, g := range r.Groups {
		if g.Title == title {
			return g, true
		}
	}
	return Group{}, false
}

// Category returns the category with the given name.
func (g Group) Category(name string) (Category, bool) {
	for _, c := range g.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

type accumulator struct {
	names   []string
	colors  map[string]string
	counts  map[string]int
	rankSum map[string]float64
	hist    map[string][]float64
	unknown int
	buckets int
	total   int
}

func newAccumulator(buckets, total int) *accumulator {
	return &accumulator{
		colors:  map[string]string{},
		counts:  map[string]int{},
		rankSum: map[string]float64{},
		hist:    map[string][]float64{},
		buckets: buckets,
		total:   total,
	}
}

// declare fixes the display order and color of a category.
func (a *accumulator) declare(name, color string) {
	a.names = append(a.names, name)
	a.colors[name] = color
}

func (a *accumulator) add(name string, rank int) {
	a.counts[name]++
	a.rankSum[name] += rankPercent(rank, a.total)
	h, ok := a.hist[name]
	if !ok {
		h = make([]float64, a.buckets)
		a.hist[name] = h
	}
	h[bucketOf(rank, a.total, a.buckets)]++
}

func (a *accumulator) group(title string) Group {
	g := Group{Title: title, Unclassified: a.unknown}
	for _, name := range a.names {
		n := a.counts[name]
		if n == 0 {
			continue
		}
		g.Categories = append(g.Categories, Category{
			Name:      name,
			Color:     a.colors[name],
			Count:     n,
			MeanRank:  a.rankSum[name] / float64(n),
			Histogram: a.hist[name],
		})
	}
	return g
}

// BuildReport classifies every sequence of a ranking and aggregates the
// categories by rank. The ranking is ordered from least to most effort.
func BuildReport(hands layout.Hands, ranked []model.KeySeq, buckets int) Report {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}
	n := len(ranked)
	if n > 0 && buckets > n {
		buckets = n
	}

	lengths := newAccumulator(buckets, n)
	lengthNames := map[int]string{1: "unigram", 2: "bigram", 3: "trigram"}
	for l := 1; l <= model.MaxKeySeqLen; l++ {
		lengths.declare(lengthNames[l], "")
	}

	repeats := newAccumulator(buckets, n)
	for _, t := range effort.RepeatTypes() {
		repeats.declare(display.RepeatName(t), display.RepeatColor(t))
	}

	rowDiffs := newAccumulator(buckets, n)
	for _, t := range effort.RowDiffTypes() {
		rowDiffs.declare(display.RowDiffName(t), display.RowDiffColor(t))
	}

	directions := newAccumulator(buckets, n)
	for _, t := range effort.DirectionTypes() {
		directions.declare(display.DirectionName(t), display.DirectionColor(t))
	}

	for rank, seq := range ranked {
		if name, ok := lengthNames[seq.Len()]; ok {
			lengths.add(name, rank)
		} else {
			lengths.unknown++
		}

		if r, ok := effort.Repeats(hands, seq); ok {
			repeats.add(display.RepeatName(r.Type), rank)
		} else {
			repeats.unknown++
		}

		diffs := effort.RowDiff(hands, seq)
		if len(diffs) == 0 {
			rowDiffs.unknown++
		}
		seen := map[effort.RowDiffType]bool{}
		for _, d := range diffs {
			if seen[d] {
				continue
			}
			seen[d] = true
			rowDiffs.add(display.RowDiffName(d), rank)
		}

		if d, ok := effort.Direction(hands, seq); ok {
			directions.add(display.DirectionName(d), rank)
		} else {
			directions.unknown++
		}
	}

	return Report{
		Total:   n,
		Buckets: buckets,
		Groups: []Group{
			lengths.group(GroupLength),
			repeats.group(GroupRepeats),
			rowDiffs.group(GroupRowDiff),
			directions.group(GroupDirection),
		},
	}
}

func rankPercent(rank, total int) float64 {
	if total <= 1 {
		return 0
	}
	return float64(rank) / float64(total-1) * 100
}

func bucketOf(rank, total, buckets int) int {
	if total <= 0 || buckets <= 0 {
		return 0
	}
	b := rank * buckets / total
	if b >= buckets {
		b = buckets - 1
	}
	return b
}

package pattern

import (
	"strconv"

	"github.com/alscodec/als/internal/als"
)

// CombinedDetector catches columns that are neither a single range, a
// single repeat, nor a single toggle, but still decompose into something
// cheaper than raw: an arithmetic block tiled whole (Multiply{Range,count})
// or a handful of maximal runs stitched into a Sequence (spec.md §4.2).
type CombinedDetector struct{}

func (CombinedDetector) Detect(values []string, minPatternLength int) (DetectionResult, bool) {
	if len(values) < minPatternLength {
		return DetectionResult{}, false
	}

	if res, ok := detectTiledRange(values); ok {
		return res, true
	}
	if res, ok := detectRunSegmented(values); ok {
		return res, true
	}
	return DetectionResult{}, false
}

// detectTiledRange looks for the shortest prefix period p (2 <= p < len)
// such that values is exactly p-periodic and the first p values form a
// clean integer arithmetic sequence, i.e. Multiply{Range{...}, count}.
func detectTiledRange(values []string) (DetectionResult, bool) {
	n := len(values)
	for p := 2; p < n; p++ {
		if n%p != 0 {
			continue
		}
		if !periodic(values, p) {
			continue
		}
		rng, ok := asRange(values[:p])
		if !ok {
			continue
		}
		op := als.MultiplyOp(rng, n/p)
		raw := rawEncodedLen(values)
		enc := len(op.Render())
		r := ratio(raw, enc)
		if r <= 1.0 {
			continue
		}
		return DetectionResult{Type: PatternCombined, Operator: op, CompressionRatio: r}, true
	}
	return DetectionResult{}, false
}

func periodic(values []string, p int) bool {
	for i, v := range values {
		if v != values[i%p] {
			return false
		}
	}
	return true
}

// asRange reports whether block is a clean constant-step integer sequence,
// returning the Range operator for it.
func asRange(block []string) (als.Operator, bool) {
	if len(block) < 2 {
		return als.Operator{}, false
	}
	ints := make([]int64, len(block))
	for i, v := range block {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return als.Operator{}, false
		}
		ints[i] = n
	}
	step, ok := checkedSub(ints[1], ints[0])
	if !ok || step == 0 {
		return als.Operator{}, false
	}
	expected := ints[0]
	for i := 1; i < len(ints); i++ {
		expected, ok = checkedAdd(expected, step)
		if !ok || expected != ints[i] {
			return als.Operator{}, false
		}
	}
	return als.RangeOp(ints[0], ints[len(ints)-1], step), true
}

// detectRunSegmented stitches the column's maximal runs into a Sequence of
// Raw/Multiply children, chosen only when it beats both the raw encoding
// and a single detector's best effort (the caller already tried those; this
// only needs to beat 1.0 to be considered, and the engine compares sizes).
func detectRunSegmented(values []string) (DetectionResult, bool) {
	runs := FindRuns(values)
	if len(runs) < 2 {
		return DetectionResult{}, false
	}
	children := make([]als.Operator, len(runs))
	for i, r := range runs {
		leaf := als.LeafForEncodedCell(r.Value)
		if r.Len == 1 {
			children[i] = leaf
		} else {
			children[i] = als.MultiplyOp(leaf, r.Len)
		}
	}
	op := als.SequenceOp(children)
	raw := rawEncodedLen(values)
	enc := len(op.Render())
	r := ratio(raw, enc)
	if r <= 1.0 {
		return DetectionResult{}, false
	}
	return DetectionResult{Type: PatternCombined, Operator: op, CompressionRatio: r}, true
}

package pattern

import "github.com/alscodec/als/internal/als"

// ToggleDetector recognizes a column whose cells repeat a short cycle of
// at least two distinct values (spec.md §4.2).
type ToggleDetector struct{}

func (ToggleDetector) Detect(values []string, minPatternLength int) (DetectionResult, bool) {
	if len(values) < minPatternLength {
		return DetectionResult{}, false
	}

	maxCycle := 8
	if maxCycle > len(values) {
		maxCycle = len(values)
	}

	for k := 2; k <= maxCycle; k++ {
		if !validCycle(values, k) {
			continue
		}
		cycle := make([]als.Operator, k)
		for i := 0; i < k; i++ {
			cycle[i] = als.LeafForEncodedCell(values[i])
		}
		op := als.ToggleOp(cycle, len(values))
		raw := rawEncodedLen(values)
		enc := len(op.Render())
		r := ratio(raw, enc)
		if r <= 1.0 {
			return DetectionResult{}, false
		}
		return DetectionResult{Type: PatternToggle, Operator: op, CompressionRatio: r}, true
	}
	return DetectionResult{}, false
}

func validCycle(values []string, k int) bool {
	distinct := map[string]struct{}{}
	for i := 0; i < k; i++ {
		distinct[values[i]] = struct{}{}
	}
	if len(distinct) < 2 {
		return false
	}
	for i, v := range values {
		if v != values[i%k] {
			return false
		}
	}
	return true
}

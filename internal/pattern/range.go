package pattern

import (
	"math"
	"strconv"

	"github.com/alscodec/als/internal/als"
)

// RangeDetector recognizes a column whose cells are a constant-step integer
// arithmetic sequence (spec.md §4.2).
type RangeDetector struct{}

func (RangeDetector) Detect(values []string, minPatternLength int) (DetectionResult, bool) {
	if len(values) < minPatternLength {
		return DetectionResult{}, false
	}

	ints := make([]int64, len(values))
	for i, v := range values {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return DetectionResult{}, false
		}
		ints[i] = n
	}

	step, ok := checkedSub(ints[1], ints[0])
	if !ok || step == 0 {
		return DetectionResult{}, false
	}

	expected := ints[0]
	for i := 1; i < len(ints); i++ {
		var ok bool
		expected, ok = checkedAdd(expected, step)
		if !ok || expected != ints[i] {
			return DetectionResult{}, false
		}
	}

	op := als.RangeOp(ints[0], ints[len(ints)-1], step)
	raw := rawEncodedLen(values)
	enc := len(op.Render())
	r := ratio(raw, enc)
	if r <= 1.0 {
		return DetectionResult{}, false
	}
	return DetectionResult{Type: PatternRange, Operator: op, CompressionRatio: r}, true
}

func checkedAdd(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}
	return a + b, true
}

func checkedSub(a, b int64) (int64, bool) {
	return checkedAdd(a, -b)
}

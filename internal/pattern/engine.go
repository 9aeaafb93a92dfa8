package pattern

import "github.com/alscodec/als/internal/als"

// Engine runs every detector over a column's encoded cells and picks the
// best-scoring result, falling back to a flat Raw sequence when nothing
// beats a 1.0 compression ratio.
type Engine struct {
	MinPatternLength int
	detectors        []orderedDetector
}

type orderedDetector struct {
	kind     PatternType
	detector Detector
}

// NewEngine builds the default engine with detector priority
// Range > Repeat > Toggle > Combined, matching the tie-break order used
// when two detectors report an identical ratio.
func NewEngine(minPatternLength int) *Engine {
	return &Engine{
		MinPatternLength: minPatternLength,
		detectors: []orderedDetector{
			{PatternRange, RangeDetector{}},
			{PatternRepeat, RepeatDetector{}},
			{PatternToggle, ToggleDetector{}},
			{PatternCombined, CombinedDetector{}},
		},
	}
}

// Select runs every detector in priority order and returns the best result.
// Ties (equal ratio) resolve to whichever detector ran first, which is the
// declared priority order.
func (e *Engine) Select(values []string) DetectionResult {
	best := rawResult(values)
	for _, od := range e.detectors {
		res, ok := od.detector.Detect(values, e.MinPatternLength)
		if !ok {
			continue
		}
		if res.CompressionRatio > best.CompressionRatio {
			best = res
		}
	}
	return best
}

func rawResult(values []string) DetectionResult {
	ops := make([]als.Operator, len(values))
	for i, v := range values {
		ops[i] = als.LeafForEncodedCell(v)
	}
	op := als.SequenceOp(ops)
	raw := rawEncodedLen(values)
	enc := len(op.Render())
	return DetectionResult{Type: PatternRaw, Operator: op, CompressionRatio: ratio(raw, enc)}
}

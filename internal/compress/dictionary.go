// Package compress implements the dictionary builder and compression
// driver that compose the escape, pattern, and operator layers into a
// complete table<->document pipeline (spec.md §4.3, §4.4).
package compress

import (
	"strconv"

	"github.com/alscodec/als/internal/als"
)

// DictionaryResult is what the builder produces for one column: the
// dictionary entries it chose to admit (in first-occurrence order) and the
// column's cell stream with admitted literals replaced by DictRef indices
// into that slice.
type DictionaryResult struct {
	Entries  []string
	Rewritten []string
	Hits     int
}

// DictionaryBuilder scans a column's encoded cells and factors out literals
// worth indexing (spec.md §4.3): a literal is admitted when the bytes saved
// by referencing it everywhere it recurs exceed the one-time cost of
// storing it in the dictionary.
type DictionaryBuilder struct {
	MinOccurrences int
	MaxEntries     int
}

// Build scans values once to count occurrences, then admits candidates in
// first-occurrence order until MaxEntries is reached, finally rewriting the
// stream with DictRef substitutions for every admitted literal.
func (b DictionaryBuilder) Build(values []string) DictionaryResult {
	minOcc := b.MinOccurrences
	if minOcc < 2 {
		minOcc = 2
	}
	maxEntries := b.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 4096
	}

	counts := map[string]int{}
	var firstSeen []string
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen = append(firstSeen, v)
		}
		counts[v]++
	}

	var entries []string
	index := map[string]int{}
	for _, lit := range firstSeen {
		if len(entries) >= maxEntries {
			break
		}
		n := counts[lit]
		if n < minOcc {
			continue
		}
		width := len("_" + strconv.FormatInt(int64(len(entries)), 36))
		savings := (len(lit)-width)*(n-1) - (len(lit) + 3)
		if savings <= 0 {
			continue
		}
		index[lit] = len(entries)
		entries = append(entries, lit)
	}

	if len(entries) == 0 {
		return DictionaryResult{Rewritten: values}
	}

	rewritten := make([]string, len(values))
	hits := 0
	for i, v := range values {
		if idx, ok := index[v]; ok {
			rewritten[i] = dictRefText(idx)
			hits++
		} else {
			rewritten[i] = v
		}
	}
	return DictionaryResult{Entries: entries, Rewritten: rewritten, Hits: hits}
}

// dictRefText renders the exact text a DictRef operator would produce on the
// wire ("_" plus the base-36 index). A plain encoded cell can never equal
// this: "_" is a reserved character, so any literal cell containing it is
// always backtick-wrapped by EncodeValue. That makes the substitution safe
// to hand straight to the pattern engine — detectors see it as just another
// opaque token, and the resulting Render() size is already exact — while
// rewriteDictRefs (below) restores the real DictRef kind afterward so Expand
// decodes it as a dictionary lookup instead of the literal string "_0".
func dictRefText(idx int) string {
	return "_" + strconv.FormatInt(int64(idx), 36)
}

// rewriteDictRefs walks an operator tree produced by the pattern engine and
// turns any Raw leaf whose text is a dictionary placeholder back into a real
// DictRef operator.
func rewriteDictRefs(op als.Operator) als.Operator {
	switch op.Kind {
	case als.KindRaw:
		if idx, ok := dictRefIndex(op.Raw); ok {
			return als.DictRefOp(idx)
		}
		return op
	case als.KindMultiply:
		inner := rewriteDictRefs(*op.Inner)
		return als.MultiplyOp(inner, op.Count)
	case als.KindToggle:
		cycle := make([]als.Operator, len(op.Cycle))
		for i, c := range op.Cycle {
			cycle[i] = rewriteDictRefs(c)
		}
		return als.ToggleOp(cycle, op.Count)
	case als.KindSequence:
		children := make([]als.Operator, len(op.Children))
		for i, c := range op.Children {
			children[i] = rewriteDictRefs(c)
		}
		return als.SequenceOp(children)
	default:
		return op
	}
}

func dictRefIndex(s string) (int, bool) {
	if len(s) < 2 || s[0] != '_' {
		return 0, false
	}
	idx, err := strconv.ParseInt(s[1:], 36, 64)
	if err != nil {
		return 0, false
	}
	return int(idx), true
}

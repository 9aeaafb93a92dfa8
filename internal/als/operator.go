package als

import (
	"strconv"
	"strings"

	"github.com/alscodec/als/internal/alsutil"
)

// OperatorKind tags the variant held by an Operator. Dispatch throughout
// this package matches on the tag rather than on a type hierarchy: the
// operator set is closed, and adding a new kind requires touching both the
// encoder and the decoder, which is the point — it keeps the format stable.
type OperatorKind int

const (
	KindRaw OperatorKind = iota
	KindRange
	KindMultiply
	KindToggle
	KindDictRef
	KindSequence
	KindNullOp
	KindEmptyOp
)

// Operator is the tagged algebraic representation of an encoded column (or
// a piece of one). Only the fields relevant to Kind are populated.
type Operator struct {
	Kind OperatorKind

	Raw string // KindRaw: the escaped textual form of a single cell

	Start, End, Step int64 // KindRange

	Inner *Operator // KindMultiply
	Count int       // KindMultiply (repeat count), KindToggle (total expanded length)

	Cycle []Operator // KindToggle: >=2 distinct leaf operators

	DictIndex int // KindDictRef

	Children []Operator // KindSequence
}

func RawOp(s string) Operator  { return Operator{Kind: KindRaw, Raw: s} }
func NullOp() Operator         { return Operator{Kind: KindNullOp} }
func EmptyOp() Operator        { return Operator{Kind: KindEmptyOp} }
func DictRefOp(i int) Operator { return Operator{Kind: KindDictRef, DictIndex: i} }

func RangeOp(start, end, step int64) Operator {
	return Operator{Kind: KindRange, Start: start, End: end, Step: step}
}

func MultiplyOp(inner Operator, count int) Operator {
	return Operator{Kind: KindMultiply, Inner: &inner, Count: count}
}

func ToggleOp(cycle []Operator, count int) Operator {
	return Operator{Kind: KindToggle, Cycle: cycle, Count: count}
}

func SequenceOp(children []Operator) Operator {
	return Operator{Kind: KindSequence, Children: children}
}

// LeafForEncodedCell converts a single already-escaped cell string into the
// atomic operator that represents it: the Null/Empty sentinel leaf if it
// matches one of the reserved tokens, Raw otherwise.
func LeafForEncodedCell(encoded string) Operator {
	switch encoded {
	case NullToken:
		return NullOp()
	case EmptyToken:
		return EmptyOp()
	default:
		return RawOp(encoded)
	}
}

// RangeLen returns the number of integers the range [start,end] with the
// given step expands to: floor(|end-start|/|step|) + 1.
func RangeLen(start, end, step int64) int64 {
	if step == 0 {
		return 0
	}
	diff := end - start
	if diff < 0 {
		diff = -diff
	}
	abs := step
	if abs < 0 {
		abs = -abs
	}
	return diff/abs + 1
}

// Expand deterministically materializes the operator into its finite
// sequence of encoded cell strings. dict resolves KindDictRef nodes;
// maxRangeExpansion bounds KindRange (0 disables the bound, used when the
// range was built from already-materialized data rather than parsed text).
func (op Operator) Expand(dict []string, maxRangeExpansion int64) ([]string, error) {
	switch op.Kind {
	case KindRaw:
		return []string{op.Raw}, nil
	case KindNullOp:
		return []string{NullToken}, nil
	case KindEmptyOp:
		return []string{EmptyToken}, nil
	case KindDictRef:
		if op.DictIndex < 0 || op.DictIndex >= len(dict) {
			return nil, &alsutil.ErrInvalidDictRef{Index: op.DictIndex, Size: len(dict)}
		}
		return []string{dict[op.DictIndex]}, nil
	case KindRange:
		if op.Step == 0 {
			return nil, &alsutil.ErrRangeOverflow{Start: op.Start, End: op.End, Step: op.Step}
		}
		n := RangeLen(op.Start, op.End, op.Step)
		if maxRangeExpansion > 0 && n > maxRangeExpansion {
			return nil, &alsutil.ErrRangeOverflow{Start: op.Start, End: op.End, Step: op.Step}
		}
		out := make([]string, 0, n)
		v := op.Start
		for i := int64(0); i < n; i++ {
			out = append(out, strconv.FormatInt(v, 10))
			v += op.Step
		}
		return out, nil
	case KindMultiply:
		inner, err := op.Inner.Expand(dict, maxRangeExpansion)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(inner)*op.Count)
		for i := 0; i < op.Count; i++ {
			out = append(out, inner...)
		}
		return out, nil
	case KindToggle:
		var cycle []string
		for _, c := range op.Cycle {
			cv, err := c.Expand(dict, maxRangeExpansion)
			if err != nil {
				return nil, err
			}
			cycle = append(cycle, cv...)
		}
		if len(cycle) == 0 {
			return nil, nil
		}
		out := make([]string, op.Count)
		for i := 0; i < op.Count; i++ {
			out[i] = cycle[i%len(cycle)]
		}
		return out, nil
	case KindSequence:
		var out []string
		for _, child := range op.Children {
			cv, err := child.Expand(dict, maxRangeExpansion)
			if err != nil {
				return nil, err
			}
			out = append(out, cv...)
		}
		return out, nil
	}
	return nil, nil
}

// Render produces the canonical wire-text form of the operator (§4.5).
func (op Operator) Render() string {
	switch op.Kind {
	case KindRaw:
		return op.Raw
	case KindNullOp:
		return NullToken
	case KindEmptyOp:
		return EmptyToken
	case KindDictRef:
		return "_" + strconv.FormatInt(int64(op.DictIndex), 36)
	case KindRange:
		if abs(op.Step) == 1 {
			return strconv.FormatInt(op.Start, 10) + ">" + strconv.FormatInt(op.End, 10)
		}
		return strconv.FormatInt(op.Start, 10) + ">" + strconv.FormatInt(op.End, 10) + ":" + strconv.FormatInt(op.Step, 10)
	case KindMultiply:
		return op.Inner.Render() + "*" + strconv.Itoa(op.Count)
	case KindToggle:
		parts := make([]string, len(op.Cycle))
		for i, c := range op.Cycle {
			parts[i] = c.Render()
		}
		return strings.Join(parts, "~") + "*" + strconv.Itoa(op.Count)
	case KindSequence:
		parts := make([]string, len(op.Children))
		for i, c := range op.Children {
			parts[i] = c.Render()
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

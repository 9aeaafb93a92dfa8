package als

import (
	"strconv"
	"strings"

	"github.com/alscodec/als/internal/alsutil"
)

// Parse consumes a serialized document: the version/schema header line,
// then the body, whose first '|'-separated segment may be a dictionary
// block, followed by one stream per column. It produces a Document ready
// for ToTable. A '^' segment in any later position is not read as a
// dictionary block.
//
// Grammar (§4.6):
//
//	document := header NEWLINE body
//	header   := version (SP '#' name)*
//	body     := (dictblock '|')? stream ('|' stream)*
//	dictblock:= '^' (entry (SP entry)*)?
//	entry    := '_' base36 '=' raw
//	stream   := element (SP element)*
//	element  := primary ('*' count)?
//	primary  := range | toggle | dictref | sentinel | raw
func Parse(src string) (*Document, error) {
	headerLine, body, ok := strings.Cut(src, "\n")
	if !ok {
		return nil, &alsutil.ErrAlsSyntax{Msg: "document missing header/body newline"}
	}

	fields := strings.Fields(headerLine)
	if len(fields) == 0 {
		return nil, &alsutil.ErrAlsSyntax{Msg: "empty header line"}
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil || v < 0 || v > 255 {
		return nil, &alsutil.ErrAlsSyntax{Msg: "malformed version number: " + fields[0]}
	}

	doc := &Document{Version: byte(v), Format: FormatALS}
	if doc.Version > CurrentVersion {
		return nil, &alsutil.ErrVersionMismatch{Expected: CurrentVersion, Found: doc.Version}
	}

	for _, f := range fields[1:] {
		if !strings.HasPrefix(f, "#") {
			return nil, &alsutil.ErrAlsSyntax{Msg: "malformed column header token: " + f}
		}
		doc.Columns = append(doc.Columns, ColumnSchema{Name: f[1:]})
	}

	segments := splitTopLevel(body, '|')
	if len(segments) > 0 && strings.HasPrefix(segments[0], "^") {
		dict, err := parseDictBlock(segments[0][1:])
		if err != nil {
			return nil, err
		}
		doc.Dict = dict
		segments = segments[1:]
	}

	if len(segments) != len(doc.Columns) {
		return nil, &alsutil.ErrColumnMismatch{Schema: len(doc.Columns), Data: len(segments)}
	}

	doc.Streams = make([]ColumnStream, len(segments))
	for i, seg := range segments {
		ops, err := parseStreamBody(seg)
		if err != nil {
			return nil, err
		}
		doc.Streams[i] = ColumnStream{Operators: ops}
	}

	return doc, nil
}

// parseDictBlock parses the content of a '^'-prefixed segment (with the
// caret already stripped) into a dictionary slice indexed by each entry's
// declared base36 index.
func parseDictBlock(s string) ([]string, error) {
	entries := splitBacktickAware(s)
	var dict []string
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		if !ok || !strings.HasPrefix(key, "_") {
			return nil, &alsutil.ErrAlsSyntax{Msg: "malformed dictionary entry: " + e}
		}
		idx, err := strconv.ParseInt(key[1:], 36, 64)
		if err != nil || idx < 0 {
			return nil, &alsutil.ErrAlsSyntax{Msg: "invalid dictionary index: " + e}
		}
		for int64(len(dict)) <= idx {
			dict = append(dict, "")
		}
		dict[idx] = value
	}
	return dict, nil
}

// parseStreamBody parses one column segment's space-separated elements
// into operators.
func parseStreamBody(body string) ([]Operator, error) {
	elems := splitBacktickAware(body)
	ops := make([]Operator, 0, len(elems))
	for _, e := range elems {
		op, err := parseElement(e)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseElement parses a single space-delimited slot of a stream segment: a
// bare leaf, or a leaf/cycle with a trailing "*count" multiply/toggle
// suffix.
func parseElement(elem string) (Operator, error) {
	leaves, rest, err := parseCycle(elem)
	if err != nil {
		return Operator{}, err
	}
	if strings.HasPrefix(rest, "*") {
		n, err := strconv.Atoi(rest[1:])
		if err != nil {
			return Operator{}, &alsutil.ErrAlsSyntax{Msg: "invalid multiply count in: " + elem}
		}
		if len(leaves) == 1 {
			return MultiplyOp(leaves[0], n), nil
		}
		return ToggleOp(leaves, n), nil
	}
	if rest != "" {
		return Operator{}, &alsutil.ErrAlsSyntax{Msg: "unexpected trailing input in: " + elem}
	}
	if len(leaves) == 1 {
		return leaves[0], nil
	}
	return Operator{}, &alsutil.ErrAlsSyntax{Msg: "toggle cycle missing multiply count in: " + elem}
}

// parseCycle reads one or more '~'-joined leaves from the front of s,
// returning the unconsumed remainder (which is either empty or starts with
// '*').
func parseCycle(s string) ([]Operator, string, error) {
	var leaves []Operator
	for {
		leaf, rest, err := parseLeaf(s)
		if err != nil {
			return nil, "", err
		}
		leaves = append(leaves, leaf)
		if strings.HasPrefix(rest, "~") {
			s = rest[1:]
			continue
		}
		return leaves, rest, nil
	}
}

// parseLeaf reads a single atomic operator from the front of s: a sentinel,
// a backtick-quoted raw span, a dictionary reference, a range expression,
// or a bare raw token. It returns the unconsumed remainder.
func parseLeaf(s string) (Operator, string, error) {
	if s == "" {
		return Operator{}, "", &alsutil.ErrAlsSyntax{Msg: "empty operator element"}
	}
	if strings.HasPrefix(s, NullToken) {
		return NullOp(), s[len(NullToken):], nil
	}
	if strings.HasPrefix(s, EmptyToken) {
		return EmptyOp(), s[len(EmptyToken):], nil
	}
	if s[0] == '`' {
		i := 1
		for i < len(s) {
			if s[i] == '`' {
				if i+1 < len(s) && s[i+1] == '`' {
					i += 2
					continue
				}
				i++
				break
			}
			i++
		}
		return RawOp(s[:i]), s[i:], nil
	}

	j := 0
	for j < len(s) && s[j] != '~' && s[j] != '*' {
		j++
	}
	token := s[:j]
	rest := s[j:]

	switch {
	case strings.HasPrefix(token, "_"):
		idx, err := strconv.ParseInt(token[1:], 36, 64)
		if err != nil {
			return Operator{}, "", &alsutil.ErrAlsSyntax{Msg: "invalid dictionary reference: " + token}
		}
		return DictRefOp(int(idx)), rest, nil
	case strings.Contains(token, ">"):
		before, after, _ := strings.Cut(token, ">")
		endStr, stepStr, hasStep := strings.Cut(after, ":")
		start, err1 := strconv.ParseInt(before, 10, 64)
		end, err2 := strconv.ParseInt(endStr, 10, 64)
		if err1 != nil || err2 != nil {
			return Operator{}, "", &alsutil.ErrAlsSyntax{Msg: "invalid range expression: " + token}
		}
		var step int64
		if hasStep {
			step, err1 = strconv.ParseInt(stepStr, 10, 64)
			if err1 != nil {
				return Operator{}, "", &alsutil.ErrAlsSyntax{Msg: "invalid range step: " + token}
			}
		} else if start <= end {
			step = 1
		} else {
			step = -1
		}
		return RangeOp(start, end, step), rest, nil
	default:
		return RawOp(token), rest, nil
	}
}

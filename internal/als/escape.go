// Package als implements the ALS document format: the escape/token layer,
// the operator intermediate representation, the tokenizer, parser, and
// serializer described in spec.md §4.1, §4.3, §4.5, and §4.6.
package als

import (
	"strconv"
	"strings"

	"github.com/alscodec/als/internal/table"
)

// NullToken is the literal two-character sentinel for a Null cell. It is
// never backtick-wrapped; it appears on the wire exactly as written here.
const NullToken = `\0`

// EmptyToken is the literal two-character sentinel for an empty-string
// cell, distinguishing it from Null.
const EmptyToken = `\e`

// reservedChars are the characters that may not appear bare inside an
// operator position: they are either format-significant themselves
// (column/element separators, operator sigils) or whitespace.
const reservedChars = "#|>*~_^:\\\n\t "

// NeedsEscaping reports whether s must be backtick-wrapped to appear safely
// in an ALS stream: it contains a reserved character or a backtick (the
// quoting character itself), or it collides verbatim with one of the
// sentinel tokens.
func NeedsEscaping(s string) bool {
	if s == NullToken || s == EmptyToken {
		return true
	}
	if strings.IndexByte(s, '`') >= 0 {
		return true
	}
	return strings.ContainsAny(s, reservedChars)
}

// escapeBackticks wraps s in backticks, doubling any interior backtick so
// the wrapped span's boundary is unambiguous.
func escapeBackticks(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('`')
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			b.WriteString("``")
		} else {
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('`')
	return b.String()
}

// unescapeBacktickSpan reverses escapeBackticks on the inner content of a
// backtick-quoted span (the caller has already stripped the outer quotes).
func unescapeBacktickSpan(inner string) string {
	return strings.ReplaceAll(inner, "``", "`")
}

// EncodeValue produces the on-the-wire form of a single cell: the sentinel
// for Null/empty-string, or the value's canonical string, backtick-wrapped
// if it needs escaping or if it is a String whose bare text would decode as
// another kind (e.g. the string "42").
func EncodeValue(v table.Value) string {
	if v.IsNull() {
		return NullToken
	}
	s := v.CanonicalString()
	if s == "" {
		return EmptyToken
	}
	if NeedsEscaping(s) || (v.Kind() == table.KindString && DecodeValue(s).Kind() != table.KindString) {
		return escapeBackticks(s)
	}
	return s
}

// DecodeValue is the exact inverse of EncodeValue. It recovers Null and the
// empty string from their sentinels, strings from backtick-quoted spans,
// and otherwise re-infers the narrowest Value kind (Integer, then Float,
// then Boolean, else String) whose canonical string reproduces s exactly —
// the round-trip check is what keeps e.g. "007" from being misread as the
// integer 7.
func DecodeValue(s string) table.Value {
	switch s {
	case NullToken:
		return table.NullValue()
	case EmptyToken:
		return table.StringValue("")
	}
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return table.StringValue(unescapeBacktickSpan(s[1 : len(s)-1]))
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return table.IntegerValue(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'g', -1, 64) == s {
		return table.FloatValue(f)
	}
	if s == "true" {
		return table.BooleanValue(true)
	}
	if s == "false" {
		return table.BooleanValue(false)
	}
	return table.StringValue(s)
}

package alsutil

import "fmt"

// ErrAlsSyntax reports a malformed ALS document. Msg names the offending
// token. Parse in package als does not set Pos, so errors it returns carry
// Pos 0 and Error() reports position 0.
type ErrAlsSyntax struct {
	Pos int
	Msg string
}

func (e *ErrAlsSyntax) Error() string {
	return fmt.Sprintf("als syntax error at position %d: %s", e.Pos, e.Msg)
}

// ErrInvalidDictRef reports a dictionary reference with no matching entry.
type ErrInvalidDictRef struct {
	Index int
	Size  int
}

func (e *ErrInvalidDictRef) Error() string {
	return fmt.Sprintf("invalid dictionary reference: _%d (dictionary has %d entries)", e.Index, e.Size)
}

// ErrRangeOverflow reports a Range operator that cannot be expanded: its
// step is zero, or its expansion would exceed the configured maximum.
type ErrRangeOverflow struct {
	Start, End, Step int64
}

func (e *ErrRangeOverflow) Error() string {
	return fmt.Sprintf("range overflow: %d to %d with step %d would produce too many values", e.Start, e.End, e.Step)
}

// ErrVersionMismatch reports an ALS document whose version byte exceeds
// what this parser supports.
type ErrVersionMismatch struct {
	Expected, Found byte
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("version mismatch: expected <= %d, found %d", e.Expected, e.Found)
}

// ErrColumnMismatch reports a stream whose field count disagrees with the
// document's column schema.
type ErrColumnMismatch struct {
	Schema, Data int
}

func (e *ErrColumnMismatch) Error() string {
	return fmt.Sprintf("column count mismatch: schema has %d columns, data has %d columns", e.Schema, e.Data)
}

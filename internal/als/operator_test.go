package als

import (
	"reflect"
	"testing"
)

func TestRawExpandRender(t *testing.T) {
	op := RawOp("hello")
	got, err := op.Expand(nil, 0)
	if err != nil || !reflect.DeepEqual(got, []string{"hello"}) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "hello" {
		t.Fatalf("Render() = %q", op.Render())
	}
}

func TestNullEmptyLeaves(t *testing.T) {
	if LeafForEncodedCell(NullToken).Kind != KindNullOp {
		t.Fatal("expected null leaf")
	}
	if LeafForEncodedCell(EmptyToken).Kind != KindEmptyOp {
		t.Fatal("expected empty leaf")
	}
	if LeafForEncodedCell("x").Kind != KindRaw {
		t.Fatal("expected raw leaf")
	}
	if NullOp().Render() != NullToken || EmptyOp().Render() != EmptyToken {
		t.Fatal("sentinel render mismatch")
	}
}

func TestRangeExpandAscending(t *testing.T) {
	op := RangeOp(1, 5, 1)
	got, err := op.Expand(nil, 0)
	want := []string{"1", "2", "3", "4", "5"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "1>5" {
		t.Fatalf("Render() = %q", op.Render())
	}
}

func TestRangeExpandDescendingUnitStep(t *testing.T) {
	op := RangeOp(5, 1, -1)
	got, err := op.Expand(nil, 0)
	want := []string{"5", "4", "3", "2", "1"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "5>1" {
		t.Fatalf("Render() = %q, want 5>1 (unit step omits suffix)", op.Render())
	}
}

func TestRangeExpandWithStepRendersSuffix(t *testing.T) {
	op := RangeOp(0, 20, 10)
	got, err := op.Expand(nil, 0)
	want := []string{"0", "10", "20"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "0>20:10" {
		t.Fatalf("Render() = %q", op.Render())
	}
}

func TestRangeZeroStepIsRejected(t *testing.T) {
	op := RangeOp(1, 5, 0)
	if _, err := op.Expand(nil, 0); err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestRangeExceedingMaxExpansionIsRejected(t *testing.T) {
	op := RangeOp(1, 1000, 1)
	if _, err := op.Expand(nil, 10); err == nil {
		t.Fatal("expected range overflow error")
	}
}

func TestMultiplyExpandRender(t *testing.T) {
	op := MultiplyOp(RawOp("x"), 3)
	got, err := op.Expand(nil, 0)
	want := []string{"x", "x", "x"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "x*3" {
		t.Fatalf("Render() = %q", op.Render())
	}
}

func TestMultiplyOfMultiElementInner(t *testing.T) {
	op := MultiplyOp(RangeOp(1, 2, 1), 3)
	got, err := op.Expand(nil, 0)
	want := []string{"1", "2", "1", "2", "1", "2"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestToggleTilesAndTruncates(t *testing.T) {
	op := ToggleOp([]Operator{RawOp("a"), RawOp("b")}, 5)
	got, err := op.Expand(nil, 0)
	want := []string{"a", "b", "a", "b", "a"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "a~b*5" {
		t.Fatalf("Render() = %q", op.Render())
	}
}

func TestDictRefExpandAndRender(t *testing.T) {
	op := DictRefOp(37)
	got, err := op.Expand([]string{}, 0)
	if err == nil {
		t.Fatal("expected error for out-of-range dict reference")
	}
	dict := make([]string, 38)
	dict[37] = "value"
	got, err = op.Expand(dict, 0)
	if err != nil || !reflect.DeepEqual(got, []string{"value"}) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "_11" {
		t.Fatalf("Render() = %q, want _11 (37 in base36)", op.Render())
	}
}

func TestSequenceExpandRender(t *testing.T) {
	op := SequenceOp([]Operator{RawOp("a"), NullOp(), RangeOp(1, 2, 1)})
	got, err := op.Expand(nil, 0)
	want := []string{"a", NullToken, "1", "2"}
	if err != nil || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, %v", got, err)
	}
	if op.Render() != "a \\0 1>2" {
		t.Fatalf("Render() = %q", op.Render())
	}
}

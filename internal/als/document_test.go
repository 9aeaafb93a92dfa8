package als

import (
	"testing"

	"github.com/alscodec/als/internal/table"
)

func buildTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]table.Column{
		table.NewColumn("id", []table.Value{
			table.IntegerValue(1), table.IntegerValue(2), table.IntegerValue(3),
		}),
		table.NewColumn("status", []table.Value{
			table.StringValue("active"), table.StringValue("active"), table.StringValue("active"),
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

// TestConcreteScenarioSequentialIDConstantStatus is spec scenario 1.
func TestConcreteScenarioSequentialIDConstantStatus(t *testing.T) {
	doc := &Document{
		Version: CurrentVersion,
		Columns: []ColumnSchema{{Name: "id"}, {Name: "status"}},
		Streams: []ColumnStream{
			{Operators: []Operator{RangeOp(1, 5, 1)}},
			{Operators: []Operator{MultiplyOp(RawOp("ok"), 5)}},
		},
	}
	want := "1 #id #status\n1>5|ok*5"
	if got := doc.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	parsed, err := Parse(want)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tbl, err := parsed.ToTable(0)
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	want2, err := table.New([]table.Column{
		table.NewColumn("id", []table.Value{
			table.IntegerValue(1), table.IntegerValue(2), table.IntegerValue(3),
			table.IntegerValue(4), table.IntegerValue(5),
		}),
		table.NewColumn("status", []table.Value{
			table.StringValue("ok"), table.StringValue("ok"), table.StringValue("ok"),
			table.StringValue("ok"), table.StringValue("ok"),
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !tbl.Equal(want2) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", tbl, want2)
	}
}

// TestConcreteScenarioToggleBoolean is spec scenario 2.
func TestConcreteScenarioToggleBoolean(t *testing.T) {
	doc := &Document{
		Version: CurrentVersion,
		Columns: []ColumnSchema{{Name: "x"}},
		Streams: []ColumnStream{
			{Operators: []Operator{ToggleOp([]Operator{RawOp("T"), RawOp("F")}, 6)}},
		},
	}
	want := "1 #x\nT~F*6"
	if got := doc.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	if _, err := Parse(want); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
}

// TestConcreteScenarioRawFallback is spec scenario 3.
func TestConcreteScenarioRawFallback(t *testing.T) {
	tbl, err := table.New([]table.Column{
		table.NewColumn("fruit", []table.Value{
			table.StringValue("apple"), table.StringValue("banana"), table.StringValue("cherry"),
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	doc := NewCTXDocument(tbl)
	want := "1 #fruit\napple banana cherry"
	if got := doc.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	parsed, err := Parse(want)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got, err := parsed.ToTable(0)
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	if !got.Equal(tbl) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, tbl)
	}
}

// TestConcreteScenarioDictionaryWin is spec scenario 4.
func TestConcreteScenarioDictionaryWin(t *testing.T) {
	ops := make([]Operator, 50)
	for i := range ops {
		if i < 40 {
			ops[i] = DictRefOp(0)
		} else {
			ops[i] = DictRefOp(1)
		}
	}
	doc := &Document{
		Version: CurrentVersion,
		Columns: []ColumnSchema{{Name: "status"}},
		Streams: []ColumnStream{{Operators: ops}},
		Dict:    []string{"active", "inactive"},
	}
	text := doc.Render()
	if want := "^_0=active _1=inactive|"; text[len("1 #status\n"):len("1 #status\n")+len(want)] != want {
		t.Fatalf("expected dictionary block prefix, got %q", text)
	}
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v\ndocument:\n%s", err, text)
	}
	got, err := parsed.ToTable(0)
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	col, _ := got.Column("status")
	if len(col.Values) != 50 {
		t.Fatalf("expected 50 rows, got %d", len(col.Values))
	}
	for i, v := range col.Values {
		s, _ := v.Str()
		want := "active"
		if i >= 40 {
			want = "inactive"
		}
		if s != want {
			t.Fatalf("row %d: got %q, want %q", i, s, want)
		}
	}
}

// TestConcreteScenarioNestedRange is spec scenario 5.
func TestConcreteScenarioNestedRange(t *testing.T) {
	doc := &Document{
		Version: CurrentVersion,
		Columns: []ColumnSchema{{Name: "id"}, {Name: "bucket"}},
		Streams: []ColumnStream{
			{Operators: []Operator{RangeOp(1, 9, 1)}},
			{Operators: []Operator{ToggleOp([]Operator{RawOp("0"), RawOp("1"), RawOp("2")}, 9)}},
		},
	}
	want := "1 #id #bucket\n1>9|0~1~2*9"
	if got := doc.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	parsed, err := Parse(want)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tbl, err := parsed.ToTable(0)
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	col, _ := tbl.Column("bucket")
	for i, v := range col.Values {
		n, _ := v.Int()
		if int(n) != i%3 {
			t.Fatalf("row %d: got %d, want %d", i, n, i%3)
		}
	}
}

// TestConcreteScenarioRoundTripWithNulls is spec scenario 6.
func TestConcreteScenarioRoundTripWithNulls(t *testing.T) {
	doc := &Document{
		Version: CurrentVersion,
		Columns: []ColumnSchema{{Name: "y"}},
		Streams: []ColumnStream{
			{Operators: []Operator{RawOp("a"), NullOp(), RawOp("a")}},
		},
	}
	want := "1 #y\na \\0 a"
	if got := doc.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	parsed, err := Parse(want)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tbl, err := parsed.ToTable(0)
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	col, _ := tbl.Column("y")
	if !col.Values[1].IsNull() {
		t.Fatalf("expected null at index 1, got %v", col.Values[1])
	}
	s0, _ := col.Values[0].Str()
	s2, _ := col.Values[2].Str()
	if s0 != "a" || s2 != "a" {
		t.Fatalf("expected 'a' at indices 0 and 2, got %q and %q", s0, s2)
	}
}

func TestParseRejectsFutureVersion(t *testing.T) {
	text := "99 #id\n1 2"
	if _, err := Parse(text); err == nil {
		t.Fatal("expected version mismatch error")
	}
}

func TestParseRejectsColumnCountMismatch(t *testing.T) {
	text := "1 #id #name\n1 2"
	if _, err := Parse(text); err == nil {
		t.Fatal("expected column mismatch error")
	}
}

func TestParseRejectsMissingHeaderBodySeparator(t *testing.T) {
	if _, err := Parse("1 #id"); err == nil {
		t.Fatal("expected error for missing newline")
	}
}

func TestParseElementWithEscapedValueContainingReservedChars(t *testing.T) {
	doc := &Document{
		Version: CurrentVersion,
		Columns: []ColumnSchema{{Name: "label"}},
		Streams: []ColumnStream{
			{Operators: []Operator{LeafForEncodedCell(EncodeValue(table.StringValue("has space|and|pipes")))}},
		},
	}
	text := doc.Render()
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v\ndocument:\n%s", err, text)
	}
	got, err := parsed.ToTable(0)
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	col, _ := got.Column("label")
	s, ok := col.Values[0].Str()
	if !ok || s != "has space|and|pipes" {
		t.Fatalf("got %v", col.Values[0])
	}
}

func TestPrettyPrintDoesNotPanic(t *testing.T) {
	tbl := buildTable(t)
	doc := NewCTXDocument(tbl)
	if doc.PrettyPrint() == "" {
		t.Fatal("expected non-empty pretty-print output")
	}
}

package table

import (
	"math"
	"testing"
)

func TestValueEqualStructural(t *testing.T) {
	if !IntegerValue(5).Equal(IntegerValue(5)) {
		t.Fatal("expected equal integers")
	}
	if IntegerValue(5).Equal(FloatValue(5)) {
		t.Fatal("integer and float of same magnitude must not be equal")
	}
	if !StringValue("a").Equal(StringValue("a")) {
		t.Fatal("expected equal strings")
	}
	if !NullValue().Equal(NullValue()) {
		t.Fatal("expected null equal null")
	}
}

func TestValueEqualNaN(t *testing.T) {
	nan := FloatValue(math.NaN())
	if nan.Equal(nan) {
		t.Fatal("NaN must not equal NaN")
	}
}

func TestValueEqualSignedZero(t *testing.T) {
	pos := FloatValue(0)
	neg := FloatValue(math.Copysign(0, -1))
	if pos.Equal(neg) {
		t.Fatal("+0 and -0 must be bit-distinct")
	}
}

func TestCanonicalString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{IntegerValue(-42), "-42"},
		{FloatValue(1.5), "1.5"},
		{BooleanValue(true), "true"},
		{BooleanValue(false), "false"},
		{StringValue("hello"), "hello"},
	}
	for _, c := range cases {
		if got := c.v.CanonicalString(); got != c.want {
			t.Errorf("CanonicalString() = %q, want %q", got, c.want)
		}
	}
}

package value

import "testing"

func TestFalsiness(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil", Nil, true},
		{"false", Bool(false), true},
		{"true", Bool(true), false},
		{"zero", Number(0), false},
		{"empty string", FromObject(NewString("")), false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFalsy(); got != tt.want {
			t.Errorf("%s: IsFalsy() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEqualityIsStructural(t *testing.T) {
	if !Number(1.5).Equal(Number(1.5)) {
		t.Error("equal numbers should compare equal")
	}
	if !FromObject(NewString("abc")).Equal(FromObject(NewString("abc"))) {
		t.Error("distinct string objects with the same content should compare equal")
	}
	if Nil.Equal(Bool(false)) {
		t.Error("nil and false are tag-distinct and must not compare equal")
	}
	if Bool(true).Equal(Number(1)) {
		t.Error("heterogeneous comparisons must be false")
	}
}

func TestValueStringFormat(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(3), "3"},
		{Number(3.25), "3.25"},
		{FromObject(NewString("hi")), `"hi"`},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

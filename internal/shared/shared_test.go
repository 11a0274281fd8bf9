package shared

import (
	"math"
	"testing"
)

func TestHasChanged(t *testing.T) {
	m := map[string]any{}
	s := []int{1, 2}
	fn := func() {}
	tests := []struct {
		name       string
		prev, next any
		want       bool
	}{
		{"equal ints", 1, 1, false},
		{"different ints", 1, 2, true},
		{"nan to nan", math.NaN(), math.NaN(), false},
		{"nan to number", math.NaN(), 1.0, true},
		{"positive and negative zero", 0.0, math.Copysign(0, -1), true},
		{"nil to nil", nil, nil, false},
		{"nil to value", nil, 0, true},
		{"different types", 1, int64(1), true},
		{"same map", m, m, false},
		{"different maps", m, map[string]any{}, true},
		{"same slice", s, s, false},
		{"same func", fn, fn, false},
		{"strings", "a", "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasChanged(tt.prev, tt.next); got != tt.want {
				t.Errorf("HasChanged(%v, %v) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"foo":     "Foo",
		"foo bar": "Foo bar",
		"fooBar":  "FooBar",
		"émile":   "Émile",
		"Already": "Already",
		"":        "",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHandlerKey(t *testing.T) {
	tests := []struct {
		event string
		want  string
	}{
		{"click", "onClick"},
		{"add", "onAdd"},
		{"add-foo", "onAddFoo"},
		{"addFoo", "onAddFoo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToHandlerKey(Camelize(tt.event)); got != tt.want {
			t.Errorf("ToHandlerKey(Camelize(%q)) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestIsOn(t *testing.T) {
	tests := map[string]bool{
		"onClick": true,
		"onclick": false,
		"on":      false,
		"id":      false,
		"onX":     true,
		"one":     false,
	}
	for key, want := range tests {
		if got := IsOn(key); got != want {
			t.Errorf("IsOn(%q) = %v, want %v", key, got, want)
		}
	}
	if got := EventName("onClick"); got != "click" {
		t.Errorf("EventName(onClick) = %q, want click", got)
	}
}

func TestInvoke(t *testing.T) {
	var got []any
	ok, err := Invoke(func(args ...any) { got = args }, 1, "a")
	if !ok || err != nil {
		t.Fatalf("Invoke variadic = %v, %v", ok, err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != "a" {
		t.Errorf("args = %v, want [1 a]", got)
	}

	var n int
	var s string
	ok, err = Invoke(func(a int, b string) { n, s = a, b }, 5, "x")
	if !ok || err != nil {
		t.Fatalf("Invoke typed = %v, %v", ok, err)
	}
	if n != 5 || s != "x" {
		t.Errorf("typed args = %d %q, want 5 x", n, s)
	}

	called := false
	if ok, _ := Invoke(func() { called = true }, "ignored"); !ok || !called {
		t.Error("Invoke(func()) did not call handler")
	}

	if ok, _ := Invoke("not a func"); ok {
		t.Error("Invoke on non-func reported ok")
	}
	if _, err := Invoke(func(a int) {}, "str"); err == nil {
		t.Error("Invoke with unassignable arg returned nil error")
	}
}

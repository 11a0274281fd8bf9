package reactivity

import (
	"testing"

	"github.com/vango-dev/minivue/internal/errors"
)

func captureWarnings(t *testing.T) *[]*errors.Error {
	t.Helper()
	var got []*errors.Error
	old := SetWarnHandler(func(err *errors.Error) { got = append(got, err) })
	t.Cleanup(func() { SetWarnHandler(old) })
	return &got
}

func TestReactiveNestedWrapsOnAccess(t *testing.T) {
	raw := map[string]any{
		"nested": map[string]any{"foo": 1},
		"array":  []any{1, 2},
	}
	observed := Reactive(raw)

	if !IsReactive(observed) {
		t.Error("IsReactive(observed) = false")
	}
	nested, ok := observed.Get("nested").(*Object)
	if !ok {
		t.Fatalf("nested = %T, want *Object", observed.Get("nested"))
	}
	if !IsReactive(nested) {
		t.Error("nested read is not reactive")
	}
	if _, ok := raw["nested"].(map[string]any); !ok {
		t.Error("raw nested value was replaced; wrapping must be lazy")
	}
	if IsReactive(observed.Get("array")) {
		t.Error("slices are not wrapped")
	}
}

func TestReactiveSameMapSameView(t *testing.T) {
	raw := map[string]any{"a": 1}
	if Reactive(raw) != Reactive(raw) {
		t.Error("Reactive(raw) returned distinct views")
	}
	if Reactive(Reactive(raw)) != Reactive(raw) {
		t.Error("Reactive(Reactive(raw)) != Reactive(raw)")
	}
	if Reactive("not a map") != nil {
		t.Error("Reactive(non-map) should be nil")
	}
}

func TestNestedReactiveTriggers(t *testing.T) {
	state := Reactive(map[string]any{"user": map[string]any{"name": "ada"}})
	var name any
	Effect(func() {
		name = state.Get("user").(*Object).Get("name")
	})

	state.Get("user").(*Object).Set("name", "grace")
	if name != "grace" {
		t.Errorf("name = %v, want grace", name)
	}
}

func TestFlagProbes(t *testing.T) {
	raw := map[string]any{"a": 1}
	tests := []struct {
		name         string
		obj          *Object
		wantReactive bool
		wantReadonly bool
	}{
		{"reactive", Reactive(raw), true, false},
		{"readonly", Readonly(raw), false, true},
		{"shallowReadonly", ShallowReadonly(raw), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.Get(FlagIsReactive); got != tt.wantReactive {
				t.Errorf("Get(FlagIsReactive) = %v, want %v", got, tt.wantReactive)
			}
			if got := tt.obj.Get(FlagIsReadonly); got != tt.wantReadonly {
				t.Errorf("Get(FlagIsReadonly) = %v, want %v", got, tt.wantReadonly)
			}
			if !IsProxy(tt.obj) {
				t.Error("IsProxy = false")
			}
		})
	}
	if IsReactive(raw) || IsReadonly(raw) || IsProxy(raw) {
		t.Error("plain map reported as proxy")
	}
}

func TestFlagProbeIsNotTracked(t *testing.T) {
	state := Reactive(map[string]any{})
	e := Effect(func() {
		_ = state.Get(FlagIsReactive)
		_ = state.Get(FlagIsReadonly)
	})
	if e.DepCount() != 0 {
		t.Errorf("DepCount() = %d, want 0", e.DepCount())
	}
}

func TestReadonlyRejectsWrites(t *testing.T) {
	warnings := captureWarnings(t)
	raw := map[string]any{"foo": 1, "bar": map[string]any{"baz": 2}}
	wrapped := Readonly(raw)

	if ok := wrapped.Set("foo", 2); !ok {
		t.Error("Set on readonly returned false, want true")
	}
	if raw["foo"] != 1 || wrapped.Get("foo") != 1 {
		t.Errorf("foo = %v, want 1", raw["foo"])
	}

	nested := wrapped.Get("bar").(*Object)
	if !IsReadonly(nested) {
		t.Error("nested read of readonly is not readonly")
	}
	nested.Set("baz", 3)
	if raw["bar"].(map[string]any)["baz"] != 2 {
		t.Error("nested readonly write mutated the target")
	}

	if len(*warnings) != 2 {
		t.Fatalf("warnings = %d, want 2", len(*warnings))
	}
	if (*warnings)[0].Code != "E001" {
		t.Errorf("warning code = %q, want E001", (*warnings)[0].Code)
	}
}

func TestReadonlyDoesNotTrack(t *testing.T) {
	raw := map[string]any{"foo": 1}
	ro := Readonly(raw)
	runs := 0
	e := Effect(func() {
		runs++
		_ = ro.Get("foo")
	})

	Reactive(raw).Set("foo", 2)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if e.DepCount() != 0 {
		t.Errorf("DepCount() = %d, want 0", e.DepCount())
	}
}

func TestShallowReadonly(t *testing.T) {
	warnings := captureWarnings(t)
	inner := map[string]any{"n": 1}
	props := ShallowReadonly(map[string]any{"inner": inner})

	got, ok := props.Get("inner").(map[string]any)
	if !ok {
		t.Fatalf("inner = %T, want verbatim map", props.Get("inner"))
	}
	got["n"] = 2
	if inner["n"] != 2 {
		t.Error("shallowReadonly should return nested values verbatim")
	}

	props.Set("inner", nil)
	if props.Get("inner") == nil {
		t.Error("shallowReadonly write mutated the target")
	}
	if len(*warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(*warnings))
	}
}

func TestReactiveHasAndKeys(t *testing.T) {
	state := Reactive(map[string]any{"b": 1, "a": 2})
	keys := state.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}

	present := false
	Effect(func() { present = state.Has("c") })
	if present {
		t.Fatal("Has(c) = true")
	}
	state.Set("c", 3)
	if !present {
		t.Error("Has(c) did not re-run after the key was added")
	}
}

func TestSetStoresRaw(t *testing.T) {
	inner := map[string]any{"x": 1}
	state := Reactive(map[string]any{})
	state.Set("inner", Reactive(inner))

	if _, ok := state.Raw()["inner"].(map[string]any); !ok {
		t.Errorf("stored %T, want raw map", state.Raw()["inner"])
	}
	if ToRaw(state) == nil {
		t.Error("ToRaw(state) = nil")
	}
	if ToRaw(5) != 5 {
		t.Error("ToRaw(5) != 5")
	}
}

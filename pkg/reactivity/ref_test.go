package reactivity

import (
	"math"
	"testing"
)

func TestRefHoldsValue(t *testing.T) {
	a := NewRef(1)
	if a.Get() != 1 {
		t.Errorf("Get() = %v, want 1", a.Get())
	}
	a.Set(2)
	if a.Get() != 2 {
		t.Errorf("Get() = %v, want 2", a.Get())
	}
}

func TestRefIsReactive(t *testing.T) {
	a := NewRef(1)
	calls := 0
	var dummy any
	Effect(func() {
		calls++
		dummy = a.Get()
	})

	if calls != 1 || dummy != 1 {
		t.Fatalf("calls=%d dummy=%v, want 1 1", calls, dummy)
	}
	a.Set(2)
	if calls != 2 || dummy != 2 {
		t.Errorf("calls=%d dummy=%v, want 2 2", calls, dummy)
	}
	// Same value must not trigger.
	a.Set(2)
	if calls != 2 {
		t.Errorf("calls = %d, want 2 after unchanged write", calls)
	}
}

func TestRefNaNIsUnchanged(t *testing.T) {
	a := NewRef(math.NaN())
	calls := 0
	Effect(func() {
		calls++
		_ = a.Get()
	})
	a.Set(math.NaN())
	if calls != 1 {
		t.Errorf("calls = %d, want 1; NaN -> NaN is not a change", calls)
	}
	a.Set(1.5)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRefMakesNestedReactive(t *testing.T) {
	a := NewRef(map[string]any{"count": 1})
	var dummy any
	Effect(func() {
		dummy = a.Get().(*Object).Get("count")
	})
	if dummy != 1 {
		t.Fatalf("dummy = %v, want 1", dummy)
	}
	a.Get().(*Object).Set("count", 2)
	if dummy != 2 {
		t.Errorf("dummy = %v, want 2", dummy)
	}
}

func TestRefSameRawMapIsUnchanged(t *testing.T) {
	raw := map[string]any{"a": 1}
	r := NewRef(raw)
	calls := 0
	Effect(func() {
		calls++
		_ = r.Get()
	})
	r.Set(Reactive(raw))
	if calls != 1 {
		t.Errorf("calls = %d, want 1; writing the reactive view of the same map is not a change", calls)
	}
}

func TestIsRefAndUnref(t *testing.T) {
	a := NewRef(1)
	if !IsRef(a) {
		t.Error("IsRef(ref) = false")
	}
	if IsRef(1) {
		t.Error("IsRef(1) = true")
	}
	if IsRef(Reactive(map[string]any{})) {
		t.Error("IsRef(reactive) = true")
	}
	if Unref(a) != 1 || Unref(1) != 1 {
		t.Error("Unref mismatch")
	}
}

func TestProxyRefs(t *testing.T) {
	user := map[string]any{
		"age":  NewRef(10),
		"name": "xiaohong",
	}
	proxy := ProxyRefs(user)

	if user["age"].(*Ref).Get() != 10 {
		t.Fatal("setup")
	}
	if proxy.Get("age") != 10 {
		t.Errorf("proxy age = %v, want 10", proxy.Get("age"))
	}
	if proxy.Get("name") != "xiaohong" {
		t.Errorf("proxy name = %v", proxy.Get("name"))
	}

	proxy.Set("age", 20)
	if proxy.Get("age") != 20 || user["age"].(*Ref).Get() != 20 {
		t.Errorf("write-through failed: proxy=%v ref=%v", proxy.Get("age"), user["age"].(*Ref).Get())
	}

	proxy.Set("age", NewRef(10))
	if proxy.Get("age") != 10 || user["age"].(*Ref).Get() != 10 {
		t.Errorf("ref replacement failed: proxy=%v", proxy.Get("age"))
	}

	if !proxy.Has("name") || proxy.Has("missing") {
		t.Error("Has mismatch")
	}
}

func TestProxyRefsTracksRefs(t *testing.T) {
	count := NewRef(0)
	state := ProxyRefs(map[string]any{"count": count})
	var seen any
	Effect(func() { seen = state.Get("count") })

	count.Set(5)
	if seen != 5 {
		t.Errorf("seen = %v, want 5", seen)
	}
	state.Set("count", 6)
	if seen != 6 {
		t.Errorf("seen = %v, want 6", seen)
	}
}

func TestProxyRefsOverReactive(t *testing.T) {
	state := Reactive(map[string]any{"n": 1})
	proxy := ProxyRefs(state)
	var seen any
	Effect(func() { seen = proxy.Get("n") })

	state.Set("n", 2)
	if seen != 2 {
		t.Errorf("seen = %v, want 2", seen)
	}
	if ProxyRefs(proxy) != proxy {
		t.Error("ProxyRefs(proxy) should return proxy")
	}
}

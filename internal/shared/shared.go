// Package shared holds small helpers used by both the reactive core and the
// renderer.
package shared

import (
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HasChanged reports whether next differs from prev. NaN is equal to NaN and
// +0 differs from -0. Maps, slices, funcs, channels and pointers compare by
// identity.
func HasChanged(prev, next any) bool {
	return !SameValue(prev, next)
}

// SameValue compares two values with identity-aware equality.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && sameFloat(av, bv)
	case float32:
		bv, ok := b.(float32)
		return ok && sameFloat(float64(av), float64(bv))
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		// Structs holding non-comparable fields.
		return reflect.DeepEqual(a, b)
	}
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}

var titler = cases.Title(language.Und, cases.NoLower)

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return titler.String(s[:size]) + s[size:]
}

// Camelize converts kebab-case to camelCase: "add-item" becomes "addItem".
func Camelize(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' && i+1 < len(s) && isASCIILetter(s[i+1]) {
			b.WriteByte(toUpper(s[i+1]))
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ToHandlerKey maps an event name to its handler prop key: "click" becomes
// "onClick".
func ToHandlerKey(event string) string {
	if event == "" {
		return ""
	}
	return "on" + Capitalize(event)
}

// IsOn reports whether a prop key names an event handler ("on" followed by
// an upper-case letter).
func IsOn(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n' && key[2] >= 'A' && key[2] <= 'Z'
}

// EventName decodes a handler prop key into the event it listens to:
// "onClick" becomes "click".
func EventName(key string) string {
	return strings.ToLower(key[2:])
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

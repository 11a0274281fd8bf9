package reactivity

import (
	"sync"

	"github.com/vango-dev/minivue/internal/goid"
)

// trackingContext holds the reactive call stack for a goroutine.
// Each goroutine has its own context so separate sessions can run their
// effects concurrently without sharing a current-effect slot.
type trackingContext struct {
	// effects is the stack of running effects. The top is the effect that
	// receives subscriptions.
	effects []*ReactiveEffect

	// shouldTrack gates tracking. Running an effect pushes true;
	// PauseTracking pushes false.
	shouldTrack bool

	// trackStack saves shouldTrack across nested pushes.
	trackStack []bool
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *trackingContext {
	gid := goid.ID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

// ReleaseGoroutine drops the tracking context of the calling goroutine.
// Long-lived loops call it on exit so contexts do not accumulate.
func ReleaseGoroutine() {
	trackingContexts.Delete(goid.ID())
}

func (tc *trackingContext) activeEffect() *ReactiveEffect {
	if len(tc.effects) == 0 {
		return nil
	}
	return tc.effects[len(tc.effects)-1]
}

func (tc *trackingContext) pushEffect(e *ReactiveEffect) {
	tc.effects = append(tc.effects, e)
	tc.trackStack = append(tc.trackStack, tc.shouldTrack)
	tc.shouldTrack = true
}

func (tc *trackingContext) popEffect() {
	tc.effects[len(tc.effects)-1] = nil
	tc.effects = tc.effects[:len(tc.effects)-1]
	tc.restoreTracking()
}

func (tc *trackingContext) restoreTracking() {
	n := len(tc.trackStack)
	if n == 0 {
		tc.shouldTrack = false
		return
	}
	tc.shouldTrack = tc.trackStack[n-1]
	tc.trackStack = tc.trackStack[:n-1]
}

// isTracking reports whether a read right now should subscribe an effect.
func isTracking() bool {
	tc := getTrackingContext()
	return tc.shouldTrack && tc.activeEffect() != nil
}

// ActiveEffect returns the effect currently collecting dependencies on this
// goroutine, or nil.
func ActiveEffect() *ReactiveEffect {
	return getTrackingContext().activeEffect()
}

// PauseTracking disables dependency collection until the matching
// ResetTracking.
func PauseTracking() {
	tc := getTrackingContext()
	tc.trackStack = append(tc.trackStack, tc.shouldTrack)
	tc.shouldTrack = false
}

// ResetTracking restores the tracking state saved by PauseTracking.
func ResetTracking() {
	getTrackingContext().restoreTracking()
}

// Untracked runs fn without recording reads as dependencies.
//
// Example:
//
//	Untracked(func() {
//	    // Reading state here won't subscribe the running effect
//	    fmt.Println(count.Get())
//	})
func Untracked(fn func()) {
	PauseTracking()
	defer ResetTracking()
	fn()
}

// Package goid reports the identity of the calling goroutine.
//
// The reactive core keeps its tracking state per goroutine so that separate
// sessions can render concurrently. This is an implementation detail and
// should not be relied upon outside the module.
package goid

import "runtime"

// ID returns a unique identifier for the current goroutine.
func ID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> "
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

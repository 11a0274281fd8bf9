// Package errors provides structured, coded error messages for minivue.
//
// The reactive core and the renderer never fail loudly: writes to readonly
// objects, missing slots and unmatched emits are policy decisions, not
// errors. The codes here describe those diagnostics and the failures of the
// outer surfaces (configuration, snapshot sinks, the live protocol, the CLI).
//
// # Error Categories
//
//   - runtime: reactive or render-time diagnostics
//   - config: configuration loading
//   - storage: snapshot sinks
//   - protocol: live-session wire messages
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("E202").
//	    WithDetail("target " + target + " has no bucket").
//	    WithSuggestion("Use s3://bucket/prefix")
//
//	fmt.Println(err.Format())
package errors

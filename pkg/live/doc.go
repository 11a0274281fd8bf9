// Package live serves component trees over WebSocket.
//
// Each connection gets its own memhost tree, scheduler and event loop. The
// server mounts the requested app, then streams the host operation log to
// the client as JSON frames:
//
//	{"type":"hello","session":"<uuid>","root":1}
//	{"type":"ops","ops":[{"op":"create","node":2,"tag":"div"}, ...]}
//
// Clients send events targeting host node IDs:
//
//	{"type":"event","node":4,"event":"click","args":[]}
//
// Events are dispatched onto the session loop, so handlers and the
// re-renders they schedule never run concurrently with each other. The ops
// produced by an event are sent once the loop has drained its microtask
// queue.
package live

package memhost

// OpKind names a host operation.
type OpKind string

const (
	OpCreate     OpKind = "create"
	OpCreateText OpKind = "create_text"
	OpInsert     OpKind = "insert"
	OpRemove     OpKind = "remove"
	OpPatchProp  OpKind = "patch_prop"
	OpSetText    OpKind = "set_text"
)

// Op is one logged host operation. It is the unit streamed to live
// clients, so event handlers never appear in Value; listener changes carry
// the event name in Event and Listen reports whether one is installed.
type Op struct {
	Kind   OpKind `json:"op"`
	Node   int    `json:"node"`
	Parent int    `json:"parent,omitempty"`
	Anchor int    `json:"anchor,omitempty"`
	Tag    string `json:"tag,omitempty"`
	Text   string `json:"text,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  any    `json:"value,omitempty"`
	Event  string `json:"event,omitempty"`
	Listen bool   `json:"listen,omitempty"`
	// Move is set on inserts of a node that was already attached.
	Move bool `json:"move,omitempty"`
}

package memhost

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/internal/shared"
)

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger for unknown-node diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// Host is an in-memory host tree with an operation log.
type Host struct {
	mu        sync.Mutex
	nextID    int
	nodes     map[int]*Node
	ops       []Op
	observers map[int]func(Op)
	nextObs   int
	logger    *slog.Logger
}

// New creates an empty host.
func New(opts ...Option) *Host {
	h := &Host{
		nodes:     make(map[int]*Node),
		observers: make(map[int]func(Op)),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateContainer creates a detached element to mount into. It is not
// logged.
func (h *Host) CreateContainer(tag string) *Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.newNodeLocked(ElementNode, tag, "")
}

// CreateElement implements runtime.HostAdapter.
func (h *Host) CreateElement(tag string) any {
	h.mu.Lock()
	n := h.newNodeLocked(ElementNode, tag, "")
	h.mu.Unlock()

	h.record(Op{Kind: OpCreate, Node: n.ID, Tag: tag})
	return n
}

// CreateText implements runtime.HostAdapter.
func (h *Host) CreateText(text string) any {
	h.mu.Lock()
	n := h.newNodeLocked(TextNode, "", text)
	h.mu.Unlock()

	h.record(Op{Kind: OpCreateText, Node: n.ID, Text: text})
	return n
}

// PatchProp implements runtime.HostAdapter. Keys matching "on" followed by
// an upper-case letter install (or, with a nil next, remove) a listener
// for the lower-cased event name.
func (h *Host) PatchProp(el any, key string, prev, next any) {
	n := h.node(el, "patch_prop")
	if n == nil {
		return
	}

	op := Op{Kind: OpPatchProp, Node: n.ID, Key: key}
	h.mu.Lock()
	if shared.IsOn(key) {
		event := shared.EventName(key)
		op.Event = event
		if next == nil {
			delete(n.Listeners, event)
		} else {
			if n.Listeners == nil {
				n.Listeners = make(map[string]any)
			}
			n.Listeners[event] = next
			op.Listen = true
		}
	} else {
		if next == nil {
			delete(n.Attrs, key)
		} else {
			if n.Attrs == nil {
				n.Attrs = make(map[string]any)
			}
			n.Attrs[key] = next
			op.Value = next
		}
	}
	h.mu.Unlock()

	h.record(op)
}

// Insert implements runtime.HostAdapter. An anchor that is not a child of
// parent appends.
func (h *Host) Insert(child, parent, anchor any) {
	c := h.node(child, "insert")
	p := h.node(parent, "insert")
	if c == nil || p == nil {
		return
	}
	var a *Node
	if anchor != nil {
		a = h.node(anchor, "insert")
	}

	h.mu.Lock()
	moved := c.Parent != nil
	c.detach()
	idx := -1
	if a != nil {
		idx = p.indexOf(a)
	}
	if idx < 0 {
		p.Children = append(p.Children, c)
		a = nil
	} else {
		p.Children = append(p.Children, nil)
		copy(p.Children[idx+1:], p.Children[idx:])
		p.Children[idx] = c
	}
	c.Parent = p
	p.Text = ""
	h.mu.Unlock()

	op := Op{Kind: OpInsert, Node: c.ID, Parent: p.ID, Move: moved}
	if a != nil {
		op.Anchor = a.ID
	}
	h.record(op)
}

// Remove implements runtime.HostAdapter.
func (h *Host) Remove(child any) {
	c := h.node(child, "remove")
	if c == nil {
		return
	}
	h.mu.Lock()
	c.detach()
	h.mu.Unlock()

	h.record(Op{Kind: OpRemove, Node: c.ID})
}

// SetElementText implements runtime.HostAdapter. On an element it drops
// all children.
func (h *Host) SetElementText(el any, text string) {
	n := h.node(el, "set_text")
	if n == nil {
		return
	}
	h.mu.Lock()
	if n.Kind == ElementNode {
		for _, c := range n.Children {
			c.Parent = nil
		}
		n.Children = nil
	}
	n.Text = text
	h.mu.Unlock()

	h.record(Op{Kind: OpSetText, Node: n.ID, Text: text})
}

// NextSibling implements runtime.SiblingHost.
func (h *Host) NextSibling(node any) any {
	n := h.node(node, "next_sibling")
	if n == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.indexOf(n)
	if i < 0 || i+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[i+1]
}

// Node returns the node with id.
func (h *Host) Node(id int) (*Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.nodes[id]
	return n, ok
}

// Fire calls the listener registered on node for event with args.
func (h *Host) Fire(node *Node, event string, args ...any) error {
	h.mu.Lock()
	handler, ok := node.Listeners[event]
	h.mu.Unlock()
	if !ok {
		return errors.New("E004").WithDetail(fmt.Sprintf("node %d has no %q listener", node.ID, event))
	}
	_, err := shared.Invoke(handler, args...)
	return err
}

// Ops returns a copy of the operation log.
func (h *Host) Ops() []Op {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Op, len(h.ops))
	copy(out, h.ops)
	return out
}

// TakeOps returns the operation log and clears it.
func (h *Host) TakeOps() []Op {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.ops
	h.ops = nil
	return out
}

// ResetOps clears the operation log.
func (h *Host) ResetOps() {
	h.mu.Lock()
	h.ops = nil
	h.mu.Unlock()
}

// Count returns how many logged operations have kind. For OpInsert, moves
// are counted separately by CountMoves.
func (h *Host) Count(kind OpKind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, op := range h.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// CountMoves returns how many inserts moved an attached node.
func (h *Host) CountMoves() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, op := range h.ops {
		if op.Kind == OpInsert && op.Move {
			n++
		}
	}
	return n
}

// Observe registers fn to receive every operation after it is logged. The
// returned function unregisters it.
func (h *Host) Observe(fn func(Op)) func() {
	h.mu.Lock()
	id := h.nextObs
	h.nextObs++
	h.observers[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

func (h *Host) newNodeLocked(kind NodeKind, tag, text string) *Node {
	h.nextID++
	n := &Node{ID: h.nextID, Kind: kind, Tag: tag, Text: text}
	h.nodes[n.ID] = n
	return n
}

func (h *Host) record(op Op) {
	h.mu.Lock()
	h.ops = append(h.ops, op)
	observers := make([]func(Op), 0, len(h.observers))
	for _, fn := range h.observers {
		observers = append(observers, fn)
	}
	h.mu.Unlock()

	for _, fn := range observers {
		fn(op)
	}
}

func (h *Host) node(v any, op string) *Node {
	n, ok := v.(*Node)
	if !ok || n == nil {
		h.logger.Warn("unknown host node",
			"error", errors.New("E004").WithDetail(fmt.Sprintf("%s: %T", op, v)))
		return nil
	}
	return n
}

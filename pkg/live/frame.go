package live

import (
	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/host/memhost"
)

// Frame types.
const (
	FrameHello = "hello"
	FrameOps   = "ops"
	FrameError = "error"
	FramePong  = "pong"

	FrameEvent = "event"
	FramePing  = "ping"
)

// ServerFrame is a message sent to the client.
type ServerFrame struct {
	Type    string       `json:"type"`
	Session string       `json:"session,omitempty"`
	Root    int          `json:"root,omitempty"`
	Ops     []memhost.Op `json:"ops,omitempty"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ClientFrame is a message received from the client.
type ClientFrame struct {
	Type  string `json:"type"`
	Node  int    `json:"node,omitempty"`
	Event string `json:"event,omitempty"`
	Args  []any  `json:"args,omitempty"`
}

func errorFrame(err *errors.Error) ServerFrame {
	return ServerFrame{Type: FrameError, Code: err.Code, Message: err.Error()}
}

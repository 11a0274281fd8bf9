package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/host/memhost"
	"github.com/vango-dev/minivue/pkg/metrics"
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

var counter = &runtime.Component{
	Name: "Counter",
	Setup: func(*reactivity.Object, *runtime.SetupContext) map[string]any {
		count := reactivity.NewRef(0)
		return map[string]any{
			"count": count,
			"inc": func(n int) {
				count.Set(count.Peek().(int) + n)
			},
		}
	},
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		return vdom.H("button", vdom.Props{"onClick": this.Get("inc")},
			fmt.Sprintf("count %v", this.Get("count")))
	},
}

func resolve(name string) (*runtime.Component, vdom.Props, error) {
	if name == "counter" {
		return counter, nil, nil
	}
	return nil, nil, errors.New("E401").WithDetail(name)
}

type testEnv struct {
	srv *Server
	ts  *httptest.Server
	reg *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv := New(resolve,
		WithMetrics(metrics.New(metrics.WithRegistry(reg)), reg),
		WithReadTimeout(0),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return &testEnv{srv: srv, ts: ts, reg: reg}
}

func (e *testEnv) dial(t *testing.T, app string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.ts.URL, "http") + "/ws/" + app
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(e.ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func readFrame(t *testing.T, conn *websocket.Conn) ServerFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f ServerFrame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

// handshake reads the hello and initial ops frames and returns the button
// node ID.
func handshake(t *testing.T, conn *websocket.Conn) (ServerFrame, int) {
	t.Helper()
	hello := readFrame(t, conn)
	require.Equal(t, FrameHello, hello.Type)

	mount := readFrame(t, conn)
	require.Equal(t, FrameOps, mount.Type)
	for _, op := range mount.Ops {
		if op.Kind == memhost.OpCreate && op.Tag == "button" {
			return hello, op.Node
		}
	}
	t.Fatalf("mount ops have no button: %+v", mount.Ops)
	return hello, 0
}

func TestSessionStreamsOps(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "counter")

	hello, button := handshake(t, conn)
	_, err := uuid.Parse(hello.Session)
	assert.NoError(t, err)
	assert.NotZero(t, hello.Root)

	require.NoError(t, conn.WriteJSON(ClientFrame{
		Type: FrameEvent, Node: button, Event: "click", Args: []any{2},
	}))

	f := readFrame(t, conn)
	require.Equal(t, FrameOps, f.Type)
	require.Len(t, f.Ops, 1)
	assert.Equal(t, memhost.OpSetText, f.Ops[0].Kind)
	assert.Equal(t, button, f.Ops[0].Node)
	assert.Equal(t, "count 2", f.Ops[0].Text)
}

func TestSessionRejectsBadFrames(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "counter")
	handshake(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	f := readFrame(t, conn)
	assert.Equal(t, FrameError, f.Type)
	assert.Equal(t, "E301", f.Code)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: "shout"}))
	f = readFrame(t, conn)
	assert.Equal(t, "E301", f.Code)
	assert.Contains(t, f.Message, "shout")

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameEvent, Node: 999, Event: "click"}))
	f = readFrame(t, conn)
	assert.Equal(t, "E302", f.Code)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FramePing}))
	f = readFrame(t, conn)
	assert.Equal(t, FramePong, f.Type)
}

func TestUnknownApp(t *testing.T) {
	env := newTestEnv(t)
	code, body := env.get(t, "/ws/nope")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "E401")
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "counter")
	_, button := handshake(t, conn)

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameEvent, Node: button, Event: "click", Args: []any{1}}))
	readFrame(t, conn)

	code, body := env.get(t, "/healthz")
	require.Equal(t, http.StatusOK, code)
	var health map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(1), health["sessions"])
	assert.Len(t, env.srv.Sessions(), 1)

	code, body = env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "minivue_live_sessions_active 1")
	assert.Contains(t, body, `minivue_live_events_total{status="ok"} 1`)
	assert.Contains(t, body, "minivue_host_ops_total")
	assert.Contains(t, body, "minivue_scheduler_flushes_total")

	conn.Close()
	require.Eventually(t, func() bool {
		return len(env.srv.Sessions()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServerCloseEndsSessions(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "counter")
	handshake(t, conn)

	env.srv.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Empty(t, env.srv.Sessions())
}

func TestListenAndServeStops(t *testing.T) {
	srv := New(resolve)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return")
	}
}

package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/pkg/host/memhost"
	"github.com/vango-dev/minivue/pkg/metrics"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/scheduler"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// Event outcomes reported to the metrics collector.
const (
	EventOK       = "ok"
	EventFailed   = "failed"
	EventRejected = "rejected"
	EventDropped  = "dropped"
)

// Session is one connected client and the tree it drives.
type Session struct {
	id        string
	name      string
	conn      *websocket.Conn
	host      *memhost.Host
	root      *memhost.Node
	loop      *scheduler.Loop
	app       *runtime.App
	config    *Config
	logger    *slog.Logger
	collector *metrics.Collector
	ctx       context.Context
	cancel    context.CancelFunc
}

func newSession(ctx context.Context, id, name string, conn *websocket.Conn, comp *runtime.Component, props vdom.Props, cfg *Config) *Session {
	logger := cfg.Logger.With("session", id, "app", name)
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:        id,
		name:      name,
		conn:      conn,
		config:    cfg,
		logger:    logger,
		collector: cfg.Collector,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.host = memhost.New(memhost.WithLogger(logger))
	s.root = s.host.CreateContainer("div")

	var host runtime.HostAdapter = s.host
	schedOpts := []scheduler.Option{scheduler.WithLogger(logger)}
	if s.collector != nil {
		host = metrics.Host(s.host, s.collector)
		schedOpts = append(schedOpts, scheduler.WithObserver(s.collector))
	}
	sched := scheduler.New(schedOpts...)

	s.loop = scheduler.NewLoop(sched,
		scheduler.WithQueueSize(cfg.QueueSize),
		scheduler.WithLoopLogger(logger),
		scheduler.AfterTask(s.flush),
	)
	renderer := runtime.NewRenderer(host,
		runtime.WithScheduler(sched),
		runtime.WithLogger(logger),
	)
	s.app = renderer.CreateApp(comp, props)
	return s
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// App returns the name of the mounted app.
func (s *Session) App() string { return s.name }

// Close ends the session. The connection is closed and the read loop
// returns.
func (s *Session) Close() {
	s.cancel()
}

// serve mounts the app and processes client frames until the connection
// closes or the session is cancelled.
func (s *Session) serve() error {
	defer s.cancel()

	go s.loop.Run(s.ctx)
	go func() {
		<-s.ctx.Done()
		s.conn.Close()
	}()

	err := s.loop.Call(s.ctx, s.start)
	if err == nil {
		s.readLoop()
	}

	s.cancel()
	<-s.loop.Done()
	s.app.Unmount()
	return err
}

// start runs on the loop. The hello frame goes out before the mount ops,
// which AfterTask flushes.
func (s *Session) start() {
	s.write(ServerFrame{Type: FrameHello, Session: s.id, Root: s.root.ID})
	s.app.Mount(s.root)
}

func (s *Session) readLoop() {
	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		if s.config.ReadTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		}
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if s.ctx.Err() == nil && websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "error", err)
			}
			return
		}

		var frame ClientFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			s.reject(errors.New("E301").WithDetail("invalid JSON").Wrap(err))
			continue
		}

		switch frame.Type {
		case FrameEvent:
			s.dispatchEvent(frame)
		case FramePing:
			s.loop.Dispatch(func() {
				s.write(ServerFrame{Type: FramePong})
			})
		default:
			s.reject(errors.New("E301").WithDetail("unknown frame type " + frame.Type))
		}
	}
}

func (s *Session) dispatchEvent(frame ClientFrame) {
	if frame.Node == 0 || frame.Event == "" {
		s.reject(errors.New("E301").WithDetail("event frame needs node and event"))
		return
	}
	ok := s.loop.Dispatch(func() {
		n, found := s.host.Node(frame.Node)
		if !found {
			s.fail(errors.New("E302").WithDetail("unknown node"))
			return
		}
		if err := s.host.Fire(n, frame.Event, frame.Args...); err != nil {
			s.fail(errors.New("E302").WithDetail(frame.Event).Wrap(err))
			return
		}
		s.observe(EventOK)
	})
	if !ok {
		s.observe(EventDropped)
	}
}

// reject reports a malformed frame. It is called from the read goroutine,
// so the error frame is written from the loop.
func (s *Session) reject(err *errors.Error) {
	s.logger.Warn("rejected client frame", "error", err)
	s.observe(EventRejected)
	s.loop.Dispatch(func() {
		s.write(errorFrame(err))
	})
}

// fail reports an event that could not be delivered. It runs on the loop.
func (s *Session) fail(err *errors.Error) {
	s.logger.Warn("event failed", "error", err)
	s.observe(EventFailed)
	s.write(errorFrame(err))
}

func (s *Session) observe(status string) {
	if s.collector != nil {
		s.collector.LiveEvent(status)
	}
}

// flush sends the ops logged since the last flush. It runs on the loop.
func (s *Session) flush() {
	ops := s.host.TakeOps()
	if len(ops) == 0 {
		return
	}
	s.write(ServerFrame{Type: FrameOps, Ops: ops})
}

// write sends a frame. Only the loop goroutine writes to the connection.
func (s *Session) write(frame ServerFrame) {
	if s.ctx.Err() != nil {
		return
	}
	if s.config.WriteTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if err := s.conn.WriteJSON(frame); err != nil {
		s.logger.Warn("write failed", "error", err, "frame", frame.Type)
		s.cancel()
	}
}

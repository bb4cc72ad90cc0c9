package wsbridge

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phanxgames/gesture"
)

// Server upgrades HTTP requests to websockets and runs one gesture engine
// per connection. Each engine is driven only from its connection's read
// loop.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	cfg      gesture.Config
	maxConns int
	conns    map[*websocket.Conn]*session
}

// NewServer creates a server whose engines start from cfg. maxConns <= 0
// means no limit.
func NewServer(cfg gesture.Config, maxConns int) (*Server, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	return &Server{
		cfg:      cfg,
		maxConns: maxConns,
		conns:    make(map[*websocket.Conn]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// session is one connection's engine plus the listener binding it.
type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	engine  *gesture.Engine
	opened  time.Time
	target  gesture.Target
	sink    gesture.Sink
	err     error
}

// Attach implements gesture.Listener.
func (c *session) Attach(target gesture.Target, sink gesture.Sink) {
	c.target, c.sink = target, sink
}

// Detach implements gesture.Listener.
func (c *session) Detach() {
	c.target, c.sink = gesture.NoTarget, nil
}

// ServeHTTP upgrades the connection and processes input messages until the
// client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	sess, err := s.acceptConn(conn)
	if err != nil {
		s.rejectConn(conn, err.Error())
		return
	}
	defer s.cleanupConn(conn)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.handleMessage(sess, msg)
		if sess.err != nil {
			return
		}
	}
}

// Conns returns the number of open connections.
func (s *Server) Conns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close tells every client the server is going away and closes their
// sockets. The read loops exit on their own.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.conns))
	for _, sess := range s.conns {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown")
	for _, sess := range sessions {
		sess.writeMu.Lock()
		_ = sess.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(1*time.Second))
		sess.writeMu.Unlock()
		_ = sess.conn.Close()
	}
}

// acceptConn registers a connection and builds its engine.
func (s *Server) acceptConn(conn *websocket.Conn) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxConns > 0 && len(s.conns) >= s.maxConns {
		return nil, fmt.Errorf("too many connections")
	}
	e, err := gesture.NewEngineFromConfig(s.cfg)
	if err != nil {
		return nil, err
	}
	sess := &session{conn: conn, engine: e, opened: time.Now()}
	e.SetListener(sess)
	e.OnGesture(func(ev gesture.GestureEvent) {
		s.sendTo(sess, encodeGesture(ev))
	})
	s.conns[conn] = sess
	return sess, nil
}

// rejectConn sends a policy violation close and closes the socket.
func (s *Server) rejectConn(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(1*time.Second))
	_ = conn.Close()
}

// cleanupConn forgets the connection and cancels whatever its engine had
// in flight.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	sess := s.conns[conn]
	delete(s.conns, conn)
	s.mu.Unlock()
	if sess != nil {
		sess.engine.SetEnabled(false)
	}
	_ = conn.Close()
}

// handleMessage dispatches a single input message. Malformed input is
// answered with an error notice and otherwise ignored.
func (s *Server) handleMessage(sess *session, msg Message) {
	switch msg.T {
	case "target":
		s.sendTo(sess, encodeReport(sess.engine.SetTarget(gesture.Target(msg.Target))))
		return
	case "enabled":
		if msg.Enabled == nil {
			s.sendTo(sess, Notice{T: "error", Error: "enabled without value"})
			return
		}
		s.sendTo(sess, encodeReport(sess.engine.SetEnabled(*msg.Enabled)))
		return
	case "blur":
		s.sendTo(sess, encodeReport(sess.engine.Blur()))
		return
	}

	ev, err := decode(msg, sess.opened, sess.target)
	if err != nil {
		s.sendTo(sess, Notice{T: "error", Error: err.Error()})
		return
	}
	// detached: disabled or unbound, so the engine would drop it anyway
	if sess.sink == nil {
		return
	}
	sess.sink.Handle(ev)
}

// sendTo writes a notice to the session. The first write failure is kept
// and ends the read loop.
func (s *Server) sendTo(sess *session, n Notice) {
	if sess.err != nil {
		return
	}
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.WriteJSON(n); err != nil {
		sess.err = err
	}
}

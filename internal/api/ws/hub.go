package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/session"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

const (
	maxMessageBytes = 64 << 10
	dispatchTimeout = 10 * time.Second
)

// Message types
const (
	TypeSystem     = "system"
	TypeSnapshot   = "snapshot"
	TypeResult     = "result"
	TypeIntent     = "intent"
	TypeMenuIntent = "menu_intent"
	TypePing       = "ping"
	TypePong       = "pong"
	TypeError      = "error"
)

// Inbound is a client message
type Inbound struct {
	Type   string        `json:"type"`
	Intent *types.Intent `json:"intent,omitempty"`
}

// Outbound is a server message
type Outbound struct {
	Type      string            `json:"type"`
	ClientID  string            `json:"clientId,omitempty"`
	Snapshot  *session.Snapshot `json:"snapshot,omitempty"`
	Result    *session.Result   `json:"result,omitempty"`
	Message   string            `json:"message,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Options configures a Hub
type Options struct {
	// AllowedOrigins restricts the Origin header; empty allows any
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *monitoring.Metrics
}

// Hub fans session snapshots out to every connected client
type Hub struct {
	session  *session.Manager
	upgrader websocket.Upgrader
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	mu          sync.Mutex
	clients     map[uuid.UUID]*client
	lastSeq     uint64
	lastVersion string
	closed      bool

	unsubscribe func()
}

// NewHub creates a hub subscribed to sess
func NewHub(sess *session.Manager, opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Hub{
		session: sess,
		logger:  logger.Named("ws"),
		metrics: opts.Metrics,
		clients: make(map[uuid.UUID]*client),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	h.unsubscribe = sess.Subscribe(h.Broadcast)
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// HandleConnection upgrades the request and serves the client until it
// disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(maxMessageBytes)

	cl := newClient(conn)
	if !h.register(cl) {
		cl.stop()
		return
	}
	defer h.unregister(cl)

	h.send(cl, Outbound{Type: TypeSystem, ClientID: cl.id.String(), Message: "connected"})
	snap := h.session.Snapshot()
	h.send(cl, Outbound{Type: TypeSnapshot, Snapshot: &snap})

	h.readLoop(cl)
}

func (h *Hub) readLoop(cl *client) {
	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.String("client", cl.id.String()), zap.Error(err))
			}
			return
		}

		var msg Inbound
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.metrics.RecordWSMessage("in", "invalid")
			h.send(cl, Outbound{Type: TypeError, Message: "malformed message"})
			continue
		}
		h.metrics.RecordWSMessage("in", msg.Type)
		h.handle(cl, msg)
	}
}

func (h *Hub) handle(cl *client, msg Inbound) {
	switch msg.Type {
	case TypePing:
		h.send(cl, Outbound{Type: TypePong})
	case TypeIntent, TypeMenuIntent:
		if msg.Intent == nil {
			h.send(cl, Outbound{Type: TypeError, Message: "intent required"})
			return
		}
		h.dispatch(cl, *msg.Intent, msg.Type == TypeMenuIntent)
	default:
		h.send(cl, Outbound{Type: TypeError, Message: "unknown message type"})
	}
}

func (h *Hub) dispatch(cl *client, in types.Intent, fromMenu bool) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	var (
		res session.Result
		err error
	)
	if fromMenu {
		res, err = h.session.DispatchFromMenu(ctx, in)
	} else {
		res, err = h.session.Dispatch(ctx, in)
	}

	out := Outbound{Type: TypeResult, Result: &res}
	if err != nil {
		out.Message = err.Error()
	}
	h.send(cl, out)
}

// Broadcast sends snap to every client. Snapshots older than the last one
// sent, or equal to it in content, are skipped.
func (h *Hub) Broadcast(snap session.Snapshot) {
	data, err := encode(Outbound{Type: TypeSnapshot, Snapshot: &snap})
	if err != nil {
		h.logger.Error("Failed to encode snapshot", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || snap.Seq < h.lastSeq {
		return
	}
	if snap.Version != "" && snap.Version == h.lastVersion {
		h.lastSeq = snap.Seq
		return
	}
	h.lastSeq, h.lastVersion = snap.Seq, snap.Version

	for id, cl := range h.clients {
		if cl.enqueue(data) {
			h.metrics.RecordWSMessage("out", TypeSnapshot)
			continue
		}
		h.logger.Warn("Disconnecting slow client", zap.String("client", id.String()))
		h.drop(cl)
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and stops listening to the session
func (h *Hub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, cl := range h.clients {
		h.drop(cl)
	}
}

func (h *Hub) register(cl *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[cl.id] = cl
	h.metrics.IncWSConnections()
	h.logger.Debug("Client connected",
		zap.String("client", cl.id.String()),
		zap.Int("clients", len(h.clients)))
	return true
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl.id]; ok {
		h.drop(cl)
	}
	cl.stop()
}

// drop must hold lock
func (h *Hub) drop(cl *client) {
	delete(h.clients, cl.id)
	h.metrics.DecWSConnections()
	cl.stop()
}

func (h *Hub) send(cl *client, out Outbound) {
	data, err := encode(out)
	if err != nil {
		h.logger.Error("Failed to encode message", zap.String("type", out.Type), zap.Error(err))
		return
	}
	if cl.enqueue(data) {
		h.metrics.RecordWSMessage("out", out.Type)
	}
}

func encode(out Outbound) ([]byte, error) {
	out.Timestamp = time.Now().Unix()
	return sonic.ConfigStd.Marshal(out)
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/sitecraft-go/internal/application/services"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/sitecraft-go/internal/infrastructure/observability/logging"
)

const counterSendBuffer = 64

// counterMessage is what the page script sends over the counter socket.
type counterMessage struct {
	Type    string `json:"type"`
	Index   int    `json:"index"`
	Visible bool   `json:"visible"`
}

// RealtimeHandlers serve the preview and counter websockets
type RealtimeHandlers struct {
	hub            *messaging.Hub
	counterService *services.CounterStreamService
	configService  *services.ConfigService
	upgrader       websocket.Upgrader
	writeTimeout   time.Duration
	logger         *logging.ChanneledLogger
}

func NewRealtimeHandlers(hub *messaging.Hub, counterService *services.CounterStreamService, configService *services.ConfigService,
	allowedOrigins []string, writeTimeout time.Duration, logger *logging.ChanneledLogger) *RealtimeHandlers {
	return &RealtimeHandlers{
		hub:            hub,
		counterService: counterService,
		configService:  configService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// originChecker admits same-host origins, listed origins, or anything when
// the list holds "*".
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// GetPreviewSocket handles GET /api/v1/admin/preview/ws - config.updated
// events for the tenant
func (h *RealtimeHandlers) GetPreviewSocket(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Realtime().Debug("Preview upgrade failed", "tenantId", t.ID(), "error", err)
		return
	}

	h.logger.Realtime().Info("Preview client connected", "tenantId", t.ID())
	if err := h.hub.ServeConn(conn, t.ID(), h.writeTimeout); err != nil {
		h.logger.Realtime().Warn("Preview client rejected", "tenantId", t.ID(), "error", err)
		return
	}
	h.logger.Realtime().Info("Preview client disconnected", "tenantId", t.ID())
}

// GetCounterSocket handles GET /api/v1/counters/ws. The client reports
// which stat counters are on screen and receives animation frames. Saved
// configuration changes reach the socket through the hub and restart the
// counters against the new stats.
func (h *RealtimeHandlers) GetCounterSocket(c *gin.Context) {
	t, ok := tenantFrom(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Realtime().Debug("Counter upgrade failed", "tenantId", t.ID(), "error", err)
		return
	}

	out := make(chan []byte, counterSendBuffer)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		messaging.WritePump(conn, out, h.writeTimeout)
	}()

	ctx, cancel := context.WithCancel(c.Request.Context())
	outbox := newCounterOutbox()
	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		outbox.pump(ctx, out, writerDone)
	}()

	session := h.counterService.NewSession(ctx, outbox.frame)
	stream := &counterStream{tenant: t, session: session, outbox: outbox, configService: h.configService, logger: h.logger}

	var updates *messaging.Client
	updatesDone := make(chan struct{})
	if h.hub != nil {
		updates = messaging.NewClient(t.ID())
		if err := h.hub.Register(updates); err != nil {
			h.logger.Realtime().Debug("Counter socket not subscribed to updates", "tenantId", t.ID(), "error", err)
			updates = nil
		}
	}
	if updates != nil {
		go func() {
			defer close(updatesDone)
			for message := range updates.Send {
				var event messaging.Event
				if json.Unmarshal(message, &event) == nil && event.Type == messaging.EventConfigUpdated {
					stream.reload()
				}
			}
		}()
	} else {
		close(updatesDone)
	}

	defer func() {
		cancel()
		if updates != nil {
			h.hub.Unregister(updates)
		}
		<-updatesDone
		session.Close()
		<-pumpDone
		close(out)
		<-writerDone
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg counterMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			outbox.message(gin.H{"type": "error", "error": "invalid message"})
			continue
		}

		switch msg.Type {
		case "sync":
			stream.sync()
		case "visibility":
			if err := session.SetVisible(msg.Index, msg.Visible); err != nil {
				outbox.message(gin.H{"type": "error", "error": err.Error()})
			}
		default:
			outbox.message(gin.H{"type": "error", "error": "unknown message type"})
		}
	}
}

// counterStream ties a counter session to the tenant's stored stats. The
// read loop and the update subscription both swap targets through it.
type counterStream struct {
	mu            sync.Mutex
	tenant        services.TenantScope
	session       *services.CounterSession
	outbox        *counterOutbox
	configService *services.ConfigService
	logger        *logging.ChanneledLogger
	synced        bool
}

func (s *counterStream) sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, cfg, err := s.configService.GetConfig(s.tenant)
	if err != nil {
		s.logger.Realtime().Warn("Counter sync failed", "tenantId", s.tenant.ID(), "error", err)
		s.outbox.message(gin.H{"type": "error", "error": "configuration unavailable"})
		return
	}
	targets := s.session.Sync(cfg.AboutStats)
	s.outbox.targets(s.session.Generation(), gin.H{"type": "targets", "targets": targets})
	s.synced = true
}

// reload is a no-op until the client has synced once.
func (s *counterStream) reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.synced {
		return
	}
	_, cfg, err := s.configService.GetConfig(s.tenant)
	if err != nil {
		s.logger.Realtime().Warn("Counter reload failed", "tenantId", s.tenant.ID(), "error", err)
		return
	}
	targets, changed := s.session.Reload(cfg.AboutStats)
	if !changed {
		return
	}
	s.logger.Realtime().Debug("Counter targets reloaded", "tenantId", s.tenant.ID(), "count", len(targets))
	s.outbox.targets(s.session.Generation(), gin.H{"type": "targets", "targets": targets})
}

// counterOutbox orders everything written to one counter socket. Control
// messages go first. Frames are coalesced per counter, so a slow writer
// skips intermediate values but always receives the latest one.
type counterOutbox struct {
	mu      sync.Mutex
	control [][]byte
	frames  map[int]services.CounterFrame
	order   []int
	gen     int
	wake    chan struct{}
}

func newCounterOutbox() *counterOutbox {
	return &counterOutbox{frames: make(map[int]services.CounterFrame), wake: make(chan struct{}, 1)}
}

// frame never blocks. Frames older than the current generation are dropped.
func (o *counterOutbox) frame(f services.CounterFrame) {
	o.mu.Lock()
	if f.Generation < o.gen {
		o.mu.Unlock()
		return
	}
	if f.Generation > o.gen {
		o.dropFramesLocked(f.Generation)
	}
	if _, ok := o.frames[f.Index]; !ok {
		o.order = append(o.order, f.Index)
	}
	o.frames[f.Index] = f
	o.mu.Unlock()
	o.signal()
}

// message queues a control message. It reports false when the queue is full.
func (o *counterOutbox) message(v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	o.mu.Lock()
	if len(o.control) >= counterSendBuffer {
		o.mu.Unlock()
		return false
	}
	o.control = append(o.control, b)
	o.mu.Unlock()
	o.signal()
	return true
}

// targets queues a targets message and discards frames from generations
// before gen.
func (o *counterOutbox) targets(gen int, v any) {
	o.mu.Lock()
	if gen > o.gen {
		o.dropFramesLocked(gen)
	}
	o.mu.Unlock()
	o.message(v)
}

func (o *counterOutbox) dropFramesLocked(gen int) {
	o.gen = gen
	kept := o.order[:0]
	for _, idx := range o.order {
		if o.frames[idx].Generation < gen {
			delete(o.frames, idx)
			continue
		}
		kept = append(kept, idx)
	}
	o.order = kept
}

func (o *counterOutbox) signal() {
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

func (o *counterOutbox) take() [][]byte {
	o.mu.Lock()
	defer o.mu.Unlock()

	batch := o.control
	o.control = nil
	for _, idx := range o.order {
		b, err := json.Marshal(gin.H{"type": "frame", "frame": o.frames[idx]})
		if err == nil {
			batch = append(batch, b)
		}
	}
	clear(o.frames)
	o.order = o.order[:0]
	return batch
}

// pump moves queued messages into out until ctx is done or the writer
// has quit. Sends block, so nothing queued is lost to a full buffer.
func (o *counterOutbox) pump(ctx context.Context, out chan<- []byte, writerDone <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-writerDone:
			return
		case <-o.wake:
		}
		for _, b := range o.take() {
			select {
			case out <- b:
			case <-ctx.Done():
				return
			case <-writerDone:
				return
			}
		}
	}
}

package bridge

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"meshvr/internal/xr"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 100 * time.Millisecond
	pulseQueue   = 8
)

// ErrPulseDropped is returned when a page has fallen behind on pulses.
var ErrPulseDropped = errors.New("bridge client busy, pulse dropped")

// Server accepts WebXR bridge pages on /ws. Every page may announce up to
// two controllers. A hand belongs to the page that announced it last, and
// only that page can move it or disconnect it.
type Server struct {
	upgrader websocket.Upgrader
	events   chan xr.Event
	log      *zap.Logger

	mu     sync.Mutex
	conns  map[*peer]struct{}
	owners [2]*peer
}

// peer is one websocket client. writeLoop is the only writer on ws.
type peer struct {
	ws     *websocket.Conn
	pulses chan PulseMessage
	done   chan struct{}
}

func newPeer(ws *websocket.Conn) *peer {
	return &peer{
		ws:     ws,
		pulses: make(chan PulseMessage, pulseQueue),
		done:   make(chan struct{}),
	}
}

func (p *peer) writeLoop(log *zap.Logger) {
	for {
		select {
		case <-p.done:
			return
		case m := <-p.pulses:
			_ = p.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := p.ws.WriteJSON(m); err != nil {
				log.Debug("pulse write failed", zap.Error(err))
			}
		}
	}
}

// remoteActuator forwards pulses to the page owning the controller. Pulse
// never waits on the network.
type remoteActuator struct {
	peer *peer
	hand xr.Hand
}

func (a *remoteActuator) Pulse(intensity float32, d time.Duration) error {
	select {
	case a.peer.pulses <- PulseMessage{
		Type:       "pulse",
		Hand:       a.hand.String(),
		Intensity:  intensity,
		DurationMs: d.Milliseconds(),
	}:
		return nil
	default:
		return ErrPulseDropped
	}
}

func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			// The page is served from a local file or dev server.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		events: make(chan xr.Event, 256),
		log:    log,
		conns:  make(map[*peer]struct{}),
	}
}

// Events delivers decoded controller events in arrival order.
func (s *Server) Events() <-chan xr.Event {
	return s.events
}

// Clients reports the number of open connections.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeAll()
	}()

	s.log.Info("input bridge listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// claim makes p the page driving h.
func (s *Server) claim(h xr.Hand, p *peer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[h] = p
}

func (s *Server) owns(h xr.Hand, p *peer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners[h] == p
}

// release frees h if p still drives it and reports whether it did.
func (s *Server) release(h xr.Hand, p *peer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owners[h] != p {
		return false
	}
	s.owners[h] = nil
	return true
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.conns {
		p.ws.Close()
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	p := newPeer(ws)

	s.mu.Lock()
	s.conns[p] = struct{}{}
	s.mu.Unlock()
	s.log.Info("bridge client connected", zap.String("remote", r.RemoteAddr))
	go p.writeLoop(s.log)

	ctx := r.Context()
	defer func() {
		close(p.done)
		ws.Close()
		// Treat a dropped page as releasing the controllers it still
		// drives. The request context may already be done here.
		drain, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for _, h := range xr.Hands {
			if s.release(h, p) {
				s.emit(drain, xr.Event{Type: xr.EventDisconnected, Hand: h})
			}
		}
		s.mu.Lock()
		delete(s.conns, p)
		s.mu.Unlock()
		s.log.Info("bridge client disconnected", zap.String("remote", r.RemoteAddr))
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("bridge read ended", zap.Error(err))
			}
			return
		}
		msg, ev, err := Decode(data)
		if err != nil {
			s.log.Debug("dropping bridge message", zap.Error(err), zap.ByteString("data", data))
			continue
		}
		switch ev.Type {
		case xr.EventConnected:
			s.claim(ev.Hand, p)
			if msg.Haptics {
				ev.Haptics = &remoteActuator{peer: p, hand: ev.Hand}
			}
		case xr.EventDisconnected:
			if !s.release(ev.Hand, p) {
				continue
			}
		default:
			if !s.owns(ev.Hand, p) {
				s.log.Debug("dropping event for a hand another client drives", zap.Stringer("hand", ev.Hand))
				continue
			}
		}
		if !s.emit(ctx, ev) {
			return
		}
	}
}

func (s *Server) emit(ctx context.Context, ev xr.Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

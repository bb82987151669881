package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Issho-lin/webrtc-demo/internal/app"
	"github.com/Issho-lin/webrtc-demo/internal/config"
	"github.com/Issho-lin/webrtc-demo/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

type SignalWSController struct {
	Relay *app.Relay
	Cfg   *config.Config
}

func NewSignalWSController(relay *app.Relay, cfg *config.Config) *SignalWSController {
	return &SignalWSController{Relay: relay, Cfg: cfg}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.Cfg != nil && ctl.Cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.Cfg.ReadLimit)
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	sid := ctl.Relay.Registry.Register(conn, cancel)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}

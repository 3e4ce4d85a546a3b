package deckengine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/deckengine/present"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// followers tracks open websocket connections so shutdown can close them.
type followers struct {
	mu    sync.Mutex
	conns map[uuid.UUID]*websocket.Conn
}

func newFollowers() *followers {
	return &followers{conns: make(map[uuid.UUID]*websocket.Conn)}
}

func (f *followers) add(id uuid.UUID, conn *websocket.Conn) {
	f.mu.Lock()
	f.conns[id] = conn
	f.mu.Unlock()
}

func (f *followers) remove(id uuid.UUID) {
	f.mu.Lock()
	delete(f.conns, id)
	f.mu.Unlock()
}

// Len reports the number of connected followers.
func (f *followers) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

func (f *followers) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, conn := range f.conns {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(f.conns, id)
	}
}

// Followers reports how many browsers are following the presentation.
func (a *App) Followers() int { return a.followers.Len() }

// handleFollow streams State JSON to one browser: the current state right
// away, then the latest state after every change.
func (a *App) handleFollow(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		a.Logger.Debug("websocket upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	id := uuid.New()
	a.followers.add(id, conn)
	defer a.followers.remove(id)
	log := a.Logger.With(zap.Stringer("follower", id))
	log.Debug("follower connected", zap.Int("followers", a.followers.Len()))
	defer log.Debug("follower disconnected")

	states, cancel := a.Controller.Subscribe()
	defer cancel()

	// The read loop only exists to process pongs and notice the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeState(conn, a.Controller.State()); err != nil {
		return nil
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-gone:
			return nil
		case s, ok := <-states:
			if !ok {
				return nil
			}
			if err := writeState(conn, s); err != nil {
				log.Debug("follower write failed", zap.Error(err))
				return nil
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		}
	}
}

func writeState(conn *websocket.Conn, s present.State) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(s)
}

// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ws

import (
	"sync"
	"time"

	"github.com/go-arcade/confhub/pkg/id"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// conn serialises writes; the underlying connection allows one writer at a time.
type conn struct {
	ws        *websocket.Conn
	id        string
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

const (
	readLimit  = 64 * 1024
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
)

func newConn(wsConn *websocket.Conn) *conn {
	return &conn{
		ws:     wsConn,
		id:     id.GetUUID(),
		closed: make(chan struct{}),
	}
}

func (c *conn) ID() string {
	return c.id
}

func (c *conn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(messageType, data)
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.ws.Close()
	})
	return err
}

func (c *conn) RemoteAddr() string {
	return c.ws.RemoteAddr().String()
}

// Upgrade rejects plain HTTP requests on a websocket route.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle serves one websocket connection: it registers the client with hub,
// keeps it alive with pings and reads until the client goes away.
func Handle(hub Hub, handler Handler) fiber.Handler {
	if handler == nil {
		handler = NopHandler{}
	}
	return websocket.New(func(wsConn *websocket.Conn) {
		c := newConn(wsConn)

		wsConn.SetReadLimit(readLimit)
		_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
		wsConn.SetPongHandler(func(string) error {
			return wsConn.SetReadDeadline(time.Now().Add(pongWait))
		})

		if err := handler.OnConnect(c); err != nil {
			log.Warnw("websocket connect rejected", "conn", c.ID(), "error", err)
			_ = c.Close()
			return
		}
		hub.Register(c)

		var readErr error
		defer func() {
			hub.Unregister(c)
			handler.OnDisconnect(c, readErr)
			_ = c.Close()
		}()

		safe.Go(c.pingTicker)

		for {
			messageType, message, err := wsConn.ReadMessage()
			if err != nil {
				readErr = err
				return
			}
			_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
			if err := handler.OnMessage(c, messageType, message); err != nil {
				log.Debugw("websocket message rejected", "conn", c.ID(), "error", err)
			}
		}
	})
}

func (c *conn) pingTicker() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.WriteMessage(PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

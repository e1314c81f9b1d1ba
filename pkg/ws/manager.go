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

	"github.com/bytedance/sonic"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/safe"
)

// sendQueueSize bounds the messages waiting for one client. A client that
// falls this far behind is disconnected.
const sendQueueSize = 64

// DefaultHub owns the client set from a single goroutine.
type DefaultHub struct {
	clients map[string]*client
	count   int
	mu      sync.RWMutex

	broadcast  chan *broadcastMessage
	register   chan Conn
	unregister chan Conn
	done       chan struct{}
	closeOnce  sync.Once

	// OnCount, when set, observes the number of clients after each change.
	OnCount func(n int)
}

type broadcastMessage struct {
	messageType int
	data        []byte
}

// client writes its queue in order on its own goroutine.
type client struct {
	conn Conn
	send chan *broadcastMessage
}

func newClient(conn Conn) *client {
	c := &client{conn: conn, send: make(chan *broadcastMessage, sendQueueSize)}
	safe.Go(c.writePump)
	return c
}

func (c *client) writePump() {
	for message := range c.send {
		if err := c.conn.WriteMessage(message.messageType, message.data); err != nil {
			log.Debugw("websocket write failed", "conn", c.conn.ID(), "error", err)
		}
	}
}

// stop ends the write pump and closes the connection.
func (c *client) stop() {
	close(c.send)
	_ = c.conn.Close()
}

func NewHub() *DefaultHub {
	hub := &DefaultHub{
		clients:    make(map[string]*client),
		broadcast:  make(chan *broadcastMessage, 256),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		done:       make(chan struct{}),
	}
	go hub.run()
	return hub
}

func (h *DefaultHub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[conn.ID()]; !ok || old.conn != conn {
				if ok {
					old.stop()
				}
				h.clients[conn.ID()] = newClient(conn)
			}
			h.count = len(h.clients)
			h.mu.Unlock()
			h.observe()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn.ID())
			h.mu.Unlock()
			h.observe()

		case message := <-h.broadcast:
			dropped := false
			h.mu.Lock()
			for id, c := range h.clients {
				select {
				case c.send <- message:
				default:
					log.Warnw("websocket client too slow, disconnecting", "conn", id)
					h.remove(id)
					dropped = true
				}
			}
			h.mu.Unlock()
			if dropped {
				h.observe()
			}

		case <-h.done:
			h.mu.Lock()
			for id := range h.clients {
				h.remove(id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove must be called with mu held.
func (h *DefaultHub) remove(id string) {
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		c.stop()
	}
	h.count = len(h.clients)
}

func (h *DefaultHub) observe() {
	if h.OnCount != nil {
		h.OnCount(h.Count())
	}
}

func (h *DefaultHub) Register(conn Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

func (h *DefaultHub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast drops the message when the queue is full.
func (h *DefaultHub) Broadcast(messageType int, data []byte) {
	select {
	case h.broadcast <- &broadcastMessage{messageType: messageType, data: data}:
	case <-h.done:
	default:
		log.Warn("websocket broadcast queue full, message dropped")
	}
}

func (h *DefaultHub) BroadcastJSON(v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(TextMessage, data)
	return nil
}

func (h *DefaultHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Close disconnects every client and stops the hub.
func (h *DefaultHub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

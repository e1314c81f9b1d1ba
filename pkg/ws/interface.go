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

// Conn is one websocket client.
type Conn interface {
	ID() string
	WriteMessage(messageType int, data []byte) error
	Close() error
	RemoteAddr() string
}

// Hub tracks connected clients and pushes messages to them.
type Hub interface {
	Register(conn Conn)
	Unregister(conn Conn)
	// Broadcast queues data for every client; it never blocks on a slow client.
	Broadcast(messageType int, data []byte)
	// BroadcastJSON encodes v once and broadcasts it as a text message.
	BroadcastJSON(v any) error
	Count() int
	Close()
}

// Handler observes the connection lifecycle. Any of its hooks may be left to
// NopHandler.
type Handler interface {
	OnConnect(conn Conn) error
	OnMessage(conn Conn, messageType int, data []byte) error
	OnDisconnect(conn Conn, err error)
}

// NopHandler ignores every event.
type NopHandler struct{}

func (NopHandler) OnConnect(Conn) error              { return nil }
func (NopHandler) OnMessage(Conn, int, []byte) error { return nil }
func (NopHandler) OnDisconnect(Conn, error)          {}

// MessageType WebSocket 消息类型常量
const (
	TextMessage   = 1
	BinaryMessage = 2
	CloseMessage  = 8
	PingMessage   = 9
	PongMessage   = 10
)

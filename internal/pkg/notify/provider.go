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

package notify

import (
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/ws"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

var ProviderSet = wire.NewSet(
	ProvideHub,
	ProvideManager,
	wire.Bind(new(Notifier), new(*Manager)),
)

// ProvideHub starts the websocket hub for /ws/changes.
func ProvideHub() (*ws.DefaultHub, func()) {
	hub := ws.NewHub()
	hub.OnCount = func(n int) {
		metrics.WebsocketClients.Set(float64(n))
	}
	return hub, hub.Close
}

func ProvideManager(conf *Conf, client redis.UniversalClient, hub *ws.DefaultHub) (*Manager, error) {
	m, err := NewManager(conf, client)
	if err != nil {
		return nil, err
	}
	m.AddSink("websocket", HubSink(hub))
	return m, nil
}

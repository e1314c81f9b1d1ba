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
	"context"
	"time"

	"github.com/go-arcade/confhub/pkg/event"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-arcade/confhub/pkg/metrics"
	"github.com/go-arcade/confhub/pkg/safe"
	"github.com/go-arcade/confhub/pkg/ws"
	"github.com/redis/go-redis/v9"
)

// Manager fans change events out. Webhooks fire once, on the instance where
// the change happened. Local sinks, such as the websocket hub, receive every
// event: directly, or through the redis relay when one is configured.
type Manager struct {
	bus      *event.EventBus
	relay    *redisRelay
	webhooks []Sink
	now      func() time.Time
}

// NewManager builds the fan-out. client may be nil, in which case events stay
// in process even if conf asks for redis.
func NewManager(conf *Conf, client redis.UniversalClient) (*Manager, error) {
	conf.SetDefaults()
	m := &Manager{
		bus: event.NewEventBus(),
		now: time.Now,
	}
	if conf.Redis {
		if client == nil {
			log.Warn("notify.redis is on but no redis address is configured; change events stay local")
		} else {
			m.relay = &redisRelay{client: client, channel: conf.Channel}
		}
	}
	for _, wc := range conf.Webhooks {
		sink, err := NewWebhookSink(wc)
		if err != nil {
			return nil, err
		}
		m.webhooks = append(m.webhooks, sink)
	}
	return m, nil
}

// AddSink subscribes s to every event delivered to this process.
func (m *Manager) AddSink(name string, s Sink) {
	m.bus.RegisterHandler(event.Wildcard, event.HandlerFunc(func(e event.Event) {
		ev, ok := e.(ChangeEvent)
		if !ok {
			return
		}
		if err := s.Deliver(context.Background(), ev); err != nil {
			log.Warnw("change event delivery failed", "sink", name, "kind", ev.Kind, "key", ev.Key, "error", err)
		}
	}))
}

func (m *Manager) Publish(ctx context.Context, ev ChangeEvent) error {
	if ev.At.IsZero() {
		ev.At = m.now()
	}
	metrics.RecordChangeEvent(string(ev.Kind))
	log.WithContext(ctx).Debugw("change event", "kind", ev.Kind, "key", ev.Key, "sid", ev.Sid)

	detached := context.WithoutCancel(ctx)
	for _, w := range m.webhooks {
		safe.Go(func() {
			_ = w.Deliver(detached, ev)
		})
	}

	if m.relay != nil {
		return m.relay.publish(ctx, ev)
	}
	m.bus.Publish(ev)
	return nil
}

// Run relays events from redis to the local sinks until ctx is done. Without
// a relay it just waits.
func (m *Manager) Run(ctx context.Context) error {
	if m.relay == nil {
		<-ctx.Done()
		return nil
	}
	return m.relay.subscribe(ctx, func(ev ChangeEvent) {
		m.bus.Publish(ev)
	})
}

// HubSink broadcasts events to websocket clients.
func HubSink(hub ws.Hub) Sink {
	return SinkFunc(func(_ context.Context, ev ChangeEvent) error {
		return hub.BroadcastJSON(ev)
	})
}

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
)

// ChangeKind names what was edited.
type ChangeKind string

const (
	KindSetting  ChangeKind = "setting"
	KindFeature  ChangeKind = "feature"
	KindUpload   ChangeKind = "upload"
	KindRollback ChangeKind = "rollback"
)

// ChangeEvent tells subscribers that the effective configuration or feature
// set of an application may have changed.
type ChangeEvent struct {
	Kind          ChangeKind `json:"kind"`
	Key           string     `json:"key,omitempty"`
	Sid           string     `json:"sid"`
	ApplicationID uint64     `json:"applicationId"`
	EnvironmentID uint64     `json:"environmentId,omitempty"`
	At            time.Time  `json:"at"`
}

func (e ChangeEvent) EventName() string {
	return string(e.Kind)
}

// Notifier publishes change events. Publish failures never undo the change
// that produced the event.
type Notifier interface {
	Publish(ctx context.Context, ev ChangeEvent) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, ChangeEvent) error { return nil }

// Sink receives events delivered to this process.
type Sink interface {
	Deliver(ctx context.Context, ev ChangeEvent) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev ChangeEvent) error

func (f SinkFunc) Deliver(ctx context.Context, ev ChangeEvent) error {
	return f(ctx, ev)
}

// WebhookConf is one endpoint notified on every change.
type WebhookConf struct {
	URL     string
	Method  string
	Token   string
	Timeout int // seconds
	// Retries on transport errors and 5xx answers, 0 for none
	Retries int
}

// Conf configures change notification.
type Conf struct {
	// Redis relays events through a pub/sub channel so every instance's
	// websocket clients see them.
	Redis    bool
	Channel  string
	Webhooks []WebhookConf
}

const DefaultChannel = "confhub:changes"

func (c *Conf) SetDefaults() {
	if c.Channel == "" {
		c.Channel = DefaultChannel
	}
}

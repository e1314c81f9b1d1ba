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

	"github.com/bytedance/sonic"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/redis/go-redis/v9"
)

// redisRelay carries events between instances over a pub/sub channel.
type redisRelay struct {
	client  redis.UniversalClient
	channel string
}

func (r *redisRelay) publish(ctx context.Context, ev ChangeEvent) error {
	payload, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, payload).Err()
}

// subscribe blocks until ctx is done, handing every decoded event to deliver.
func (r *redisRelay) subscribe(ctx context.Context, deliver func(ChangeEvent)) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	log.Infow("subscribed to change events", "channel", r.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev ChangeEvent
			if err := sonic.UnmarshalString(msg.Payload, &ev); err != nil {
				log.Warnw("dropping malformed change event", "channel", r.channel, "error", err)
				continue
			}
			deliver(ev)
		}
	}
}

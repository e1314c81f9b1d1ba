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
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/go-resty/resty/v2"
)

// WebhookSink sends every event as JSON to one URL.
type WebhookSink struct {
	url    string
	method string
	token  string
	client *resty.Client
}

func NewWebhookSink(conf WebhookConf) (*WebhookSink, error) {
	if conf.URL == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}
	method := conf.Method
	if method == "" {
		method = http.MethodPost
	}
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSink{
		url:    conf.URL,
		method: method,
		token:  conf.Token,
		client: resty.New().
			SetTimeout(timeout).
			SetJSONMarshaler(sonic.Marshal).
			SetRetryCount(conf.Retries).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= http.StatusInternalServerError
			}),
	}, nil
}

func (w *WebhookSink) Deliver(ctx context.Context, ev ChangeEvent) error {
	req := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ev)
	if w.token != "" {
		req.SetAuthToken(w.token)
	}

	resp, err := req.Execute(w.method, w.url)
	if err != nil {
		log.Errorw("webhook send request failed", "url", w.url, "error", err)
		return fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		log.Errorw("webhook request failed", "url", w.url, "statusCode", resp.StatusCode())
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode())
	}
	return nil
}

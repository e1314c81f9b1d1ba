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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu  sync.Mutex
	got []ChangeEvent
}

func (r *recorder) Deliver(_ context.Context, ev ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev)
	return nil
}

func (r *recorder) events() []ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ChangeEvent(nil), r.got...)
}

func TestManagerPublishesLocally(t *testing.T) {
	m, err := NewManager(&Conf{}, nil)
	require.NoError(t, err)

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	rec := &recorder{}
	m.AddSink("test", rec)

	require.NoError(t, m.Publish(context.Background(), ChangeEvent{Kind: KindSetting, Key: "db:host", Sid: "sid", ApplicationID: 1}))

	got := rec.events()
	require.Len(t, got, 1)
	assert.Equal(t, "db:host", got[0].Key)
	assert.Equal(t, fixed, got[0].At)
}

func TestManagerSinkFailureDoesNotStopOthers(t *testing.T) {
	m, err := NewManager(&Conf{}, nil)
	require.NoError(t, err)

	m.AddSink("broken", SinkFunc(func(context.Context, ChangeEvent) error {
		return errors.New("down")
	}))
	rec := &recorder{}
	m.AddSink("ok", rec)

	require.NoError(t, m.Publish(context.Background(), ChangeEvent{Kind: KindFeature, Key: "beta"}))
	assert.Len(t, rec.events(), 1)
}

func TestManagerRedisWithoutClientStaysLocal(t *testing.T) {
	m, err := NewManager(&Conf{Redis: true}, nil)
	require.NoError(t, err)
	assert.Nil(t, m.relay)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, m.Run(ctx))
}

func TestWebhookSink(t *testing.T) {
	received := make(chan ChangeEvent, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hook-token", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		var ev ChangeEvent
		_ = sonic.Unmarshal(body, &ev)
		received <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	m, err := NewManager(&Conf{Webhooks: []WebhookConf{{URL: srv.URL, Token: "hook-token"}}}, nil)
	require.NoError(t, err)
	require.NoError(t, m.Publish(context.Background(), ChangeEvent{Kind: KindUpload, Sid: "abc", ApplicationID: 4}))

	select {
	case ev := <-received:
		assert.Equal(t, KindUpload, ev.Kind)
		assert.Equal(t, uint64(4), ev.ApplicationID)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook not called")
	}
}

func TestWebhookSinkErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(WebhookConf{URL: srv.URL})
	require.NoError(t, err)
	assert.Error(t, sink.Deliver(context.Background(), ChangeEvent{Kind: KindSetting}))

	_, err = NewWebhookSink(WebhookConf{})
	assert.Error(t, err)
}

func TestWebhookSinkRetries(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewWebhookSink(WebhookConf{URL: srv.URL, Retries: 2})
	require.NoError(t, err)
	require.NoError(t, sink.Deliver(context.Background(), ChangeEvent{Kind: KindFeature}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, calls)
}

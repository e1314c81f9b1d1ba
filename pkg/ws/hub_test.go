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
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id     string
	mu     sync.Mutex
	got    [][]byte
	closed bool
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrConnectionClosed
	}
	f.got = append(f.got, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) RemoteAddr() string { return "127.0.0.1" }

func (f *fakeConn) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.got))
	for _, g := range f.got {
		out = append(out, string(g))
	}
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a, b := &fakeConn{id: "a"}, &fakeConn{id: "b"}
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.BroadcastJSON(map[string]string{"key": "db:host"}))

	for _, c := range []*fakeConn{a, b} {
		require.Eventually(t, func() bool { return len(c.messages()) == 1 }, time.Second, 5*time.Millisecond)
		assert.JSONEq(t, `{"key":"db:host"}`, c.messages()[0])
	}
}

func TestHubBroadcastKeepsOrder(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a := &fakeConn{id: "a"}
	hub.Register(a)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	const n = 50
	want := make([]string, 0, n)
	for i := 0; i < n; i++ {
		msg := strconv.Itoa(i)
		want = append(want, msg)
		hub.Broadcast(TextMessage, []byte(msg))
	}

	require.Eventually(t, func() bool { return len(a.messages()) == n }, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, a.messages())
}

// stuckConn blocks every write until it is closed.
type stuckConn struct {
	fakeConn
	release   chan struct{}
	closeOnce sync.Once
}

func (s *stuckConn) WriteMessage(messageType int, data []byte) error {
	<-s.release
	return s.fakeConn.WriteMessage(messageType, data)
}

func (s *stuckConn) Close() error {
	s.closeOnce.Do(func() { close(s.release) })
	return s.fakeConn.Close()
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	slow := &stuckConn{fakeConn: fakeConn{id: "slow"}, release: make(chan struct{})}
	fast := &fakeConn{id: "fast"}
	hub.Register(slow)
	hub.Register(fast)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, time.Second, 5*time.Millisecond)

	// one message is held by the blocked write, the queue takes the rest
	for i := 0; i < sendQueueSize+2; i++ {
		hub.Broadcast(TextMessage, []byte(strconv.Itoa(i)))
		require.Eventually(t, func() bool { return len(fast.messages()) == i+1 }, time.Second, time.Millisecond)
	}

	require.Eventually(t, slow.isClosed, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, fast.isClosed())
}

func TestHubUnregisterClosesConn(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	var counts []int
	var mu sync.Mutex
	hub.OnCount = func(n int) {
		mu.Lock()
		counts = append(counts, n)
		mu.Unlock()
	}

	a := &fakeConn{id: "a"}
	hub.Register(a)
	hub.Unregister(a)
	require.Eventually(t, a.isClosed, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, hub.Count())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 0}, counts)
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{id: "a"}
	hub.Register(a)
	hub.Close()

	require.Eventually(t, a.isClosed, time.Second, 5*time.Millisecond)

	late := &fakeConn{id: "late"}
	hub.Register(late)
	require.Eventually(t, late.isClosed, time.Second, 5*time.Millisecond)
	hub.Close()
}

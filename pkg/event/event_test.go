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

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	name string
}

func (e testEvent) EventName() string {
	return e.name
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var named, all []string
	bus.RegisterHandler("setting", HandlerFunc(func(e Event) {
		named = append(named, e.EventName())
	}))
	bus.RegisterHandler(Wildcard, HandlerFunc(func(e Event) {
		all = append(all, e.EventName())
	}))

	bus.Publish(testEvent{name: "setting"})
	bus.Publish(testEvent{name: "feature"})

	assert.Equal(t, []string{"setting"}, named)
	assert.Equal(t, []string{"setting", "feature"}, all)
}

func TestEventBusSurvivesPanickingHandler(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.RegisterHandler("x", HandlerFunc(func(Event) { panic("boom") }))
	bus.RegisterHandler("x", HandlerFunc(func(Event) { called = true }))

	assert.NotPanics(t, func() { bus.Publish(testEvent{name: "x"}) })
	assert.True(t, called)
}

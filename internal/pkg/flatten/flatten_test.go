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

package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(pairs []Pair) map[string]any {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		if p.Value == nil {
			out[p.Key] = nil
			continue
		}
		out[p.Key] = *p.Value
	}
	return out
}

func TestParse_LeafValues(t *testing.T) {
	pairs, err := Parse([]byte(`{"db":{"host":"x","port":5432},"flag":true}`))
	require.NoError(t, err)

	require.Len(t, pairs, 3)
	assert.Equal(t, map[string]any{
		"db:host": "x",
		"db:port": "5432",
		"flag":    "true",
	}, values(pairs))
	assert.Equal(t, "db:host", pairs[0].Key)
	assert.Equal(t, "flag", pairs[2].Key)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want map[string]any
	}{
		{
			name: "arrays use the element index",
			doc:  `{"hosts":["a","b"],"ports":[{"n":1}]}`,
			want: map[string]any{"hosts:0": "a", "hosts:1": "b", "ports:0:n": "1"},
		},
		{
			name: "numbers keep their literal text",
			doc:  `{"big":12345678901234567890,"ratio":0.10,"neg":-3e2}`,
			want: map[string]any{"big": "12345678901234567890", "ratio": "0.10", "neg": "-3e2"},
		},
		{
			name: "null and empty containers are absent",
			doc:  `{"a":null,"b":{},"c":[],"d":{"e":false}}`,
			want: map[string]any{"a": nil, "b": nil, "c": nil, "d:e": "false"},
		},
		{
			name: "empty document",
			doc:  `{}`,
			want: map[string]any{},
		},
		{
			name: "unicode keys and values",
			doc:  `{"grüße":{"名前":"値"}}`,
			want: map[string]any{"grüße:名前": "値"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(pairs))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrRootNotObject)

	_, err = Parse([]byte(`"text"`))
	assert.ErrorIs(t, err, ErrRootNotObject)

	_, err = Parse([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestParse_StableOrder(t *testing.T) {
	doc := []byte(`{"z":1,"a":{"y":2,"b":3},"m":[4,5]}`)

	first, err := Parse(doc)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Parse(doc)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	keys := make([]string, 0, len(first))
	for _, p := range first {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"a:b", "a:y", "m:0", "m:1", "z"}, keys)
}

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

package id

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenUUID(t *testing.T) {
	assert.Len(t, GetUUID(), 36)
}

func TestGetUUIDWithoutDashes(t *testing.T) {
	assert.Len(t, GetUUIDWithoutDashes(), 32)
}

func TestNewCredential(t *testing.T) {
	a, err := NewCredential()
	require.NoError(t, err)
	b, err := NewCredential()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 24)
	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
}

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

// Package flatten turns a hierarchical JSON configuration document into
// colon-delimited key/value pairs, the layout layered configuration readers expect.
//
//	{"db":{"host":"x","port":5432},"flag":true}  ->  db:host=x, db:port=5432, flag=true
package flatten

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"
)

// KeyDelimiter joins path segments.
const KeyDelimiter = ":"

var ErrRootNotObject = errors.New("configuration document root must be a JSON object")

var api = sonic.Config{
	UseNumber:      true,
	ValidateString: true,
}.Froze()

// Pair is one flattened entry. Value is nil for a null leaf or an empty
// object or array; such entries only mark structure.
type Pair struct {
	Key   string
	Value *string
}

// IsAbsent reports whether the pair carries no value.
func (p Pair) IsAbsent() bool {
	return p.Value == nil
}

// Parse flattens a JSON document. Object keys are visited in sorted order and
// array elements by index, so the output order is stable.
func Parse(data []byte) ([]Pair, error) {
	var root any
	if err := api.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid configuration document: %w", err)
	}
	obj, ok := root.(map[string]any)
	if !ok {
		return nil, ErrRootNotObject
	}

	var out []Pair
	visitObject(obj, "", &out)
	return out, nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + KeyDelimiter + key
}

func visitObject(obj map[string]any, prefix string, out *[]Pair) {
	if len(obj) == 0 {
		if prefix != "" {
			*out = append(*out, Pair{Key: prefix})
		}
		return
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		visit(obj[k], join(prefix, k), out)
	}
}

func visit(v any, path string, out *[]Pair) {
	switch t := v.(type) {
	case map[string]any:
		visitObject(t, path, out)
	case []any:
		if len(t) == 0 {
			*out = append(*out, Pair{Key: path})
			return
		}
		for i, item := range t {
			visit(item, join(path, strconv.Itoa(i)), out)
		}
	case nil:
		*out = append(*out, Pair{Key: path})
	default:
		s := scalar(t)
		*out = append(*out, Pair{Key: path, Value: &s})
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

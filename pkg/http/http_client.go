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

package http

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// KeyValue is one entry of a resolved configuration or feature set.
type KeyValue[T any] struct {
	Key   string `json:"key"`
	Value T      `json:"value"`
}

// Credentials select an application and, optionally, an environment.
type Credentials struct {
	Sid         string `json:"sid"`
	SKey        string `json:"skey"`
	Environment string `json:"environment,omitempty"`
}

// Client talks to a confhub server.
type Client struct {
	rc *resty.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if token != "" {
		rc.SetAuthToken(token)
	}
	return &Client{rc: rc}
}

// ClientError is a non-2xx answer.
type ClientError struct {
	Problem
}

func (e *ClientError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Title)
}

// Configuration resolves settings; a nil Value is a setting stored as null.
func (c *Client) Configuration(ctx context.Context, cred Credentials) ([]KeyValue[*string], error) {
	var out []KeyValue[*string]
	return out, c.post(ctx, "/api/configuration", cred, &out)
}

func (c *Client) FeatureSet(ctx context.Context, cred Credentials) ([]KeyValue[bool], error) {
	var out []KeyValue[bool]
	return out, c.post(ctx, "/api/featureset", cred, &out)
}

// Upload sends a document for the application and environment ids; envID 0 means none.
func (c *Client) Upload(ctx context.Context, appID, envID uint64, name string, doc io.Reader) (map[string]any, error) {
	var out Response
	fields := map[string]string{"applicationId": fmt.Sprint(appID)}
	if envID != 0 {
		fields["environmentId"] = fmt.Sprint(envID)
	}
	resp, err := c.rc.R().
		SetContext(ctx).
		SetFileReader("file", name, doc).
		SetFormData(fields).
		SetResult(&out).
		SetError(&ClientError{}).
		Post("/api/admin/uploads")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, resp.Error().(*ClientError)
	}
	detail, _ := out.Detail.(map[string]any)
	return detail, nil
}

// Version returns the server build information.
func (c *Client) Version(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	resp, err := c.rc.R().SetContext(ctx).SetResult(&out).SetError(&ClientError{}).Get("/version")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, resp.Error().(*ClientError)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&ClientError{}).
		Post(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return resp.Error().(*ClientError)
	}
	return nil
}

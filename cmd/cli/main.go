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

package main

import (
	"os"
	"time"

	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/go-arcade/confhub/pkg/version"
	"github.com/spf13/cobra"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/4 19:51
 * @file: main.go
 * @description: confhub command line client
 */

type options struct {
	server  string
	token   string
	timeout time.Duration
}

func (o *options) client() *httpx.Client {
	return httpx.NewClient(o.server, o.token, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "confhub-cli",
		Short:         "confhub cli resolves configuration and manages uploads",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("CONFHUB_SERVER", "http://127.0.0.1:8080"), "confhub server base url")
	flags.StringVar(&opts.token, "token", os.Getenv("CONFHUB_TOKEN"), "admin bearer token")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(
		version.VersionCmd,
		newServerVersionCmd(opts),
		newConfigCmd(opts),
		newFeaturesCmd(opts),
		newUploadCmd(opts),
		newTokenCmd(),
	)
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

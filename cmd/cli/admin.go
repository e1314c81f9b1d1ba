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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-arcade/confhub/pkg/http/jwt"
	"github.com/spf13/cobra"
)

func newUploadCmd(opts *options) *cobra.Command {
	var appID, envID uint64
	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a JSON document as settings of an application and environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.token == "" {
				return errors.New("an admin token is required (--token or CONFHUB_TOKEN)")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			detail, err := opts.client().Upload(cmd.Context(), appID, envID, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %v settings\n", detail["created"])
			return nil
		},
	}
	cmd.Flags().Uint64Var(&appID, "app", 0, "application id")
	cmd.Flags().Uint64Var(&envID, "env", 0, "environment id, 0 for none")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

// newTokenCmd mints an admin token with the server's http.auth settings.
func newTokenCmd() *cobra.Command {
	var (
		actor, issuer, secret string
		expire                time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret or CONFHUB_HTTP_AUTH_SECRETKEY is required")
			}
			token, err := jwt.GenToken(actor, issuer, []byte(secret), expire)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "name recorded on every change made with the token")
	cmd.Flags().StringVar(&issuer, "issuer", "confhub", "token issuer, must match http.auth.issuer")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("CONFHUB_HTTP_AUTH_SECRETKEY"), "http.auth.secretKey of the server")
	cmd.Flags().DurationVar(&expire, "expire", 12*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

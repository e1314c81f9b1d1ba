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
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	httpx "github.com/go-arcade/confhub/pkg/http"
	"github.com/spf13/cobra"
)

type credentialFlags struct {
	httpx.Credentials
	json bool
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Sid, "sid", "", "application sid")
	cmd.Flags().StringVar(&f.SKey, "skey", "", "application secret key")
	cmd.Flags().StringVarP(&f.Environment, "env", "e", "", "environment layered over the default one")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the raw JSON array")
	_ = cmd.MarkFlagRequired("sid")
	_ = cmd.MarkFlagRequired("skey")
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Resolved configuration"}
	var f credentialFlags
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the merged settings of an application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := opts.client().Configuration(cmd.Context(), f.Credentials)
			if err != nil {
				return err
			}
			if f.json {
				return printJSON(cmd.OutOrStdout(), kv)
			}
			for _, p := range kv {
				if p.Value == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s=\n", p.Key)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", p.Key, *p.Value)
			}
			return nil
		},
	}
	f.bind(get)
	cmd.AddCommand(get)
	return cmd
}

func newFeaturesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{Use: "features", Short: "Resolved feature set"}
	var f credentialFlags
	get := &cobra.Command{
		Use:   "get",
		Short: "Print the merged feature flags of an application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := opts.client().FeatureSet(cmd.Context(), f.Credentials)
			if err != nil {
				return err
			}
			if f.json {
				return printJSON(cmd.OutOrStdout(), kv)
			}
			for _, p := range kv {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%t\n", p.Key, p.Value)
			}
			return nil
		},
	}
	f.bind(get)
	cmd.AddCommand(get)
	return cmd
}

func newServerVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "server-version",
		Short: "Print the server build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := opts.client().Version(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamhash/streamhash/pkg/config"
	hashengines "github.com/streamhash/streamhash/pkg/hashing/engines"
)

// Engines creates the engines subcommand.
func Engines() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the available hash engines.",
		Long: `List the available hash engines. The default is marked with "*"; it can be
changed with $` + config.EngineEnvVar + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := config.NewHashingConfig().Engine()
			for _, name := range hashengines.Supported() {
				mark := " "
				if name == def {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
			}
			return nil
		},
	}
}

// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"github.com/cockroachdb/colfn/pkg/sql/sem/builtins"
	"github.com/cockroachdb/colfn/pkg/sql/sem/builtins/builtinsregistry"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "list the builtin functions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, name := range builtins.AllBuiltinNames {
			def, ok := builtinsregistry.Get(name)
			if !ok {
				return errors.AssertionFailedf("builtin %s is not registered", name)
			}
			rows = append(rows, []string{
				def.Name, def.Signature.String(), def.Signature.Volatility.String(),
			})
		}
		return printQueryOutput(cmd.OutOrStdout(),
			[]string{"name", "signature", "volatility"}, rows, cliCtx.tableDisplayFormat)
	},
}

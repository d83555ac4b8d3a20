// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the colfn command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/colfn/pkg/cli/exit"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/colfn/pkg/util/log"
	"github.com/spf13/cobra"
)

// Proxy to allow overrides in tests.
var stderr io.Writer = log.OrigStderr

var colfnCmd = &cobra.Command{
	Use:   "colfn [command] (flags)",
	Short: "columnar scalar function evaluator",
	Long: `
Evaluate builtin scalar functions such as greatest and least over
columns and scalars given on the command line.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetVerbosity(int32(cliCtx.verbosity))
		log.SetRedactable(cliCtx.redactableLogs)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.EnableCommandSorting = false

	colfnCmd.AddCommand(
		evalCmd,
		builtinsCmd,
	)
}

// Main is the entry point for the cli, with a single line calling it intended
// to be the body of an action package main `main` func elsewhere.
func Main() {
	if err := Run(os.Args[1:]); err != nil {
		if log.V(1) {
			log.Errorf(context.Background(), "%+v", err)
		}
		printError(err)
		exit.WithCode(errorCode(err))
	}
	exit.WithCode(exit.Success())
}

// Run runs the command line with the given arguments.
func Run(args []string) error {
	colfnCmd.SetArgs(args)
	return colfnCmd.Execute()
}

func printError(err error) {
	fmt.Fprintln(stderr, pgerror.FullError(err))
}

// errorCode maps an error to the exit code of the process.
func errorCode(err error) exit.Code {
	switch pgerror.GetPGCode(err) {
	case pgcode.Syntax, pgcode.InvalidTextRepresentation, pgcode.InvalidParameterValue:
		return exit.CommandLineFlagError()
	case pgcode.UndefinedFunction, pgcode.DatatypeMismatch:
		return exit.PlanningFailed()
	case pgcode.Uncategorized:
		return exit.UnspecifiedError()
	}
	return exit.EvaluationFailed()
}

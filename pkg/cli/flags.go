// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// cliCtx captures the command-line parameters of all commands.
var cliCtx struct {
	// strictLengths makes columns of different lengths an error.
	strictLengths bool
	// verbosity is the log verbosity.
	verbosity int
	// redactableLogs keeps redaction markers around unsafe values in logs.
	redactableLogs bool
	// tableDisplayFormat indicates how results are printed.
	tableDisplayFormat tableDisplayFormat
}

// tableDisplayFormat identifies the format with which results are printed.
type tableDisplayFormat int

const (
	tableDisplayText tableDisplayFormat = iota
	tableDisplayTable
)

var _ pflag.Value = (*tableDisplayFormat)(nil)

// Type implements the pflag.Value interface.
func (f *tableDisplayFormat) Type() string { return "string" }

// String implements the pflag.Value interface.
func (f *tableDisplayFormat) String() string {
	switch *f {
	case tableDisplayText:
		return "text"
	case tableDisplayTable:
		return "table"
	}
	return ""
}

// Set implements the pflag.Value interface.
func (f *tableDisplayFormat) Set(s string) error {
	switch s {
	case "text":
		*f = tableDisplayText
	case "table":
		*f = tableDisplayTable
	default:
		return errors.Newf("invalid table display format: %s (possible values: text, table)", s)
	}
	return nil
}

// isInteractive indicates whether stdout refers to a terminal.
var isInteractive = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func init() {
	cliCtx.tableDisplayFormat = tableDisplayText
	if isInteractive {
		cliCtx.tableDisplayFormat = tableDisplayTable
	}

	pf := colfnCmd.PersistentFlags()
	pf.BoolVar(&cliCtx.strictLengths, "strict-lengths", false,
		"fail instead of truncating when columns have different lengths")
	pf.IntVarP(&cliCtx.verbosity, "verbosity", "v", 0, "log verbosity")
	pf.BoolVar(&cliCtx.redactableLogs, "redactable-logs", false,
		"keep redaction markers around potentially sensitive values in log output")

	f := evalCmd.Flags()
	f.Var(&cliCtx.tableDisplayFormat, "format",
		"selects how to display results (text, table); defaults to table on a terminal")
	builtinsCmd.Flags().AddFlag(f.Lookup("format"))
}

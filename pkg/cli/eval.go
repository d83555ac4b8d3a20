// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/col/coltext"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/sem/builtins"
	"github.com/cockroachdb/colfn/pkg/sql/sem/eval"
	"github.com/cockroachdb/colfn/pkg/util/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <function> <argument>...",
	Short: "evaluate a builtin function",
	Long: `
Evaluate a builtin function and print its result. Every argument is either
a column or a scalar in one of the forms

  col <type> <json array>
  scalar <type> <json value>

for example:

  colfn eval greatest 'col int64 [1,8,3,null]' 'scalar int64 5'
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) (resErr error) {
	name := args[0]
	ctx := logtags.AddTag(context.Background(), "fn", name)
	evalCtx := eval.MakeContext()
	if cliCtx.strictLengths {
		evalCtx.StrictLengths = true
	}
	mem := evalCtx.Mem()

	fnArgs := make([]coldata.ColumnarValue, 0, len(args)-1)
	defer func() {
		for _, arg := range fnArgs {
			arg.Release()
		}
	}()
	for i, s := range args[1:] {
		arg, err := coltext.Parse(mem, s)
		if err != nil {
			return errors.Wrapf(err, "argument %d", i+1)
		}
		fnArgs = append(fnArgs, arg)
	}
	log.VEventf(ctx, 1, "evaluating with %d arguments", len(fnArgs))

	res, err := builtins.Eval(ctx, &evalCtx, name, fnArgs)
	if err != nil {
		return err
	}
	defer res.Release()
	if log.V(1) {
		log.Infof(ctx, "result: %s", typeconv.TypeString(res.Type()))
	}
	return printResult(cmd.OutOrStdout(), mem, name, res, cliCtx.tableDisplayFormat)
}

// printResult prints one row per result row in table mode, and the text
// form of the result otherwise.
func printResult(
	w io.Writer,
	mem memory.Allocator,
	name string,
	res coldata.ColumnarValue,
	displayFormat tableDisplayFormat,
) error {
	if displayFormat != tableDisplayTable {
		s, err := coltext.Format(mem, res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	}

	cols := []string{"row", fmt.Sprintf("%s(...) %s", name, typeconv.TypeString(res.Type()))}
	var rows [][]string
	switch res := res.(type) {
	case coldata.Scalar:
		rows = append(rows, []string{"*", res.String()})
	case coldata.Column:
		for i := 0; i < res.Len(); i++ {
			d, err := coldata.DatumFromArray(res.Array, i)
			if err != nil {
				return err
			}
			rows = append(rows, []string{strconv.Itoa(i), d.String()})
			d.Release()
		}
	}
	return printQueryOutput(w, cols, rows, displayFormat)
}

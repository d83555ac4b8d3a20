// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// printQueryOutput takes a list of column names and a list of row contents
// and writes them to w in the requested format, followed by a row count in
// table mode.
func printQueryOutput(
	w io.Writer, cols []string, allRows [][]string, displayFormat tableDisplayFormat,
) error {
	switch displayFormat {
	case tableDisplayTable:
		// Initialize tablewriter and set column names as the header row.
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(cols)
		table.AppendBulk(allRows)
		table.Render()
		nRows := len(allRows)
		_, err := fmt.Fprintf(w, "(%d row%s)\n", nRows, pluralS(nRows))
		return err

	default:
		for _, row := range allRows {
			if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	}
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Command-line front end: classify a dataset's columns and optionally run a
// full association analysis without starting the web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"gorelate/adapters/excel"
	"gorelate/domain/column"
	"gorelate/domain/table"
	"gorelate/internal/analysis"
	"gorelate/ports"
)

func main() {
	file := flag.String("file", "", "CSV or Excel dataset to read")
	columns := flag.String("columns", "", "comma-separated columns to analyze (omit to only classify)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: cli -file data.csv [-columns a,b,c]")
		os.Exit(2)
	}

	tbl, err := excel.NewDataReader(*file).ReadData()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to read dataset:", err)
		os.Exit(1)
	}

	types := column.Classify(tbl)
	fmt.Printf("%s: %d rows, %d columns\n\n", *file, len(tbl.Rows), len(tbl.Columns))
	for _, col := range tbl.Columns {
		meta := column.Display(types[col])
		fmt.Printf("  %-30s %s\n", col, meta.Label)
	}

	if *columns == "" {
		return
	}

	sel := table.Selection{}
	for _, col := range strings.Split(*columns, ",") {
		if col = strings.TrimSpace(col); col != "" {
			sel = append(sel, col)
		}
	}
	if err := sel.Validate(tbl); err != nil {
		fmt.Fprintln(os.Stderr, "invalid column selection:", err)
		os.Exit(2)
	}

	engine := analysis.NewEngine()
	result, err := engine.Analyze(context.Background(), ports.SubmitRequest{
		Data:            tbl.Rows,
		SelectedColumns: sel,
	}, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analysis failed:", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d of %d pairs produced a valid association (average strength %.3f)\n\n",
		result.ValidPairs, len(result.Pairs), result.AverageStrength)
	for _, p := range result.Pairs {
		fmt.Printf("  %-40s %.3f\n", p.Col1+" x "+p.Col2, p.Value)
	}
}

// compliance-check runs the compliance engine for one company and prints the
// report as JSON.
//
// Usage (from backend directory):
//
//	go run ./cmd/compliance-check -company <id>
//	go run ./cmd/compliance-check -company <id> -diagnostics
//	go run ./cmd/compliance-check -company <id> -xlsx report.xlsx
//
// Exit status is 1 when the engine could not run, and 3 with -strict when the
// company is not fully compliant.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/models/reports"
	"github.com/mmdatafocus/schedule3_backend/models/statements"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

func main() {
	companyId := flag.String("company", "", "company id (required)")
	diagnostics := flag.Bool("diagnostics", false, "run the diagnostics procedure instead of the full report")
	xlsxPath := flag.String("xlsx", "", "also write the compliance workbook to this path")
	strict := flag.Bool("strict", false, "exit with status 3 unless the company is compliant")
	flag.Parse()

	if *companyId == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := utils.SetCompanyIdInContext(context.Background(), *companyId)
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	defer config.CloseRedis()

	store := compliance.NewSnapshotStore()
	if *diagnostics {
		report := compliance.NewDiagnostics(models.DBInspector{}, store).Run(ctx, *companyId)
		printJSON(report)
		return
	}

	engine := compliance.NewEngine(store,
		compliance.WithParallel(config.ParallelRuleEvaluation()),
		compliance.WithLogger(config.GetLogger()),
	)
	report, snapshot, err := engine.RunWithSnapshot(ctx, *companyId)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compliance check failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "run with -diagnostics to inspect the database\n")
		os.Exit(1)
	}
	printJSON(report)

	if *xlsxPath != "" {
		if err := writeWorkbook(ctx, *xlsxPath, report, snapshot); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *xlsxPath)
	}

	if *strict && report.OverallStatus != compliance.StatusCompliant {
		os.Exit(3)
	}
}

func writeWorkbook(ctx context.Context, path string, report *compliance.Report, snapshot *compliance.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := reports.WriteWorkbook(ctx, f, report, snapshot.Statements, statements.NewFormatOptions(snapshot.Entity)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

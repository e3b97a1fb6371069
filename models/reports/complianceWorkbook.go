package reports

import (
	"context"
	"io"
	"time"

	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/models/statements"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetCompliance    = "Compliance"
	SheetIssues        = "Issues"
	SheetBalanceSheet  = "Balance Sheet"
	SheetProfitAndLoss = "Profit and Loss"
	SheetRatios        = "Ratios"
)

// WorkbookSheets lists the sheets of the compliance workbook in order.
var WorkbookSheets = []string{SheetCompliance, SheetIssues, SheetBalanceSheet, SheetProfitAndLoss, SheetRatios}

const XlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheetWriter struct {
	f    *excelize.File
	name string
	row  int
	bold int
	err  error
}

func (s *sheetWriter) line(bold bool, values ...interface{}) {
	if s.err != nil {
		return
	}
	s.row++
	start, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	if len(values) == 0 {
		return
	}
	if s.err = s.f.SetSheetRow(s.name, start, &values); s.err != nil {
		return
	}
	if bold {
		end, err := excelize.CoordinatesToCellName(len(values), s.row)
		if err != nil {
			s.err = err
			return
		}
		s.err = s.f.SetCellStyle(s.name, start, end, s.bold)
	}
}

func (s *sheetWriter) blank() {
	s.line(false)
}

func (s *sheetWriter) widths(cols map[string]float64) {
	for col, width := range cols {
		if s.err != nil {
			return
		}
		s.err = s.f.SetColWidth(s.name, col, col, width)
	}
}

// BuildWorkbook lays out a compliance report and the statements it was computed from.
func BuildWorkbook(report *compliance.Report, st *statements.Statements, opts statements.FormatOptions) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.SetSheetName("Sheet1", SheetCompliance); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, name := range WorkbookSheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	formatted := statements.Format(st, opts)
	writers := []func(*sheetWriter){
		func(s *sheetWriter) { writeSummary(s, report) },
		func(s *sheetWriter) { writeIssues(s, report.Issues) },
		func(s *sheetWriter) { writeSections(s, formatted.UnitsLabel, formatted.BalanceSheet) },
		func(s *sheetWriter) { writeSections(s, formatted.UnitsLabel, formatted.ProfitAndLoss) },
		func(s *sheetWriter) { writeRatios(s, st.Ratios) },
	}
	for i, write := range writers {
		s := &sheetWriter{f: f, name: WorkbookSheets[i], bold: bold}
		write(s)
		if s.err != nil {
			_ = f.Close()
			return nil, s.err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook streams the compliance workbook as xlsx.
func WriteWorkbook(ctx context.Context, w io.Writer, report *compliance.Report, st *statements.Statements, opts statements.FormatOptions) error {
	started := time.Now()
	defer logSlowReport(ctx, "compliance_workbook", started, map[string]any{"company_id": report.CompanyId, "issues": len(report.Issues)})

	f, err := BuildWorkbook(report, st, opts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func writeSummary(s *sheetWriter, r *compliance.Report) {
	s.widths(map[string]float64{"A": 28, "B": 36})
	s.line(true, "Schedule III compliance report")
	s.line(false, "Company", r.CompanyId)
	s.line(false, "As of", r.AsOf.Format("2006-01-02"))
	s.line(false, "Overall status", string(r.OverallStatus))
	s.line(false, "Compliance score", r.ComplianceScore)
	s.line(false, "Total checks", r.TotalChecks)
	s.line(false, "Passed checks", r.PassedChecks)
	s.blank()
	s.line(true, "Area", "Status")
	s.line(false, "Entity information", string(r.Summary.EntityInformation))
	s.line(false, "Note selections", string(r.Summary.NoteSelections))
	s.line(false, "Financial statements", string(r.Summary.FinancialStatements))
	s.line(false, "Aging schedules", string(r.Summary.AgingSchedules))
	s.line(false, "Ratio analysis", string(r.Summary.RatioAnalysis))
	s.line(false, "Mandatory disclosures", string(r.Summary.MandatoryDisclosures))
}

func writeIssues(s *sheetWriter, issues []compliance.Issue) {
	s.widths(map[string]float64{"A": 30, "B": 22, "C": 10, "D": 70, "E": 70, "F": 8})
	s.line(true, "Rule", "Category", "Severity", "Issue", "Recommendation", "Note")
	for _, i := range issues {
		s.line(false, i.RuleID, string(i.Category), string(i.Severity), i.Issue, i.Recommendation, i.NoteRef)
	}
}

func writeSections(s *sheetWriter, unitsLabel string, sections []statements.FormattedSection) {
	s.widths(map[string]float64{"A": 48, "B": 20, "C": 20})
	s.line(false, unitsLabel)
	s.line(true, "Particulars", "Current year", "Previous year")
	for _, sec := range sections {
		s.blank()
		s.line(true, sec.Title)
		for _, l := range sec.Lines {
			s.line(false, l.Label, l.CY, l.PY)
		}
		s.line(true, sec.Total.Label, sec.Total.CY, sec.Total.PY)
	}
}

func writeRatios(s *sheetWriter, ratios []statements.Ratio) {
	s.widths(map[string]float64{"A": 34, "B": 40, "C": 40, "D": 14, "E": 14, "F": 12})
	s.line(true, "Ratio", "Numerator", "Denominator", "Current year", "Previous year", "Variance %")
	for _, r := range ratios {
		s.line(false, r.Name, r.Numerator, r.Denominator, nullableValue(r.Current), nullableValue(r.Previous), nullableValue(r.VariancePct))
	}
}

// nullableValue writes defined ratios as numbers so they stay sortable in the sheet.
func nullableValue(v decimal.NullDecimal) interface{} {
	if !v.Valid {
		return "N/A"
	}
	f, _ := v.Decimal.Round(2).Float64()
	return f
}

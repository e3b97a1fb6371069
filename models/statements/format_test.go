package statements_test

import (
	"testing"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/models/statements"
	"github.com/mmdatafocus/schedule3_backend/testutil"
	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name string
		opts statements.FormatOptions
		in   string
		want string
	}{
		{"indian grouping", statements.FormatOptions{Currency: "INR", Units: models.ReportingUnitAbsolute, Decimals: 2}, "12345678.5", "1,23,45,678.50"},
		{"western grouping", statements.FormatOptions{Currency: "USD", Units: models.ReportingUnitAbsolute, Decimals: 2}, "12345678.5", "12,345,678.50"},
		{"lakhs", statements.FormatOptions{Currency: "INR", Units: models.ReportingUnitLakhs, Decimals: 2}, "2200000", "22.00"},
		{"crores", statements.FormatOptions{Currency: "INR", Units: models.ReportingUnitCrores, Decimals: 2}, "155000000", "15.50"},
		{"minus", statements.FormatOptions{Currency: "INR", Units: models.ReportingUnitThousands, NegativeDisplay: models.NegativeDisplayMinus, Decimals: 0}, "-1500000", "-1,500"},
		{"brackets", statements.FormatOptions{Currency: "INR", Units: models.ReportingUnitAbsolute, NegativeDisplay: models.NegativeDisplayBrackets, Decimals: 2}, "-999.994", "(999.99)"},
		{"small", statements.FormatOptions{Currency: "INR", Units: models.ReportingUnitAbsolute, Decimals: 2}, "12", "12.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.opts.FormatAmount(decimal.RequireFromString(tc.in))
			if got != tc.want {
				t.Fatalf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewFormatOptionsDefaults(t *testing.T) {
	opts := statements.NewFormatOptions(&models.EntityConfig{Units: "bogus"})
	if opts.Currency != "INR" || opts.Units != models.ReportingUnitAbsolute || opts.NegativeDisplay != models.NegativeDisplayMinus {
		t.Fatalf("unexpected defaults %+v", opts)
	}
	opts = statements.NewFormatOptions(&models.EntityConfig{Currency: "INR", Units: models.ReportingUnitLakhs, NegativeDisplay: models.NegativeDisplayBrackets})
	if opts.UnitsLabel() != "All amounts in INR lakhs" {
		t.Fatalf("UnitsLabel() = %q", opts.UnitsLabel())
	}
}

func TestFormatStatements(t *testing.T) {
	st := statements.Build(testutil.CompliantEntries(), testutil.StandardHeadPointers())
	opts := statements.NewFormatOptions(testutil.CompliantEntity("c1"))
	out := statements.Format(st, opts)

	if len(out.BalanceSheet) != 5 {
		t.Fatalf("balance sheet sections = %d, want 5", len(out.BalanceSheet))
	}
	if got := out.BalanceSheet[0].Total.CY; got != "17,60,000.00" {
		t.Fatalf("total equity = %q", got)
	}
	if got := out.ProfitAndLoss[2].Total.CY; got != "3,30,000.00" {
		t.Fatalf("profit = %q", got)
	}
	if len(out.Ratios) != 11 || out.Ratios[10].CY != "N/A" {
		t.Fatalf("ratios = %+v", out.Ratios)
	}
}

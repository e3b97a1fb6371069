package statements

import (
	"strings"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

// FormatOptions is the presentation configuration of one company. It is a value:
// callers build it from the entity config and pass it down.
type FormatOptions struct {
	Currency        string
	Units           models.ReportingUnit
	NegativeDisplay models.NegativeDisplay
	Decimals        int32
}

var unitDivisors = map[models.ReportingUnit]decimal.Decimal{
	models.ReportingUnitAbsolute:  decimal.NewFromInt(1),
	models.ReportingUnitThousands: decimal.NewFromInt(1_000),
	models.ReportingUnitLakhs:     decimal.NewFromInt(1_00_000),
	models.ReportingUnitMillions:  decimal.NewFromInt(1_000_000),
	models.ReportingUnitCrores:    decimal.NewFromInt(1_00_00_000),
}

var unitLabels = map[models.ReportingUnit]string{
	models.ReportingUnitThousands: "thousands",
	models.ReportingUnitLakhs:     "lakhs",
	models.ReportingUnitMillions:  "millions",
	models.ReportingUnitCrores:    "crores",
}

// NewFormatOptions reads the presentation preferences of an entity, defaulting blanks.
func NewFormatOptions(cfg *models.EntityConfig) FormatOptions {
	opts := FormatOptions{
		Currency:        "INR",
		Units:           models.ReportingUnitAbsolute,
		NegativeDisplay: models.NegativeDisplayMinus,
		Decimals:        2,
	}
	if cfg == nil {
		return opts
	}
	if cfg.Currency != "" {
		opts.Currency = cfg.Currency
	}
	if _, ok := unitDivisors[cfg.Units]; ok {
		opts.Units = cfg.Units
	}
	if cfg.NegativeDisplay == models.NegativeDisplayBrackets {
		opts.NegativeDisplay = models.NegativeDisplayBrackets
	}
	return opts
}

// UnitsLabel is the caption printed above each statement.
func (o FormatOptions) UnitsLabel() string {
	if label, ok := unitLabels[o.Units]; ok {
		return "All amounts in " + o.Currency + " " + label
	}
	return "All amounts in " + o.Currency
}

// FormatAmount scales, rounds and groups an amount.
// INR amounts use lakh/crore digit grouping.
func (o FormatOptions) FormatAmount(d decimal.Decimal) string {
	divisor, ok := unitDivisors[o.Units]
	if !ok {
		divisor = unitDivisors[models.ReportingUnitAbsolute]
	}
	scaled := d.Div(divisor).Round(o.Decimals)
	negative := scaled.IsNegative()
	text := scaled.Abs().StringFixed(o.Decimals)

	intPart, fracPart := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i:]
	}
	grouped := groupDigits(intPart, o.Currency == "INR") + fracPart

	if !negative {
		return grouped
	}
	if o.NegativeDisplay == models.NegativeDisplayBrackets {
		return "(" + grouped + ")"
	}
	return "-" + grouped
}

func groupDigits(digits string, indian bool) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if indian {
		size = 2
	}
	var parts []string
	for len(head) > size {
		parts = append([]string{head[len(head)-size:]}, parts...)
		head = head[:len(head)-size]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

type FormattedLine struct {
	Label string `json:"label"`
	CY    string `json:"cy"`
	PY    string `json:"py"`
}

type FormattedSection struct {
	Title string          `json:"title"`
	Lines []FormattedLine `json:"lines"`
	Total FormattedLine   `json:"total"`
}

type FormattedStatements struct {
	UnitsLabel    string             `json:"units_label"`
	BalanceSheet  []FormattedSection `json:"balance_sheet"`
	ProfitAndLoss []FormattedSection `json:"profit_and_loss"`
	CashFlow      []FormattedSection `json:"cash_flow"`
	Ratios        []FormattedLine    `json:"ratios"`
}

// Format renders the statements with the given presentation options.
func Format(st *Statements, opts FormatOptions) *FormattedStatements {
	out := &FormattedStatements{UnitsLabel: opts.UnitsLabel()}

	bs := st.BalanceSheet
	nonCurrentLiabs := bs.TotalLiabilities.Add(bs.TotalCurrentLiabilities.Neg())
	nonCurrentAssets := bs.TotalAssets.Add(bs.TotalCurrentAssets.Neg())
	out.BalanceSheet = []FormattedSection{
		formatSection(opts, "Equity", bs.Equity, "Total Equity", bs.TotalEquity),
		formatSection(opts, "Non-current Liabilities", bs.NonCurrentLiabilities, "Total Non-current Liabilities", nonCurrentLiabs),
		formatSection(opts, "Current Liabilities", bs.CurrentLiabilities, "Total Current Liabilities", bs.TotalCurrentLiabilities),
		formatSection(opts, "Non-current Assets", bs.NonCurrentAssets, "Total Non-current Assets", nonCurrentAssets),
		formatSection(opts, "Current Assets", bs.CurrentAssets, "Total Current Assets", bs.TotalCurrentAssets),
	}

	pl := st.ProfitAndLoss
	out.ProfitAndLoss = []FormattedSection{
		formatSection(opts, "Income", pl.Income, "Total Income", pl.TotalIncome),
		formatSection(opts, "Expenses", pl.Expenses, "Total Expenses", pl.TotalExpenses),
		{
			Title: "Profit",
			Lines: []FormattedLine{
				formatBalance(opts, "Profit before tax", pl.ProfitBeforeTax),
				formatBalance(opts, "Tax expense", pl.TaxExpense),
			},
			Total: formatBalance(opts, "Profit for the year", pl.ProfitAfterTax),
		},
	}

	cf := st.CashFlow
	out.CashFlow = []FormattedSection{
		formatCashFlowSection(opts, "Cash flows from operating activities", cf.Operating, cf.NetOperating),
		formatCashFlowSection(opts, "Cash flows from investing activities", cf.Investing, cf.NetInvesting),
		formatCashFlowSection(opts, "Cash flows from financing activities", cf.Financing, cf.NetFinancing),
		{
			Title: "Cash and cash equivalents",
			Lines: []FormattedLine{
				{Label: "Opening balance", CY: opts.FormatAmount(cf.OpeningCash)},
				{Label: "Net increase / (decrease)", CY: opts.FormatAmount(cf.NetChange)},
			},
			Total: FormattedLine{Label: "Closing balance", CY: opts.FormatAmount(cf.ClosingCash)},
		},
	}

	for _, r := range st.Ratios {
		out.Ratios = append(out.Ratios, FormattedLine{
			Label: r.Name,
			CY:    formatRatio(r.Current, r.Percent),
			PY:    formatRatio(r.Previous, r.Percent),
		})
	}
	return out
}

func formatSection(opts FormatOptions, title string, items []LineItem, totalLabel string, total Balance) FormattedSection {
	s := FormattedSection{Title: title, Total: formatBalance(opts, totalLabel, total)}
	for _, item := range items {
		s.Lines = append(s.Lines, FormattedLine{
			Label: item.Name,
			CY:    opts.FormatAmount(item.CY),
			PY:    opts.FormatAmount(item.PY),
		})
	}
	return s
}

func formatCashFlowSection(opts FormatOptions, title string, lines []CashFlowLine, net decimal.Decimal) FormattedSection {
	s := FormattedSection{Title: title, Total: FormattedLine{Label: "Net cash from " + strings.TrimPrefix(title, "Cash flows from "), CY: opts.FormatAmount(net)}}
	for _, l := range lines {
		s.Lines = append(s.Lines, FormattedLine{Label: l.Label, CY: opts.FormatAmount(l.Amount)})
	}
	return s
}

func formatBalance(opts FormatOptions, label string, b Balance) FormattedLine {
	return FormattedLine{Label: label, CY: opts.FormatAmount(b.CY), PY: opts.FormatAmount(b.PY)}
}

func formatRatio(v decimal.NullDecimal, percent bool) string {
	if !v.Valid {
		return "N/A"
	}
	if percent {
		return v.Decimal.StringFixed(2) + "%"
	}
	return v.Decimal.StringFixed(2)
}

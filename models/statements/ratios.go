package statements

import (
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ratio is one of the Schedule III ratios. Values are null when the denominator is zero.
type Ratio struct {
	Name        string              `json:"name"`
	Numerator   string              `json:"numerator"`
	Denominator string              `json:"denominator"`
	Percent     bool                `json:"percent"`
	Current     decimal.NullDecimal `json:"current"`
	Previous    decimal.NullDecimal `json:"previous"`
	VariancePct decimal.NullDecimal `json:"variance_pct"`
}

type ratioDef struct {
	name        string
	numerator   string
	denominator string
	percent     bool
	num         func(r *ratioInputs) Balance
	den         func(r *ratioInputs) Balance
}

type ratioInputs struct {
	heads HeadTotals
	idx   models.MajorHeadIndex
	bs    *BalanceSheet
	pl    *ProfitAndLoss
}

func (r *ratioInputs) natural(codes ...string) Balance {
	return r.heads.NaturalSum(r.idx, codes...)
}

func (r *ratioInputs) borrowings() Balance {
	return r.natural(models.HeadLongTermBorrowings, models.HeadShortTermBorrowings)
}

func (r *ratioInputs) costOfGoods() Balance {
	return r.natural(models.HeadMaterialsConsumed, models.HeadPurchasesStock, models.HeadInventoryChange)
}

var ratioDefs = []ratioDef{
	{
		name: "Current Ratio", numerator: "Current Assets", denominator: "Current Liabilities",
		num: func(r *ratioInputs) Balance { return r.bs.TotalCurrentAssets },
		den: func(r *ratioInputs) Balance { return r.bs.TotalCurrentLiabilities },
	},
	{
		name: "Debt-Equity Ratio", numerator: "Total Debt", denominator: "Shareholder's Equity",
		num: func(r *ratioInputs) Balance { return r.borrowings() },
		den: func(r *ratioInputs) Balance { return r.bs.TotalEquity },
	},
	{
		name: "Debt Service Coverage Ratio", numerator: "Earnings available for debt service", denominator: "Debt Service",
		num: func(r *ratioInputs) Balance {
			return r.pl.ProfitAfterTax.Add(r.natural(models.HeadDepreciation)).Add(r.natural(models.HeadFinanceCosts))
		},
		den: func(r *ratioInputs) Balance {
			return r.natural(models.HeadFinanceCosts).Add(r.natural(models.HeadShortTermBorrowings))
		},
	},
	{
		name: "Return on Equity Ratio", numerator: "Net Profit after taxes", denominator: "Shareholder's Equity", percent: true,
		num: func(r *ratioInputs) Balance { return r.pl.ProfitAfterTax },
		den: func(r *ratioInputs) Balance { return r.bs.TotalEquity },
	},
	{
		name: "Inventory Turnover Ratio", numerator: "Cost of goods sold", denominator: "Inventories",
		num: func(r *ratioInputs) Balance { return r.costOfGoods() },
		den: func(r *ratioInputs) Balance { return r.natural(models.HeadInventories) },
	},
	{
		name: "Trade Receivables Turnover Ratio", numerator: "Revenue from operations", denominator: "Trade Receivables",
		num: func(r *ratioInputs) Balance { return r.pl.RevenueFromOperations },
		den: func(r *ratioInputs) Balance { return r.natural(models.HeadTradeReceivables) },
	},
	{
		name: "Trade Payables Turnover Ratio", numerator: "Purchases and other expenses", denominator: "Trade Payables",
		num: func(r *ratioInputs) Balance {
			return r.costOfGoods().Add(r.natural(models.HeadOtherExpenses))
		},
		den: func(r *ratioInputs) Balance { return r.natural(models.HeadTradePayables) },
	},
	{
		name: "Net Capital Turnover Ratio", numerator: "Revenue from operations", denominator: "Working Capital",
		num: func(r *ratioInputs) Balance { return r.pl.RevenueFromOperations },
		den: func(r *ratioInputs) Balance {
			return r.bs.TotalCurrentAssets.Add(r.bs.TotalCurrentLiabilities.Neg())
		},
	},
	{
		name: "Net Profit Ratio", numerator: "Net Profit", denominator: "Revenue from operations", percent: true,
		num: func(r *ratioInputs) Balance { return r.pl.ProfitAfterTax },
		den: func(r *ratioInputs) Balance { return r.pl.RevenueFromOperations },
	},
	{
		name: "Return on Capital Employed", numerator: "Earnings before interest and taxes", denominator: "Capital Employed", percent: true,
		num: func(r *ratioInputs) Balance { return r.pl.ProfitBeforeTax.Add(r.natural(models.HeadFinanceCosts)) },
		den: func(r *ratioInputs) Balance {
			return r.bs.TotalEquity.Add(r.borrowings()).Add(r.natural(models.HeadDeferredTaxLiabilities))
		},
	},
	{
		name: "Return on Investment", numerator: "Income from investments", denominator: "Investments", percent: true,
		num: func(r *ratioInputs) Balance { return r.pl.OtherIncome },
		den: func(r *ratioInputs) Balance {
			return r.natural(models.HeadCurrentInvestments, models.HeadNonCurrentInvestments)
		},
	},
}

// BuildRatios computes the eleven Schedule III ratios for both years.
func BuildRatios(entries []*models.TrialBalanceEntry, heads []*models.MajorHead) []Ratio {
	idx := models.NewMajorHeadIndex(heads)
	c := classify(entries, idx)
	pl := buildProfitAndLoss(c, idx)
	return buildRatios(c, idx, buildBalanceSheet(c, idx, pl), pl)
}

func buildRatios(c classified, idx models.MajorHeadIndex, bs *BalanceSheet, pl *ProfitAndLoss) []Ratio {
	in := &ratioInputs{heads: c.heads, idx: idx, bs: bs, pl: pl}
	ratios := make([]Ratio, 0, len(ratioDefs))
	for _, def := range ratioDefs {
		num, den := def.num(in), def.den(in)
		r := Ratio{
			Name:        def.name,
			Numerator:   def.numerator,
			Denominator: def.denominator,
			Percent:     def.percent,
			Current:     divide(num.CY, den.CY, def.percent),
			Previous:    divide(num.PY, den.PY, def.percent),
		}
		r.VariancePct = variance(r.Current, r.Previous)
		ratios = append(ratios, r)
	}
	return ratios
}

func divide(num, den decimal.Decimal, percent bool) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	v := num.DivRound(den, 8)
	if percent {
		v = v.Mul(hundred)
	}
	return decimal.NullDecimal{Decimal: v.Round(2), Valid: true}
}

func variance(current, previous decimal.NullDecimal) decimal.NullDecimal {
	if !current.Valid || !previous.Valid || previous.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	v := current.Decimal.Sub(previous.Decimal).DivRound(previous.Decimal.Abs(), 8).Mul(hundred)
	return decimal.NullDecimal{Decimal: v.Round(2), Valid: true}
}

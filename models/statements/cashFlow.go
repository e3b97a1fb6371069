package statements

import (
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

type CashFlowActivity string

const (
	CashFlowOperating CashFlowActivity = "operating"
	CashFlowInvesting CashFlowActivity = "investing"
	CashFlowFinancing CashFlowActivity = "financing"
)

// Balance sheet heads outside working capital. Heads not listed here are operating.
var cashFlowActivityByHead = map[string]CashFlowActivity{
	models.HeadPPE:                   CashFlowInvesting,
	models.HeadCWIP:                  CashFlowInvesting,
	models.HeadIntangibleAssets:      CashFlowInvesting,
	models.HeadNonCurrentInvestments: CashFlowInvesting,
	models.HeadCurrentInvestments:    CashFlowInvesting,
	models.HeadShareCapital:          CashFlowFinancing,
	models.HeadOtherEquity:           CashFlowFinancing,
	models.HeadLongTermBorrowings:    CashFlowFinancing,
	models.HeadShortTermBorrowings:   CashFlowFinancing,
}

type CashFlowLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlow is the indirect-method statement for the current year.
type CashFlow struct {
	Operating []CashFlowLine `json:"operating"`
	Investing []CashFlowLine `json:"investing"`
	Financing []CashFlowLine `json:"financing"`

	NetOperating decimal.Decimal `json:"net_operating"`
	NetInvesting decimal.Decimal `json:"net_investing"`
	NetFinancing decimal.Decimal `json:"net_financing"`
	NetChange    decimal.Decimal `json:"net_change"`

	OpeningCash decimal.Decimal `json:"opening_cash"`
	ClosingCash decimal.Decimal `json:"closing_cash"`

	// Difference is the computed net change less the movement in cash. Zero when the statement reconciles.
	Difference decimal.Decimal `json:"difference"`
}

// BuildCashFlow derives the cash flow from profit and balance sheet movements.
func BuildCashFlow(entries []*models.TrialBalanceEntry, heads []*models.MajorHead) *CashFlow {
	idx := models.NewMajorHeadIndex(heads)
	c := classify(entries, idx)
	return buildCashFlow(c, idx, buildProfitAndLoss(c, idx))
}

func buildCashFlow(c classified, idx models.MajorHeadIndex, pl *ProfitAndLoss) *CashFlow {
	cf := &CashFlow{}
	depreciation := c.heads.Get(models.HeadDepreciation).CY

	cf.Operating = append(cf.Operating, CashFlowLine{Label: "Profit after tax", Amount: pl.ProfitAfterTax.CY})
	if !depreciation.IsZero() {
		cf.Operating = append(cf.Operating, CashFlowLine{Label: "Add: Depreciation and amortisation", Amount: depreciation})
	}

	for _, head := range idx.Sorted() {
		if head.Section.StatementType() != models.StatementTypeBS {
			continue
		}
		bal := c.heads.Get(head.Code)
		if head.Code == models.HeadCashEquivalents {
			cf.OpeningCash = bal.PY
			cf.ClosingCash = bal.CY
			continue
		}
		// An increase in a debit balance consumes cash.
		movement := bal.CY.Sub(bal.PY).Neg()
		activity, ok := cashFlowActivityByHead[head.Code]
		if !ok {
			activity = CashFlowOperating
		}
		if head.Code == models.HeadPPE {
			movement = movement.Sub(depreciation)
		}
		if movement.IsZero() {
			continue
		}

		switch activity {
		case CashFlowInvesting:
			cf.Investing = append(cf.Investing, CashFlowLine{Label: cashFlowLabel(head, movement), Amount: movement})
		case CashFlowFinancing:
			cf.Financing = append(cf.Financing, CashFlowLine{Label: cashFlowLabel(head, movement), Amount: movement})
		default:
			cf.Operating = append(cf.Operating, CashFlowLine{Label: cashFlowLabel(head, movement), Amount: movement})
		}
	}

	cf.NetOperating = sumLines(cf.Operating)
	cf.NetInvesting = sumLines(cf.Investing)
	cf.NetFinancing = sumLines(cf.Financing)
	cf.NetChange = cf.NetOperating.Add(cf.NetInvesting).Add(cf.NetFinancing)
	cf.Difference = cf.NetChange.Sub(cf.ClosingCash.Sub(cf.OpeningCash))
	return cf
}

func cashFlowLabel(head *models.MajorHead, movement decimal.Decimal) string {
	if head.Section == models.HeadSectionAsset {
		if movement.IsNegative() {
			return "Increase in " + head.Name
		}
		return "Decrease in " + head.Name
	}
	if movement.IsNegative() {
		return "Decrease in " + head.Name
	}
	return "Increase in " + head.Name
}

func sumLines(lines []CashFlowLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

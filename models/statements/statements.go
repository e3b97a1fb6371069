// Package statements derives Schedule III statements from a classified trial balance.
// Every function here is pure: no database access, no formatting state.
package statements

import "github.com/mmdatafocus/schedule3_backend/models"

type Statements struct {
	BalanceSheet  *BalanceSheet  `json:"balance_sheet"`
	ProfitAndLoss *ProfitAndLoss `json:"profit_and_loss"`
	CashFlow      *CashFlow      `json:"cash_flow"`
	Ratios        []Ratio        `json:"ratios"`

	Heads HeadTotals `json:"heads"`
}

// Build generates all statements from one pass over the trial balance.
func Build(entries []*models.TrialBalanceEntry, heads []*models.MajorHead) *Statements {
	idx := models.NewMajorHeadIndex(heads)
	c := classify(entries, idx)
	pl := buildProfitAndLoss(c, idx)
	bs := buildBalanceSheet(c, idx, pl)
	return &Statements{
		BalanceSheet:  bs,
		ProfitAndLoss: pl,
		CashFlow:      buildCashFlow(c, idx, pl),
		Ratios:        buildRatios(c, idx, bs, pl),
		Heads:         c.heads,
	}
}

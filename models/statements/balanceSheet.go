package statements

import (
	"github.com/mmdatafocus/schedule3_backend/models"
)

const profitCarriedName = "Surplus in Statement of Profit and Loss (current year)"

type BalanceSheet struct {
	Equity                []LineItem `json:"equity"`
	NonCurrentLiabilities []LineItem `json:"non_current_liabilities"`
	CurrentLiabilities    []LineItem `json:"current_liabilities"`
	NonCurrentAssets      []LineItem `json:"non_current_assets"`
	CurrentAssets         []LineItem `json:"current_assets"`

	TotalEquity             Balance `json:"total_equity"`
	TotalLiabilities        Balance `json:"total_liabilities"`
	TotalCurrentLiabilities Balance `json:"total_current_liabilities"`
	TotalAssets             Balance `json:"total_assets"`
	TotalCurrentAssets      Balance `json:"total_current_assets"`

	// Current year profit folded into equity. Previous year balances already include it.
	ProfitCarried Balance `json:"profit_carried"`

	Unclassified Balance `json:"unclassified"`
}

// Difference is total assets less total equity and liabilities.
func (bs *BalanceSheet) Difference() Balance {
	return bs.TotalAssets.Add(bs.TotalEquity.Neg()).Add(bs.TotalLiabilities.Neg())
}

// BuildBalanceSheet groups balance sheet heads into the Schedule III sections.
func BuildBalanceSheet(entries []*models.TrialBalanceEntry, heads []*models.MajorHead) *BalanceSheet {
	idx := models.NewMajorHeadIndex(heads)
	c := classify(entries, idx)
	return buildBalanceSheet(c, idx, buildProfitAndLoss(c, idx))
}

func buildBalanceSheet(c classified, idx models.MajorHeadIndex, pl *ProfitAndLoss) *BalanceSheet {
	bs := &BalanceSheet{Unclassified: c.unclassifiedBS}
	for _, head := range idx.Sorted() {
		if head.Section.StatementType() != models.StatementTypeBS {
			continue
		}
		if c.heads.Get(head.Code).IsZero() {
			continue
		}
		natural := c.heads.Natural(head)
		item := LineItem{Code: head.Code, Name: head.Name, IsCurrent: head.IsCurrent, CY: natural.CY, PY: natural.PY}
		switch head.Section {
		case models.HeadSectionEquity:
			bs.Equity = append(bs.Equity, item)
			bs.TotalEquity = bs.TotalEquity.Add(natural)
		case models.HeadSectionLiability:
			if head.IsCurrent {
				bs.CurrentLiabilities = append(bs.CurrentLiabilities, item)
				bs.TotalCurrentLiabilities = bs.TotalCurrentLiabilities.Add(natural)
			} else {
				bs.NonCurrentLiabilities = append(bs.NonCurrentLiabilities, item)
			}
			bs.TotalLiabilities = bs.TotalLiabilities.Add(natural)
		case models.HeadSectionAsset:
			if head.IsCurrent {
				bs.CurrentAssets = append(bs.CurrentAssets, item)
				bs.TotalCurrentAssets = bs.TotalCurrentAssets.Add(natural)
			} else {
				bs.NonCurrentAssets = append(bs.NonCurrentAssets, item)
			}
			bs.TotalAssets = bs.TotalAssets.Add(natural)
		}
	}

	bs.ProfitCarried = Balance{CY: pl.ProfitAfterTax.CY}
	if !bs.ProfitCarried.CY.IsZero() {
		bs.Equity = append(bs.Equity, LineItem{Name: profitCarriedName, CY: bs.ProfitCarried.CY})
		bs.TotalEquity = bs.TotalEquity.Add(bs.ProfitCarried)
	}
	return bs
}

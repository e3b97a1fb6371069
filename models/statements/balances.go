package statements

import (
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

// Balance is a pair of debit-positive closing balances.
type Balance struct {
	CY decimal.Decimal `json:"cy"`
	PY decimal.Decimal `json:"py"`
}

func (b Balance) Add(o Balance) Balance {
	return Balance{CY: b.CY.Add(o.CY), PY: b.PY.Add(o.PY)}
}

func (b Balance) Neg() Balance {
	return Balance{CY: b.CY.Neg(), PY: b.PY.Neg()}
}

func (b Balance) IsZero() bool {
	return b.CY.IsZero() && b.PY.IsZero()
}

// HeadTotals sums trial balance rows per major head code.
type HeadTotals map[string]Balance

// Get returns the debit-positive balance of a head, zero when absent.
func (h HeadTotals) Get(code string) Balance {
	return h[code]
}

// Natural returns the balance signed so that the head's normal balance is positive.
func (h HeadTotals) Natural(head *models.MajorHead) Balance {
	b := h[head.Code]
	if head.Section.CreditNatured() {
		return b.Neg()
	}
	return b
}

// Sum of the natural balances of the given heads.
func (h HeadTotals) NaturalSum(idx models.MajorHeadIndex, codes ...string) Balance {
	var total Balance
	for _, code := range codes {
		head := idx.ByCode(code)
		if head == nil {
			continue
		}
		total = total.Add(h.Natural(head))
	}
	return total
}

// classified splits trial balance rows into per-head totals and unclassified remainders.
type classified struct {
	heads          HeadTotals
	unclassifiedBS Balance
	unclassifiedPL Balance
	incomeRows     int
	expenseRows    int
}

func classify(entries []*models.TrialBalanceEntry, idx models.MajorHeadIndex) classified {
	c := classified{heads: make(HeadTotals)}
	for _, e := range entries {
		bal := Balance{CY: e.ClosingBalanceCY, PY: e.ClosingBalancePY}
		var head *models.MajorHead
		if e.IsClassified() {
			head = idx[*e.MajorHeadId]
		}
		if head == nil {
			if e.StatementType == models.StatementTypePL {
				c.unclassifiedPL = c.unclassifiedPL.Add(bal)
			} else {
				c.unclassifiedBS = c.unclassifiedBS.Add(bal)
			}
			continue
		}
		c.heads[head.Code] = c.heads[head.Code].Add(bal)
		if e.ClosingBalanceCY.IsZero() {
			continue
		}
		switch head.Section {
		case models.HeadSectionIncome:
			c.incomeRows++
		case models.HeadSectionExpense:
			c.expenseRows++
		}
	}
	return c
}

package statements

import (
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	IsCurrent bool            `json:"is_current"`
	CY        decimal.Decimal `json:"cy"`
	PY        decimal.Decimal `json:"py"`
}

type ProfitAndLoss struct {
	Income   []LineItem `json:"income"`
	Expenses []LineItem `json:"expenses"`

	RevenueFromOperations Balance `json:"revenue_from_operations"`
	OtherIncome           Balance `json:"other_income"`
	TotalIncome           Balance `json:"total_income"`
	TotalExpenses         Balance `json:"total_expenses"`
	ProfitBeforeTax       Balance `json:"profit_before_tax"`
	TaxExpense            Balance `json:"tax_expense"`
	ProfitAfterTax        Balance `json:"profit_after_tax"`

	// Rows with a non-zero current year balance.
	IncomeRows  int `json:"income_rows"`
	ExpenseRows int `json:"expense_rows"`

	Unclassified Balance `json:"unclassified"`
}

// BuildProfitAndLoss presents income and expenses with their natural (positive) sign.
func BuildProfitAndLoss(entries []*models.TrialBalanceEntry, heads []*models.MajorHead) *ProfitAndLoss {
	idx := models.NewMajorHeadIndex(heads)
	return buildProfitAndLoss(classify(entries, idx), idx)
}

func buildProfitAndLoss(c classified, idx models.MajorHeadIndex) *ProfitAndLoss {
	pl := &ProfitAndLoss{
		IncomeRows:   c.incomeRows,
		ExpenseRows:  c.expenseRows,
		Unclassified: c.unclassifiedPL,
	}
	for _, head := range idx.Sorted() {
		bal := c.heads.Get(head.Code)
		if bal.IsZero() {
			continue
		}
		natural := c.heads.Natural(head)
		item := LineItem{Code: head.Code, Name: head.Name, CY: natural.CY, PY: natural.PY}
		switch head.Section {
		case models.HeadSectionIncome:
			pl.Income = append(pl.Income, item)
			pl.TotalIncome = pl.TotalIncome.Add(natural)
		case models.HeadSectionExpense:
			if head.Code == models.HeadTaxExpense {
				pl.TaxExpense = pl.TaxExpense.Add(natural)
				continue
			}
			pl.Expenses = append(pl.Expenses, item)
			pl.TotalExpenses = pl.TotalExpenses.Add(natural)
		}
	}
	pl.RevenueFromOperations = c.heads.NaturalSum(idx, models.HeadRevenue)
	pl.OtherIncome = c.heads.NaturalSum(idx, models.HeadOtherIncome)
	pl.ProfitBeforeTax = pl.TotalIncome.Add(pl.TotalExpenses.Neg())
	pl.ProfitAfterTax = pl.ProfitBeforeTax.Add(pl.TaxExpense.Neg())
	return pl
}

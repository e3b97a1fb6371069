package compliance

import (
	"fmt"
	"strings"

	"github.com/mmdatafocus/schedule3_backend/models"
)

var forexLedgerHints = []string{"forex", "foreign exchange", "exchange fluctuation", "exchange gain", "exchange loss"}

func hasForeignCurrency(s *Snapshot) bool {
	if c := strings.ToUpper(strings.TrimSpace(s.Entity.Currency)); c != "" && c != "INR" {
		return true
	}
	for _, e := range s.Entries {
		if e.ClosingBalanceCY.IsZero() {
			continue
		}
		name := strings.ToLower(e.LedgerName)
		for _, hint := range forexLedgerHints {
			if strings.Contains(name, hint) {
				return true
			}
		}
	}
	return false
}

// amendmentRules cover the categories added by the 2021 amendment to Schedule III.
func amendmentRules() []Rule {
	return []Rule{
		noteWhen("revenue-note", CategoryRevenueRecognition, SeverityError, models.NoteRevenue,
			"Revenue note is selected",
			hasBalance(models.HeadRevenue),
			"Revenue from operations has a balance but the revenue note is not selected.",
			"Select the revenue from operations note and disaggregate sale of products, sale of services and other operating revenue."),
		{
			ID: "revenue-sign", Category: CategoryRevenueRecognition, Title: "Revenue has a credit balance",
			NoteRefs: []string{models.NoteRevenue},
			Check: func(s *Snapshot) *Finding {
				if !s.NaturalCY(models.HeadRevenue).IsNegative() {
					return nil
				}
				return fail(SeverityError, "Revenue from operations has a debit balance.",
					"Check revenue ledgers for returns or discounts posted in excess of sales and reclassify expenses mapped to revenue.")
			},
		},
		{
			ID: "borrowings-note", Category: CategoryBorrowings, Title: "Borrowing notes are selected",
			NoteRefs: []string{models.NoteLongTermBorrowings, models.NoteShortTermBorrowings},
			Check: func(s *Snapshot) *Finding {
				if s.HasBalance(models.HeadLongTermBorrowings) && !s.Notes.Selected(models.NoteLongTermBorrowings) {
					f := fail(SeverityError, "Long-term borrowings exist but the long-term borrowings note is not selected.",
						"Select the long-term borrowings note and disclose security, repayment terms and any defaults.")
					f.NoteRefs = []string{models.NoteLongTermBorrowings}
					return f
				}
				if s.HasBalance(models.HeadShortTermBorrowings) && !s.Notes.Selected(models.NoteShortTermBorrowings) {
					return &Finding{
						Severity:       SeverityError,
						Issue:          "Short-term borrowings exist but the short-term borrowings note is not selected.",
						Recommendation: "Select the short-term borrowings note and disclose current maturities of long-term debt separately.",
						NoteRefs:       []string{models.NoteShortTermBorrowings},
					}
				}
				return nil
			},
		},
		{
			ID: "borrowings-finance-cost", Category: CategoryBorrowings, Title: "Borrowings carry finance costs",
			NoteRefs: []string{models.NoteFinanceCosts},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadLongTermBorrowings, models.HeadShortTermBorrowings) || s.HasBalance(models.HeadFinanceCosts) {
					return nil
				}
				return fail(SeverityWarning, "Borrowings exist but no finance costs were charged during the year.",
					"Confirm whether the borrowings are interest free and disclose the terms, or map the interest ledgers to finance costs.")
			},
		},
		noteWhen("inventory-note", CategoryInventory, SeverityError, models.NoteInventories,
			"Inventories note is selected",
			hasBalance(models.HeadInventories),
			"Inventories have a balance but the inventories note is not selected.",
			"Select the inventories note and disclose raw materials, work-in-progress, finished goods and the valuation method."),
		{
			ID: "inventory-cost-of-goods", Category: CategoryInventory, Title: "Inventory is matched by cost of goods",
			NoteRefs: []string{models.NoteMaterialsConsumed},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadInventories) ||
					s.HasBalance(models.HeadMaterialsConsumed, models.HeadPurchasesStock, models.HeadInventoryChange) {
					return nil
				}
				return fail(SeverityWarning, "Inventories exist but no cost of materials or purchases was recorded.",
					"Map material consumption, purchases and changes in inventories so that cost of goods sold is presented.")
			},
		},
		{
			ID: "depreciation-charged", Category: CategoryDepreciation, Title: "Depreciation is charged on PPE",
			NoteRefs: []string{models.NoteDepreciation},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadPPE, models.HeadIntangibleAssets) || s.HasBalance(models.HeadDepreciation) {
					return nil
				}
				return fail(SeverityError, "Property, plant and equipment exist but no depreciation was charged.",
					"Compute depreciation under Schedule II useful lives and post it before generating the statements.")
			},
		},
		{
			ID: "depreciation-note", Category: CategoryDepreciation, Title: "PPE and depreciation notes are selected",
			NoteRefs: []string{models.NotePPE, models.NoteDepreciation},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadPPE) {
					return nil
				}
				if !s.Notes.Selected(models.NotePPE) {
					return fail(SeverityError, "PPE has a balance but the property, plant and equipment note is not selected.",
						"Select the PPE note and present the gross block, additions, disposals and accumulated depreciation.")
				}
				if s.HasBalance(models.HeadDepreciation) && !s.Notes.Selected(models.NoteDepreciation) {
					return &Finding{
						Severity:       SeverityError,
						Issue:          "Depreciation was charged but the depreciation note is not selected.",
						Recommendation: "Select the depreciation and amortisation note and split the charge between tangible and intangible assets.",
						NoteRefs:       []string{models.NoteDepreciation},
					}
				}
				return nil
			},
		},
		{
			ID: "cashflow-reconciles", Category: CategoryCashFlow, Title: "Cash flow reconciles to cash balances",
			NoteRefs: []string{models.NoteCashEquivalents},
			Check: func(s *Snapshot) *Finding {
				diff := s.Statements.CashFlow.Difference
				if withinTolerance(diff) {
					return nil
				}
				return fail(SeverityError,
					fmt.Sprintf("Cash flow net change differs from the movement in cash by %s.", diff.StringFixed(2)),
					"Map every balance sheet ledger with a movement to a major head; unmapped movements break the cash flow reconciliation.")
			},
		},
		noteWhen("cashflow-cash-note", CategoryCashFlow, SeverityWarning, models.NoteCashEquivalents,
			"Cash and cash equivalents note is selected",
			hasBalance(models.HeadCashEquivalents),
			"Cash has a balance but the cash and cash equivalents note is not selected.",
			"Select the cash and cash equivalents note and separate balances with banks, cash on hand and earmarked deposits."),
		{
			ID: "cashflow-negative-cash", Category: CategoryCashFlow, Title: "Cash balance is not negative",
			NoteRefs: []string{models.NoteCashEquivalents},
			Check: func(s *Snapshot) *Finding {
				if !s.NaturalCY(models.HeadCashEquivalents).IsNegative() {
					return nil
				}
				return fail(SeverityError, "Cash and cash equivalents have a credit balance.",
					"Reclassify overdrawn bank accounts to short-term borrowings; cash and cash equivalents cannot be negative.")
			},
		},
		noteWhen("segment-reporting", CategorySegmentReporting, SeverityWarning, models.NoteSegmentReporting,
			"Segment note is selected when turnover exceeds 50 crores",
			func(s *Snapshot) bool {
				return s.Statements.ProfitAndLoss.RevenueFromOperations.CY.GreaterThan(crores(50))
			},
			"Turnover exceeds 50 crores but the segment reporting note is not selected.",
			"Select the segment reporting note and disclose segment revenue, results and assets, or state that there is a single segment."),
		{
			ID: "provisions-note", Category: CategoryProvisions, Title: "Provisions note is selected",
			NoteRefs: []string{models.NoteProvisions},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadLongTermProvisions, models.HeadShortTermProvisions) || s.Notes.Selected(models.NoteProvisions) {
					return nil
				}
				return fail(SeverityError, "Provisions exist but the provisions note is not selected.",
					"Select the provisions note and split provisions for employee benefits from other provisions, long-term and short-term.")
			},
		},
		{
			ID: "provisions-employee-benefits", Category: CategoryProvisions, Title: "Employee benefit obligations are provided for",
			NoteRefs: []string{models.NoteProvisions, models.NoteEmployeeBenefits},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadEmployeeBenefits) ||
					s.HasBalance(models.HeadLongTermProvisions, models.HeadShortTermProvisions) {
					return nil
				}
				return fail(SeverityInfo, "Employee costs were incurred but no provision for gratuity or leave exists.",
					"Check whether gratuity and leave encashment obligations need an actuarial provision under the accounting standard.")
			},
		},
		noteWhen("forex-note", CategoryForeignCurrency, SeverityWarning, models.NoteForeignCurrency,
			"Foreign currency note is selected when there are foreign currency transactions",
			hasForeignCurrency,
			"Foreign currency balances or exchange differences exist but the foreign currency note is not selected.",
			"Select the foreign currency transactions note and disclose exchange differences and unhedged foreign currency exposure."),
		noteWhen("eps-note", CategoryEarningsPerShare, SeverityError, models.NoteEarningsPerShare,
			"Earnings per share note is selected",
			hasBalance(models.HeadShareCapital),
			"The company has share capital but the earnings per share note is not selected.",
			"Select the earnings per share note and present basic and diluted EPS with the weighted average number of shares."),
		{
			ID: "eps-share-capital", Category: CategoryEarningsPerShare, Title: "EPS has a share base",
			NoteRefs: []string{models.NoteEarningsPerShare, models.NoteShareCapital},
			Check: func(s *Snapshot) *Finding {
				if !s.Notes.Selected(models.NoteEarningsPerShare) || s.HasBalance(models.HeadShareCapital) {
					return nil
				}
				return fail(SeverityError, "The earnings per share note is selected but no share capital is recorded.",
					"Map the equity share capital ledger to the share capital head so that earnings per share can be computed.")
			},
		},
	}
}

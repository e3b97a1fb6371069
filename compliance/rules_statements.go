package compliance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func statementRules() []Rule {
	return []Rule{
		{
			ID: "fs-tb-present", Category: CategoryFinancialStatements, Title: "Trial balance is uploaded",
			Check: func(s *Snapshot) *Finding {
				if len(s.Entries) > 0 {
					return nil
				}
				return fail(SeverityError, "No trial balance rows were found for this company.",
					"Upload the trial balance for the financial year; none of the statements can be generated without it.")
			},
		},
		{
			ID: "fs-tb-balanced", Category: CategoryFinancialStatements, Title: "Trial balance debits equal credits",
			Check: func(s *Snapshot) *Finding {
				total := decimal.Zero
				for _, e := range s.Entries {
					total = total.Add(e.ClosingBalanceCY)
				}
				if withinTolerance(total) {
					return nil
				}
				return fail(SeverityError,
					fmt.Sprintf("Trial balance closing balances do not net to zero (difference %s).", total.StringFixed(2)),
					"Check the uploaded trial balance for missing ledgers or sign errors; total debits must equal total credits.")
			},
		},
		{
			ID: "fs-unclassified", Category: CategoryFinancialStatements, Title: "Every ledger is mapped to a major head",
			Check: func(s *Snapshot) *Finding {
				var unmapped []string
				for _, e := range s.Entries {
					if e.IsClassified() && s.Heads[*e.MajorHeadId] != nil {
						continue
					}
					if e.ClosingBalanceCY.IsZero() && e.ClosingBalancePY.IsZero() {
						continue
					}
					unmapped = append(unmapped, e.LedgerName)
				}
				if len(unmapped) == 0 {
					return nil
				}
				return fail(SeverityError,
					fmt.Sprintf("%d ledgers with balances are not mapped to a major head: %s.", len(unmapped), truncateList(unmapped, 5)),
					"Map every ledger with a balance to a major head and grouping; unmapped balances are left out of the statements.")
			},
		},
		{
			ID: "fs-head-statement-type", Category: CategoryFinancialStatements, Title: "Ledgers are mapped to heads of their own statement",
			Check: func(s *Snapshot) *Finding {
				var mismatched []string
				for _, e := range s.Entries {
					if !e.IsClassified() {
						continue
					}
					head := s.Heads[*e.MajorHeadId]
					if head == nil || head.Section.StatementType() == e.StatementType {
						continue
					}
					mismatched = append(mismatched, e.LedgerName)
				}
				if len(mismatched) == 0 {
					return nil
				}
				return fail(SeverityError,
					fmt.Sprintf("Ledgers mapped to a head of the other statement: %s.", truncateList(mismatched, 5)),
					"Balance sheet ledgers must map to balance sheet heads and profit and loss ledgers to income or expense heads.")
			},
		},
		{
			ID: "fs-bs-balanced", Category: CategoryFinancialStatements, Title: "Balance sheet balances",
			Check: func(s *Snapshot) *Finding {
				diff := s.Statements.BalanceSheet.Difference().CY
				if withinTolerance(diff) {
					return nil
				}
				return fail(SeverityError,
					fmt.Sprintf("Total assets differ from equity and liabilities by %s.", diff.StringFixed(2)),
					"Reconcile the trial balance mapping until total assets equal total equity and liabilities for the current year.")
			},
		},
		{
			ID: "fs-bs-balanced-py", Category: CategoryFinancialStatements, Title: "Comparative balance sheet balances",
			Check: func(s *Snapshot) *Finding {
				diff := s.Statements.BalanceSheet.Difference().PY
				if withinTolerance(diff) {
					return nil
				}
				return fail(SeverityWarning,
					fmt.Sprintf("Previous year assets differ from equity and liabilities by %s.", diff.StringFixed(2)),
					"Check the previous year closing balances against the audited statements of the prior year.")
			},
		},
		{
			ID: "fs-pl-revenue", Category: CategoryFinancialStatements, Title: "Profit and loss has income entries",
			Check: func(s *Snapshot) *Finding {
				if s.Statements.ProfitAndLoss.IncomeRows > 0 {
					return nil
				}
				return fail(SeverityError, "No revenue or income entries exist for the period.",
					"Map revenue and other income ledgers to their heads; a statement of profit and loss without income is incomplete.")
			},
		},
		{
			ID: "fs-pl-expenses", Category: CategoryFinancialStatements, Title: "Profit and loss has expense entries",
			Check: func(s *Snapshot) *Finding {
				if s.Statements.ProfitAndLoss.ExpenseRows > 0 {
					return nil
				}
				return fail(SeverityError, "No expense entries exist for the period.",
					"Map expense ledgers to their heads; the statement of profit and loss needs the expenses of the period.")
			},
		},
	}
}

func truncateList(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(items[:max], ", "), len(items)-max)
}

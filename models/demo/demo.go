// Package demo holds a complete, compliant sample company: a balanced trial
// balance, entity particulars, aging schedules and note selections.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

// FyStart, FyEnd and AsOf fix the reporting period of every fixture.
var (
	FyStart = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	FyEnd   = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
	AsOf    = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
)

type tbRow struct {
	ledger string
	head   string
	cy     int64
	py     int64
}

// A balanced trial balance where every current year figure is 110% of the
// previous year, so all ratios are flat. Profit CY 3,30,000 and PY 3,00,000.
var compliantRows = []tbRow{
	{"Equity Share Capital", models.HeadShareCapital, -1_100_000, -1_000_000},
	{"Retained Earnings", models.HeadOtherEquity, -330_000, -600_000},
	{"Term Loan - SBI", models.HeadLongTermBorrowings, -440_000, -400_000},
	{"Sundry Creditors", models.HeadTradePayables, -330_000, -300_000},
	{"Provision for Gratuity", models.HeadShortTermProvisions, -110_000, -100_000},
	{"Plant and Machinery", models.HeadPPE, 1_320_000, 1_200_000},
	{"Raw Material Stock", models.HeadInventories, 440_000, 400_000},
	{"Sundry Debtors", models.HeadTradeReceivables, 550_000, 500_000},
	{"HDFC Current Account", models.HeadCashEquivalents, 330_000, 300_000},

	{"Sales", models.HeadRevenue, -2_200_000, -2_000_000},
	{"Interest Received", models.HeadOtherIncome, -55_000, -50_000},
	{"Raw Material Consumed", models.HeadMaterialsConsumed, 1_100_000, 1_000_000},
	{"Salaries", models.HeadEmployeeBenefits, 330_000, 300_000},
	{"Interest on Term Loan", models.HeadFinanceCosts, 44_000, 40_000},
	{"Depreciation", models.HeadDepreciation, 110_000, 100_000},
	{"Rent", models.HeadOtherExpenses, 220_000, 200_000},
	{"Income Tax", models.HeadTaxExpense, 121_000, 110_000},
}

func (r tbRow) statementType() models.StatementType {
	for _, h := range models.StandardMajorHeads() {
		if h.Code == r.head {
			return h.Section.StatementType()
		}
	}
	return models.StatementTypeBS
}

// movement splits the current year closing into opening, debit and credit.
func (r tbRow) movement() (opening, debit, credit decimal.Decimal) {
	opening = decimal.Zero
	if r.statementType() == models.StatementTypeBS {
		opening = decimal.NewFromInt(r.py)
	}
	diff := decimal.NewFromInt(r.cy).Sub(opening)
	if diff.IsPositive() {
		return opening, diff, decimal.Zero
	}
	return opening, decimal.Zero, diff.Neg()
}

// CompliantTrialBalanceInput is the compliant trial balance as upload rows.
func CompliantTrialBalanceInput() []*models.NewTrialBalanceEntry {
	out := make([]*models.NewTrialBalanceEntry, 0, len(compliantRows))
	for _, r := range compliantRows {
		opening, debit, credit := r.movement()
		out = append(out, &models.NewTrialBalanceEntry{
			LedgerName:       r.ledger,
			StatementType:    r.statementType(),
			OpeningBalance:   opening,
			Debit:            debit,
			Credit:           credit,
			ClosingBalancePY: decimal.NewFromInt(r.py),
			MajorHeadCode:    r.head,
		})
	}
	return out
}

// CompliantEntries is the compliant trial balance classified against StandardMajorHeads.
func CompliantEntries() []*models.TrialBalanceEntry {
	ids := make(map[string]int)
	for _, h := range models.StandardMajorHeads() {
		ids[h.Code] = h.ID
	}
	out := make([]*models.TrialBalanceEntry, 0, len(compliantRows))
	for i, r := range compliantRows {
		opening, debit, credit := r.movement()
		headId := ids[r.head]
		out = append(out, &models.TrialBalanceEntry{
			ID:               i + 1,
			LedgerName:       r.ledger,
			StatementType:    r.statementType(),
			OpeningBalance:   opening,
			Debit:            debit,
			Credit:           credit,
			ClosingBalanceCY: decimal.NewFromInt(r.cy),
			ClosingBalancePY: decimal.NewFromInt(r.py),
			MajorHeadId:      &headId,
		})
	}
	return out
}

// StandardHeadPointers returns StandardMajorHeads as pointers.
func StandardHeadPointers() []*models.MajorHead {
	heads := models.StandardMajorHeads()
	out := make([]*models.MajorHead, len(heads))
	for i := range heads {
		out[i] = &heads[i]
	}
	return out
}

func CompliantEntity(companyId string) *models.EntityConfig {
	start, end := FyStart, FyEnd
	return &models.EntityConfig{
		CompanyId:       companyId,
		Name:            "Acme Manufacturing Private Limited",
		Address:         "12 Industrial Estate, Pune, Maharashtra 411019",
		CIN:             "U29100MH2010PTC123456",
		Phone:           "+91 98200 12345",
		FyStart:         &start,
		FyEnd:           &end,
		Currency:        "INR",
		Units:           models.ReportingUnitAbsolute,
		NegativeDisplay: models.NegativeDisplayBrackets,
	}
}

func CompliantNewEntity() *models.NewEntityConfig {
	e := CompliantEntity("")
	return &models.NewEntityConfig{
		Name:            e.Name,
		Address:         e.Address,
		CIN:             e.CIN,
		Phone:           e.Phone,
		FyStart:         e.FyStart,
		FyEnd:           e.FyEnd,
		Currency:        e.Currency,
		Units:           e.Units,
		NegativeDisplay: e.NegativeDisplay,
	}
}

func CompliantReceivables() []*models.ReceivableAging {
	return []*models.ReceivableAging{
		{Bucket: models.AgingBucketNotDue, AmountCY: decimal.NewFromInt(300_000)},
		{Bucket: models.AgingBucketLessThan6Months, AmountCY: decimal.NewFromInt(200_000)},
		{Bucket: models.AgingBucket6MonthsTo1Year, AmountCY: decimal.NewFromInt(45_000)},
		{Bucket: models.AgingBucket1To2Years, Disputed: true, AmountCY: decimal.NewFromInt(5_000)},
	}
}

func CompliantPayables() []*models.PayableAging {
	return []*models.PayableAging{
		{Bucket: models.AgingBucketNotDue, Category: models.PayableCategoryMSME, AmountCY: decimal.NewFromInt(100_000)},
		{Bucket: models.AgingBucketLessThan1Year, Category: models.PayableCategoryOthers, AmountCY: decimal.NewFromInt(230_000)},
	}
}

// CompliantNoteRefs are the notes a compliant company selects.
var CompliantNoteRefs = []string{
	models.NoteCorporateInfo, models.NoteBasisOfPreparation, models.NoteAccountingPolicies, models.NoteUseOfEstimates,
	models.NoteShareCapital, models.NoteOtherEquity, models.NoteLongTermBorrowings, models.NoteTradePayables,
	models.NoteProvisions, models.NotePPE, models.NoteInventories, models.NoteTradeReceivables, models.NoteCashEquivalents,
	models.NoteRevenue, models.NoteOtherIncome, models.NoteMaterialsConsumed, models.NoteEmployeeBenefits,
	models.NoteFinanceCosts, models.NoteDepreciation, models.NoteOtherExpenses, models.NoteTaxExpense, models.NoteEarningsPerShare,
	models.NoteRelatedParty, models.NoteContingentLiabilities, models.NoteRatioAnalysis, models.NoteSubsequentEvents,
	models.NoteMSMEDues, models.NoteAdditionalRegulatory,
}

// CompliantNotes returns numbered selections for CompliantNoteRefs plus unselected
// rows for the rest of the catalog.
func CompliantNotes(companyId string) []*models.NoteSelection {
	selected := make(map[string]bool, len(CompliantNoteRefs))
	for _, ref := range CompliantNoteRefs {
		selected[ref] = true
	}
	var out []*models.NoteSelection
	next := 1
	for _, n := range models.NoteCatalog() {
		row := &models.NoteSelection{
			CompanyId:         companyId,
			NoteRef:           n.Ref,
			Description:       n.Description,
			SystemRecommended: n.Mandatory,
			UserSelected:      selected[n.Ref],
		}
		if row.UserSelected {
			number := next
			row.AutoNumber = &number
			next++
		}
		out = append(out, row)
	}
	return out
}

// Seed writes the sample company through the model accessors.
func Seed(ctx context.Context, companyId string, name string) error {
	if _, err := models.CreateCompany(ctx, companyId, name); err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	if _, err := models.UpdateEntityConfig(ctx, companyId, CompliantNewEntity()); err != nil {
		return fmt.Errorf("update entity config: %w", err)
	}
	if _, err := models.ReplaceTrialBalance(ctx, companyId, CompliantTrialBalanceInput()); err != nil {
		return fmt.Errorf("replace trial balance: %w", err)
	}
	if err := models.ReplaceAgingSchedules(ctx, companyId, CompliantReceivables(), CompliantPayables(), nil); err != nil {
		return fmt.Errorf("replace aging: %w", err)
	}
	if _, err := models.InitNoteSelections(ctx, companyId); err != nil {
		return fmt.Errorf("init notes: %w", err)
	}
	var input []*models.NoteSelectionInput
	for _, ref := range CompliantNoteRefs {
		input = append(input, &models.NoteSelectionInput{NoteRef: ref, UserSelected: true})
	}
	if _, err := models.SaveNoteSelections(ctx, companyId, input); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	if _, err := models.AutoNumberNotes(ctx, companyId); err != nil {
		return fmt.Errorf("auto number: %w", err)
	}
	return nil
}

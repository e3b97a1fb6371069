package models

import (
	"context"
	"sort"

	"github.com/mmdatafocus/schedule3_backend/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Major head codes. Statement generators and compliance rules classify trial balance rows by these.
const (
	HeadShareCapital               = "share_capital"
	HeadOtherEquity                = "other_equity"
	HeadLongTermBorrowings         = "lt_borrowings"
	HeadShortTermBorrowings        = "st_borrowings"
	HeadTradePayables              = "trade_payables"
	HeadOtherCurrentLiabilities    = "other_current_liabilities"
	HeadLongTermProvisions         = "lt_provisions"
	HeadShortTermProvisions        = "st_provisions"
	HeadDeferredTaxLiabilities     = "deferred_tax_liabilities"
	HeadOtherNonCurrentLiabilities = "other_non_current_liabilities"

	HeadPPE                   = "ppe"
	HeadCWIP                  = "cwip"
	HeadIntangibleAssets      = "intangible_assets"
	HeadNonCurrentInvestments = "non_current_investments"
	HeadCurrentInvestments    = "current_investments"
	HeadInventories           = "inventories"
	HeadTradeReceivables      = "trade_receivables"
	HeadCashEquivalents       = "cash_equivalents"
	HeadLoansAdvances         = "loans_advances"
	HeadOtherCurrentAssets    = "other_current_assets"
	HeadOtherNonCurrentAssets = "other_non_current_assets"

	HeadRevenue           = "revenue"
	HeadOtherIncome       = "other_income"
	HeadMaterialsConsumed = "materials_consumed"
	HeadPurchasesStock    = "purchases_stock"
	HeadInventoryChange   = "inventory_change"
	HeadEmployeeBenefits  = "employee_benefits"
	HeadFinanceCosts      = "finance_costs"
	HeadDepreciation      = "depreciation"
	HeadOtherExpenses     = "other_expenses"
	HeadTaxExpense        = "tax_expense"
)

const majorHeadsCacheKey = "MajorHeads:all"

type MajorHead struct {
	ID        int         `gorm:"primary_key" json:"id"`
	Code      string      `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Name      string      `gorm:"size:255;not null" json:"name"`
	Section   HeadSection `gorm:"size:20;not null" json:"section"`
	IsCurrent bool        `gorm:"not null;default:false" json:"is_current"`
	SortOrder int         `gorm:"not null;default:0" json:"sort_order"`
}

type MinorHead struct {
	ID          int    `gorm:"primary_key" json:"id"`
	MajorHeadId int    `gorm:"index;not null" json:"major_head_id"`
	Code        string `gorm:"uniqueIndex;size:80;not null" json:"code"`
	Name        string `gorm:"size:255;not null" json:"name"`
}

type Grouping struct {
	ID          int    `gorm:"primary_key" json:"id"`
	MinorHeadId int    `gorm:"index;not null" json:"minor_head_id"`
	Code        string `gorm:"uniqueIndex;size:120;not null" json:"code"`
	Name        string `gorm:"size:255;not null" json:"name"`
}

type masterHeadSeed struct {
	head   MajorHead
	minors []minorHeadSeed
}

type minorHeadSeed struct {
	code      string
	name      string
	groupings []string
}

// standardHeads is the Schedule III classification seeded into every installation.
var standardHeads = []masterHeadSeed{
	{MajorHead{Code: HeadShareCapital, Name: "Share Capital", Section: HeadSectionEquity}, []minorHeadSeed{
		{"equity_share_capital", "Equity Share Capital", []string{"Issued, subscribed and fully paid up", "Subscribed but not fully paid up"}},
		{"preference_share_capital", "Preference Share Capital", nil},
	}},
	{MajorHead{Code: HeadOtherEquity, Name: "Other Equity", Section: HeadSectionEquity}, []minorHeadSeed{
		{"reserves_surplus", "Reserves and Surplus", []string{"Securities Premium", "General Reserve", "Retained Earnings"}},
		{"other_comprehensive_income", "Other Comprehensive Income", nil},
	}},
	{MajorHead{Code: HeadLongTermBorrowings, Name: "Long-term Borrowings", Section: HeadSectionLiability}, []minorHeadSeed{
		{"lt_secured_loans", "Secured Loans", []string{"Term loans from banks", "Term loans from others"}},
		{"lt_unsecured_loans", "Unsecured Loans", []string{"Loans from related parties", "Debentures"}},
	}},
	{MajorHead{Code: HeadShortTermBorrowings, Name: "Short-term Borrowings", Section: HeadSectionLiability, IsCurrent: true}, []minorHeadSeed{
		{"st_loans_repayable_on_demand", "Loans repayable on demand", []string{"Cash credit", "Overdraft"}},
		{"st_current_maturities", "Current maturities of long-term debt", nil},
	}},
	{MajorHead{Code: HeadTradePayables, Name: "Trade Payables", Section: HeadSectionLiability, IsCurrent: true}, []minorHeadSeed{
		{"payables_msme", "Dues to micro and small enterprises", nil},
		{"payables_others", "Dues to creditors other than micro and small enterprises", nil},
	}},
	{MajorHead{Code: HeadOtherCurrentLiabilities, Name: "Other Current Liabilities", Section: HeadSectionLiability, IsCurrent: true}, []minorHeadSeed{
		{"statutory_dues", "Statutory dues", []string{"GST payable", "TDS payable"}},
		{"advances_from_customers", "Advances from customers", nil},
	}},
	{MajorHead{Code: HeadLongTermProvisions, Name: "Long-term Provisions", Section: HeadSectionLiability}, []minorHeadSeed{
		{"lt_employee_provisions", "Provision for employee benefits", []string{"Gratuity", "Leave encashment"}},
	}},
	{MajorHead{Code: HeadShortTermProvisions, Name: "Short-term Provisions", Section: HeadSectionLiability, IsCurrent: true}, []minorHeadSeed{
		{"st_employee_provisions", "Provision for employee benefits", nil},
		{"provision_for_tax", "Provision for tax", nil},
	}},
	{MajorHead{Code: HeadDeferredTaxLiabilities, Name: "Deferred Tax Liabilities (Net)", Section: HeadSectionLiability}, nil},
	{MajorHead{Code: HeadOtherNonCurrentLiabilities, Name: "Other Non-current Liabilities", Section: HeadSectionLiability}, nil},

	{MajorHead{Code: HeadPPE, Name: "Property, Plant and Equipment", Section: HeadSectionAsset}, []minorHeadSeed{
		{"ppe_gross_block", "Gross Block", []string{"Land", "Buildings", "Plant and Machinery", "Furniture and Fixtures", "Vehicles", "Office Equipment"}},
		{"ppe_accumulated_depreciation", "Accumulated Depreciation", nil},
	}},
	{MajorHead{Code: HeadCWIP, Name: "Capital Work-in-Progress", Section: HeadSectionAsset}, nil},
	{MajorHead{Code: HeadIntangibleAssets, Name: "Intangible Assets", Section: HeadSectionAsset}, []minorHeadSeed{
		{"intangible_software", "Computer Software", nil},
	}},
	{MajorHead{Code: HeadNonCurrentInvestments, Name: "Non-current Investments", Section: HeadSectionAsset}, nil},
	{MajorHead{Code: HeadCurrentInvestments, Name: "Current Investments", Section: HeadSectionAsset, IsCurrent: true}, nil},
	{MajorHead{Code: HeadInventories, Name: "Inventories", Section: HeadSectionAsset, IsCurrent: true}, []minorHeadSeed{
		{"inventory_raw_materials", "Raw Materials", nil},
		{"inventory_work_in_progress", "Work-in-progress", nil},
		{"inventory_finished_goods", "Finished Goods", nil},
		{"inventory_stock_in_trade", "Stock-in-trade", nil},
	}},
	{MajorHead{Code: HeadTradeReceivables, Name: "Trade Receivables", Section: HeadSectionAsset, IsCurrent: true}, []minorHeadSeed{
		{"receivables_considered_good", "Considered good", []string{"Secured", "Unsecured"}},
		{"receivables_credit_impaired", "Credit impaired", nil},
	}},
	{MajorHead{Code: HeadCashEquivalents, Name: "Cash and Cash Equivalents", Section: HeadSectionAsset, IsCurrent: true}, []minorHeadSeed{
		{"cash_on_hand", "Cash on hand", nil},
		{"balances_with_banks", "Balances with banks", []string{"Current accounts", "Fixed deposits"}},
	}},
	{MajorHead{Code: HeadLoansAdvances, Name: "Loans and Advances", Section: HeadSectionAsset, IsCurrent: true}, nil},
	{MajorHead{Code: HeadOtherCurrentAssets, Name: "Other Current Assets", Section: HeadSectionAsset, IsCurrent: true}, nil},
	{MajorHead{Code: HeadOtherNonCurrentAssets, Name: "Other Non-current Assets", Section: HeadSectionAsset}, nil},

	{MajorHead{Code: HeadRevenue, Name: "Revenue from Operations", Section: HeadSectionIncome}, []minorHeadSeed{
		{"sale_of_products", "Sale of products", nil},
		{"sale_of_services", "Sale of services", nil},
	}},
	{MajorHead{Code: HeadOtherIncome, Name: "Other Income", Section: HeadSectionIncome}, []minorHeadSeed{
		{"interest_income", "Interest income", nil},
		{"dividend_income", "Dividend income", nil},
	}},
	{MajorHead{Code: HeadMaterialsConsumed, Name: "Cost of Materials Consumed", Section: HeadSectionExpense}, nil},
	{MajorHead{Code: HeadPurchasesStock, Name: "Purchases of Stock-in-Trade", Section: HeadSectionExpense}, nil},
	{MajorHead{Code: HeadInventoryChange, Name: "Changes in Inventories", Section: HeadSectionExpense}, nil},
	{MajorHead{Code: HeadEmployeeBenefits, Name: "Employee Benefits Expense", Section: HeadSectionExpense}, []minorHeadSeed{
		{"salaries_wages", "Salaries and wages", nil},
		{"contribution_to_funds", "Contribution to provident and other funds", nil},
	}},
	{MajorHead{Code: HeadFinanceCosts, Name: "Finance Costs", Section: HeadSectionExpense}, []minorHeadSeed{
		{"interest_expense", "Interest expense", nil},
	}},
	{MajorHead{Code: HeadDepreciation, Name: "Depreciation and Amortization Expense", Section: HeadSectionExpense}, nil},
	{MajorHead{Code: HeadOtherExpenses, Name: "Other Expenses", Section: HeadSectionExpense}, []minorHeadSeed{
		{"power_fuel", "Power and fuel", nil},
		{"rent", "Rent", nil},
		{"auditor_remuneration", "Payment to auditors", nil},
		{"csr_expenditure", "Corporate social responsibility expenditure", nil},
	}},
	{MajorHead{Code: HeadTaxExpense, Name: "Tax Expense", Section: HeadSectionExpense}, []minorHeadSeed{
		{"current_tax", "Current tax", nil},
		{"deferred_tax", "Deferred tax", nil},
	}},
}

// StandardMajorHeads returns the seeded major heads with ids assigned in seed order.
// Used where no database is involved, e.g. statement generator tests.
func StandardMajorHeads() []MajorHead {
	heads := make([]MajorHead, 0, len(standardHeads))
	for i, s := range standardHeads {
		h := s.head
		h.ID = i + 1
		h.SortOrder = i + 1
		heads = append(heads, h)
	}
	return heads
}

// SeedMasterData upserts the standard head hierarchy.
func SeedMasterData(ctx context.Context) error {
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, s := range standardHeads {
			head := s.head
			head.SortOrder = i + 1
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "code"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "section", "is_current", "sort_order"}),
			}).Create(&head).Error; err != nil {
				return err
			}
			if err := tx.Where("code = ?", head.Code).Take(&head).Error; err != nil {
				return err
			}
			for _, m := range s.minors {
				minor := MinorHead{MajorHeadId: head.ID, Code: m.code, Name: m.name}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&minor).Error; err != nil {
					return err
				}
				if err := tx.Where("code = ?", minor.Code).Take(&minor).Error; err != nil {
					return err
				}
				for _, g := range m.groupings {
					grouping := Grouping{MinorHeadId: minor.ID, Code: m.code + ":" + g, Name: g}
					if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grouping).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return config.RemoveRedisKey(majorHeadsCacheKey)
}

// GetMajorHeads returns the master list ordered for presentation.
func GetMajorHeads(ctx context.Context) ([]*MajorHead, error) {
	var heads []*MajorHead
	if config.MasterDataCacheEnabled() {
		exists, err := config.GetRedisObject(majorHeadsCacheKey, &heads)
		if err != nil {
			return nil, err
		}
		if exists {
			return heads, nil
		}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Order("sort_order, id").Find(&heads).Error; err != nil {
		return nil, err
	}

	if config.MasterDataCacheEnabled() && len(heads) > 0 {
		if err := config.SetRedisObject(majorHeadsCacheKey, &heads, 0); err != nil {
			return nil, err
		}
	}
	return heads, nil
}

func GetMajorHeadsByIds(ctx context.Context, ids []int) ([]*MajorHead, error) {
	var results []*MajorHead
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetGroupingsByIds(ctx context.Context, ids []int) ([]*Grouping, error) {
	var results []*Grouping
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MajorHeadIndex maps head id to head.
type MajorHeadIndex map[int]*MajorHead

func NewMajorHeadIndex(heads []*MajorHead) MajorHeadIndex {
	idx := make(MajorHeadIndex, len(heads))
	for _, h := range heads {
		idx[h.ID] = h
	}
	return idx
}

// ByCode returns the head with the given code, or nil.
func (idx MajorHeadIndex) ByCode(code string) *MajorHead {
	for _, h := range idx {
		if h.Code == code {
			return h
		}
	}
	return nil
}

// Sorted returns the heads in presentation order.
func (idx MajorHeadIndex) Sorted() []*MajorHead {
	heads := make([]*MajorHead, 0, len(idx))
	for _, h := range idx {
		heads = append(heads, h)
	}
	sort.Slice(heads, func(i, j int) bool {
		if heads[i].SortOrder != heads[j].SortOrder {
			return heads[i].SortOrder < heads[j].SortOrder
		}
		return heads[i].ID < heads[j].ID
	})
	return heads
}

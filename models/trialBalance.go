package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TrialBalanceEntry is one ledger line. Closing balances are debit-positive.
type TrialBalanceEntry struct {
	ID               int             `gorm:"primary_key" json:"id"`
	CompanyId        string          `gorm:"index;size:36;not null" json:"company_id"`
	LedgerName       string          `gorm:"size:255;not null" json:"ledger_name"`
	StatementType    StatementType   `gorm:"size:2;not null" json:"statement_type"`
	OpeningBalance   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	Debit            decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"debit"`
	Credit           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"credit"`
	ClosingBalanceCY decimal.Decimal `gorm:"column:closing_balance_cy;type:decimal(20,4);default:0" json:"closing_balance_cy"`
	ClosingBalancePY decimal.Decimal `gorm:"column:closing_balance_py;type:decimal(20,4);default:0" json:"closing_balance_py"`
	MajorHeadId      *int            `gorm:"index" json:"major_head_id"`
	GroupingId       *int            `json:"grouping_id"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTrialBalanceEntry struct {
	LedgerName       string          `json:"ledger_name" validate:"required,max=255"`
	StatementType    StatementType   `json:"statement_type" validate:"required,oneof=BS PL"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	ClosingBalancePY decimal.Decimal `json:"closing_balance_py"`
	MajorHeadCode    string          `json:"major_head_code"`
	GroupingId       *int            `json:"grouping_id"`
}

func (e *TrialBalanceEntry) BeforeSave(tx *gorm.DB) (err error) {
	e.ClosingBalanceCY = e.OpeningBalance.Add(e.Debit).Sub(e.Credit)
	return nil
}

// IsClassified reports whether the row is mapped to a major head.
func (e *TrialBalanceEntry) IsClassified() bool {
	return e.MajorHeadId != nil && *e.MajorHeadId > 0
}

func GetTrialBalanceEntries(ctx context.Context, companyId string) ([]*TrialBalanceEntry, error) {
	var results []*TrialBalanceEntry
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ?", companyId).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ReplaceTrialBalance swaps the company's trial balance for the given rows in one transaction.
func ReplaceTrialBalance(ctx context.Context, companyId string, input []*NewTrialBalanceEntry) ([]*TrialBalanceEntry, error) {
	if _, err := GetCompanyById(ctx, companyId); err != nil {
		return nil, err
	}

	heads, err := GetMajorHeads(ctx)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*MajorHead, len(heads))
	for _, h := range heads {
		byCode[h.Code] = h
	}

	entries := make([]*TrialBalanceEntry, 0, len(input))
	for i, in := range input {
		if !in.StatementType.IsValid() {
			return nil, fmt.Errorf("%w: row %d: invalid statement type %q", utils.ErrInvalidInput, i+1, in.StatementType)
		}
		entry := &TrialBalanceEntry{
			CompanyId:        companyId,
			LedgerName:       strings.TrimSpace(in.LedgerName),
			StatementType:    in.StatementType,
			OpeningBalance:   in.OpeningBalance,
			Debit:            in.Debit,
			Credit:           in.Credit,
			ClosingBalancePY: in.ClosingBalancePY,
			GroupingId:       in.GroupingId,
		}
		if in.MajorHeadCode != "" {
			head, ok := byCode[in.MajorHeadCode]
			if !ok {
				return nil, fmt.Errorf("%w: row %d: unknown major head %q", utils.ErrInvalidInput, i+1, in.MajorHeadCode)
			}
			entry.MajorHeadId = &head.ID
		}
		entries = append(entries, entry)
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyId).Delete(&TrialBalanceEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 200).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

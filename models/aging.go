package models

import (
	"context"
	"time"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ReceivableAging struct {
	ID        int             `gorm:"primary_key" json:"id"`
	CompanyId string          `gorm:"index;size:36;not null" json:"company_id"`
	Bucket    AgingBucket     `gorm:"size:30;not null" json:"bucket"`
	Disputed  bool            `gorm:"not null;default:false" json:"disputed"`
	AmountCY  decimal.Decimal `gorm:"column:amount_cy;type:decimal(20,4);default:0" json:"amount_cy"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type PayableAging struct {
	ID        int             `gorm:"primary_key" json:"id"`
	CompanyId string          `gorm:"index;size:36;not null" json:"company_id"`
	Bucket    AgingBucket     `gorm:"size:30;not null" json:"bucket"`
	Category  PayableCategory `gorm:"size:10;not null" json:"category"`
	Disputed  bool            `gorm:"not null;default:false" json:"disputed"`
	AmountCY  decimal.Decimal `gorm:"column:amount_cy;type:decimal(20,4);default:0" json:"amount_cy"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type CwipAging struct {
	ID        int             `gorm:"primary_key" json:"id"`
	CompanyId string          `gorm:"index;size:36;not null" json:"company_id"`
	Project   string          `gorm:"size:255;not null" json:"project"`
	Status    CwipStatus      `gorm:"size:20;not null" json:"status"`
	Bucket    AgingBucket     `gorm:"size:30;not null" json:"bucket"`
	AmountCY  decimal.Decimal `gorm:"column:amount_cy;type:decimal(20,4);default:0" json:"amount_cy"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// AgingSummary aggregates the three aging schedules of a company.
type AgingSummary struct {
	ReceivableRows        int             `json:"receivable_rows"`
	ReceivablesTotal      decimal.Decimal `json:"receivables_total"`
	ReceivablesDisputed   decimal.Decimal `json:"receivables_disputed"`
	ReceivablesUndisputed decimal.Decimal `json:"receivables_undisputed"`
	ReceivablesBadBuckets int             `json:"receivables_bad_buckets"`

	PayableRows        int             `json:"payable_rows"`
	PayableMSMERows    int             `json:"payable_msme_rows"`
	PayableOtherRows   int             `json:"payable_other_rows"`
	PayablesTotal      decimal.Decimal `json:"payables_total"`
	PayablesMSME       decimal.Decimal `json:"payables_msme"`
	PayablesOthers     decimal.Decimal `json:"payables_others"`
	PayablesDisputed   decimal.Decimal `json:"payables_disputed"`
	PayablesBadBuckets int             `json:"payables_bad_buckets"`

	CwipRows        int             `json:"cwip_rows"`
	CwipTotal       decimal.Decimal `json:"cwip_total"`
	CwipSuspended   decimal.Decimal `json:"cwip_suspended"`
	CwipBadBuckets  int             `json:"cwip_bad_buckets"`
	CwipUnnamedRows int             `json:"cwip_unnamed_rows"`
}

func bucketIn(b AgingBucket, allowed []AgingBucket) bool {
	for _, a := range allowed {
		if a == b {
			return true
		}
	}
	return false
}

// SummarizeAging totals the schedules and counts rows outside the prescribed bands.
func SummarizeAging(receivables []*ReceivableAging, payables []*PayableAging, cwip []*CwipAging) AgingSummary {
	var s AgingSummary

	for _, r := range receivables {
		s.ReceivableRows++
		s.ReceivablesTotal = s.ReceivablesTotal.Add(r.AmountCY)
		if r.Disputed {
			s.ReceivablesDisputed = s.ReceivablesDisputed.Add(r.AmountCY)
		} else {
			s.ReceivablesUndisputed = s.ReceivablesUndisputed.Add(r.AmountCY)
		}
		if !bucketIn(r.Bucket, ReceivableAgingBuckets) {
			s.ReceivablesBadBuckets++
		}
	}

	for _, p := range payables {
		s.PayableRows++
		s.PayablesTotal = s.PayablesTotal.Add(p.AmountCY)
		if p.Category == PayableCategoryMSME {
			s.PayableMSMERows++
			s.PayablesMSME = s.PayablesMSME.Add(p.AmountCY)
		} else {
			s.PayableOtherRows++
			s.PayablesOthers = s.PayablesOthers.Add(p.AmountCY)
		}
		if p.Disputed {
			s.PayablesDisputed = s.PayablesDisputed.Add(p.AmountCY)
		}
		if !bucketIn(p.Bucket, PayableAgingBuckets) {
			s.PayablesBadBuckets++
		}
	}

	for _, c := range cwip {
		s.CwipRows++
		s.CwipTotal = s.CwipTotal.Add(c.AmountCY)
		if c.Status == CwipStatusSuspended {
			s.CwipSuspended = s.CwipSuspended.Add(c.AmountCY)
		}
		if !bucketIn(c.Bucket, CwipAgingBuckets) {
			s.CwipBadBuckets++
		}
		if c.Project == "" {
			s.CwipUnnamedRows++
		}
	}
	return s
}

func GetReceivableAgings(ctx context.Context, companyId string) ([]*ReceivableAging, error) {
	var results []*ReceivableAging
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ?", companyId).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetPayableAgings(ctx context.Context, companyId string) ([]*PayableAging, error) {
	var results []*PayableAging
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ?", companyId).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetCwipAgings(ctx context.Context, companyId string) ([]*CwipAging, error) {
	var results []*CwipAging
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ?", companyId).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetAgingSummary reads the three schedules concurrently.
func GetAgingSummary(ctx context.Context, companyId string) (*AgingSummary, error) {
	var (
		receivables []*ReceivableAging
		payables    []*PayableAging
		cwip        []*CwipAging
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		receivables, err = GetReceivableAgings(gctx, companyId)
		return err
	})
	g.Go(func() (err error) {
		payables, err = GetPayableAgings(gctx, companyId)
		return err
	})
	g.Go(func() (err error) {
		cwip, err = GetCwipAgings(gctx, companyId)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary := SummarizeAging(receivables, payables, cwip)
	return &summary, nil
}

// ReplaceAgingSchedules swaps all three schedules of a company in one transaction.
func ReplaceAgingSchedules(ctx context.Context, companyId string, receivables []*ReceivableAging, payables []*PayableAging, cwip []*CwipAging) error {
	if _, err := GetCompanyById(ctx, companyId); err != nil {
		return err
	}
	for _, r := range receivables {
		r.ID, r.CompanyId = 0, companyId
	}
	for _, p := range payables {
		p.ID, p.CompanyId = 0, companyId
	}
	for _, c := range cwip {
		c.ID, c.CompanyId = 0, companyId
	}

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&ReceivableAging{}, &PayableAging{}, &CwipAging{}} {
			if err := tx.Where("company_id = ?", companyId).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(receivables) > 0 {
			if err := tx.Create(&receivables).Error; err != nil {
				return err
			}
		}
		if len(payables) > 0 {
			if err := tx.Create(&payables).Error; err != nil {
				return err
			}
		}
		if len(cwip) > 0 {
			if err := tx.Create(&cwip).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

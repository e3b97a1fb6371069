package models

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Note references used by the compliance rules.
const (
	NoteCorporateInfo      = "A.1"
	NoteBasisOfPreparation = "A.2"
	NoteAccountingPolicies = "A.3"
	NoteUseOfEstimates     = "A.4"

	NoteShareCapital        = "B.1"
	NoteOtherEquity         = "B.2"
	NoteLongTermBorrowings  = "B.3"
	NoteShortTermBorrowings = "B.4"
	NoteTradePayables       = "B.5"
	NoteOtherCurrentLiabs   = "B.6"
	NoteProvisions          = "B.7"
	NotePPE                 = "B.8"
	NoteCWIP                = "B.9"
	NoteIntangibleAssets    = "B.10"
	NoteInvestments         = "B.11"
	NoteInventories         = "B.12"
	NoteTradeReceivables    = "B.13"
	NoteCashEquivalents     = "B.14"
	NoteDeferredTax         = "B.15"

	NoteRevenue           = "C.1"
	NoteOtherIncome       = "C.2"
	NoteMaterialsConsumed = "C.3"
	NoteEmployeeBenefits  = "C.4"
	NoteFinanceCosts      = "C.5"
	NoteDepreciation      = "C.6"
	NoteOtherExpenses     = "C.7"
	NoteTaxExpense        = "C.8"
	NoteEarningsPerShare  = "C.9"

	NoteRelatedParty          = "D.1"
	NoteContingentLiabilities = "D.2"
	NoteSegmentReporting      = "D.3"
	NoteForeignCurrency       = "D.4"
	NoteRatioAnalysis         = "D.5"
	NoteSubsequentEvents      = "D.6"
	NoteMSMEDues              = "D.7"
	NoteCSR                   = "D.8"
	NoteAdditionalRegulatory  = "D.9"
)

// CatalogNote is a note the application knows how to present.
type CatalogNote struct {
	Ref           string
	Description   string
	Mandatory     bool
	MajorHeadCode string
}

var noteCatalog = []CatalogNote{
	{NoteCorporateInfo, "Corporate information", true, ""},
	{NoteBasisOfPreparation, "Basis of preparation", true, ""},
	{NoteAccountingPolicies, "Significant accounting policies", true, ""},
	{NoteUseOfEstimates, "Use of estimates and judgements", true, ""},

	{NoteShareCapital, "Share capital", false, HeadShareCapital},
	{NoteOtherEquity, "Other equity", false, HeadOtherEquity},
	{NoteLongTermBorrowings, "Long-term borrowings", false, HeadLongTermBorrowings},
	{NoteShortTermBorrowings, "Short-term borrowings", false, HeadShortTermBorrowings},
	{NoteTradePayables, "Trade payables", false, HeadTradePayables},
	{NoteOtherCurrentLiabs, "Other current liabilities", false, HeadOtherCurrentLiabilities},
	{NoteProvisions, "Provisions", false, HeadLongTermProvisions},
	{NotePPE, "Property, plant and equipment", false, HeadPPE},
	{NoteCWIP, "Capital work-in-progress", false, HeadCWIP},
	{NoteIntangibleAssets, "Intangible assets", false, HeadIntangibleAssets},
	{NoteInvestments, "Investments", false, HeadNonCurrentInvestments},
	{NoteInventories, "Inventories", false, HeadInventories},
	{NoteTradeReceivables, "Trade receivables", false, HeadTradeReceivables},
	{NoteCashEquivalents, "Cash and cash equivalents", false, HeadCashEquivalents},
	{NoteDeferredTax, "Deferred tax", false, HeadDeferredTaxLiabilities},

	{NoteRevenue, "Revenue from operations", false, HeadRevenue},
	{NoteOtherIncome, "Other income", false, HeadOtherIncome},
	{NoteMaterialsConsumed, "Cost of materials consumed", false, HeadMaterialsConsumed},
	{NoteEmployeeBenefits, "Employee benefits expense", false, HeadEmployeeBenefits},
	{NoteFinanceCosts, "Finance costs", false, HeadFinanceCosts},
	{NoteDepreciation, "Depreciation and amortisation expense", false, HeadDepreciation},
	{NoteOtherExpenses, "Other expenses", false, HeadOtherExpenses},
	{NoteTaxExpense, "Tax expense", false, HeadTaxExpense},
	{NoteEarningsPerShare, "Earnings per share", false, ""},

	{NoteRelatedParty, "Related party disclosures", false, ""},
	{NoteContingentLiabilities, "Contingent liabilities and commitments", false, ""},
	{NoteSegmentReporting, "Segment reporting", false, ""},
	{NoteForeignCurrency, "Foreign currency transactions", false, ""},
	{NoteRatioAnalysis, "Ratio analysis", false, ""},
	{NoteSubsequentEvents, "Events after the reporting period", false, ""},
	{NoteMSMEDues, "Dues to micro and small enterprises", false, ""},
	{NoteCSR, "Corporate social responsibility", false, ""},
	{NoteAdditionalRegulatory, "Additional regulatory information", false, ""},
}

var noteCatalogOrder = func() map[string]int {
	m := make(map[string]int, len(noteCatalog))
	for i, n := range noteCatalog {
		m[n.Ref] = i
	}
	return m
}()

// NoteCatalog returns a copy of the known notes in presentation order.
func NoteCatalog() []CatalogNote {
	out := make([]CatalogNote, len(noteCatalog))
	copy(out, noteCatalog)
	return out
}

// LookupCatalogNote reports whether ref is a known note.
func LookupCatalogNote(ref string) (CatalogNote, bool) {
	i, ok := noteCatalogOrder[ref]
	if !ok {
		return CatalogNote{}, false
	}
	return noteCatalog[i], true
}

type NoteSelection struct {
	ID                int       `gorm:"primary_key" json:"id"`
	CompanyId         string    `gorm:"uniqueIndex:idx_company_note;size:36;not null" json:"company_id"`
	NoteRef           string    `gorm:"uniqueIndex:idx_company_note;size:20;not null" json:"note_ref"`
	Description       string    `gorm:"size:255" json:"description"`
	SystemRecommended bool      `gorm:"not null;default:false" json:"system_recommended"`
	UserSelected      bool      `gorm:"not null;default:false" json:"user_selected"`
	AutoNumber        *int      `json:"auto_number"`
	LinkedMajorHeadId *int      `json:"linked_major_head_id"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NoteSelectionInput struct {
	NoteRef      string `json:"note_ref" validate:"required,max=20"`
	Description  string `json:"description" validate:"max=255"`
	UserSelected bool   `json:"user_selected"`
}

func GetNoteSelections(ctx context.Context, companyId string) ([]*NoteSelection, error) {
	var results []*NoteSelection
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ?", companyId).Find(&results).Error; err != nil {
		return nil, err
	}
	sortNoteSelections(results)
	return results, nil
}

// sortNoteSelections orders catalog notes first, in catalog order, then custom notes by ref.
func sortNoteSelections(notes []*NoteSelection) {
	sort.SliceStable(notes, func(i, j int) bool {
		oi, iKnown := noteCatalogOrder[notes[i].NoteRef]
		oj, jKnown := noteCatalogOrder[notes[j].NoteRef]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return notes[i].NoteRef < notes[j].NoteRef
		}
	})
}

// InitNoteSelections creates one row per catalog note, flagging the notes the
// trial balance calls for. Existing rows keep their user selection.
func InitNoteSelections(ctx context.Context, companyId string) ([]*NoteSelection, error) {
	if _, err := GetCompanyById(ctx, companyId); err != nil {
		return nil, err
	}
	heads, err := GetMajorHeads(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := GetTrialBalanceEntries(ctx, companyId)
	if err != nil {
		return nil, err
	}

	headByCode := make(map[string]*MajorHead, len(heads))
	for _, h := range heads {
		headByCode[h.Code] = h
	}
	balanceByHead := make(map[int]bool)
	for _, e := range entries {
		if e.IsClassified() && (!e.ClosingBalanceCY.IsZero() || !e.ClosingBalancePY.IsZero()) {
			balanceByHead[*e.MajorHeadId] = true
		}
	}

	rows := make([]*NoteSelection, 0, len(noteCatalog))
	for _, n := range noteCatalog {
		row := &NoteSelection{
			CompanyId:         companyId,
			NoteRef:           n.Ref,
			Description:       n.Description,
			SystemRecommended: n.Mandatory,
			UserSelected:      n.Mandatory,
		}
		if head, ok := headByCode[n.MajorHeadCode]; ok {
			row.LinkedMajorHeadId = &head.ID
			if balanceByHead[head.ID] {
				row.SystemRecommended = true
				row.UserSelected = true
			}
		}
		rows = append(rows, row)
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "note_ref"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "system_recommended", "linked_major_head_id"}),
	}).Create(&rows).Error
	if err != nil {
		return nil, err
	}
	return GetNoteSelections(ctx, companyId)
}

// SaveNoteSelections applies a full selection snapshot: notes absent from input are deselected.
func SaveNoteSelections(ctx context.Context, companyId string, input []*NoteSelectionInput) ([]*NoteSelection, error) {
	seen := make(map[string]bool, len(input))
	for _, in := range input {
		if err := utils.ValidateInput(in); err != nil {
			return nil, err
		}
		in.NoteRef = strings.TrimSpace(in.NoteRef)
		if seen[in.NoteRef] {
			return nil, fmt.Errorf("%w: duplicate note_ref %s", utils.ErrInvalidInput, in.NoteRef)
		}
		seen[in.NoteRef] = true
	}
	if _, err := GetCompanyById(ctx, companyId); err != nil {
		return nil, err
	}

	release, err := utils.CompanyLock(ctx, companyId, "notes", "models", "SaveNoteSelections")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&NoteSelection{}).
			Where("company_id = ?", companyId).
			Update("user_selected", false).Error; err != nil {
			return err
		}
		for _, in := range input {
			row := NoteSelection{
				CompanyId:    companyId,
				NoteRef:      in.NoteRef,
				Description:  strings.TrimSpace(in.Description),
				UserSelected: in.UserSelected,
			}
			if cat, ok := LookupCatalogNote(in.NoteRef); ok {
				row.Description = cat.Description
				row.SystemRecommended = cat.Mandatory
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "company_id"}, {Name: "note_ref"}},
				DoUpdates: clause.AssignmentColumns([]string{"description", "user_selected"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetNoteSelections(ctx, companyId)
}

// AutoNumberNotes numbers the selected notes 1..n in presentation order and clears the rest.
func AutoNumberNotes(ctx context.Context, companyId string) ([]*NoteSelection, error) {
	if _, err := GetCompanyById(ctx, companyId); err != nil {
		return nil, err
	}

	release, err := utils.CompanyLock(ctx, companyId, "notes", "models", "AutoNumberNotes")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var notes []*NoteSelection
		if err := tx.Where("company_id = ?", companyId).Find(&notes).Error; err != nil {
			return err
		}
		sortNoteSelections(notes)

		next := 1
		for _, n := range notes {
			var number *int
			if n.UserSelected {
				v := next
				number = &v
				next++
			}
			if err := tx.Model(&NoteSelection{}).
				Where("id = ?", n.ID).
				Update("auto_number", number).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetNoteSelections(ctx, companyId)
}

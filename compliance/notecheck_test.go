package compliance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/compliance/mocks"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNoteCompliant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	status, err := newEngine(compliantFixture().loader(ctrl)).CheckNote(context.Background(), companyId, models.NoteTradeReceivables)
	require.NoError(t, err)

	want := len(compliance.RulesForNote(compliance.Catalog(), models.NoteTradeReceivables))
	require.Greater(t, want, 0)
	assert.Equal(t, want, status.TotalChecks)
	assert.Equal(t, want, status.PassedChecks)
	assert.Empty(t, status.Issues)
	assert.Equal(t, compliance.StatusCompliant, status.Status)
	assert.True(t, status.Selected)
	assert.NotEmpty(t, status.Description)
}

func TestCheckNoteOnlyReportsItsRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := compliantFixture().unselect(models.NoteCorporateInfo)
	f.aging.ReceivablesTotal = f.aging.ReceivablesTotal.Add(decimal.NewFromInt(100_000))
	status, err := newEngine(f.loader(ctrl)).CheckNote(context.Background(), companyId, models.NoteTradeReceivables)
	require.NoError(t, err)

	require.NotEmpty(t, status.Issues)
	for _, i := range status.Issues {
		assert.Equal(t, models.NoteTradeReceivables, i.NoteRef, "issue from rule %s", i.RuleID)
		assert.NotEqual(t, "notes-mandatory-a-series", i.RuleID)
	}
	assert.Equal(t, len(status.Issues), status.TotalChecks-status.PassedChecks)
	assert.NotEqual(t, compliance.StatusCompliant, status.Status)
}

func TestCheckNoteUnknownRef(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := newEngine(compliantFixture().loader(ctrl))
	for _, ref := range []string{"Z.99", "  "} {
		_, err := engine.CheckNote(context.Background(), companyId, ref)
		assert.ErrorIs(t, err, compliance.ErrUnknownNote, ref)
	}
}

func issueRuleIDs(issues []compliance.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, i := range issues {
		ids = append(ids, i.RuleID)
	}
	return ids
}

func TestCheckNoteAgreesWithReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := compliantFixture().unselect(models.NoteTaxExpense)
	for _, n := range f.notes {
		if n.NoteRef == models.NoteTaxExpense {
			n.SystemRecommended = true
		}
	}
	engine := newEngine(f.loader(ctrl))

	report, err := engine.Run(context.Background(), companyId)
	require.NoError(t, err)
	var blamed []string
	for _, i := range report.Issues {
		if i.NoteRef == models.NoteTaxExpense {
			blamed = append(blamed, i.RuleID)
		}
	}
	require.Contains(t, blamed, "notes-recommended")
	require.Contains(t, blamed, "notes-required-"+models.NoteTaxExpense)

	status, err := engine.CheckNote(context.Background(), companyId, models.NoteTaxExpense)
	require.NoError(t, err)
	assert.ElementsMatch(t, blamed, issueRuleIDs(status.Issues))
	assert.False(t, status.Selected)
	assert.Equal(t, len(status.Issues), status.TotalChecks-status.PassedChecks)
	assert.NotEqual(t, compliance.StatusCompliant, status.Status)
}

func TestCheckNoteCustomSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := compliantFixture()
	number := 0
	for _, n := range f.notes {
		if n.AutoNumber != nil && *n.AutoNumber > number {
			number = *n.AutoNumber
		}
	}
	number++
	f.notes = append(f.notes, &models.NoteSelection{
		CompanyId:    companyId,
		NoteRef:      "X.1",
		UserSelected: true,
		AutoNumber:   &number,
	})

	status, err := newEngine(f.loader(ctrl)).CheckNote(context.Background(), companyId, "X.1")
	require.NoError(t, err)
	assert.True(t, status.Selected)
	assert.Equal(t, []string{"notes-orphaned"}, issueRuleIDs(status.Issues))
	assert.Equal(t, "X.1", status.Issues[0].NoteRef)
	assert.Equal(t, 1, status.TotalChecks)
	assert.Equal(t, 0, status.PassedChecks)
}

func TestCheckNoteIgnoresOtherMandatoryNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := newEngine(compliantFixture().unselect(models.NoteCorporateInfo).loader(ctrl))

	status, err := engine.CheckNote(context.Background(), companyId, models.NoteBasisOfPreparation)
	require.NoError(t, err)
	assert.True(t, status.Selected)
	assert.Empty(t, status.Issues)
	assert.Equal(t, status.TotalChecks, status.PassedChecks)
	assert.Equal(t, compliance.StatusCompliant, status.Status)

	status, err = engine.CheckNote(context.Background(), companyId, models.NoteCorporateInfo)
	require.NoError(t, err)
	assert.False(t, status.Selected)
	assert.Contains(t, issueRuleIDs(status.Issues), "notes-mandatory-a-series")
	assert.NotEqual(t, compliance.StatusCompliant, status.Status)
}

func TestCheckNoteMissingCompany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockLoader(ctrl)
	m.EXPECT().LoadEntity(gomock.Any(), companyId).Return(nil, compliance.ErrCompanyNotFound)
	m.EXPECT().LoadTrialBalance(gomock.Any(), companyId).Return(nil, nil).AnyTimes()
	m.EXPECT().LoadMajorHeads(gomock.Any()).Return(nil, nil).AnyTimes()
	m.EXPECT().LoadNoteSelections(gomock.Any(), companyId).Return(nil, nil).AnyTimes()
	m.EXPECT().LoadAging(gomock.Any(), companyId).Return(nil, nil).AnyTimes()

	_, err := newEngine(m).CheckNote(context.Background(), companyId, models.NoteCorporateInfo)
	var unavailable *compliance.DataUnavailableError
	assert.True(t, errors.As(err, &unavailable))
	assert.True(t, compliance.IsCompanyNotFound(err))
}

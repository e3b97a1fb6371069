package compliance_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/mmdatafocus/schedule3_backend/compliance"
	"github.com/mmdatafocus/schedule3_backend/compliance/mocks"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/models/statements"
	"github.com/mmdatafocus/schedule3_backend/testutil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const companyId = "0b6f2b1e-6a55-4c1e-9a57-3f4f7d1c2a10"

type fixture struct {
	entity  *models.EntityConfig
	entries []*models.TrialBalanceEntry
	heads   []*models.MajorHead
	notes   []*models.NoteSelection
	aging   models.AgingSummary
}

func compliantFixture() *fixture {
	return &fixture{
		entity:  testutil.CompliantEntity(companyId),
		entries: testutil.CompliantEntries(),
		heads:   testutil.StandardHeadPointers(),
		notes:   testutil.CompliantNotes(companyId),
		aging:   models.SummarizeAging(testutil.CompliantReceivables(), testutil.CompliantPayables(), nil),
	}
}

// unselect clears the selection flag of the given notes.
func (f *fixture) unselect(refs ...string) *fixture {
	drop := make(map[string]bool, len(refs))
	for _, r := range refs {
		drop[r] = true
	}
	for _, n := range f.notes {
		if drop[n.NoteRef] {
			n.UserSelected = false
			n.AutoNumber = nil
		}
	}
	return f
}

func (f *fixture) loader(ctrl *gomock.Controller) *mocks.MockLoader {
	aging := f.aging
	m := mocks.NewMockLoader(ctrl)
	m.EXPECT().LoadEntity(gomock.Any(), companyId).Return(f.entity, nil).AnyTimes()
	m.EXPECT().LoadTrialBalance(gomock.Any(), companyId).Return(f.entries, nil).AnyTimes()
	m.EXPECT().LoadMajorHeads(gomock.Any()).Return(f.heads, nil).AnyTimes()
	m.EXPECT().LoadNoteSelections(gomock.Any(), companyId).Return(f.notes, nil).AnyTimes()
	m.EXPECT().LoadAging(gomock.Any(), companyId).Return(&aging, nil).AnyTimes()
	return m
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newEngine(loader compliance.Loader, opts ...compliance.Option) *compliance.Engine {
	base := []compliance.Option{
		compliance.WithClock(func() time.Time { return testutil.AsOf }),
		compliance.WithLogger(quietLogger()),
		compliance.WithParallel(false),
	}
	return compliance.NewEngine(loader, append(base, opts...)...)
}

func findIssue(report *compliance.Report, ruleId string) (compliance.Issue, bool) {
	for _, i := range report.Issues {
		if i.RuleID == ruleId {
			return i, true
		}
	}
	return compliance.Issue{}, false
}

func TestRunCompliantCompany(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	report, err := newEngine(compliantFixture().loader(ctrl)).Run(context.Background(), companyId)
	require.NoError(t, err)

	assert.Empty(t, report.Issues, "issues: %+v", report.Issues)
	assert.Equal(t, compliance.StatusCompliant, report.OverallStatus)
	assert.Equal(t, 100, report.ComplianceScore)
	assert.Equal(t, len(compliance.Catalog()), report.TotalChecks)
	assert.Equal(t, report.TotalChecks, report.PassedChecks)
	assert.Equal(t, companyId, report.CompanyId)
	assert.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), report.AsOf)
	for _, b := range []compliance.Bucket{
		compliance.BucketEntityInformation, compliance.BucketNoteSelections, compliance.BucketFinancialStatements,
		compliance.BucketAgingSchedules, compliance.BucketRatioAnalysis, compliance.BucketMandatoryDisclosures,
	} {
		assert.Equal(t, compliance.BucketPass, report.Summary.Get(b), "bucket %s", b)
	}
}

func TestRunMissingMandatoryNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := compliantFixture().unselect(models.NoteCorporateInfo, models.NoteBasisOfPreparation,
		models.NoteAccountingPolicies, models.NoteUseOfEstimates)
	report, err := newEngine(f.loader(ctrl)).Run(context.Background(), companyId)
	require.NoError(t, err)

	issue, ok := findIssue(report, "notes-mandatory-a-series")
	require.True(t, ok, "expected a mandatory notes issue, got %+v", report.Issues)
	assert.Equal(t, compliance.CategoryNoteSelections, issue.Category)
	assert.Equal(t, compliance.SeverityError, issue.Severity)
	assert.NotEqual(t, compliance.StatusCompliant, report.OverallStatus)
	assert.Equal(t, compliance.BucketFail, report.Summary.NoteSelections)
}

func TestRunEmptyTrialBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := compliantFixture()
	f.entries = nil
	report, err := newEngine(f.loader(ctrl)).Run(context.Background(), companyId)
	require.NoError(t, err)

	issue, ok := findIssue(report, "fs-tb-present")
	require.True(t, ok)
	assert.Equal(t, compliance.CategoryFinancialStatements, issue.Category)
	assert.Equal(t, compliance.SeverityError, issue.Severity)
	assert.Equal(t, compliance.BucketFail, report.Summary.FinancialStatements)
	for _, i := range report.Issues {
		assert.NotContains(t, i.Issue, "could not be evaluated", "rule %s panicked", i.RuleID)
	}
}

func TestRunCompanyNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mocks.NewMockLoader(ctrl)
	m.EXPECT().LoadEntity(gomock.Any(), "missing").Return(nil, compliance.ErrCompanyNotFound)
	m.EXPECT().LoadTrialBalance(gomock.Any(), "missing").Return(nil, nil).AnyTimes()
	m.EXPECT().LoadMajorHeads(gomock.Any()).Return(testutil.StandardHeadPointers(), nil).AnyTimes()
	m.EXPECT().LoadNoteSelections(gomock.Any(), "missing").Return(nil, nil).AnyTimes()
	m.EXPECT().LoadAging(gomock.Any(), "missing").Return(&models.AgingSummary{}, nil).AnyTimes()

	report, err := newEngine(m).Run(context.Background(), "missing")
	assert.Nil(t, report)
	require.Error(t, err)

	var unavailable *compliance.DataUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "missing", unavailable.CompanyId)
	assert.True(t, compliance.IsCompanyNotFound(err))
}

func TestRunReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	readErr := errors.New("connection reset by peer")
	f := compliantFixture()
	m := mocks.NewMockLoader(ctrl)
	m.EXPECT().LoadEntity(gomock.Any(), companyId).Return(f.entity, nil).AnyTimes()
	m.EXPECT().LoadTrialBalance(gomock.Any(), companyId).Return(nil, readErr)
	m.EXPECT().LoadMajorHeads(gomock.Any()).Return(f.heads, nil).AnyTimes()
	m.EXPECT().LoadNoteSelections(gomock.Any(), companyId).Return(f.notes, nil).AnyTimes()
	m.EXPECT().LoadAging(gomock.Any(), companyId).Return(&f.aging, nil).AnyTimes()

	_, err := newEngine(m).Run(context.Background(), companyId)
	var unavailable *compliance.DataUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "trial balance", unavailable.Dataset)
	assert.ErrorIs(t, err, readErr)
	assert.False(t, compliance.IsCompanyNotFound(err))
}

func TestAgingMismatchSeverity(t *testing.T) {
	tests := []struct {
		name   string
		offset decimal.Decimal
		want   compliance.Severity
	}{
		{"within tolerance", decimal.RequireFromString("0.50"), ""},
		{"under one percent", decimal.NewFromInt(2_000), compliance.SeverityWarning},
		{"over one percent", decimal.NewFromInt(60_000), compliance.SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := compliantFixture()
			f.aging.ReceivablesTotal = f.aging.ReceivablesTotal.Add(tt.offset)
			report, err := newEngine(f.loader(ctrl)).Run(context.Background(), companyId)
			require.NoError(t, err)

			issue, ok := findIssue(report, "aging-receivables-reconcile")
			if tt.want == "" {
				assert.False(t, ok, "unexpected issue %+v", issue)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, issue.Severity)
			assert.Equal(t, models.NoteTradeReceivables, issue.NoteRef)
			assert.Equal(t, compliance.CategoryAgingSchedules, issue.Category)
		})
	}
}

// adjustCY moves the current year closing balance of a ledger by delta.
func (f *fixture) adjustCY(ledger string, delta int64) *fixture {
	for _, e := range f.entries {
		if e.LedgerName == ledger {
			e.ClosingBalanceCY = e.ClosingBalanceCY.Add(decimal.NewFromInt(delta))
			return f
		}
	}
	panic("no ledger " + ledger)
}

func TestStatementAndRatioFindings(t *testing.T) {
	tests := []struct {
		name     string
		adjust   func(f *fixture)
		ruleId   string
		severity compliance.Severity
		category compliance.Category
		bucket   func(compliance.Summary) compliance.BucketStatus
		want     compliance.BucketStatus
	}{
		{
			name: "revenue up half with cash collected",
			adjust: func(f *fixture) {
				f.adjustCY("Sales", -1_100_000).adjustCY("HDFC Current Account", 1_100_000)
			},
			ruleId:   "ratio-variance",
			severity: compliance.SeverityWarning,
			category: compliance.CategoryRatioAnalysis,
			bucket:   func(s compliance.Summary) compliance.BucketStatus { return s.RatioAnalysis },
			want:     compliance.BucketWarning,
		},
		{
			name:     "plant added without a source of funds",
			adjust:   func(f *fixture) { f.adjustCY("Plant and Machinery", 10_000) },
			ruleId:   "fs-bs-balanced",
			severity: compliance.SeverityError,
			category: compliance.CategoryFinancialStatements,
			bucket:   func(s compliance.Summary) compliance.BucketStatus { return s.FinancialStatements },
			want:     compliance.BucketFail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := compliantFixture()
			tt.adjust(f)
			report, err := newEngine(f.loader(ctrl)).Run(context.Background(), companyId)
			require.NoError(t, err)

			issue, ok := findIssue(report, tt.ruleId)
			require.True(t, ok, "no %s issue in %+v", tt.ruleId, report.Issues)
			assert.Equal(t, tt.severity, issue.Severity)
			assert.Equal(t, tt.category, issue.Category)
			assert.Equal(t, tt.want, tt.bucket(report.Summary))
			if tt.severity == compliance.SeverityError {
				assert.NotEqual(t, compliance.StatusCompliant, report.OverallStatus)
			}
		})
	}
}

func TestRatioVarianceThreshold(t *testing.T) {
	rule, ok := compliance.RuleByID("ratio-variance")
	require.True(t, ok)

	tests := []struct {
		variance string
		flagged  bool
	}{
		{"25", false},
		{"-25", false},
		{"25.01", true},
		{"-40", true},
	}
	for _, tt := range tests {
		t.Run(tt.variance, func(t *testing.T) {
			s := &compliance.Snapshot{
				CompanyId: companyId,
				Statements: &statements.Statements{Ratios: []statements.Ratio{
					{Name: "Current Ratio", VariancePct: decimal.NewNullDecimal(decimal.RequireFromString(tt.variance))},
					{Name: "Return on Investment"},
				}},
			}
			report := compliance.Evaluate(s, []compliance.Rule{rule}, false)
			if !tt.flagged {
				assert.Empty(t, report.Issues)
				assert.Equal(t, compliance.BucketPass, report.Summary.RatioAnalysis)
				return
			}
			require.Len(t, report.Issues, 1)
			assert.Contains(t, report.Issues[0].Issue, "Current Ratio")
			assert.Equal(t, models.NoteRatioAnalysis, report.Issues[0].NoteRef)
			assert.Equal(t, compliance.BucketWarning, report.Summary.RatioAnalysis)
		})
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := compliantFixture().unselect(models.NoteRatioAnalysis)
	f.aging.PayablesTotal = f.aging.PayablesTotal.Add(decimal.NewFromInt(1_000))
	engine := newEngine(f.loader(ctrl))

	first, err := engine.Run(context.Background(), companyId)
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), companyId)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second run differs (-first +second):\n%s", diff)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	fixtures := map[string]*fixture{
		"compliant": compliantFixture(),
		"no notes": func() *fixture {
			f := compliantFixture()
			f.notes = nil
			return f
		}(),
		"no trial balance": func() *fixture {
			f := compliantFixture()
			f.entries = nil
			f.entity.Name = ""
			return f
		}(),
	}
	for name, f := range fixtures {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			loader := f.loader(ctrl)
			serial, err := newEngine(loader, compliance.WithParallel(false)).Run(context.Background(), companyId)
			require.NoError(t, err)
			parallel, err := newEngine(loader, compliance.WithParallel(true)).Run(context.Background(), companyId)
			require.NoError(t, err)

			if diff := cmp.Diff(serial, parallel); diff != "" {
				t.Fatalf("parallel report differs (-serial +parallel):\n%s", diff)
			}
		})
	}
}

func TestRunDoesNotLeakGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := newEngine(compliantFixture().loader(ctrl), compliance.WithParallel(true))
	for i := 0; i < 5; i++ {
		_, err := engine.Run(context.Background(), companyId)
		require.NoError(t, err)
	}
}

func TestEvaluateRecoversPanickingRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rules := []compliance.Rule{
		{ID: "always-passes", Category: compliance.CategoryEntityInformation, Check: func(*compliance.Snapshot) *compliance.Finding { return nil }},
		{ID: "panics", Category: compliance.CategoryFinancialStatements, Check: func(*compliance.Snapshot) *compliance.Finding {
			var heads map[string]int
			heads["boom"] = 1
			return nil
		}},
	}
	report, err := newEngine(compliantFixture().loader(ctrl), compliance.WithRules(rules)).Run(context.Background(), companyId)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalChecks)
	assert.Equal(t, 1, report.PassedChecks)
	assert.Equal(t, 50, report.ComplianceScore)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "panics", report.Issues[0].RuleID)
	assert.Equal(t, compliance.SeverityError, report.Issues[0].Severity)
	assert.Equal(t, compliance.StatusNonCompliant, report.OverallStatus)
}

func TestEvaluateWithoutRules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshot, err := newEngine(compliantFixture().loader(ctrl)).Snapshot(context.Background(), companyId)
	require.NoError(t, err)

	report := compliance.Evaluate(snapshot, nil, false)
	assert.Equal(t, 0, report.TotalChecks)
	assert.Equal(t, 100, report.ComplianceScore)
	assert.Equal(t, compliance.StatusCompliant, report.OverallStatus)
	assert.NotNil(t, report.Issues)
}

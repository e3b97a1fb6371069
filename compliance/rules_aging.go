package compliance

import (
	"fmt"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/shopspring/decimal"
)

// reconcile compares a schedule total with its trial balance figure. Differences
// within BalanceTolerance pass, up to AgingWarningFraction of the trial balance
// figure are warnings, and anything larger is an error.
func reconcile(schedule string, tb, aging decimal.Decimal, recommendation string) *Finding {
	diff := aging.Sub(tb)
	if withinTolerance(diff) {
		return nil
	}
	sev := SeverityError
	if diff.Abs().LessThanOrEqual(tb.Abs().Mul(AgingWarningFraction)) {
		sev = SeverityWarning
	}
	return fail(sev,
		fmt.Sprintf("%s aging total %s differs from the trial balance %s by %s.",
			schedule, aging.StringFixed(2), tb.StringFixed(2), diff.StringFixed(2)),
		recommendation)
}

func agingRules() []Rule {
	return []Rule{
		{
			ID: "aging-receivables-present", Category: CategoryAgingSchedules, Title: "Receivables aging is provided",
			NoteRefs: []string{models.NoteTradeReceivables},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadTradeReceivables) || s.Aging.ReceivableRows > 0 {
					return nil
				}
				return fail(SeverityError, "Trade receivables have a balance but no aging schedule was provided.",
					"Upload the trade receivables aging split into undisputed and disputed dues by outstanding period.")
			},
		},
		{
			ID: "aging-receivables-reconcile", Category: CategoryAgingSchedules, Title: "Receivables aging reconciles to the trial balance",
			NoteRefs: []string{models.NoteTradeReceivables},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.ReceivableRows == 0 {
					return nil
				}
				return reconcile("Trade receivables", s.NaturalCY(models.HeadTradeReceivables), s.Aging.ReceivablesTotal,
					"Correct the receivables aging or the trial balance so the schedule total equals the trade receivables balance.")
			},
		},
		{
			ID: "aging-payables-present", Category: CategoryAgingSchedules, Title: "Payables aging is provided",
			NoteRefs: []string{models.NoteTradePayables},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadTradePayables) || s.Aging.PayableRows > 0 {
					return nil
				}
				return fail(SeverityError, "Trade payables have a balance but no aging schedule was provided.",
					"Upload the trade payables aging split between MSME and other creditors by outstanding period.")
			},
		},
		{
			ID: "aging-payables-reconcile", Category: CategoryAgingSchedules, Title: "Payables aging reconciles to the trial balance",
			NoteRefs: []string{models.NoteTradePayables},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.PayableRows == 0 {
					return nil
				}
				return reconcile("Trade payables", s.NaturalCY(models.HeadTradePayables), s.Aging.PayablesTotal,
					"Correct the payables aging or the trial balance so the schedule total equals the trade payables balance.")
			},
		},
		{
			ID: "aging-payables-msme-split", Category: CategoryAgingSchedules, Title: "Payables aging separates MSME dues",
			NoteRefs: []string{models.NoteTradePayables, models.NoteMSMEDues},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.PayableRows == 0 || (s.Aging.PayableMSMERows > 0 && s.Aging.PayableOtherRows > 0) {
					return nil
				}
				return fail(SeverityError, "Payables aging does not show both MSME and other creditors.",
					"Classify every payables aging row as MSME or Others and include a zero row where a category has no dues.")
			},
		},
		{
			ID: "aging-buckets-valid", Category: CategoryAgingSchedules, Title: "Aging rows use the prescribed periods",
			Check: func(s *Snapshot) *Finding {
				bad := s.Aging.ReceivablesBadBuckets + s.Aging.PayablesBadBuckets
				if bad == 0 {
					return nil
				}
				return fail(SeverityWarning, fmt.Sprintf("%d aging rows use periods outside the Schedule III bands.", bad),
					"Re-bucket the aging rows into the prescribed periods, for example less than 6 months or 1-2 years.")
			},
		},
		{
			ID: "aging-disputed-disclosure", Category: CategoryAgingSchedules, Title: "Disputed dues are disclosed",
			NoteRefs: []string{models.NoteContingentLiabilities},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.ReceivablesDisputed.IsZero() && s.Aging.PayablesDisputed.IsZero() {
					return nil
				}
				if s.Notes.Selected(models.NoteContingentLiabilities) {
					return nil
				}
				return fail(SeverityInfo, "Disputed dues exist but the contingent liabilities note is not selected.",
					"Consider selecting the contingent liabilities and commitments note to explain the disputed balances.")
			},
		},
		{
			ID: "cwip-aging-present", Category: CategoryCwipAging, Title: "CWIP aging is provided",
			NoteRefs: []string{models.NoteCWIP},
			Check: func(s *Snapshot) *Finding {
				if !s.HasBalance(models.HeadCWIP) || s.Aging.CwipRows > 0 {
					return nil
				}
				return fail(SeverityError, "Capital work-in-progress has a balance but no CWIP aging was provided.",
					"Upload the CWIP aging by project, separating projects in progress from suspended projects.")
			},
		},
		{
			ID: "cwip-aging-reconcile", Category: CategoryCwipAging, Title: "CWIP aging reconciles to the trial balance",
			NoteRefs: []string{models.NoteCWIP},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.CwipRows == 0 {
					return nil
				}
				return reconcile("Capital work-in-progress", s.NaturalCY(models.HeadCWIP), s.Aging.CwipTotal,
					"Correct the CWIP aging or the trial balance so the project totals equal the capital work-in-progress balance.")
			},
		},
		{
			ID: "cwip-aging-rows", Category: CategoryCwipAging, Title: "CWIP aging rows are complete",
			NoteRefs: []string{models.NoteCWIP},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.CwipBadBuckets == 0 && s.Aging.CwipUnnamedRows == 0 {
					return nil
				}
				return fail(SeverityWarning, "Some CWIP aging rows have no project name or use an unknown period.",
					"Name the project on every CWIP aging row and use the periods less than 1 year, 1-2, 2-3 or more than 3 years.")
			},
		},
		{
			ID: "cwip-suspended", Category: CategoryCwipAging, Title: "Suspended projects are explained",
			NoteRefs: []string{models.NoteCWIP},
			Check: func(s *Snapshot) *Finding {
				if s.Aging.CwipSuspended.IsZero() {
					return nil
				}
				return fail(SeverityInfo,
					fmt.Sprintf("CWIP includes %s on suspended projects.", s.Aging.CwipSuspended.StringFixed(2)),
					"Disclose the reasons for suspension and the expected completion schedule of each suspended project.")
			},
		},
	}
}

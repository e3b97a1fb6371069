package compliance

import (
	"fmt"
	"strings"

	"github.com/mmdatafocus/schedule3_backend/models"
)

func ratioRules() []Rule {
	return []Rule{
		{
			ID: "ratio-variance", Category: CategoryRatioAnalysis, Title: "Ratio variances above 25% are explained",
			NoteRefs: []string{models.NoteRatioAnalysis},
			Check: func(s *Snapshot) *Finding {
				var flagged []string
				for _, r := range s.Statements.Ratios {
					if !r.VariancePct.Valid {
						continue
					}
					if r.VariancePct.Decimal.Abs().GreaterThan(RatioVarianceThreshold) {
						flagged = append(flagged, fmt.Sprintf("%s (%s%%)", r.Name, r.VariancePct.Decimal.StringFixed(2)))
					}
				}
				if len(flagged) == 0 {
					return nil
				}
				return fail(SeverityWarning,
					fmt.Sprintf("Ratios changed by more than %s%% year on year: %s.", RatioVarianceThreshold.String(), strings.Join(flagged, ", ")),
					"Schedule III requires an explanation for every ratio whose variance exceeds 25%; add the reasons to the ratio analysis note.")
			},
		},
		noteWhen("ratio-note", CategoryRatioAnalysis, SeverityError, models.NoteRatioAnalysis,
			"Ratio analysis note is selected",
			func(s *Snapshot) bool { return len(s.Entries) > 0 },
			"The ratio analysis note is not selected.",
			"Select the ratio analysis note; the 2021 amendment to Schedule III requires eleven ratios with their variances."),
		{
			ID: "ratio-net-worth", Category: CategoryRatioAnalysis, Title: "Net worth is positive",
			NoteRefs: []string{models.NoteRatioAnalysis},
			Check: func(s *Snapshot) *Finding {
				if len(s.Entries) == 0 || s.Statements.BalanceSheet.TotalEquity.CY.IsPositive() {
					return nil
				}
				return fail(SeverityWarning, "Total equity is zero or negative, so equity based ratios are not meaningful.",
					"Disclose the erosion of net worth and management's plans; mark return on equity and debt-equity as not meaningful.")
			},
		},
		{
			ID: "ratio-comparatives", Category: CategoryRatioAnalysis, Title: "Comparative figures are available",
			NoteRefs: []string{models.NoteRatioAnalysis},
			Check: func(s *Snapshot) *Finding {
				current, previous := 0, 0
				for _, r := range s.Statements.Ratios {
					if r.Current.Valid {
						current++
					}
					if r.Previous.Valid {
						previous++
					}
				}
				if current == 0 || previous > 0 {
					return nil
				}
				return fail(SeverityInfo, "No previous year figures are available for ratio comparison.",
					"Load the previous year closing balances in the trial balance so each ratio shows its comparative and variance.")
			},
		},
	}
}

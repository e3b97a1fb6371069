package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

// Schedule III permits a first financial year of up to fifteen months.
const maxFinancialYearMonths = 15

func entityRules() []Rule {
	return []Rule{
		{
			ID: "entity-name", Category: CategoryEntityInformation, Title: "Entity name is set",
			NoteRefs: []string{models.NoteCorporateInfo},
			Check: func(s *Snapshot) *Finding {
				if strings.TrimSpace(s.Entity.Name) != "" {
					return nil
				}
				return fail(SeverityError, "Entity name is missing.",
					"Enter the registered name of the company in entity settings; it is printed on every statement header.")
			},
		},
		{
			ID: "entity-address", Category: CategoryEntityInformation, Title: "Registered address is set",
			NoteRefs: []string{models.NoteCorporateInfo},
			Check: func(s *Snapshot) *Finding {
				if strings.TrimSpace(s.Entity.Address) != "" {
					return nil
				}
				return fail(SeverityError, "Registered office address is missing.",
					"Enter the registered office address in entity settings so the corporate information note can be completed.")
			},
		},
		{
			ID: "entity-fy-end", Category: CategoryEntityInformation, Title: "Financial year end is set",
			Check: func(s *Snapshot) *Finding {
				if s.Entity.FyEnd != nil && !s.Entity.FyEnd.IsZero() {
					return nil
				}
				// Suggest the last April-March year that closed before the report date.
				_, lastEnd := utils.GetFinancialYearRange(time.April, s.AsOf.AddDate(-1, 0, 0))
				return fail(SeverityError, "Financial year end date is not set.",
					fmt.Sprintf("Set the financial year start and end dates in entity settings (for example a year ending %s); statement headings and comparatives depend on them.",
						lastEnd.Format("02-Jan-2006")))
			},
		},
		{
			ID: "entity-fy-order", Category: CategoryEntityInformation, Title: "Financial year start precedes its end",
			Check: func(s *Snapshot) *Finding {
				if s.Entity.FyStart == nil || s.Entity.FyEnd == nil {
					return nil
				}
				if s.Entity.FyStart.Before(*s.Entity.FyEnd) {
					return nil
				}
				return fail(SeverityError,
					fmt.Sprintf("Financial year start %s is not before financial year end %s.",
						s.Entity.FyStart.Format("2006-01-02"), s.Entity.FyEnd.Format("2006-01-02")),
					"Correct the financial year dates in entity settings so that the start date falls before the end date.")
			},
		},
		{
			ID: "entity-fy-length", Category: CategoryEntityInformation, Title: "Financial year does not exceed fifteen months",
			Check: func(s *Snapshot) *Finding {
				if s.Entity.FyStart == nil || s.Entity.FyEnd == nil || !s.Entity.FyStart.Before(*s.Entity.FyEnd) {
					return nil
				}
				if !s.Entity.FyStart.AddDate(0, maxFinancialYearMonths, 0).Before(*s.Entity.FyEnd) {
					return nil
				}
				return fail(SeverityWarning, "The financial year is longer than fifteen months.",
					"A financial year may not exceed fifteen months under the Companies Act; review the start and end dates.")
			},
		},
		{
			ID: "entity-fy-closed", Category: CategoryEntityInformation, Title: "Financial year has ended",
			Check: func(s *Snapshot) *Finding {
				if s.Entity.FyEnd == nil || !s.Entity.FyEnd.After(s.AsOf) {
					return nil
				}
				return fail(SeverityWarning,
					fmt.Sprintf("Financial year ends on %s, after the report date %s.",
						s.Entity.FyEnd.Format("2006-01-02"), s.AsOf.Format("2006-01-02")),
					"Statements prepared before the year end are provisional; mark them as such or re-run the check after closing.")
			},
		},
		{
			ID: "entity-cin", Category: CategoryEntityInformation, Title: "CIN format is plausible",
			NoteRefs: []string{models.NoteCorporateInfo},
			Check: func(s *Snapshot) *Finding {
				cin := strings.TrimSpace(s.Entity.CIN)
				if cin == "" || utils.IsValidCIN(cin) {
					return nil
				}
				return fail(SeverityError, fmt.Sprintf("CIN %q does not match the 21 character format.", cin),
					"Enter the Corporate Identification Number exactly as issued by the Registrar, for example U12345MH2010PTC123456.")
			},
		},
		{
			ID: "entity-currency", Category: CategoryEntityInformation, Title: "Reporting currency is INR",
			Check: func(s *Snapshot) *Finding {
				currency := strings.ToUpper(strings.TrimSpace(s.Entity.Currency))
				if currency == "" || currency == "INR" {
					return nil
				}
				return fail(SeverityWarning, fmt.Sprintf("Reporting currency is %s rather than INR.", currency),
					"Schedule III statements are presented in Indian Rupees; convert the figures or disclose the presentation currency.")
			},
		},
		{
			ID: "entity-rounding-units", Category: CategoryEntityInformation, Title: "Rounding units suit the turnover",
			Check: func(s *Snapshot) *Finding {
				revenue := s.Statements.ProfitAndLoss.TotalIncome.CY
				if s.Entity.Units != models.ReportingUnitCrores || !revenue.LessThan(crores(100)) {
					return nil
				}
				return fail(SeverityWarning, "Amounts are rounded to crores although total income is below 100 crores.",
					"Companies with turnover below 100 crores round to hundreds, thousands, lakhs or millions; change the reporting unit.")
			},
		},
	}
}

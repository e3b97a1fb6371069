package compliance

import (
	"github.com/mmdatafocus/schedule3_backend/models"
)

func hasTrialBalance(s *Snapshot) bool {
	return len(s.Entries) > 0
}

func disclosureRules() []Rule {
	return []Rule{
		noteWhen("disclosure-share-capital", CategoryMandatoryDisclosure, SeverityError, models.NoteShareCapital,
			"Share capital schedule is selected",
			hasBalance(models.HeadShareCapital),
			"Share capital has a balance but the share capital note is not selected.",
			"Select the share capital note and disclose authorised, issued and subscribed capital with the shareholding of promoters."),
		noteWhen("disclosure-related-party", CategoryMandatoryDisclosure, SeverityError, models.NoteRelatedParty,
			"Related party note is selected",
			hasTrialBalance,
			"The related party disclosures note is not selected.",
			"Select the related party note and list key managerial personnel, related entities and transactions with them."),
		noteWhen("disclosure-contingent-liabilities", CategoryMandatoryDisclosure, SeverityWarning, models.NoteContingentLiabilities,
			"Contingent liabilities note is selected when there are borrowings or CWIP",
			hasBalance(models.HeadLongTermBorrowings, models.HeadShortTermBorrowings, models.HeadCWIP),
			"Borrowings or capital work-in-progress exist but the contingent liabilities and commitments note is not selected.",
			"Select the contingent liabilities note to disclose guarantees, charges and capital commitments, or state that there are none."),
		noteWhen("disclosure-msme", CategoryMandatoryDisclosure, SeverityError, models.NoteMSMEDues,
			"MSME dues note is selected when there are trade payables",
			hasBalance(models.HeadTradePayables),
			"Trade payables exist but the note on dues to micro and small enterprises is not selected.",
			"Select the MSME dues note and disclose principal, interest and delayed payments as required by the MSMED Act."),
		noteWhen("disclosure-additional-regulatory", CategoryMandatoryDisclosure, SeverityWarning, models.NoteAdditionalRegulatory,
			"Additional regulatory information note is selected",
			hasTrialBalance,
			"The additional regulatory information note is not selected.",
			"Select the additional regulatory information note covering title deeds, benami property, wilful defaulter status and similar items."),
		noteWhen("disclosure-csr", CategoryMandatoryDisclosure, SeverityError, models.NoteCSR,
			"CSR note is selected when the company crosses the CSR threshold",
			func(s *Snapshot) bool {
				pl := s.Statements.ProfitAndLoss
				return pl.ProfitBeforeTax.CY.GreaterThanOrEqual(crores(5)) || pl.RevenueFromOperations.CY.GreaterThanOrEqual(crores(1000))
			},
			"The company meets the CSR applicability thresholds but the CSR note is not selected.",
			"Select the corporate social responsibility note and disclose the amount required to be spent, the amount spent and any shortfall."),
		noteWhen("disclosure-subsequent-events", CategoryMandatoryDisclosure, SeverityInfo, models.NoteSubsequentEvents,
			"Events after the reporting period are considered",
			hasTrialBalance,
			"The events after the reporting period note is not selected.",
			"Consider selecting the subsequent events note to confirm that no adjusting or material non-adjusting events occurred."),
	}
}

package models

type StatementType string

const (
	StatementTypeBS StatementType = "BS"
	StatementTypePL StatementType = "PL"
)

func (t StatementType) IsValid() bool {
	return t == StatementTypeBS || t == StatementTypePL
}

// HeadSection places a major head on the face of the statements.
type HeadSection string

const (
	HeadSectionEquity    HeadSection = "Equity"
	HeadSectionLiability HeadSection = "Liability"
	HeadSectionAsset     HeadSection = "Asset"
	HeadSectionIncome    HeadSection = "Income"
	HeadSectionExpense   HeadSection = "Expense"
)

// StatementType of the rows classified under this section.
func (s HeadSection) StatementType() StatementType {
	switch s {
	case HeadSectionIncome, HeadSectionExpense:
		return StatementTypePL
	default:
		return StatementTypeBS
	}
}

// CreditNatured sections carry credit (negative) closing balances in the trial balance.
func (s HeadSection) CreditNatured() bool {
	return s == HeadSectionEquity || s == HeadSectionLiability || s == HeadSectionIncome
}

type NegativeDisplay string

const (
	NegativeDisplayMinus    NegativeDisplay = "minus"
	NegativeDisplayBrackets NegativeDisplay = "brackets"
)

type ReportingUnit string

const (
	ReportingUnitAbsolute  ReportingUnit = "absolute"
	ReportingUnitThousands ReportingUnit = "thousands"
	ReportingUnitLakhs     ReportingUnit = "lakhs"
	ReportingUnitMillions  ReportingUnit = "millions"
	ReportingUnitCrores    ReportingUnit = "crores"
)

type PayableCategory string

const (
	PayableCategoryMSME   PayableCategory = "MSME"
	PayableCategoryOthers PayableCategory = "Others"
)

// AgingBucket is the time-outstanding band prescribed for receivable/payable aging.
type AgingBucket string

const (
	AgingBucketNotDue          AgingBucket = "Not Due"
	AgingBucketLessThan6Months AgingBucket = "Less than 6 months"
	AgingBucket6MonthsTo1Year  AgingBucket = "6 months - 1 year"
	AgingBucketLessThan1Year   AgingBucket = "Less than 1 year"
	AgingBucket1To2Years       AgingBucket = "1-2 years"
	AgingBucket2To3Years       AgingBucket = "2-3 years"
	AgingBucketMoreThan3Years  AgingBucket = "More than 3 years"
)

var ReceivableAgingBuckets = []AgingBucket{
	AgingBucketNotDue,
	AgingBucketLessThan6Months,
	AgingBucket6MonthsTo1Year,
	AgingBucket1To2Years,
	AgingBucket2To3Years,
	AgingBucketMoreThan3Years,
}

var PayableAgingBuckets = []AgingBucket{
	AgingBucketNotDue,
	AgingBucketLessThan1Year,
	AgingBucket1To2Years,
	AgingBucket2To3Years,
	AgingBucketMoreThan3Years,
}

// CWIP aging uses the payable bands without "Not Due".
var CwipAgingBuckets = PayableAgingBuckets[1:]

type CwipStatus string

const (
	CwipStatusInProgress CwipStatus = "In Progress"
	CwipStatusSuspended  CwipStatus = "Suspended"
)

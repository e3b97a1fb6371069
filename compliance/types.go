package compliance

import "time"

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type OverallStatus string

const (
	StatusCompliant    OverallStatus = "compliant"
	StatusPartial      OverallStatus = "partial"
	StatusNonCompliant OverallStatus = "non-compliant"
)

// BucketStatus is the per-bucket summary status.
type BucketStatus string

const (
	BucketPass    BucketStatus = "pass"
	BucketWarning BucketStatus = "warning"
	BucketFail    BucketStatus = "fail"
)

type Category string

const (
	CategoryEntityInformation   Category = "Entity Information"
	CategoryNoteSelections      Category = "Note Selections"
	CategoryFinancialStatements Category = "Financial Statements"
	CategoryAgingSchedules      Category = "Aging Schedules"
	CategoryCwipAging           Category = "CWIP Aging"
	CategoryRatioAnalysis       Category = "Ratio Analysis"
	CategoryMandatoryDisclosure Category = "Mandatory Disclosures"
	CategoryRevenueRecognition  Category = "Revenue Recognition"
	CategoryBorrowings          Category = "Borrowings"
	CategoryInventory           Category = "Inventory"
	CategoryDepreciation        Category = "Depreciation"
	CategoryCashFlow            Category = "Cash Flow"
	CategorySegmentReporting    Category = "Segment Reporting"
	CategoryProvisions          Category = "Provisions"
	CategoryForeignCurrency     Category = "Foreign Currency"
	CategoryEarningsPerShare    Category = "Earnings Per Share"
)

// Bucket is a key of the report summary.
type Bucket string

const (
	BucketEntityInformation    Bucket = "entityInformation"
	BucketNoteSelections       Bucket = "noteSelections"
	BucketFinancialStatements  Bucket = "financialStatements"
	BucketAgingSchedules       Bucket = "agingSchedules"
	BucketRatioAnalysis        Bucket = "ratioAnalysis"
	BucketMandatoryDisclosures Bucket = "mandatoryDisclosures"
)

var categoryBuckets = map[Category]Bucket{
	CategoryEntityInformation:   BucketEntityInformation,
	CategoryNoteSelections:      BucketNoteSelections,
	CategoryFinancialStatements: BucketFinancialStatements,
	CategoryCashFlow:            BucketFinancialStatements,
	CategoryBorrowings:          BucketFinancialStatements,
	CategoryInventory:           BucketFinancialStatements,
	CategoryDepreciation:        BucketFinancialStatements,
	CategoryProvisions:          BucketFinancialStatements,
	CategoryRevenueRecognition:  BucketFinancialStatements,
	CategoryForeignCurrency:     BucketFinancialStatements,
	CategoryEarningsPerShare:    BucketFinancialStatements,
	CategoryAgingSchedules:      BucketAgingSchedules,
	CategoryCwipAging:           BucketAgingSchedules,
	CategoryRatioAnalysis:       BucketRatioAnalysis,
	CategoryMandatoryDisclosure: BucketMandatoryDisclosures,
	CategorySegmentReporting:    BucketMandatoryDisclosures,
}

// Bucket returns the summary bucket the category reports into.
func (c Category) Bucket() Bucket {
	if b, ok := categoryBuckets[c]; ok {
		return b
	}
	return BucketMandatoryDisclosures
}

type Issue struct {
	RuleID         string   `json:"ruleId"`
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
	NoteRef        string   `json:"noteRef,omitempty"`
}

type Summary struct {
	EntityInformation    BucketStatus `json:"entityInformation"`
	NoteSelections       BucketStatus `json:"noteSelections"`
	FinancialStatements  BucketStatus `json:"financialStatements"`
	AgingSchedules       BucketStatus `json:"agingSchedules"`
	RatioAnalysis        BucketStatus `json:"ratioAnalysis"`
	MandatoryDisclosures BucketStatus `json:"mandatoryDisclosures"`
}

// Get returns the status of a bucket.
func (s Summary) Get(b Bucket) BucketStatus {
	switch b {
	case BucketEntityInformation:
		return s.EntityInformation
	case BucketNoteSelections:
		return s.NoteSelections
	case BucketFinancialStatements:
		return s.FinancialStatements
	case BucketAgingSchedules:
		return s.AgingSchedules
	case BucketRatioAnalysis:
		return s.RatioAnalysis
	default:
		return s.MandatoryDisclosures
	}
}

// Report is the result of one compliance run. It is never persisted.
type Report struct {
	CompanyId       string        `json:"companyId"`
	AsOf            time.Time     `json:"asOf"`
	OverallStatus   OverallStatus `json:"overallStatus"`
	ComplianceScore int           `json:"complianceScore"`
	TotalChecks     int           `json:"totalChecks"`
	PassedChecks    int           `json:"passedChecks"`
	Issues          []Issue       `json:"issues"`
	Summary         Summary       `json:"summary"`
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// NoteStatus is the outcome of re-running the rules attached to one note.
type NoteStatus struct {
	CompanyId    string        `json:"companyId"`
	NoteRef      string        `json:"noteRef"`
	Description  string        `json:"description"`
	Selected     bool          `json:"selected"`
	Status       OverallStatus `json:"status"`
	TotalChecks  int           `json:"totalChecks"`
	PassedChecks int           `json:"passedChecks"`
	Issues       []Issue       `json:"issues"`
}

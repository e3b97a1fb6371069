package compliance

import "math"

const (
	compliantScore = 90
	partialScore   = 60
)

// Score is round(passed/total*100). A run without checks scores 100.
func Score(passed, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(passed) / float64(total) * 100))
}

// StatusFor maps a score to the overall status. Compliant also requires no error issues.
func StatusFor(score int, hasErrors bool) OverallStatus {
	switch {
	case score >= compliantScore && !hasErrors:
		return StatusCompliant
	case score >= partialScore:
		return StatusPartial
	default:
		return StatusNonCompliant
	}
}

func summarize(issues []Issue) Summary {
	worst := map[Bucket]BucketStatus{}
	for _, i := range issues {
		b := i.Category.Bucket()
		switch i.Severity {
		case SeverityError:
			worst[b] = BucketFail
		case SeverityWarning:
			if worst[b] != BucketFail {
				worst[b] = BucketWarning
			}
		}
	}
	get := func(b Bucket) BucketStatus {
		if s, ok := worst[b]; ok {
			return s
		}
		return BucketPass
	}
	return Summary{
		EntityInformation:    get(BucketEntityInformation),
		NoteSelections:       get(BucketNoteSelections),
		FinancialStatements:  get(BucketFinancialStatements),
		AgingSchedules:       get(BucketAgingSchedules),
		RatioAnalysis:        get(BucketRatioAnalysis),
		MandatoryDisclosures: get(BucketMandatoryDisclosures),
	}
}

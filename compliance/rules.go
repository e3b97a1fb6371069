package compliance

import (
	"github.com/shopspring/decimal"
)

var (
	// BalanceTolerance is the largest difference, in currency units, treated as rounding.
	BalanceTolerance = decimal.NewFromInt(1)
	// AgingWarningFraction of the trial balance figure below which an aging mismatch is a warning.
	AgingWarningFraction = decimal.RequireFromString("0.01")
	// RatioVarianceThreshold is the year-on-year change, in percent, that requires an explanation.
	RatioVarianceThreshold = decimal.NewFromInt(25)
)

// Finding is a failed check. NoteRefs lists the notes the failure implicates and
// overrides the rule's own NoteRefs when set.
type Finding struct {
	Severity       Severity
	Issue          string
	Recommendation string
	NoteRefs       []string
}

// implicates reports whether a finding raised by r blames note ref.
func (r Rule) implicates(f *Finding, ref string) bool {
	refs := f.NoteRefs
	if len(refs) == 0 {
		refs = r.NoteRefs
	}
	for _, n := range refs {
		if n == ref {
			return true
		}
	}
	return false
}

// Rule is one entry of the catalog. Check returns nil when the rule passes.
type Rule struct {
	ID       string
	Category Category
	Title    string
	NoteRefs []string
	Check    func(s *Snapshot) *Finding
}

func (r Rule) appliesToNote(ref string) bool {
	for _, n := range r.NoteRefs {
		if n == ref {
			return true
		}
	}
	return false
}

func (r Rule) issue(f *Finding) Issue {
	var noteRef string
	switch {
	case len(f.NoteRefs) > 0:
		noteRef = f.NoteRefs[0]
	case len(r.NoteRefs) > 0:
		noteRef = r.NoteRefs[0]
	}
	return Issue{
		RuleID:         r.ID,
		Category:       r.Category,
		Severity:       f.Severity,
		Issue:          f.Issue,
		Recommendation: f.Recommendation,
		NoteRef:        noteRef,
	}
}

var catalog = buildCatalog()

func buildCatalog() []Rule {
	var rules []Rule
	rules = append(rules, entityRules()...)
	rules = append(rules, noteRules()...)
	rules = append(rules, statementRules()...)
	rules = append(rules, agingRules()...)
	rules = append(rules, ratioRules()...)
	rules = append(rules, disclosureRules()...)
	rules = append(rules, amendmentRules()...)
	return rules
}

// Catalog returns the rules evaluated by every run, in report order.
func Catalog() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}

// RuleByID looks up a catalog rule.
func RuleByID(id string) (Rule, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

func fail(sev Severity, issue, recommendation string) *Finding {
	return &Finding{Severity: sev, Issue: issue, Recommendation: recommendation}
}

// noteWhen builds a rule requiring note ref to be selected whenever applies holds.
func noteWhen(id string, cat Category, sev Severity, ref string, title string, applies func(*Snapshot) bool, issue, recommendation string) Rule {
	return Rule{
		ID:       id,
		Category: cat,
		Title:    title,
		NoteRefs: []string{ref},
		Check: func(s *Snapshot) *Finding {
			if !applies(s) || s.Notes.Selected(ref) {
				return nil
			}
			return fail(sev, issue, recommendation)
		},
	}
}

func hasBalance(codes ...string) func(*Snapshot) bool {
	return func(s *Snapshot) bool { return s.HasBalance(codes...) }
}

func withinTolerance(diff decimal.Decimal) bool {
	return diff.Abs().LessThanOrEqual(BalanceTolerance)
}

// crore is ten million currency units.
var crore = decimal.NewFromInt(1_00_00_000)

func crores(n int64) decimal.Decimal {
	return crore.Mul(decimal.NewFromInt(n))
}

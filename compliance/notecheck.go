package compliance

import (
	"context"
	"strings"

	"github.com/mmdatafocus/schedule3_backend/models"
)

// RulesForNote returns the catalog rules attached to a note, in catalog order.
func RulesForNote(rules []Rule, noteRef string) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.appliesToNote(noteRef) {
			out = append(out, r)
		}
	}
	return out
}

// CheckNote runs the catalog and reports the checks that concern noteRef: the
// rules attached to it, plus any rule whose failure blames it. An attached rule
// that fails only because of other notes counts as passed here.
func (e *Engine) CheckNote(ctx context.Context, companyId string, noteRef string) (*NoteStatus, error) {
	noteRef = strings.TrimSpace(noteRef)
	if noteRef == "" {
		return nil, ErrUnknownNote
	}

	ctx, span := e.tracer.Start(ctx, "compliance.CheckNote")
	defer span.End()

	snapshot, err := e.Snapshot(ctx, companyId)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	catalogNote, known := models.LookupCatalogNote(noteRef)
	row, listed := snapshot.Notes.Get(noteRef)
	if !known && !listed && len(RulesForNote(e.rules, noteRef)) == 0 {
		return nil, ErrUnknownNote
	}

	status := &NoteStatus{
		CompanyId:   companyId,
		NoteRef:     noteRef,
		Description: catalogNote.Description,
		Selected:    snapshot.Notes.Selected(noteRef),
		Issues:      []Issue{},
	}
	if status.Description == "" {
		status.Description = row.Description
	}

	findings := runRules(snapshot, e.rules, e.parallel)
	for i, r := range e.rules {
		f := findings[i]
		switch {
		case f != nil && r.implicates(f, noteRef):
			status.TotalChecks++
			issue := r.issue(f)
			issue.NoteRef = noteRef
			status.Issues = append(status.Issues, issue)
		case r.appliesToNote(noteRef):
			status.TotalChecks++
			status.PassedChecks++
		}
	}
	status.Status = StatusFor(Score(status.PassedChecks, status.TotalChecks), status.hasErrors())
	return status, nil
}

func (n *NoteStatus) hasErrors() bool {
	for _, i := range n.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

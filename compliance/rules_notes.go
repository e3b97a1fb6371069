package compliance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmdatafocus/schedule3_backend/models"
)

var mandatoryNotes = []string{
	models.NoteCorporateInfo,
	models.NoteBasisOfPreparation,
	models.NoteAccountingPolicies,
	models.NoteUseOfEstimates,
}

// Notes whose selection is checked by a dedicated rule in another category.
var dedicatedNoteRules = map[string]bool{
	models.NoteShareCapital:        true,
	models.NoteLongTermBorrowings:  true,
	models.NoteShortTermBorrowings: true,
	models.NoteProvisions:          true,
	models.NotePPE:                 true,
	models.NoteInventories:         true,
	models.NoteCashEquivalents:     true,
	models.NoteRevenue:             true,
	models.NoteDepreciation:        true,
}

func noteRules() []Rule {
	rules := []Rule{
		{
			ID: "notes-mandatory-a-series", Category: CategoryNoteSelections, Title: "Mandatory A-series notes are selected",
			NoteRefs: mandatoryNotes,
			Check: func(s *Snapshot) *Finding {
				var missing []string
				for _, ref := range mandatoryNotes {
					if !s.Notes.Selected(ref) {
						missing = append(missing, ref)
					}
				}
				if len(missing) == 0 {
					return nil
				}
				f := fail(SeverityError,
					fmt.Sprintf("Mandatory notes not selected: %s.", strings.Join(missing, ", ")),
					"Select corporate information, basis of preparation, accounting policies and use of estimates; every set of statements must carry them.")
				f.NoteRefs = missing
				return f
			},
		},
		{
			ID: "notes-orphaned", Category: CategoryNoteSelections, Title: "Selected notes have descriptions",
			Check: func(s *Snapshot) *Finding {
				var orphaned []string
				s.Notes.Each(func(n models.NoteSelection) {
					if n.UserSelected && strings.TrimSpace(n.Description) == "" {
						orphaned = append(orphaned, n.NoteRef)
					}
				})
				if len(orphaned) == 0 {
					return nil
				}
				f := fail(SeverityWarning,
					fmt.Sprintf("Selected notes without a description: %s.", strings.Join(orphaned, ", ")),
					"Give each custom note a description or deselect it; untitled notes cannot be presented in the financial statements.")
				f.NoteRefs = orphaned
				return f
			},
		},
		{
			ID: "notes-recommended", Category: CategoryNoteSelections, Title: "Recommended notes are selected",
			Check: func(s *Snapshot) *Finding {
				var skipped []string
				s.Notes.Each(func(n models.NoteSelection) {
					if n.SystemRecommended && !n.UserSelected {
						skipped = append(skipped, n.NoteRef)
					}
				})
				if len(skipped) == 0 {
					return nil
				}
				f := fail(SeverityWarning,
					fmt.Sprintf("Recommended notes not selected: %s.", strings.Join(skipped, ", ")),
					"Review the notes recommended from the trial balance and select them, or document why each one is not applicable.")
				f.NoteRefs = skipped
				return f
			},
		},
		{
			ID: "notes-numbered", Category: CategoryNoteSelections, Title: "Selected notes are numbered",
			Check: func(s *Snapshot) *Finding {
				var unnumbered []string
				s.Notes.Each(func(n models.NoteSelection) {
					if n.UserSelected && n.AutoNumber == nil {
						unnumbered = append(unnumbered, n.NoteRef)
					}
				})
				if len(unnumbered) == 0 {
					return nil
				}
				f := fail(SeverityInfo,
					fmt.Sprintf("%d selected notes have no number yet.", len(unnumbered)),
					"Run auto-numbering after finalising the note selection so the statements can cross-reference each note.")
				f.NoteRefs = unnumbered
				return f
			},
		},
		{
			ID: "notes-numbering-sequence", Category: CategoryNoteSelections, Title: "Note numbers are sequential",
			Check: func(s *Snapshot) *Finding {
				var numbers []int
				s.Notes.Each(func(n models.NoteSelection) {
					if n.UserSelected && n.AutoNumber != nil {
						numbers = append(numbers, *n.AutoNumber)
					}
				})
				sort.Ints(numbers)
				for i, n := range numbers {
					if n != i+1 {
						return fail(SeverityWarning, "Note numbers have gaps or duplicates.",
							"Re-run auto-numbering so the selected notes are numbered 1 to n without gaps or repeated numbers.")
					}
				}
				return nil
			},
		},
	}

	for _, n := range models.NoteCatalog() {
		if n.MajorHeadCode == "" || dedicatedNoteRules[n.Ref] {
			continue
		}
		note := n
		rules = append(rules, noteWhen(
			"notes-required-"+note.Ref,
			CategoryNoteSelections,
			SeverityError,
			note.Ref,
			note.Description+" note is selected when the head has a balance",
			hasBalance(note.MajorHeadCode),
			fmt.Sprintf("%s has a balance but note %s is not selected.", note.Description, note.Ref),
			fmt.Sprintf("Select note %s (%s) so the balance on the face of the statements is supported by a schedule.", note.Ref, strings.ToLower(note.Description)),
		))
	}
	return rules
}

package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/testutil"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

func notesByRef(notes []*models.NoteSelection) map[string]*models.NoteSelection {
	out := make(map[string]*models.NoteSelection, len(notes))
	for _, n := range notes {
		out[n.NoteRef] = n
	}
	return out
}

func TestInitNoteSelectionsRecommendsFromBalances(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	if _, err := models.CreateCompany(ctx, testCompanyId, "Acme"); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if _, err := models.ReplaceTrialBalance(ctx, testCompanyId, testutil.CompliantTrialBalanceInput()); err != nil {
		t.Fatalf("ReplaceTrialBalance: %v", err)
	}

	notes, err := models.InitNoteSelections(ctx, testCompanyId)
	if err != nil {
		t.Fatalf("InitNoteSelections: %v", err)
	}
	if len(notes) != len(models.NoteCatalog()) {
		t.Fatalf("got %d notes, want %d", len(notes), len(models.NoteCatalog()))
	}
	for i, c := range models.NoteCatalog() {
		if notes[i].NoteRef != c.Ref {
			t.Fatalf("note %d is %s, want %s", i, notes[i].NoteRef, c.Ref)
		}
	}

	byRef := notesByRef(notes)
	for _, ref := range []string{models.NoteCorporateInfo, models.NoteTradeReceivables, models.NotePPE} {
		if !byRef[ref].SystemRecommended || !byRef[ref].UserSelected {
			t.Fatalf("%s should be recommended and selected: %+v", ref, byRef[ref])
		}
	}
	if byRef[models.NoteCWIP].SystemRecommended {
		t.Fatalf("CWIP has no balance and should not be recommended")
	}
	if byRef[models.NoteTradeReceivables].LinkedMajorHeadId == nil {
		t.Fatalf("trade receivables note is not linked to its head")
	}
}

func TestSaveNoteSelectionsAndAutoNumber(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	if _, err := models.CreateCompany(ctx, testCompanyId, "Acme"); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if _, err := models.InitNoteSelections(ctx, testCompanyId); err != nil {
		t.Fatalf("InitNoteSelections: %v", err)
	}

	input := []*models.NoteSelectionInput{
		{NoteRef: models.NoteCorporateInfo, UserSelected: true},
		{NoteRef: models.NoteTradeReceivables, UserSelected: true},
		{NoteRef: models.NoteRevenue, UserSelected: true},
		{NoteRef: "E.1", Description: "Going concern", UserSelected: true},
	}
	saved, err := models.SaveNoteSelections(ctx, testCompanyId, input)
	if err != nil {
		t.Fatalf("SaveNoteSelections: %v", err)
	}
	byRef := notesByRef(saved)
	if byRef[models.NoteBasisOfPreparation].UserSelected {
		t.Fatalf("notes absent from the snapshot must be deselected")
	}
	if saved[len(saved)-1].NoteRef != "E.1" || saved[len(saved)-1].Description != "Going concern" {
		t.Fatalf("custom note should sort last, got %+v", saved[len(saved)-1])
	}

	numbered, err := models.AutoNumberNotes(ctx, testCompanyId)
	if err != nil {
		t.Fatalf("AutoNumberNotes: %v", err)
	}
	want := map[string]int{
		models.NoteCorporateInfo:    1,
		models.NoteTradeReceivables: 2,
		models.NoteRevenue:          3,
		"E.1":                       4,
	}
	for _, n := range numbered {
		number, selected := want[n.NoteRef]
		switch {
		case selected && (n.AutoNumber == nil || *n.AutoNumber != number):
			t.Fatalf("%s numbered %v, want %d", n.NoteRef, n.AutoNumber, number)
		case !selected && n.AutoNumber != nil:
			t.Fatalf("unselected note %s numbered %d", n.NoteRef, *n.AutoNumber)
		}
	}
}

func TestSaveNoteSelectionsRejectsDuplicates(t *testing.T) {
	testutil.NewTestDB(t)
	ctx := context.Background()
	if _, err := models.CreateCompany(ctx, testCompanyId, "Acme"); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	input := []*models.NoteSelectionInput{
		{NoteRef: models.NoteRevenue, UserSelected: true},
		{NoteRef: " " + models.NoteRevenue, UserSelected: false},
	}
	_, err := models.SaveNoteSelections(ctx, testCompanyId, input)
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a duplicate note_ref, got %v", err)
	}
}

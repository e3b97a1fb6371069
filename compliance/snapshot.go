package compliance

import (
	"context"
	"sort"
	"time"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/models/statements"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=snapshot.go -destination=mocks/mock_loader.go -package=mocks

// Loader reads the data a compliance run needs. Implementations return
// ErrCompanyNotFound from LoadEntity when the company does not exist.
type Loader interface {
	LoadEntity(ctx context.Context, companyId string) (*models.EntityConfig, error)
	LoadTrialBalance(ctx context.Context, companyId string) ([]*models.TrialBalanceEntry, error)
	LoadMajorHeads(ctx context.Context) ([]*models.MajorHead, error)
	LoadNoteSelections(ctx context.Context, companyId string) ([]*models.NoteSelection, error)
	LoadAging(ctx context.Context, companyId string) (*models.AgingSummary, error)
}

// NoteSet is the selection state of a company's notes at the start of a run.
type NoteSet struct {
	rows map[string]models.NoteSelection
}

func NewNoteSet(rows []*models.NoteSelection) NoteSet {
	set := NoteSet{rows: make(map[string]models.NoteSelection, len(rows))}
	for _, r := range rows {
		if r == nil {
			continue
		}
		set.rows[r.NoteRef] = *r
	}
	return set
}

func (n NoteSet) Selected(ref string) bool {
	r, ok := n.rows[ref]
	return ok && r.UserSelected
}

func (n NoteSet) Get(ref string) (models.NoteSelection, bool) {
	r, ok := n.rows[ref]
	return r, ok
}

func (n NoteSet) Len() int {
	return len(n.rows)
}

// Each calls fn for every row in catalog order, custom notes last.
func (n NoteSet) Each(fn func(models.NoteSelection)) {
	seen := make(map[string]bool, len(n.rows))
	for _, c := range models.NoteCatalog() {
		if r, ok := n.rows[c.Ref]; ok {
			fn(r)
			seen[c.Ref] = true
		}
	}
	var custom []string
	for ref := range n.rows {
		if !seen[ref] {
			custom = append(custom, ref)
		}
	}
	sort.Strings(custom)
	for _, ref := range custom {
		fn(n.rows[ref])
	}
}

// Snapshot is the immutable input of one run. Rules only read it.
type Snapshot struct {
	CompanyId  string
	AsOf       time.Time
	Entity     *models.EntityConfig
	Entries    []*models.TrialBalanceEntry
	Heads      models.MajorHeadIndex
	Notes      NoteSet
	Aging      models.AgingSummary
	Statements *statements.Statements
}

// CY returns the current year debit-positive total of the given heads.
func (s *Snapshot) CY(codes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range codes {
		total = total.Add(s.Statements.Heads.Get(c).CY)
	}
	return total
}

// NaturalCY returns the current year total of the given heads with their normal balance positive.
func (s *Snapshot) NaturalCY(codes ...string) decimal.Decimal {
	return s.Statements.Heads.NaturalSum(s.Heads, codes...).CY
}

// HasBalance reports whether any of the heads has a non-zero current year balance.
func (s *Snapshot) HasBalance(codes ...string) bool {
	for _, c := range codes {
		if !s.Statements.Heads.Get(c).CY.IsZero() {
			return true
		}
	}
	return false
}

func loadSnapshot(ctx context.Context, loader Loader, companyId string, asOf time.Time) (*Snapshot, error) {
	var (
		entity  *models.EntityConfig
		entries []*models.TrialBalanceEntry
		heads   []*models.MajorHead
		notes   []*models.NoteSelection
		aging   *models.AgingSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		entity, err = loader.LoadEntity(gctx, companyId)
		return wrapUnavailable(companyId, "entity", err)
	})
	g.Go(func() (err error) {
		entries, err = loader.LoadTrialBalance(gctx, companyId)
		return wrapUnavailable(companyId, "trial balance", err)
	})
	g.Go(func() (err error) {
		heads, err = loader.LoadMajorHeads(gctx)
		return wrapUnavailable(companyId, "major heads", err)
	})
	g.Go(func() (err error) {
		notes, err = loader.LoadNoteSelections(gctx, companyId)
		return wrapUnavailable(companyId, "note selections", err)
	})
	g.Go(func() (err error) {
		aging, err = loader.LoadAging(gctx, companyId)
		return wrapUnavailable(companyId, "aging", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if entity == nil {
		entity = &models.EntityConfig{CompanyId: companyId}
	}
	if aging == nil {
		aging = &models.AgingSummary{}
	}
	return &Snapshot{
		CompanyId:  companyId,
		AsOf:       asOf,
		Entity:     entity,
		Entries:    entries,
		Heads:      models.NewMajorHeadIndex(heads),
		Notes:      NewNoteSet(notes),
		Aging:      *aging,
		Statements: statements.Build(entries, heads),
	}, nil
}

func wrapUnavailable(companyId, dataset string, err error) error {
	if err == nil {
		return nil
	}
	return &DataUnavailableError{CompanyId: companyId, Dataset: dataset, Err: err}
}

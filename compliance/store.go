package compliance

import (
	"context"
	"errors"

	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

// SnapshotStore is the Loader backed by the gorm model accessors.
type SnapshotStore struct{}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (SnapshotStore) LoadEntity(ctx context.Context, companyId string) (*models.EntityConfig, error) {
	cfg, err := models.GetEntityConfig(ctx, companyId)
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	return cfg, err
}

func (SnapshotStore) LoadTrialBalance(ctx context.Context, companyId string) ([]*models.TrialBalanceEntry, error) {
	return models.GetTrialBalanceEntries(ctx, companyId)
}

func (SnapshotStore) LoadMajorHeads(ctx context.Context) ([]*models.MajorHead, error) {
	return models.GetMajorHeads(ctx)
}

func (SnapshotStore) LoadNoteSelections(ctx context.Context, companyId string) ([]*models.NoteSelection, error) {
	return models.GetNoteSelections(ctx, companyId)
}

func (SnapshotStore) LoadAging(ctx context.Context, companyId string) (*models.AgingSummary, error) {
	return models.GetAgingSummary(ctx, companyId)
}

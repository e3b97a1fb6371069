package testutil

import (
	"context"
	"testing"

	"github.com/mmdatafocus/schedule3_backend/models/demo"
)

// The reporting period and the compliant sample company shared by every test.
var (
	FyStart = demo.FyStart
	FyEnd   = demo.FyEnd
	AsOf    = demo.AsOf

	CompliantTrialBalanceInput = demo.CompliantTrialBalanceInput
	CompliantEntries           = demo.CompliantEntries
	StandardHeadPointers       = demo.StandardHeadPointers
	CompliantEntity            = demo.CompliantEntity
	CompliantNewEntity         = demo.CompliantNewEntity
	CompliantReceivables       = demo.CompliantReceivables
	CompliantPayables          = demo.CompliantPayables
	CompliantNotes             = demo.CompliantNotes
)

// SeedCompliantCompany writes the compliant sample company into the test database.
func SeedCompliantCompany(t testing.TB, ctx context.Context, companyId string) {
	t.Helper()
	if err := demo.Seed(ctx, companyId, "Acme Manufacturing"); err != nil {
		t.Fatalf("seed compliant company: %v", err)
	}
}

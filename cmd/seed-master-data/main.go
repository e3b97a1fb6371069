// seed-master-data creates the tables and seeds the Schedule III major head,
// minor head and grouping hierarchy. Seeding is idempotent.
//
// Usage (from backend directory):
//
//	DB_DRIVER=sqlite DB_PATH=data/schedule3.db go run ./cmd/seed-master-data
//	go run ./cmd/seed-master-data -demo -name "Acme Manufacturing"
//
// With -demo it also writes a complete compliant sample company.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/mmdatafocus/schedule3_backend/models/demo"
)

func main() {
	withDemo := flag.Bool("demo", false, "also create a compliant sample company")
	companyId := flag.String("company", "", "id of the sample company (default: random uuid)")
	name := flag.String("name", "Demo Manufacturing", "name of the sample company")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	if !config.SkipMigrations() {
		models.MigrateTable()
	}
	if err := models.SeedMasterData(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed master data: %v\n", err)
		os.Exit(1)
	}
	heads, err := models.GetMajorHeads(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read master data: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Seeded master data: %d major heads, %d catalog notes\n", len(heads), len(models.NoteCatalog()))

	if !*withDemo {
		return
	}
	id := *companyId
	if id == "" {
		id = uuid.NewString()
	}
	if err := demo.Seed(ctx, id, *name); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed demo company: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created demo company: id=%s name=%q\n", id, *name)
}

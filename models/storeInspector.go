package models

import (
	"context"
	"errors"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/utils"
)

// ExpectedTables is the fixed table list reported by diagnostics.
var ExpectedTables = []string{
	"companies",
	"entity_configs",
	"trial_balance_entries",
	"major_heads",
	"minor_heads",
	"groupings",
	"note_selections",
	"receivable_agings",
	"payable_agings",
	"cwip_agings",
}

// DBInspector answers infrastructure questions about the configured database.
type DBInspector struct{}

func (DBInspector) Ping(ctx context.Context) error {
	db := config.GetDB()
	if db == nil {
		return errors.New("database not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	var one int
	return db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

func (DBInspector) HasTable(ctx context.Context, table string) (bool, error) {
	db := config.GetDB()
	if db == nil {
		return false, errors.New("database not connected")
	}
	return db.WithContext(ctx).Migrator().HasTable(table), nil
}

// CountRows counts all rows of a table, across companies.
func (DBInspector) CountRows(ctx context.Context, table string) (int64, error) {
	db := config.GetDB()
	if db == nil {
		return 0, errors.New("database not connected")
	}
	ctx = utils.SetSkipCompanyScopeInContext(ctx, true)
	var count int64
	err := db.WithContext(ctx).Table(table).Count(&count).Error
	return count, err
}

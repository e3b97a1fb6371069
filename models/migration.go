package models

import (
	"log"

	"github.com/mmdatafocus/schedule3_backend/config"
	"gorm.io/gorm"
)

func allModels() []any {
	return []any{
		&Company{}, &EntityConfig{},
		&MajorHead{}, &MinorHead{}, &Grouping{},
		&TrialBalanceEntry{},
		&NoteSelection{},
		&ReceivableAging{}, &PayableAging{}, &CwipAging{},
	}
}

func MigrateTable() {
	if err := AutoMigrate(config.GetDB()); err != nil {
		log.Fatal(err)
	}
}

// AutoMigrate creates or alters every table on conn.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(allModels()...)
}

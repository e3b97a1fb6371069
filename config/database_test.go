package config

import (
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
)

func TestMySQLDialector(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_USER", "books")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "10.0.0.5")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "schedule3")

	d, err := dialector()
	if err != nil {
		t.Fatalf("dialector: %v", err)
	}
	dsn := d.(*mysql.Dialector).DSN
	if !strings.HasPrefix(dsn, "books:secret@tcp(10.0.0.5:3306)/schedule3?") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
	for _, want := range []string{"parseTime=true", "multiStatements=true"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %s", dsn, want)
		}
	}

	t.Setenv("DB_HOST", "/cloudsql/project:region:instance")
	d, err = dialector()
	if err != nil {
		t.Fatalf("dialector: %v", err)
	}
	if dsn := d.(*mysql.Dialector).DSN; !strings.Contains(dsn, "@unix(/cloudsql/project:region:instance)/") {
		t.Fatalf("unexpected unix dsn %q", dsn)
	}
}

func TestSQLiteDialector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedule3.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", path)

	d, err := dialector()
	if err != nil {
		t.Fatalf("dialector: %v", err)
	}
	if got := d.(*sqlite.Dialector).DSN; got != path+"?_foreign_keys=on" {
		t.Fatalf("dsn = %q", got)
	}
}

func TestUnsupportedDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	if _, err := dialector(); err == nil {
		t.Fatalf("expected an error for an unsupported driver")
	}
}

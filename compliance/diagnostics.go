package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/models"
	"github.com/sirupsen/logrus"
)

// StoreInspector answers infrastructure questions about the store behind a Loader.
type StoreInspector interface {
	Ping(ctx context.Context) error
	HasTable(ctx context.Context, table string) (bool, error)
	CountRows(ctx context.Context, table string) (int64, error)
}

type TableStatus struct {
	Exists bool   `json:"exists"`
	Count  *int64 `json:"count,omitempty"`
	Error  string `json:"error,omitempty"`
}

type CheckResult string

const (
	CheckPass CheckResult = "pass"
	CheckFail CheckResult = "fail"
)

type CheckStatus struct {
	Status  CheckResult `json:"status"`
	Message string      `json:"message"`
}

type DiagnosticReport struct {
	CompanyId          string                 `json:"companyId"`
	DatabaseConnection bool                   `json:"databaseConnection"`
	TablesStatus       map[string]TableStatus `json:"tablesStatus"`
	BasicChecks        map[string]CheckStatus `json:"basicChecks"`
	Timestamp          time.Time              `json:"timestamp"`
}

// The company lookup check, reported apart from the rule checks.
const companyCheck = "company"

// DiagnosticRuleIDs are the catalog rules re-run by diagnostics.
var DiagnosticRuleIDs = []string{"entity-name", "fs-tb-present", "notes-mandatory-a-series", "fs-bs-balanced"}

type Diagnostics struct {
	inspector StoreInspector
	loader Loader
	tables []string
	clock  func() time.Time
	logger *logrus.Logger
}

func NewDiagnostics(inspector StoreInspector, loader Loader) *Diagnostics {
	return &Diagnostics{
		inspector: inspector,
		loader: loader,
		tables: models.ExpectedTables,
		clock:  time.Now,
		logger: config.GetLogger(),
	}
}

// WithClock returns a copy of d using clock for timestamps.
func (d *Diagnostics) WithClock(clock func() time.Time) *Diagnostics {
	c := *d
	c.clock = clock
	return &c
}

// Run never fails: every check error is captured in the report.
func (d *Diagnostics) Run(ctx context.Context, companyId string) *DiagnosticReport {
	report := &DiagnosticReport{
		CompanyId:    companyId,
		TablesStatus: make(map[string]TableStatus, len(d.tables)),
		BasicChecks:  make(map[string]CheckStatus, len(DiagnosticRuleIDs)+1),
		Timestamp:    d.clock().UTC(),
	}

	if err := d.inspector.Ping(ctx); err != nil {
		config.LogError(d.logger, "compliance", "Diagnostics.Run", "ping", companyId, err)
		msg := "database unreachable: " + err.Error()
		for _, table := range d.tables {
			report.TablesStatus[table] = TableStatus{Error: msg}
		}
		report.BasicChecks[companyCheck] = CheckStatus{Status: CheckFail, Message: msg}
		for _, id := range DiagnosticRuleIDs {
			report.BasicChecks[id] = CheckStatus{Status: CheckFail, Message: "skipped: " + msg}
		}
		return report
	}
	report.DatabaseConnection = true

	for _, table := range d.tables {
		report.TablesStatus[table] = d.tableStatus(ctx, table)
	}

	asOf := d.clock().UTC().Truncate(24 * time.Hour)
	snapshot, err := loadSnapshot(ctx, d.loader, companyId, asOf)
	if err != nil {
		var msg string
		if IsCompanyNotFound(err) {
			msg = fmt.Sprintf("company %s not found", companyId)
		} else {
			msg = "company data could not be read: " + err.Error()
		}
		report.BasicChecks[companyCheck] = CheckStatus{Status: CheckFail, Message: msg}
		for _, id := range DiagnosticRuleIDs {
			report.BasicChecks[id] = CheckStatus{Status: CheckFail, Message: "skipped: " + msg}
		}
		return report
	}
	report.BasicChecks[companyCheck] = CheckStatus{Status: CheckPass, Message: "company found"}

	for _, id := range DiagnosticRuleIDs {
		rule, ok := RuleByID(id)
		if !ok {
			report.BasicChecks[id] = CheckStatus{Status: CheckFail, Message: "check not found in catalog"}
			continue
		}
		if f := check(rule, snapshot); f != nil {
			report.BasicChecks[id] = CheckStatus{Status: CheckFail, Message: f.Issue}
			continue
		}
		report.BasicChecks[id] = CheckStatus{Status: CheckPass, Message: rule.Title}
	}
	return report
}

func (d *Diagnostics) tableStatus(ctx context.Context, table string) TableStatus {
	exists, err := d.inspector.HasTable(ctx, table)
	if err != nil {
		return TableStatus{Error: err.Error()}
	}
	if !exists {
		return TableStatus{Exists: false, Error: "table does not exist"}
	}
	count, err := d.inspector.CountRows(ctx, table)
	if err != nil {
		return TableStatus{Exists: true, Error: err.Error()}
	}
	return TableStatus{Exists: true, Count: &count}
}

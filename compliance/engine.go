package compliance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmdatafocus/schedule3_backend/config"
	"github.com/mmdatafocus/schedule3_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/mmdatafocus/schedule3_backend/compliance"

// Engine evaluates the rule catalog against one company at a time. It holds no
// per-company state and is safe for concurrent use.
type Engine struct {
	loader   Loader
	rules    []Rule
	clock    func() time.Time
	parallel bool
	logger   *logrus.Logger
	tracer   trace.Tracer
}

type Option func(*Engine)

// WithClock fixes the source of the report date.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

func WithRules(rules []Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

func WithParallel(parallel bool) Option {
	return func(e *Engine) { e.parallel = parallel }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func NewEngine(loader Loader, opts ...Option) *Engine {
	e := &Engine{
		loader:   loader,
		rules:    Catalog(),
		clock:    time.Now,
		parallel: config.ParallelRuleEvaluation(),
		logger:   config.GetLogger(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// asOf is the report date of a run: the clock truncated to the UTC day, so
// repeated runs on the same day see the same date.
func (e *Engine) asOf() time.Time {
	return utils.DateOnly(e.clock())
}

// Snapshot loads the run input of a company.
func (e *Engine) Snapshot(ctx context.Context, companyId string) (*Snapshot, error) {
	return loadSnapshot(ctx, e.loader, companyId, e.asOf())
}

// Run produces the compliance report of a company. The only error it returns is
// *DataUnavailableError; compliance problems are reported as issues.
func (e *Engine) Run(ctx context.Context, companyId string) (*Report, error) {
	report, _, err := e.RunWithSnapshot(ctx, companyId)
	return report, err
}

// RunWithSnapshot is Run that also returns the input the report was computed from.
func (e *Engine) RunWithSnapshot(ctx context.Context, companyId string) (*Report, *Snapshot, error) {
	ctx, span := e.tracer.Start(ctx, "compliance.Run", trace.WithAttributes(attribute.String("company.id", companyId)))
	defer span.End()
	started := time.Now()

	snapshot, err := e.Snapshot(ctx, companyId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		config.LogError(e.logger, "compliance", "Run", "load snapshot", companyId, err)
		return nil, nil, err
	}

	report := Evaluate(snapshot, e.rules, e.parallel)

	span.SetAttributes(
		attribute.Int("compliance.score", report.ComplianceScore),
		attribute.Int("compliance.total_checks", report.TotalChecks),
		attribute.String("compliance.status", string(report.OverallStatus)),
	)
	e.logRun(ctx, report, time.Since(started))
	return report, snapshot, nil
}

func (e *Engine) logRun(ctx context.Context, report *Report, elapsed time.Duration) {
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	entry := e.logger.WithFields(logrus.Fields{
		"module":         "compliance",
		"company_id":     report.CompanyId,
		"correlation_id": correlationId,
		"score":          report.ComplianceScore,
		"status":         report.OverallStatus,
		"issues":         len(report.Issues),
		"duration_ms":    elapsed.Milliseconds(),
	})
	if elapsed >= config.ComplianceSlowThreshold() {
		entry.Warn("slow compliance run")
		return
	}
	entry.Info("compliance run")
}

// Evaluate runs rules against a snapshot. Issue order follows rule order whether
// or not the rules run in parallel.
func Evaluate(s *Snapshot, rules []Rule, parallel bool) *Report {
	findings := runRules(s, rules, parallel)

	report := &Report{
		CompanyId:   s.CompanyId,
		AsOf:        s.AsOf,
		TotalChecks: len(rules),
		Issues:      []Issue{},
	}
	for i, f := range findings {
		if f == nil {
			report.PassedChecks++
			continue
		}
		report.Issues = append(report.Issues, rules[i].issue(f))
	}
	report.ComplianceScore = Score(report.PassedChecks, report.TotalChecks)
	report.OverallStatus = StatusFor(report.ComplianceScore, report.HasErrors())
	report.Summary = summarize(report.Issues)
	return report
}

// runRules returns one finding per rule, nil where the rule passed.
func runRules(s *Snapshot, rules []Rule, parallel bool) []*Finding {
	findings := make([]*Finding, len(rules))
	if !parallel {
		for i := range rules {
			findings[i] = check(rules[i], s)
		}
		return findings
	}
	var wg sync.WaitGroup
	for i := range rules {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			findings[i] = check(rules[i], s)
		}(i)
	}
	wg.Wait()
	return findings
}

// check evaluates one rule, turning a panic into an error finding.
func check(r Rule, s *Snapshot) (f *Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			f = fail(SeverityError,
				fmt.Sprintf("Check %q could not be evaluated: %v.", r.ID, rec),
				"Run the diagnostics for this company and review the data feeding this check before relying on the report.")
		}
	}()
	return r.Check(s)
}

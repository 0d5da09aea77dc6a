// Package pipeline turns a list of sales transactions into a structured report payload.
//
// A Pipeline moves through four stages, each depending on the previous one:
//
//	Filtered   -> date range and field filters applied
//	Aggregated -> metrics, grouping and the base report built
//	Enriched   -> detailed or forecast section added
//	Finalized  -> chart series added, payload handed out
//
// Nothing in this package performs I/O.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

// Stage is the position of a Pipeline in its lifecycle.
type Stage int

const (
	StageNew Stage = iota
	StageFiltered
	StageAggregated
	StageEnriched
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageNew:
		return "new"
	case StageFiltered:
		return "filtered"
	case StageAggregated:
		return "aggregated"
	case StageEnriched:
		return "enriched"
	case StageFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for generated_at.
func WithClock(c Clock) Option {
	return func(p *Pipeline) { p.clock = c }
}

// WithIDGenerator sets the report id generator.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(p *Pipeline) { p.newID = gen }
}

// Pipeline holds the state of one report generation. It is not safe for concurrent use;
// build one per request.
type Pipeline struct {
	req   entity.ReportRequest
	clock Clock
	newID func() uuid.UUID

	stage    Stage
	filtered []entity.Transaction
	metrics  entity.Metrics
	grouping *entity.Grouping
	payload  *entity.ReportPayload
}

// New creates a pipeline for an already validated request.
func New(req entity.ReportRequest, opts ...Option) *Pipeline {
	p := &Pipeline{
		req:   req,
		clock: SystemClock{},
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage returns the current stage.
func (p *Pipeline) Stage() Stage { return p.stage }

// Filtered returns the transactions that survived filtering.
func (p *Pipeline) Filtered() []entity.Transaction { return p.filtered }

func (p *Pipeline) expect(s Stage) error {
	if p.stage != s {
		return fmt.Errorf("%w: at %s, want %s", types.ErrStageOrder, p.stage, s)
	}
	return nil
}

// Filter applies the date range and field filters. It reports whether any transaction
// survived.
func (p *Pipeline) Filter() (bool, error) {
	if err := p.expect(StageNew); err != nil {
		return false, err
	}
	filtered, err := Filter(p.req.Transactions, p.req.DateRange, p.req.Filters)
	if err != nil {
		return false, err
	}
	p.filtered = filtered
	p.stage = StageFiltered
	return len(filtered) > 0, nil
}

// Aggregate computes metrics and grouping and assembles the base report.
func (p *Pipeline) Aggregate() error {
	if err := p.expect(StageFiltered); err != nil {
		return err
	}
	metrics, err := ComputeMetrics(p.filtered)
	if err != nil {
		return err
	}
	p.metrics = metrics
	p.grouping = GroupBy(p.filtered, p.req.GroupBy, metrics.Total)

	p.payload = BuildBaseReport(
		p.newID(),
		p.req.ReportType,
		p.clock.Now(),
		p.req.DateRange,
		p.req.Filters,
		metrics,
	)
	p.payload.Grouping = p.grouping
	p.stage = StageAggregated
	return nil
}

// Enrich adds the section specific to the report type.
func (p *Pipeline) Enrich() error {
	if err := p.expect(StageAggregated); err != nil {
		return err
	}
	switch p.req.ReportType {
	case entity.ReportDetailed:
		p.payload.Transactions = EnrichTransactions(p.filtered)
	case entity.ReportForecast:
		p.payload.Forecast = ComputeForecast(p.filtered)
	}
	p.stage = StageEnriched
	return nil
}

// Finalize adds chart series when requested and returns the finished payload.
func (p *Pipeline) Finalize() (*entity.ReportPayload, error) {
	if err := p.expect(StageEnriched); err != nil {
		return nil, err
	}
	if p.req.IncludeCharts {
		p.payload.Charts = BuildCharts(p.filtered, p.grouping)
	}
	p.stage = StageFinalized
	return p.payload, nil
}

// Result is the outcome of Run. Payload is nil when Empty is true.
type Result struct {
	Payload *entity.ReportPayload
	Empty   bool
}

// Run validates the request and drives a pipeline through every stage.
func Run(req entity.ReportRequest, opts ...Option) (Result, error) {
	if err := Validate(req); err != nil {
		return Result{}, err
	}

	p := New(req, opts...)
	ok, err := p.Filter()
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Empty: true}, nil
	}
	if err := p.Aggregate(); err != nil {
		return Result{}, err
	}
	if err := p.Enrich(); err != nil {
		return Result{}, err
	}
	payload, err := p.Finalize()
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: payload}, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/dto"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/model"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/service"
)

const instrumentationName = "github.com/MarwanRagab123/Bank-risk-analysis/internal/application/usecase"

// AssessmentResult is the annotated table of a run plus what was recorded about it.
type AssessmentResult struct {
	Table    dataframe.DataFrame
	Accounts []model.AccountRiskSummary
	Run      dto.RunSummary
}

// RunAssessment is the use case for scoring a loaded ledger end to end.
type RunAssessment struct {
	pipeline  *service.Pipeline
	repo      port.RunRepository
	publisher port.EventPublisher
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   runMetrics
}

type runMetrics struct {
	scored   metric.Int64Counter
	flagged  metric.Int64Counter
	bands    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRunAssessment creates a new RunAssessment use case. repo and publisher
// may be nil, in which case persistence or event publishing is skipped.
func NewRunAssessment(
	pipeline *service.Pipeline,
	repo port.RunRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RunAssessment {
	return &RunAssessment{
		pipeline:  pipeline,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer(instrumentationName),
		metrics:   newRunMetrics(otel.Meter(instrumentationName)),
	}
}

func newRunMetrics(meter metric.Meter) runMetrics {
	var (
		m   runMetrics
		err error
	)
	m.scored, err = meter.Int64Counter("risk_rows_scored_total",
		metric.WithDescription("Transactions passed through the risk pipeline."))
	otel.Handle(err)
	m.flagged, err = meter.Int64Counter("risk_rows_flagged_total",
		metric.WithDescription("Transactions flagged as suspicious."))
	otel.Handle(err)
	m.bands, err = meter.Int64Counter("risk_band_rows_total",
		metric.WithDescription("Scored transactions per risk band."))
	otel.Handle(err)
	m.duration, err = meter.Float64Histogram("risk_pipeline_duration_seconds",
		metric.WithDescription("Wall time of a full scoring run."),
		metric.WithUnit("s"))
	otel.Handle(err)
	return m
}

// Execute runs the pipeline over df, records the run, persists the account
// summaries and publishes the run's events.
func (uc *RunAssessment) Execute(ctx context.Context, df dataframe.DataFrame) (AssessmentResult, error) {
	ctx, span := uc.tracer.Start(ctx, "RunAssessment.Execute",
		trace.WithAttributes(attribute.Int("risk.input_rows", df.Nrow())))
	defer span.End()

	res, err := uc.execute(ctx, df)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return AssessmentResult{}, err
	}
	span.SetAttributes(
		attribute.String("risk.run_id", res.Run.RunID.String()),
		attribute.Int("risk.flagged_rows", res.Run.FlaggedTransactions),
	)
	return res, nil
}

func (uc *RunAssessment) execute(ctx context.Context, df dataframe.DataFrame) (AssessmentResult, error) {
	// 1. Open the run aggregate.
	run, err := model.NewScoringRun(uc.pipeline.Threshold())
	if err != nil {
		return AssessmentResult{}, fmt.Errorf("failed to start scoring run: %w", err)
	}

	// 2. Build features, score and flag.
	start := time.Now()
	scored, err := uc.pipeline.Run(df)
	if err != nil {
		return AssessmentResult{}, fmt.Errorf("failed to score transactions: %w", err)
	}

	// 3. Condense the flagged table into the run and the account summaries.
	outcome, err := service.Outcome(scored)
	if err != nil {
		return AssessmentResult{}, fmt.Errorf("failed to summarize run: %w", err)
	}
	accounts, err := service.SummarizeAccounts(scored)
	if err != nil {
		return AssessmentResult{}, fmt.Errorf("failed to summarize accounts: %w", err)
	}
	if err := run.Complete(outcome); err != nil {
		return AssessmentResult{}, fmt.Errorf("failed to complete scoring run: %w", err)
	}
	uc.record(ctx, run, time.Since(start))

	// 4. Persist the run.
	if uc.repo != nil {
		if err := uc.repo.SaveRun(ctx, run, accounts); err != nil {
			return AssessmentResult{}, fmt.Errorf("failed to save scoring run: %w", err)
		}
	}

	// 5. Publish domain events.
	uc.logger.DebugContext(ctx, "draining domain events",
		slog.String("run_id", run.ID().String()),
		slog.Int("pending_events", run.PendingEvents()),
	)
	events := run.DrainEvents()
	if uc.publisher != nil && len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return AssessmentResult{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.logger.InfoContext(ctx, "scoring run completed",
		slog.String("run_id", run.ID().String()),
		slog.String("threshold", run.Threshold().String()),
		slog.Int("transactions", run.TotalTransactions()),
		slog.Int("flagged", run.FlaggedTransactions()),
		slog.Int("accounts", len(accounts)),
		slog.Duration("duration", run.Duration()),
	)

	return AssessmentResult{
		Table:    scored,
		Accounts: accounts,
		Run:      dto.FromRun(run),
	}, nil
}

func (uc *RunAssessment) record(ctx context.Context, run *model.ScoringRun, elapsed time.Duration) {
	threshold := metric.WithAttributes(attribute.String("threshold", run.Threshold().String()))
	uc.metrics.scored.Add(ctx, int64(run.TotalTransactions()), threshold)
	uc.metrics.flagged.Add(ctx, int64(run.FlaggedTransactions()), threshold)
	for band, n := range run.BandCounts() {
		uc.metrics.bands.Add(ctx, int64(n), metric.WithAttributes(attribute.String("band", band)))
	}
	uc.metrics.duration.Record(ctx, elapsed.Seconds())
}

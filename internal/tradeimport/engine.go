package tradeimport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	apperrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
	"github.com/WayPool/ElysiumBOT-sub001/internal/infrastructure"
	"github.com/WayPool/ElysiumBOT-sub001/internal/validation"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// Sources label how the input reached the engine
const (
	SourceFile   = "file"
	SourceUpload = "upload"
)

// Result is the complete outcome of one validation run
type Result struct {
	RunID   uuid.UUID                `json:"run_id"`
	Source  string                   `json:"source"`
	Name    string                   `json:"name"`
	Report  domain.ValidationReport  `json:"report"`
	Records []domain.TradeRecord     `json:"records"`
	Format  *domain.FormatDescriptor `json:"format,omitempty"`
}

// Engine validates trade-history files. It is immutable after New.
type Engine struct {
	cfg       config.ImportConfig
	admission *validation.FileValidator
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.ImportMetrics
}

// Option configures an Engine
type Option func(*Engine)

// WithTracer sets the tracer stage spans are started on
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithMetrics records every run on m
func WithMetrics(m *infrastructure.ImportMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine over a private copy of cfg
func New(cfg config.ImportConfig, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = copyConfig(cfg)
	if cfg.SampleLines <= 0 {
		cfg.SampleLines = config.DefaultSampleLines
	}

	e := &Engine{
		cfg:       cfg,
		admission: validation.NewFileValidator(validation.RulesFromConfig(cfg), logger),
		logger:    infrastructure.WithComponent(logger, "tradeimport"),
		tracer:    otel.Tracer(infrastructure.InstrumentationName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() config.ImportConfig {
	return copyConfig(e.cfg)
}

// run carries the per-call state
type run struct {
	id     uuid.UUID
	source string
	name   string
	start  time.Time
	bytes  int64
	report *reportBuilder
}

// outcome is what the stages produced before the report is sealed
type outcome struct {
	fatal   error
	format  *domain.FormatDescriptor
	records []domain.TradeRecord
	stats   domain.Statistics
}

// ValidateFile admits the file at path and runs it through every stage
func (e *Engine) ValidateFile(ctx context.Context, path string) *Result {
	ctx = infrastructure.EnsureTraceID(ctx)
	rn := e.newRun(SourceFile, filepath.Base(path))
	ctx, span := e.startSpan(ctx, spanValidate, rn.attributes()...)
	defer span.End()

	done := e.metrics.TrackInFlight(ctx)
	defer done()

	e.logger.InfoContext(ctx, "validation started",
		slog.String("run_id", rn.id.String()),
		slog.String("path", path))

	_, admitSpan := e.startSpan(ctx, spanAdmission)
	info, err := e.admission.ValidateFile(path)
	if err == nil {
		rn.bytes = info.Size()
	}
	endSpan(admitSpan, err)
	if err != nil {
		return e.finish(ctx, rn, outcome{fatal: err})
	}

	f, err := os.Open(path)
	if err != nil {
		err = apperrors.NewAdmissionError(fmt.Sprintf("file %s is not readable", path), err)
		return e.finish(ctx, rn, outcome{fatal: err})
	}
	defer f.Close()

	return e.finish(ctx, rn, e.process(ctx, rn, f))
}

// ValidateReader admits an upload by its name and declared size, then runs
// r through every stage. The caller owns r.
func (e *Engine) ValidateReader(ctx context.Context, name string, size int64, r io.Reader) *Result {
	ctx = infrastructure.EnsureTraceID(ctx)
	rn := e.newRun(SourceUpload, filepath.Base(name))
	ctx, span := e.startSpan(ctx, spanValidate, rn.attributes()...)
	defer span.End()

	done := e.metrics.TrackInFlight(ctx)
	defer done()

	e.logger.InfoContext(ctx, "validation started",
		slog.String("run_id", rn.id.String()),
		slog.String("name", name),
		slog.Int64("size", size))

	_, admitSpan := e.startSpan(ctx, spanAdmission)
	err := e.admission.ValidateUpload(name, size)
	endSpan(admitSpan, err)
	if err != nil {
		return e.finish(ctx, rn, outcome{fatal: err})
	}
	rn.bytes = size

	return e.finish(ctx, rn, e.process(ctx, rn, r))
}

// process runs sniffing, parsing, integrity and statistics over r
func (e *Engine) process(ctx context.Context, rn *run, r io.Reader) outcome {
	br := bufio.NewReader(&contextReader{ctx: ctx, r: r})

	_, span := e.startSpan(ctx, spanSniff)
	sample, err := readSample(br, e.cfg.SampleLines)
	if err != nil {
		err = apperrors.NewReadError(fmt.Sprintf("failed to read file sample: %v", err), err)
		endSpan(span, err)
		return outcome{fatal: err}
	}
	format, err := Sniff(sample)
	if err == nil {
		span.SetAttributes(
			attribute.String("tradeimport.encoding", format.Encoding),
			attribute.String("tradeimport.delimiter", format.Delimiter.Name()),
			attribute.Bool("tradeimport.has_header", format.HasHeader),
		)
	}
	endSpan(span, err)
	if err != nil {
		return outcome{fatal: err}
	}

	rn.report.infof("Detected encoding: %s", format.Encoding)
	rn.report.infof("Detected delimiter: %s", format.Delimiter.Name())
	if format.HasBOM {
		rn.report.infof("UTF-8 byte order mark detected")
	}
	if format.HasHeader {
		rn.report.infof("Header row detected")
	}

	body := sample
	if format.HasBOM {
		body = sample[len(utf8BOM):]
	}

	parseCtx, span := e.startSpan(ctx, spanParse)
	records, err := newParser(e.cfg, format, rn.report).parse(parseCtx, io.MultiReader(bytes.NewReader(body), br))
	span.SetAttributes(attribute.Int("tradeimport.records", len(records)))
	endSpan(span, err)
	if err != nil {
		return outcome{fatal: err, format: &format}
	}

	_, span = e.startSpan(ctx, spanIntegrity)
	balance := checkIntegrity(records, rn.report)
	endSpan(span, nil)

	_, span = e.startSpan(ctx, spanStatistics)
	stats := aggregate(records, balance)
	endSpan(span, nil)

	return outcome{format: &format, records: records, stats: stats}
}

// finish seals the report, logs the run and records metrics
func (e *Engine) finish(ctx context.Context, rn *run, out outcome) *Result {
	if out.fatal != nil {
		rn.report.errorf("%s", errorMessage(out.fatal))
		out.records = nil
		out.stats = aggregate(nil, decimal.Zero)
		infrastructure.RecordError(ctx, out.fatal)

		infrastructure.WithError(e.logger, out.fatal).WarnContext(ctx, "validation aborted",
			slog.String("run_id", rn.id.String()))
	}
	if out.records == nil {
		out.records = []domain.TradeRecord{}
	}

	report := rn.report.build(out.stats)
	duration := time.Since(rn.start)

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"tradeimport.valid":    report.Valid,
		"tradeimport.errors":   len(report.Errors),
		"tradeimport.warnings": len(report.Warnings),
	})

	e.logger.InfoContext(ctx, "validation completed",
		slog.String("run_id", rn.id.String()),
		slog.String("name", rn.name),
		slog.Bool("valid", report.Valid),
		slog.Int("records", len(out.records)),
		slog.Int("errors", len(report.Errors)),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("duration", duration))

	e.metrics.RecordValidation(ctx, infrastructure.ValidationOutcome{
		Source:   rn.source,
		Valid:    report.Valid,
		Accepted: len(out.records),
		Errors:   len(report.Errors),
		Warnings: len(report.Warnings),
		Bytes:    rn.bytes,
		Duration: duration,
	})

	return &Result{
		RunID:   rn.id,
		Source:  rn.source,
		Name:    rn.name,
		Report:  report,
		Records: out.records,
		Format:  out.format,
	}
}

func (e *Engine) newRun(source, name string) *run {
	return &run{
		id:     uuid.New(),
		source: source,
		name:   name,
		start:  time.Now(),
		report: newReportBuilder(),
	}
}

func (rn *run) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("tradeimport.run_id", rn.id.String()),
		attribute.String("tradeimport.source", rn.source),
		attribute.String("tradeimport.name", rn.name),
	}
}

// errorMessage is the report text for a stage failure
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func copyConfig(cfg config.ImportConfig) config.ImportConfig {
	out := cfg
	out.AllowedExtensions = append([]string(nil), cfg.AllowedExtensions...)
	out.RequiredColumns = config.NormalizeColumns(cfg.RequiredColumns)
	out.OptionalColumns = config.NormalizeColumns(cfg.OptionalColumns)
	out.DateFormats = append([]string(nil), cfg.DateFormats...)
	return out
}

package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/place-suggest-export/internal/domain"
	"github.com/couchcryptid/place-suggest-export/internal/observability"
)

// RecordWriter persists a fetched result set.
type RecordWriter interface {
	Write(records []domain.RawSuggestion) error
	Path() string
}

// Outcome is the terminal state of one export run.
type Outcome int

const (
	OutcomeWritten Outcome = iota
	OutcomeEmpty
	OutcomeFetchFailed
	OutcomeWriteFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFetchFailed:
		return "fetch_failed"
	case OutcomeWriteFailed:
		return "write_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ExitCode maps the outcome to the process exit status. Only a failed fetch is
// non-zero: a failed write is reported on stdout and still exits 0.
func (o Outcome) ExitCode() int {
	if o == OutcomeFetchFailed {
		return 2
	}
	return 0
}

// Exporter runs fetch then write for a single search term and reports each
// step on out.
type Exporter struct {
	suggester domain.Suggester
	writer    RecordWriter
	out       io.Writer
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates an Exporter. Status lines meant for the user go to out.
func New(s domain.Suggester, w RecordWriter, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *Exporter {
	return &Exporter{
		suggester: s,
		writer:    w,
		out:       out,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes the export. Nothing after a failing step runs, and the output
// file is not touched unless the fetch returned at least one record.
func (e *Exporter) Run(ctx context.Context, term string) Outcome {
	outcome := e.run(ctx, term)
	e.metrics.RunOutcome.WithLabelValues(outcome.String()).Inc()
	e.logger.Debug("export finished", "term", term, "outcome", outcome.String())
	return outcome
}

func (e *Exporter) run(ctx context.Context, term string) Outcome {
	records, err := e.suggester.Suggest(ctx, term)
	if err != nil {
		e.printf("Error occurred while reading JSON data using the input: %s (%v)\n", term, err)
		return OutcomeFetchFailed
	}

	if len(records) == 0 {
		e.printf("No JSON data was returned using the input: %s\n", term)
		return OutcomeEmpty
	}
	e.printf("JSON data successfully captured using the input: %s\n", term)

	if err := e.writer.Write(records); err != nil {
		e.printf("Error occurred writing to file\n")
		return OutcomeWriteFailed
	}

	e.printf("CSV file successfully written to.\n")
	e.printf("CSV generated at location: %s\n", e.writer.Path())
	return OutcomeWritten
}

func (e *Exporter) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...) //nolint:errcheck // best-effort status line
}

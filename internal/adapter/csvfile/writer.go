package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/couchcryptid/place-suggest-export/internal/domain"
	"github.com/couchcryptid/place-suggest-export/internal/observability"
)

// FileName is the name of the export file inside the output directory.
const FileName = "JSON.csv"

// ErrWrite marks every failure to produce the export file.
var ErrWrite = errors.New("write csv")

// unmappable replaces every rune Windows-1252 cannot represent with '?'.
var unmappable = runes.Map(func(r rune) rune {
	if _, ok := charmap.Windows1252.EncodeRune(r); ok {
		return r
	}
	return '?'
})

// Writer exports suggestions to a Windows-1252 encoded CSV file.
type Writer struct {
	path    string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a writer targeting dir/JSON.csv.
func NewWriter(dir string, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	return &Writer{
		path:    filepath.Join(dir, FileName),
		metrics: metrics,
		logger:  logger,
	}
}

// Path returns the file the writer creates.
func (w *Writer) Path() string {
	return w.path
}

// Write creates or truncates the file and writes the header followed by one
// row per record, in order. Runes outside Windows-1252 are written as '?'.
// On error the file may be left partially written.
func (w *Writer) Write(records []domain.RawSuggestion) (err error) {
	f, err := os.Create(w.path)
	if err != nil {
		return w.fail(fmt.Errorf("create %s: %w", w.path, err))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = w.fail(fmt.Errorf("close %s: %w", w.path, cerr))
		}
	}()

	enc := transform.NewWriter(f, transform.Chain(unmappable, charmap.Windows1252.NewEncoder()))
	cw := csv.NewWriter(enc)

	if err := cw.Write(domain.Columns); err != nil {
		return w.fail(fmt.Errorf("write header: %w", err))
	}

	for i, raw := range records {
		s, err := domain.ParseSuggestion(raw)
		if err != nil {
			return w.fail(fmt.Errorf("record %d: %w", i, err))
		}
		if err := cw.Write(s.Fields()); err != nil {
			return w.fail(fmt.Errorf("write record %d: %w", i, err))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return w.fail(fmt.Errorf("flush: %w", err))
	}
	if err := enc.Close(); err != nil {
		return w.fail(fmt.Errorf("encode: %w", err))
	}

	w.metrics.RowsWritten.Add(float64(len(records)))
	w.logger.Info("csv written", "path", w.path, "rows", len(records))
	return nil
}

func (w *Writer) fail(err error) error {
	w.metrics.WriteErrors.Inc()
	w.logger.Error("csv write failed", "path", w.path, "error", err)
	return fmt.Errorf("%w: %w", ErrWrite, err)
}

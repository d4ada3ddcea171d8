// Package history records the outcome of wrapped runs in a settings location,
// one entry per test name.
package history

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aretw0/testwrap/internal/logging"
	"github.com/aretw0/testwrap/pkg/domain"
	"github.com/aretw0/testwrap/pkg/ports"
	"github.com/aretw0/testwrap/pkg/settings"
)

// lockTTL bounds how long a crashed recorder can block the others.
const lockTTL = 10 * time.Second

// Record is the stored summary of one run.
type Record struct {
	Name     string
	Passed   bool
	Stage    domain.Stage
	ExitCode int
	Detail   string
	WorkDir  string
	Started  time.Time
	Duration time.Duration
}

func init() {
	gob.Register(Record{})
}

// FromReport summarizes a report.
func FromReport(r *domain.Report) Record {
	rec := Record{
		Name:     r.Name,
		Passed:   r.Passed,
		ExitCode: r.MainExitCode(),
		WorkDir:  r.WorkDir,
		Started:  r.Started,
		Duration: r.Duration,
	}
	if failed, ok := r.Failed(); ok {
		rec.Stage = failed.Stage
		rec.Detail = failed.Detail
	}
	return rec
}

// Recorder stores run records in a settings backend.
type Recorder struct {
	backend ports.Backend
	logger  *slog.Logger
}

// NewRecorder creates a Recorder writing to backend.
func NewRecorder(backend ports.Backend, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Recorder{backend: backend, logger: logger}
}

// Record stores the report under its name. Failures are logged and returned as a
// Result; recording never changes the outcome of a run.
func (r *Recorder) Record(ctx context.Context, report *domain.Report) settings.Result {
	if report.Name == "" {
		return settings.Result{Err: errors.New("cannot record a run without a name")}
	}

	if locker, ok := r.backend.(ports.Locker); ok {
		unlock, err := locker.Lock(ctx, "history", lockTTL)
		if err != nil {
			r.logger.Warn("Failed to lock history", "error", err)
			return settings.Result{Err: err}
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				r.logger.Warn("Failed to unlock history", "error", err)
			}
		}()
	}

	s := settings.Settings{}
	if err := settings.LoadFrom(ctx, r.backend, s); err != nil && !errors.Is(err, settings.ErrNotFound) {
		// A corrupt store is replaced rather than blocking every later run.
		r.logger.Warn("Discarding unreadable history", "error", err)
	}

	res := settings.SetAndSaveTo(ctx, r.backend, s, map[string]any{report.Name: FromReport(report)})
	if !res.OK {
		r.logger.Warn("Failed to record run", "name", report.Name, "error", res.Err)
	}
	return res
}

// List returns every record in the backend sorted by name. Entries that are not
// records are skipped.
func List(ctx context.Context, backend ports.Backend) ([]Record, error) {
	s := settings.Settings{}
	if err := settings.LoadFrom(ctx, backend, s); err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	records := make([]Record, 0, len(s))
	for _, v := range s {
		if rec, ok := v.(Record); ok {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

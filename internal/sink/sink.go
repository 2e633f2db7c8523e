package sink

import (
	"context"
	"errors"

	"github.com/nao1215/pagecrawl/internal/model"
)

// Recorder receives fetch results. Implementations must be safe for
// concurrent use because every crawl worker records its own results.
type Recorder interface {
	Record(ctx context.Context, result *model.FetchResult) error
}

// Multi sends each result to several recorders.
// Every recorder is called even if an earlier one fails; the errors are
// joined.
type Multi struct {
	recorders []Recorder
}

// NewMulti creates a Multi. Nil recorders are skipped.
func NewMulti(recorders ...Recorder) *Multi {
	m := &Multi{recorders: make([]Recorder, 0, len(recorders))}
	for _, r := range recorders {
		if r != nil {
			m.recorders = append(m.recorders, r)
		}
	}
	return m
}

// Len returns the number of recorders.
func (m *Multi) Len() int {
	return len(m.recorders)
}

// Record implements Recorder.
func (m *Multi) Record(ctx context.Context, result *model.FetchResult) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.Record(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Func adapts a function to the Recorder interface.
type Func func(ctx context.Context, result *model.FetchResult) error

// Record implements Recorder.
func (f Func) Record(ctx context.Context, result *model.FetchResult) error {
	return f(ctx, result)
}

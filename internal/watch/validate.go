package watch

import (
	"context"
	"os"

	"github.com/goliatone/go-reportschema/pkg/codec"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// Report is the validation outcome for one Event. Err holds read, decode and
// structural failures; Validation is only meaningful when Err is nil.
// Delete events carry neither.
type Report struct {
	Event
	Validation validation.Result
	Err        error
}

// Validate imports the changed file and validates it with v.
func Validate(ctx context.Context, event Event, v validation.Validator) Report {
	report := Report{Event: event}
	if event.Op == OpDelete {
		return report
	}

	data, err := os.ReadFile(event.AbsPath)
	if err != nil {
		report.Err = err
		return report
	}
	imported, err := codec.Import(data,
		codec.WithSource(event.Path),
		codec.WithValidator(v),
		codec.WithContext(ctx),
	)
	if err != nil {
		report.Err = err
		return report
	}
	report.Validation = imported.Validation
	return report
}

// Run validates every event until the watcher's channel closes or ctx is
// done, handing each report to fn.
func Run(ctx context.Context, w *Watcher, v validation.Validator, fn func(Report)) error {
	if v == nil {
		v = validation.LocalValidator{}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			fn(Validate(ctx, event, v))
		}
	}
}

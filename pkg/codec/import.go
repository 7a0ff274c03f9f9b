package codec

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/ordering"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// ImportResult carries an imported template together with its validation
// findings. Findings never surface as Go errors.
type ImportResult struct {
	Template   model.Template    `json:"template"`
	Validation validation.Result `json:"validation"`
}

// ImportOption customises Import.
type ImportOption func(*importConfig)

type importConfig struct {
	source     string
	validator  validation.Validator
	sanitize   bool
	ctx        context.Context
	decorators []model.Decorator
}

// WithSource names the document in error messages.
func WithSource(source string) ImportOption {
	return func(cfg *importConfig) {
		cfg.source = source
	}
}

// WithValidator replaces the local validation engine.
func WithValidator(v validation.Validator) ImportOption {
	return func(cfg *importConfig) {
		if v != nil {
			cfg.validator = v
		}
	}
}

// WithContext sets the context passed to the validator.
func WithContext(ctx context.Context) ImportOption {
	return func(cfg *importConfig) {
		if ctx != nil {
			cfg.ctx = ctx
		}
	}
}

// WithDecorators registers decorators that run after sanitising and before
// orders are normalised.
func WithDecorators(decorators ...model.Decorator) ImportOption {
	return func(cfg *importConfig) {
		for _, d := range decorators {
			if d != nil {
				cfg.decorators = append(cfg.decorators, d)
			}
		}
	}
}

// WithoutSanitize keeps markup in text properties as-is.
func WithoutSanitize() ImportOption {
	return func(cfg *importConfig) {
		cfg.sanitize = false
	}
}

// Import decodes data, normalises it and validates the result. Decode and
// structural problems are returned as errors; everything else is reported in
// ImportResult.Validation.
func Import(data []byte, options ...ImportOption) (ImportResult, error) {
	cfg := importConfig{
		validator: validation.LocalValidator{Engine: validation.New()},
		sanitize:  true,
		ctx:       context.Background(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	tpl, err := decode(data, cfg.source)
	if err != nil {
		return ImportResult{}, err
	}
	return importTemplate(cfg, tpl)
}

func importTemplate(cfg importConfig, tpl model.Template) (ImportResult, error) {
	if cfg.sanitize {
		tpl = Sanitize(tpl)
	}
	for _, decorator := range cfg.decorators {
		if err := decorator.Decorate(&tpl); err != nil {
			return ImportResult{}, fmt.Errorf("codec: decorate: %w", err)
		}
	}
	tpl = Normalize(tpl)

	if err := model.Check(tpl); err != nil {
		if cfg.source != "" {
			return ImportResult{}, fmt.Errorf("codec: %s: %w", cfg.source, err)
		}
		return ImportResult{}, err
	}

	result, err := cfg.validator.Validate(cfg.ctx, tpl)
	if err != nil {
		return ImportResult{}, fmt.Errorf("codec: validate: %w", err)
	}
	return ImportResult{Template: tpl, Validation: result.Normalize()}, nil
}

// Normalize stable-sorts sections and fields by their declared order and then
// renumbers them so orders are contiguous from zero.
func Normalize(t model.Template) model.Template {
	out := t.Clone()
	slices.SortStableFunc(out.Sections, byPosition[model.Section])
	for sIdx := range out.Sections {
		fields := out.Sections[sIdx].Fields
		slices.SortStableFunc(fields, byPosition[model.Field])
		out.Sections[sIdx].Fields = ordering.Renumber(fields)
	}
	out.Sections = ordering.Renumber(out.Sections)
	return out
}

func byPosition[T ordering.Indexed[T]](a, b T) int {
	return cmp.Compare(a.Position(), b.Position())
}

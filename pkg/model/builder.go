package model

import "github.com/goliatone/go-reportschema/internal/model"

// Factory seeds new sections and fields with type-appropriate defaults.
type Factory interface {
	Section(index int) Section
	Field(fieldType FieldType, name string, order int) Field
	PlaceholderOptions() []string
}

// FactoryOption configures the factory behaviour.
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	labeler      func(string) string
	placeholders []string
	sectionTitle func(int) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) FactoryOption {
	return func(opts *factoryOptions) {
		opts.labeler = labeler
	}
}

// WithPlaceholderOptions overrides the options seeded into new select and
// multiselect fields.
func WithPlaceholderOptions(options ...string) FactoryOption {
	return func(opts *factoryOptions) {
		opts.placeholders = append([]string(nil), options...)
	}
}

// WithSectionTitle overrides the default "Section {n}" title generator.
func WithSectionTitle(title func(index int) string) FactoryOption {
	return func(opts *factoryOptions) {
		opts.sectionTitle = title
	}
}

// NewFactory returns a Factory backed by the internal implementation.
func NewFactory(options ...FactoryOption) Factory {
	cfg := factoryOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return model.NewFactory(model.Options{
		Labeler:            cfg.labeler,
		PlaceholderOptions: cfg.placeholders,
		SectionTitle:       cfg.sectionTitle,
	})
}

// FieldName returns the first unused "{type}_field_{k}" name in t.
func FieldName(t Template, fieldType FieldType) string {
	return model.FieldName(t, fieldType)
}

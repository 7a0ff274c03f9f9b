package model

// Options configures the Factory used to seed new sections and fields.
// Options are constructed by the public adapter in pkg/model and passed into
// NewFactory.
type Options struct {
	Labeler            func(string) string
	PlaceholderOptions []string
	SectionTitle       func(index int) string
}

func defaultOptions() Options {
	return Options{
		Labeler:            DefaultLabeler,
		PlaceholderOptions: []string{"Option 1", "Option 2"},
		SectionTitle:       defaultSectionTitle,
	}
}

// Package preview renders a template filled with report values, typically
// produced by pkg/sample, so authors can test-run a template before
// activating it.
package preview

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reportschema/pkg/model"
)

//go:embed templates/*
var defaultTemplates embed.FS

const (
	// TemplateHTML is the embedded HTML layout.
	TemplateHTML = "preview.html"
	// TemplateText is the embedded plain-text layout used by the CLI.
	TemplateText = "preview.txt"

	displayFilter = "display"
	missingValue  = "-"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
}

// WithFS loads layouts from files instead of the embedded defaults.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects the layout to render.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// Renderer executes a pongo2 layout against a template and its values.
type Renderer struct {
	set  *pongo2.TemplateSet
	name string

	mu       sync.RWMutex
	compiled *pongo2.Template
}

// TemplatesFS exposes the embedded layouts so callers can copy or extend
// them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		return defaultTemplates
	}
	return sub
}

// New builds a Renderer. The layout is compiled lazily on first use.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{templates: TemplatesFS(), name: TemplateHTML}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if err := registerFilters(); err != nil {
		return nil, err
	}
	return &Renderer{
		set:  pongo2.NewSet("reportschema-preview", pongo2.NewFSLoader(cfg.templates)),
		name: cfg.name,
	}, nil
}

// Row is one field line in the rendered preview.
type Row struct {
	Key      string
	Label    string
	Type     string
	Required bool
	Value    any
}

// SectionView groups rows under their section heading.
type SectionView struct {
	Title       string
	Description string
	Required    bool
	Rows        []Row
}

// Sections projects t and values into the view consumed by the layouts.
// Fields without a value render as "-".
func Sections(t model.Template, values map[string]any) []SectionView {
	views := make([]SectionView, len(t.Sections))
	keys := model.ValueKeys(t)
	for sIdx, section := range t.Sections {
		title := section.Title
		if strings.TrimSpace(title) == "" {
			title = fmt.Sprintf("Section %d", sIdx+1)
		}
		view := SectionView{
			Title:       title,
			Description: section.Description,
			Required:    section.IsRequired,
			Rows:        make([]Row, 0, len(section.Fields)),
		}
		for fIdx, field := range section.Fields {
			key := keys[model.FieldRef{Section: sIdx, Field: fIdx}]
			label := field.Label
			if strings.TrimSpace(label) == "" {
				label = model.DefaultLabeler(field.Name)
			}
			view.Rows = append(view.Rows, Row{
				Key:      key,
				Label:    label,
				Type:     string(field.Type),
				Required: field.Required,
				Value:    values[key],
			})
		}
		views[sIdx] = view
	}
	return views
}

// Render returns the layout output for t filled with values.
func (r *Renderer) Render(t model.Template, values map[string]any) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("preview: renderer is nil")
	}
	tpl, err := r.layout()
	if err != nil {
		return "", err
	}

	out, err := tpl.Execute(pongo2.Context{
		"template": map[string]any{
			"Name":        t.Name,
			"Description": t.Description,
			"ReportType":  string(t.ReportType),
		},
		"sections": Sections(t, values),
	})
	if err != nil {
		return "", fmt.Errorf("preview: execute %q: %w", r.name, err)
	}
	return out, nil
}

func (r *Renderer) layout() (*pongo2.Template, error) {
	r.mu.RLock()
	tpl := r.compiled
	r.mu.RUnlock()
	if tpl != nil {
		return tpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.compiled != nil {
		return r.compiled, nil
	}
	tpl, err := r.set.FromFile(r.name)
	if err != nil {
		return nil, fmt.Errorf("preview: load template %q: %w", r.name, err)
	}
	r.compiled = tpl
	return tpl, nil
}

var registerOnce sync.Once

func registerFilters() error {
	var err error
	registerOnce.Do(func() {
		if pongo2.FilterExists(displayFilter) {
			return
		}
		err = pongo2.RegisterFilter(displayFilter, func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(Display(in.Interface())), nil
		})
	})
	if err != nil {
		return fmt.Errorf("preview: register filter: %w", err)
	}
	return nil
}

// Display formats a report value for humans: lists are comma-joined, booleans
// become Yes/No and missing values render as "-".
func Display(value any) string {
	switch v := value.(type) {
	case nil:
		return missingValue
	case string:
		if v == "" {
			return missingValue
		}
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		if len(v) == 0 {
			return missingValue
		}
		return strings.Join(v, ", ")
	case []any:
		if len(v) == 0 {
			return missingValue
		}
		parts := make([]string, len(v))
		for idx, item := range v {
			parts[idx] = Display(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

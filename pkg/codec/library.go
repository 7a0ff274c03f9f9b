package codec

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// Library holds templates loaded from a filesystem keyed by slash-separated
// path.
type Library struct {
	templates map[string]model.Template
}

// LoadFS walks fsys and decodes every JSON or YAML file it finds. A nil fsys
// yields an empty library. Templates are renumbered and structurally checked;
// content validation is left to ValidateAll.
func LoadFS(fsys fs.FS) (*Library, error) {
	lib := &Library{templates: make(map[string]model.Template)}
	if fsys == nil {
		return lib, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !IsTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("codec: read %s: %w", path, err)
		}
		tpl, err := decode(data, path)
		if err != nil {
			return err
		}
		tpl = Normalize(tpl)
		if err := model.Check(tpl); err != nil {
			return fmt.Errorf("codec: %s: %w", path, err)
		}
		lib.templates[path] = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// IsTemplateFile reports whether path has a JSON or YAML extension.
func IsTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Get returns a copy of the template stored under path.
func (l *Library) Get(path string) (model.Template, bool) {
	if l == nil {
		return model.Template{}, false
	}
	tpl, ok := l.templates[path]
	if !ok {
		return model.Template{}, false
	}
	return tpl.Clone(), true
}

// Paths lists the stored paths in lexical order.
func (l *Library) Paths() []string {
	if l == nil {
		return nil
	}
	paths := make([]string, 0, len(l.templates))
	for path := range l.templates {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len reports how many templates the library holds.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.templates)
}

// ValidateAll runs v against every template and returns the results keyed by
// path. The first validator error aborts the run.
func (l *Library) ValidateAll(ctx context.Context, v validation.Validator) (map[string]validation.Result, error) {
	if v == nil {
		v = validation.LocalValidator{Engine: validation.New()}
	}
	results := make(map[string]validation.Result, l.Len())
	for _, path := range l.Paths() {
		result, err := v.Validate(ctx, l.templates[path])
		if err != nil {
			return nil, fmt.Errorf("codec: validate %s: %w", path, err)
		}
		results[path] = result.Normalize()
	}
	return results, nil
}

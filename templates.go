package reportschema

import (
	"io/fs"

	"github.com/goliatone/go-reportschema/pkg/preview"
)

// EmbeddedTemplates exposes the built-in preview layouts so callers can reuse
// or extend them without importing the preview package directly.
func EmbeddedTemplates() fs.FS {
	return preview.TemplatesFS()
}

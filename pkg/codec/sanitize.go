package codec

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-reportschema/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// sanitizeText strips all markup from raw and trims the result. bluemonday
// escapes entities on output, so they are unescaped again to keep plain text
// such as "A & B" intact.
func sanitizeText(raw string) string {
	if raw == "" || !strings.ContainsAny(raw, "<>&") {
		return strings.TrimSpace(raw)
	}
	cleaned := textSanitizer().Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// Sanitize returns a copy of t with markup removed from names, titles, labels,
// descriptions and options. Options that become empty are dropped.
func Sanitize(t model.Template) model.Template {
	out := t.Clone()
	out.Name = sanitizeText(out.Name)
	out.Description = sanitizeText(out.Description)
	for sIdx := range out.Sections {
		section := &out.Sections[sIdx]
		section.Title = sanitizeText(section.Title)
		section.Description = sanitizeText(section.Description)
		for fIdx := range section.Fields {
			field := &section.Fields[fIdx]
			field.Name = sanitizeText(field.Name)
			field.Label = sanitizeText(field.Label)
			field.Description = sanitizeText(field.Description)
			if len(field.Options) == 0 {
				continue
			}
			options := field.Options[:0]
			for _, option := range field.Options {
				if cleaned := sanitizeText(option); cleaned != "" {
					options = append(options, cleaned)
				}
			}
			field.Options = options
		}
	}
	return out
}

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reportschema/pkg/model"
)

// ErrEmptyDocument is wrapped by DecodeError when the input is blank.
var ErrEmptyDocument = errors.New("codec: document is empty")

// DecodeError reports a document that could not be decoded as JSON or YAML.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	source := e.Source
	if source == "" {
		source = "<input>"
	}
	if errors.Is(e.Err, ErrEmptyDocument) {
		return fmt.Sprintf("codec: %s is empty", source)
	}
	return fmt.Sprintf("codec: parse %s: invalid JSON or YAML: %v", source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a template from JSON or YAML.
func Decode(data []byte) (model.Template, error) {
	return decode(data, "")
}

func decode(data []byte, source string) (model.Template, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Template{}, &DecodeError{Source: source, Err: ErrEmptyDocument}
	}

	var tpl model.Template
	jsonErr := json.Unmarshal(data, &tpl)
	if jsonErr == nil {
		return tpl, nil
	}

	tpl = model.Template{}
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		if looksLikeJSON(data) {
			return model.Template{}, &DecodeError{Source: source, Err: jsonErr}
		}
		return model.Template{}, &DecodeError{Source: source, Err: err}
	}
	return tpl, nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := strings.TrimSpace(string(data))
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// EncodeJSON renders t as indented JSON terminated by a newline.
func EncodeJSON(t model.Template) ([]byte, error) {
	payload, err := json.MarshalIndent(normalise(t), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("codec: encode json: %w", err)
	}
	return append(payload, '\n'), nil
}

// EncodeYAML renders t as YAML using two-space indentation.
func EncodeYAML(t model.Template) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalise(t)); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("codec: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// normalise clones t so nil slices are written as empty lists.
func normalise(t model.Template) model.Template {
	return t.Clone()
}

package editor_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportschema/pkg/editor"
	"github.com/goliatone/go-reportschema/pkg/model"
)

func TestOperations_DecodeAndApply(t *testing.T) {
	payload := `[
	  {"op": "addSection"},
	  {"op": "updateSection", "section": 0, "sectionPatch": {"title": "Hoist", "isRequired": true}},
	  {"op": "addField", "section": 0, "type": "text"},
	  {"op": "addField", "section": 0, "type": "select"},
	  {"op": "updateField", "section": 0, "field": 1, "fieldPatch": {"label": "Verdict", "options": ["Pass", "Fail"], "required": true}},
	  {"op": "moveField", "section": 0, "from": 1, "to": 0},
	  {"op": "addSection"},
	  {"op": "moveSection", "from": 1, "to": 0},
	  {"op": "deleteSection", "section": 0},
	  {"op": "deleteField", "section": 0, "field": 1}
	]`
	var ops []editor.Operation
	if err := json.Unmarshal([]byte(payload), &ops); err != nil {
		t.Fatalf("decode: %v", err)
	}
	cmds, err := editor.Commands(ops)
	if err != nil {
		t.Fatalf("commands: %v", err)
	}

	got, err := editor.Apply(model.NewTemplate("Crane", model.ReportTypeCrane), cmds...)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := []model.Section{{
		Title:      "Hoist",
		IsRequired: true,
		Fields: []model.Field{{
			Name:     "select_field_1",
			Label:    "Verdict",
			Type:     model.FieldTypeSelect,
			Required: true,
			Options:  []string{"Pass", "Fail"},
		}},
	}}
	if diff := cmp.Diff(want, got.Sections); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestOperation_Errors(t *testing.T) {
	if _, err := (editor.Operation{Op: "renameTemplate"}).Command(); !errors.Is(err, editor.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
	if _, err := editor.Commands([]editor.Operation{{Op: editor.OpAddSection}, {Op: "nope"}}); !errors.Is(err, editor.ErrUnknownOperation) {
		t.Fatalf("expected batch failure, got %v", err)
	}

	cmd, err := (editor.Operation{Op: editor.OpDeleteField, Section: editor.Index(3), Field: editor.Index(0)}).Command()
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if _, err := cmd(model.NewTemplate("x", model.ReportTypeGeneral)); !errors.Is(err, editor.ErrIndexOutOfRange) {
		t.Fatalf("expected index error, got %v", err)
	}
}

func TestOperation_MissingIndex(t *testing.T) {
	cases := map[string]string{
		"delete section without section": `{"op": "deleteSection"}`,
		"update section without section": `{"op": "updateSection", "sectionPatch": {"title": "X"}}`,
		"add field without section":      `{"op": "addField", "type": "text"}`,
		"update field without field":     `{"op": "updateField", "section": 0, "fieldPatch": {"required": true}}`,
		"delete field without section":   `{"op": "deleteField", "field": 0}`,
		"move section without to":        `{"op": "moveSection", "from": 1}`,
		"move field without from":        `{"op": "moveField", "section": 0, "to": 1}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			var op editor.Operation
			if err := json.Unmarshal([]byte(payload), &op); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, err := op.Command(); !errors.Is(err, editor.ErrMissingIndex) {
				t.Fatalf("expected ErrMissingIndex, got %v", err)
			}
		})
	}
}

func TestOperation_ExplicitZeroIndex(t *testing.T) {
	tpl := editor.AddSection(editor.AddSection(model.NewTemplate("Zero", model.ReportTypeGeneral)))

	var op editor.Operation
	if err := json.Unmarshal([]byte(`{"op": "deleteSection", "section": 0}`), &op); err != nil {
		t.Fatalf("decode: %v", err)
	}
	cmd, err := op.Command()
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	got, err := cmd(tpl)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diff := cmp.Diff([]string{"Section 2"}, sectionTitles(got)); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
}

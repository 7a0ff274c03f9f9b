package preview_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/preview"
)

func psvTemplate() model.Template {
	return model.Template{
		Name:        "PSV <b>bench</b> test",
		Description: "Bench test of a pressure safety valve",
		ReportType:  model.ReportTypePSV,
		Sections: []model.Section{
			{
				Title:      "Valve",
				IsRequired: true,
				Fields: []model.Field{
					{Name: "tag", Label: "Tag", Type: model.FieldTypeText, Required: true},
					{Name: "leaks", Label: "Leaks", Type: model.FieldTypeMultiselect, Options: []string{"Seat", "Body"}, Order: 1},
					{Name: "passed", Label: "Passed", Type: model.FieldTypeCheckbox, Order: 2},
					{Name: "remarks", Type: model.FieldTypeTextarea, Order: 3},
				},
			},
			{Title: "", Order: 1},
		},
	}
}

func TestRender_HTML(t *testing.T) {
	renderer, err := preview.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	values := map[string]any{
		"valve_tag":    "PSV-101",
		"valve_leaks":  []string{"Seat", "Body"},
		"valve_passed": true,
	}

	out, err := renderer.Render(psvTemplate(), values)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`data-report-type="PSV"`,
		"PSV &lt;b&gt;bench&lt;/b&gt; test",
		`data-key="valve_tag"`,
		"<dd>PSV-101</dd>",
		"<dd>Seat, Body</dd>",
		"<dd>Yes</dd>",
		"Remarks",
		"<dd>-</dd>",
		"Section 2",
		"No fields",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_Text(t *testing.T) {
	renderer, err := preview.New(preview.WithTemplate(preview.TemplateText))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(psvTemplate(), map[string]any{"valve_passed": false})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"PSV <b>bench</b> test (PSV)",
		"== Valve (required) ==",
		"  Tag *: -",
		"  Passed: No",
		"(no fields)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_CustomFS(t *testing.T) {
	files := fstest.MapFS{
		"compact.tpl": {Data: []byte(`{% for s in sections %}{% for r in s.Rows %}{{ r.Key }}={{ r.Value|display }};{% endfor %}{% endfor %}`)},
	}
	renderer, err := preview.New(preview.WithFS(files), preview.WithTemplate("compact.tpl"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(psvTemplate(), map[string]any{"valve_tag": "A"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "valve_tag=A;valve_leaks=-;valve_passed=-;valve_remarks=-;"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	missing, err := preview.New(preview.WithFS(files), preview.WithTemplate("nope.tpl"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := missing.Render(psvTemplate(), nil); err == nil {
		t.Fatalf("expected missing layout error")
	}
}

func TestSections(t *testing.T) {
	views := preview.Sections(psvTemplate(), nil)
	got := make([]string, 0)
	for _, view := range views {
		for _, row := range view.Rows {
			got = append(got, row.Label)
		}
	}
	if diff := cmp.Diff([]string{"Tag", "Leaks", "Passed", "Remarks"}, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if views[1].Title != "Section 2" {
		t.Fatalf("untitled section heading = %q", views[1].Title)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "-"},
		{"", "-"},
		{"text", "text"},
		{true, "Yes"},
		{false, "No"},
		{42, "42"},
		{3.5, "3.5"},
		{[]string{"a", "b"}, "a, b"},
		{[]string{}, "-"},
		{[]any{"a", true}, "a, Yes"},
	}
	for _, tc := range cases {
		if got := preview.Display(tc.in); got != tc.want {
			t.Errorf("Display(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package server

import (
	"net/http"
	"strconv"

	"github.com/goliatone/go-reportschema/internal/store"
	"github.com/goliatone/go-reportschema/pkg/codec"
	"github.com/goliatone/go-reportschema/pkg/editor"
	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/openapi"
	"github.com/goliatone/go-reportschema/pkg/sample"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// templateResponse is a stored record plus the validation result computed
// while handling the request, when there is one.
type templateResponse struct {
	store.Record
	Validation *validation.Result `json:"validation,omitempty"`
}

type listResponse struct {
	Templates []store.Record `json:"templates"`
}

type sampleResponse struct {
	Values map[string]any `json:"values"`
}

// commandRequest accepts either a single operation or a batch under
// "commands".
type commandRequest struct {
	editor.Operation
	Commands []editor.Operation `json:"commands,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validate runs the configured validator and records metrics.
func (s *Server) validate(r *http.Request, tpl model.Template) (validation.Result, error) {
	result, err := s.validator.Validate(r.Context(), tpl)
	if err != nil {
		return validation.Result{}, err
	}
	s.metrics.ObserveValidation(result)
	return result, nil
}

func (s *Server) validateTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, ok := readTemplate(w, r)
	if !ok {
		return
	}
	result, err := s.validate(r, tpl)
	if err != nil {
		templateErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) sampleTemplate(w http.ResponseWriter, r *http.Request) {
	gen := s.generator
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidQuery, "invalid seed: "+raw)
			return
		}
		gen = sample.New(sample.WithSeed(seed))
	}
	tpl, ok := readTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sampleResponse{Values: gen.Generate(tpl)})
}

func (s *Server) schemaTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, ok := readTemplate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, openapi.Document(tpl))
}

// importBody runs the codec import pipeline on the request body.
func (s *Server) importBody(w http.ResponseWriter, r *http.Request) (codec.ImportResult, bool) {
	data, ok := readBody(w, r)
	if !ok {
		return codec.ImportResult{}, false
	}
	imported, err := codec.Import(data,
		codec.WithSource("request body"),
		codec.WithValidator(s.validator),
		codec.WithContext(r.Context()),
	)
	if err != nil {
		templateErrorToHTTP(w, err)
		return codec.ImportResult{}, false
	}
	s.metrics.ObserveValidation(imported.Validation)
	return imported, true
}

func (s *Server) strictRequest(r *http.Request) bool {
	if s.strict {
		return true
	}
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	return strict
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	imported, ok := s.importBody(w, r)
	if !ok {
		return
	}
	if imported.Validation.Blocking() && s.strictRequest(r) {
		writeInvalid(w, "template has validation errors", imported.Validation)
		return
	}

	// Activation only happens through the activate endpoint.
	tpl := imported.Template
	tpl.ID = ""
	tpl.IsActive = false

	rec, err := s.store.Create(r.Context(), tpl)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, templateResponse{Record: rec, Validation: &imported.Validation})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	var opts store.ListOptions
	query := r.URL.Query()
	if raw := query.Get("reportType"); raw != "" {
		reportType, err := model.ParseReportType(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidQuery, err.Error())
			return
		}
		opts.ReportType = reportType
	}
	if raw := query.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeInvalidQuery, "invalid active flag: "+raw)
			return
		}
		opts.ActiveOnly = active
	}

	records, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Templates: records})
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateResponse{Record: rec})
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	imported, ok := s.importBody(w, r)
	if !ok {
		return
	}
	s.replace(w, r, existing, imported.Template, imported.Validation)
}

// replace stores next in place of existing. An active template must stay
// free of errors, and strict mode applies the same rule to every template.
func (s *Server) replace(w http.ResponseWriter, r *http.Request, existing store.Record, next model.Template, result validation.Result) {
	if result.Blocking() && (existing.Template.IsActive || s.strictRequest(r)) {
		writeInvalid(w, "template has validation errors", result)
		return
	}
	next.IsActive = existing.Template.IsActive

	rec, err := s.store.Update(r.Context(), existing.ID, next)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateResponse{Record: rec, Validation: &result})
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) activateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	result, err := s.validate(r, rec.Template)
	if err != nil {
		templateErrorToHTTP(w, err)
		return
	}
	if result.Blocking() {
		writeInvalid(w, "template cannot be activated while it has validation errors", result)
		return
	}
	rec, err = s.store.SetActive(r.Context(), id, true)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateResponse{Record: rec, Validation: &result})
}

func (s *Server) deactivateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.SetActive(r.Context(), id, false)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateResponse{Record: rec})
}

func (s *Server) applyCommands(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req commandRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ops := req.Commands
	if len(ops) == 0 {
		if req.Op == "" {
			writeError(w, http.StatusBadRequest, CodeInvalidCommand, "request has no operations")
			return
		}
		ops = []editor.Operation{req.Operation}
	}
	cmds, err := editor.Commands(ops)
	if err != nil {
		templateErrorToHTTP(w, err)
		return
	}

	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.storeErrorToHTTP(w, err)
		return
	}
	next, err := editor.Apply(existing.Template, cmds...)
	if err != nil {
		templateErrorToHTTP(w, err)
		return
	}
	result, err := s.validate(r, next)
	if err != nil {
		templateErrorToHTTP(w, err)
		return
	}
	s.replace(w, r, existing, next, result)
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-reportschema/internal/store"
	"github.com/goliatone/go-reportschema/pkg/codec"
	"github.com/goliatone/go-reportschema/pkg/editor"
	"github.com/goliatone/go-reportschema/pkg/model"
	"github.com/goliatone/go-reportschema/pkg/validation"
)

// Error codes carried in the "code" member of error bodies.
const (
	CodeInvalidJSON       = "INVALID_JSON"
	CodeInvalidTemplate   = "INVALID_TEMPLATE"
	CodeMalformedTemplate = "MALFORMED_TEMPLATE"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeValidatorDown     = "VALIDATOR_UNAVAILABLE"
	CodeInvalidID         = "INVALID_ID"
	CodeInvalidQuery      = "INVALID_QUERY"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidCommand    = "INVALID_COMMAND"
	CodeInternal          = "INTERNAL_ERROR"
)

type errorBody struct {
	Error      string             `json:"error"`
	Code       string             `json:"code"`
	Validation *validation.Result `json:"validation,omitempty"`
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", slog.String("error", err.Error()))
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: message, Code: code})
}

// writeInvalid reports a blocking validation result.
func writeInvalid(w http.ResponseWriter, message string, result validation.Result) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody{
		Error:      message,
		Code:       CodeValidationFailed,
		Validation: &result,
	})
}

// readBody reads at most maxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeInvalidJSON, err.Error())
			return nil, false
		}
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, err.Error())
		return nil, false
	}
	return data, true
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	data, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, err.Error())
		return false
	}
	return true
}

// readTemplate decodes a JSON or YAML template body, renumbers it and
// applies the structural check.
func readTemplate(w http.ResponseWriter, r *http.Request) (model.Template, bool) {
	data, ok := readBody(w, r)
	if !ok {
		return model.Template{}, false
	}
	tpl, err := codec.Decode(data)
	if err == nil {
		tpl = codec.Normalize(tpl)
		err = model.Check(tpl)
	}
	if err != nil {
		templateErrorToHTTP(w, err)
		return model.Template{}, false
	}
	return tpl, true
}

// parseID extracts and validates the {id} path parameter.
func parseID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		writeError(w, http.StatusBadRequest, CodeInvalidID, "invalid template id: "+id)
		return "", false
	}
	return id, true
}

// templateErrorToHTTP maps decode, structural and editor errors to 400s and
// validator outages to 502.
func templateErrorToHTTP(w http.ResponseWriter, err error) {
	var decodeErr *codec.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		writeError(w, http.StatusBadRequest, CodeInvalidTemplate, err.Error())
	case errors.Is(err, model.ErrMalformedTemplate),
		errors.Is(err, model.ErrUnknownFieldType),
		errors.Is(err, model.ErrUnknownReportType):
		writeError(w, http.StatusBadRequest, CodeMalformedTemplate, err.Error())
	case errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, editor.ErrUnknownFieldType),
		errors.Is(err, editor.ErrUnknownOperation),
		errors.Is(err, editor.ErrMissingIndex):
		writeError(w, http.StatusBadRequest, CodeInvalidCommand, err.Error())
	case errors.Is(err, validation.ErrRemoteValidation):
		writeError(w, http.StatusBadGateway, CodeValidatorDown, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// storeErrorToHTTP maps store errors to HTTP responses.
func (s *Server) storeErrorToHTTP(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	s.logger.Error("store failure", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}

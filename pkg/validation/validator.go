package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-reportschema/pkg/model"
)

// Validator is the asynchronous seam the application validates through. The
// local engine satisfies it synchronously; a remote implementation may
// replace it, in which case its Result is used wholesale.
type Validator interface {
	Validate(ctx context.Context, t model.Template) (Result, error)
}

// LocalValidator adapts an Engine to the Validator interface.
type LocalValidator struct {
	Engine *Engine
}

// Ensure the implementations satisfy the interface.
var (
	_ Validator = LocalValidator{}
	_ Validator = (*RemoteValidator)(nil)
	_ Validator = (*FallbackValidator)(nil)
)

// Validate runs the engine; it only fails when ctx is already done.
func (v LocalValidator) Validate(ctx context.Context, t model.Template) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	engine := v.Engine
	if engine == nil {
		engine = defaultEngine
	}
	return engine.Validate(t), nil
}

// ErrRemoteValidation wraps transport and protocol failures of a
// RemoteValidator.
var ErrRemoteValidation = errors.New("validation: remote validator failed")

// RemoteValidator posts the template as JSON to Endpoint and decodes a Result
// of the same shape.
type RemoteValidator struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
}

// NewRemoteValidator builds a RemoteValidator with a default client.
func NewRemoteValidator(endpoint string, timeout time.Duration) *RemoteValidator {
	return &RemoteValidator{
		Endpoint: strings.TrimSpace(endpoint),
		Client:   &http.Client{},
		Timeout:  timeout,
	}
}

// Validate sends t to the remote endpoint.
func (v *RemoteValidator) Validate(ctx context.Context, t model.Template) (Result, error) {
	if v == nil || v.Endpoint == "" {
		return Result{}, fmt.Errorf("%w: endpoint is not configured", ErrRemoteValidation)
	}
	if v.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(t)
	if err != nil {
		return Result{}, fmt.Errorf("%w: encode template: %w", ErrRemoteValidation, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("%w: build request: %w", ErrRemoteValidation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := v.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrRemoteValidation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Result{}, fmt.Errorf("%w: read response: %w", ErrRemoteValidation, err)
	}
	// 422 carries a regular Result for templates with errors.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnprocessableEntity {
		return Result{}, fmt.Errorf("%w: unexpected status %d", ErrRemoteValidation, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("%w: decode result: %w", ErrRemoteValidation, err)
	}
	return result.Normalize(), nil
}

// FallbackValidator prefers Primary and falls back to Local when Primary
// fails. Results are never merged: exactly one of them is returned.
type FallbackValidator struct {
	Primary Validator
	Local   Validator
	Logger  *slog.Logger
}

// Validate runs Primary, then Local on error.
func (v *FallbackValidator) Validate(ctx context.Context, t model.Template) (Result, error) {
	local := v.Local
	if local == nil {
		local = LocalValidator{}
	}
	if v.Primary == nil {
		return local.Validate(ctx, t)
	}

	result, err := v.Primary.Validate(ctx, t)
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	logger := v.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("remote validation failed, using local rules", slog.String("error", err.Error()))
	return local.Validate(ctx, t)
}

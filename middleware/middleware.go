// Package middleware checks JSON request bodies against a goshape schema at
// the HTTP boundary.
//
// Validate rejects any body that does not match exactly (unknown keys
// included) and hands the original body on. Extract whitelists the body instead: unknown keys are dropped
// and the handler sees the cleaned JSON both in the context and as the
// request body. Failures are answered with 400 and
//
//	{"error":{"code":"...","path":"...","reason":"..."}}
//
// Rejected values are never logged or echoed back.
package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/source"
)

// DefaultMaxBytes caps request bodies unless WithMaxBytes says otherwise.
const DefaultMaxBytes int64 = 1 << 20

// Error codes used in responses besides the goshape issue codes.
const (
	CodeMalformed = "malformed_body"
	CodeTooLarge  = "body_too_large"
)

// Reasons for body-level failures. Decoder errors may quote the input and
// stay in debug logs.
const (
	ReasonMalformed = "request body is not valid JSON"
	ReasonTooLarge  = "request body too large"
)

type mode string

const (
	modeValidate mode = "validate"
	modeExtract  mode = "extract"
)

// ctxKeyValue is a typed context key for the accepted body.
type ctxKeyValue struct{}

// ContextWithValue attaches an accepted body to ctx.
func ContextWithValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyValue{}, v)
}

// ValueFromContext returns the decoded body stored by Validate, or the
// whitelisted object stored by Extract.
func ValueFromContext(ctx context.Context) (any, bool) {
	v := ctx.Value(ctxKeyValue{})
	return v, v != nil
}

// Option configures Validate and Extract.
type Option func(*config)

type config struct {
	logger   zerolog.Logger
	maxBytes int64
	metrics  *Metrics
}

// WithLogger sets the logger for rejected requests. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxBytes overrides DefaultMaxBytes. Values below 1 are ignored.
func WithMaxBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithMetrics records one observation per request on m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

func newConfig(opts []Option) config {
	c := config{logger: zerolog.Nop(), maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ErrorBody is the JSON error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail locates a rejection. Path is empty for the root and for
// body-level failures.
type ErrorDetail struct {
	Code   string `json:"code"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Validate rejects request bodies that do not conform to s.
func Validate(s *goshape.Validated, opts ...Option) func(http.Handler) http.Handler {
	return newGuard(s, modeValidate, opts).wrap
}

// Extract replaces request bodies with their whitelisted form under s.
func Extract(s *goshape.Validated, opts ...Option) func(http.Handler) http.Handler {
	return newGuard(s, modeExtract, opts).wrap
}

type guard struct {
	schema *goshape.Validated
	mode   mode
	cfg    config
}

func newGuard(s *goshape.Validated, m mode, opts []Option) *guard {
	return &guard{schema: s, mode: m, cfg: newConfig(opts)}
}

func (g *guard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, g.cfg.maxBytes))
		if err != nil {
			g.rejectBody(w, r, err)
			return
		}
		value, err := source.JSON(raw)
		if err != nil {
			g.rejectBody(w, r, err)
			return
		}

		switch g.mode {
		case modeExtract:
			out, err := g.schema.Extract(value)
			if err != nil {
				g.rejectValue(w, r, err)
				return
			}
			body, err := source.EncodeJSON(out)
			if err != nil {
				g.cfg.logger.Error().Err(err).Str("path", r.URL.Path).Msg("encode whitelisted body")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			r.Header.Set("Content-Length", strconv.Itoa(len(body)))
			value = out
		default:
			if err := g.schema.Validate(value); err != nil {
				g.rejectValue(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
		}

		g.observe("ok")
		next.ServeHTTP(w, r.WithContext(ContextWithValue(r.Context(), value)))
	})
}

func (g *guard) rejectBody(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		g.observe("too_large")
		g.cfg.logger.Warn().Str("path", r.URL.Path).Int64("limit", tooLarge.Limit).Msg("request body too large")
		writeError(w, http.StatusRequestEntityTooLarge, ErrorDetail{Code: CodeTooLarge, Reason: ReasonTooLarge})
		return
	}
	g.observe("malformed")
	g.cfg.logger.Warn().Str("path", r.URL.Path).Msg("malformed request body")
	g.cfg.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("decode request body")
	writeError(w, http.StatusBadRequest, ErrorDetail{Code: CodeMalformed, Reason: ReasonMalformed})
}

func (g *guard) rejectValue(w http.ResponseWriter, r *http.Request, err error) {
	iss, ok := goshape.AsIssue(err)
	if !ok {
		g.observe("error")
		g.cfg.logger.Error().Err(err).Str("path", r.URL.Path).Msg("schema check failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	g.observe("invalid")
	g.cfg.logger.Info().
		Str("path", r.URL.Path).
		Str("mode", string(g.mode)).
		Str("code", iss.Code).
		Str("field", iss.Path()).
		Msg("request body rejected")
	writeError(w, http.StatusBadRequest, ErrorDetail{Code: iss.Code, Path: iss.Path(), Reason: iss.Reason})
}

func (g *guard) observe(result string) {
	if g.cfg.metrics != nil {
		g.cfg.metrics.RequestsTotal.WithLabelValues(string(g.mode), result).Inc()
	}
}

func writeError(w http.ResponseWriter, status int, d ErrorDetail) {
	body, err := source.EncodeJSON(ErrorBody{Error: d})
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

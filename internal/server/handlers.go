package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gitlevel/pkg/buildinfo"
	"github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleCard(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveArtifact(w, r, format)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON)
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format string) {
	opts, err := s.options(r, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.opts.CacheMaxAge.Seconds())))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// options reads ?theme=, ?langs= and ?bar= on top of the server defaults.
func (s *Server) options(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Username:     chi.URLParam(r, "username"),
		Formats:      []string{format},
		Theme:        s.opts.Theme,
		TopLanguages: s.opts.TopLanguages,
		GitHubToken:  s.opts.GitHubToken,
	}
	if t := q.Get("theme"); t != "" {
		opts.Theme = t
	}
	if v := q.Get("langs"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 10 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "langs must be an integer between 0 and 10")
		}
		opts.TopLanguages = n
	}
	if v := q.Get("bar"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "bar must be true or false")
		}
		opts.NoProgressBar = !show
	}
	return opts, nil
}

type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = requestIDFrom(r.Context())

	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", body.Error.RequestID)
		if status == http.StatusInternalServerError {
			body.Error.Message = "internal error"
		}
	}
	writeJSON(w, status, body)
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeUserNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidUsername, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidTheme, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
